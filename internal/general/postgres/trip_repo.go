package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"truck-fleet/internal/domain/trip"
	"truck-fleet/internal/ports"
)

// TripRepo reads and flags trips using pgx and plain SQL. Trip rows are
// created by the trip-management feature; this repo never inserts them.
type TripRepo struct{}

// NewTripRepo constructs a new TripRepo.
func NewTripRepo() ports.TripRepository {
	return &TripRepo{}
}

const tripColumns = `
	id, driver_id, vehicle_id, journey_start_date, journey_end_date,
	starting_km, ending_km, fuel_purchases, driver_expenses,
	starting_cash, average_mileage, settled, settlement_id, deleted,
	created_at, updated_at`

// ListForSettlement selects the non-deleted trips for a driver whose
// journey window lies inside the inclusive [from, to] period. Settled
// trips are excluded unless includeSettled is set, so a default
// preview can never see a trip that already belongs to a settlement.
func (r *TripRepo) ListForSettlement(ctx context.Context, driverID string, from, to time.Time, includeSettled bool) ([]trip.Trip, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get transaction from context: %w", err)
	}

	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE driver_id = $1
		  AND deleted = FALSE
		  AND journey_start_date >= $2
		  AND journey_end_date <= $3`
	if !includeSettled {
		query += `
		  AND settled = FALSE`
	}
	query += `
		ORDER BY journey_start_date, created_at`

	rows, err := tx.Query(ctx, query, driverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query trips for settlement: %w", err)
	}
	defer rows.Close()

	var trips []trip.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return trips, nil
}

// LockByIDs fetches the given trips with FOR UPDATE row locks, so a
// concurrent commit touching any of the same trips blocks until this
// transaction finishes. Missing ids surface as a short result set for
// the caller to reject.
func (r *TripRepo) LockByIDs(ctx context.Context, ids []string) ([]trip.Trip, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE id = ANY($1::uuid[])
		ORDER BY journey_start_date, created_at
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock trips: %w", err)
	}
	defer rows.Close()

	var trips []trip.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return trips, nil
}

// MarkSettled flips settled=true and attaches the settlement
// back-reference on every given trip. The row count must match; a
// mismatch aborts the surrounding transaction.
func (r *TripRepo) MarkSettled(ctx context.Context, ids []string, settlementID string, settledAt time.Time) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE trips
		SET settled = TRUE,
		    settlement_id = $2,
		    updated_at = $3
		WHERE id = ANY($1::uuid[])
		  AND settled = FALSE
	`, ids, settlementID, settledAt)
	if err != nil {
		return fmt.Errorf("mark trips settled: %w", err)
	}

	if int(tag.RowsAffected()) != len(ids) {
		return fmt.Errorf("mark trips settled: expected %d rows, updated %d", len(ids), tag.RowsAffected())
	}

	return nil
}

// rowScanner is the subset of pgx row types scanTrip needs.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTrip hydrates one trip row, unpacking the JSONB fuel and expense
// records.
func scanTrip(row rowScanner) (*trip.Trip, error) {
	var t trip.Trip
	var fuelRaw, expenseRaw []byte

	err := row.Scan(
		&t.ID, &t.DriverID, &t.VehicleID, &t.JourneyStartDate, &t.JourneyEndDate,
		&t.StartingKM, &t.EndingKM, &fuelRaw, &expenseRaw,
		&t.StartingCash, &t.AverageMileage, &t.Settled, &t.SettlementID, &t.Deleted,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan trip: %w", err)
	}

	if len(fuelRaw) > 0 {
		if err := json.Unmarshal(fuelRaw, &t.FuelPurchases); err != nil {
			return nil, fmt.Errorf("decode fuel purchases for trip %s: %w", t.ID, err)
		}
	}
	if len(expenseRaw) > 0 {
		if err := json.Unmarshal(expenseRaw, &t.DriverExpenses); err != nil {
			return nil, fmt.Errorf("decode driver expenses for trip %s: %w", t.ID, err)
		}
	}

	return &t, nil
}
