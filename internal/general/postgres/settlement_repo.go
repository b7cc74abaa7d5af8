package postgres

import (
	"context"
	"errors"
	"fmt"

	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/ports"

	"github.com/jackc/pgx/v5"
)

// SettlementRepo persists settlement records using pgx and plain SQL.
// The table is append-only from this core's perspective: there is no
// update or delete here, by contract.
type SettlementRepo struct{}

// NewSettlementRepo constructs a new SettlementRepo.
func NewSettlementRepo() ports.SettlementRepository {
	return &SettlementRepo{}
}

// Insert writes one immutable settlement row and fills in the
// generated id and timestamp.
func (r *SettlementRepo) Insert(ctx context.Context, s *settlement.Settlement) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	t := s.Totals
	err = tx.QueryRow(ctx, `
		INSERT INTO settlements (
			settlement_number, driver_id, period_from, period_to, trip_ids,
			total_driver_expense, total_diesel_expense, total_diesel_quantity,
			total_distance_km, total_starting_cash,
			avg_mileage, diesel_theoretical, diesel_diff, diesel_value,
			rate_per_km, diesel_rate, extra_expense,
			km_earning, driver_total, owner_total, overall_total,
			status
		)
		VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17,
			$18, $19, $20, $21,
			$22
		)
		RETURNING id, created_at
	`,
		s.SettlementNumber, s.DriverID, s.PeriodFrom, s.PeriodTo, s.TripIDs,
		t.TotalDriverExpense, t.TotalDieselExpense, t.TotalDieselQuantity,
		t.TotalDistanceKM, t.TotalStartingCash,
		t.AvgMileage, t.DieselTheoretical, t.DieselDiff, t.DieselValue,
		t.RatePerKM, t.DieselRate, t.ExtraExpense,
		t.KMEarning, t.DriverTotal, t.OwnerTotal, t.OverallTotal,
		s.Status.String(),
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}

	return nil
}

// GetByID fetches a settlement by primary key (uuid).
func (r *SettlementRepo) GetByID(ctx context.Context, id string) (*settlement.Settlement, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s, err := scanSettlement(tx.QueryRow(ctx, `
		SELECT `+settlementColumns+`
		FROM settlements
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settlement.ErrNotFound
		}
		return nil, err
	}

	return s, nil
}

// ListByDriver returns the most recent settlements for a driver.
func (r *SettlementRepo) ListByDriver(ctx context.Context, driverID string, limit int) ([]*settlement.Settlement, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+settlementColumns+`
		FROM settlements
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, driverID, limit)
	if err != nil {
		return nil, fmt.Errorf("query settlements by driver: %w", err)
	}
	defer rows.Close()

	var out []*settlement.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return out, nil
}

const settlementColumns = `
	id, settlement_number, driver_id, period_from, period_to, trip_ids,
	total_driver_expense, total_diesel_expense, total_diesel_quantity,
	total_distance_km, total_starting_cash,
	avg_mileage, diesel_theoretical, diesel_diff, diesel_value,
	rate_per_km, diesel_rate, extra_expense,
	km_earning, driver_total, owner_total, overall_total,
	status, created_at`

// scanSettlement hydrates one settlement row.
func scanSettlement(row rowScanner) (*settlement.Settlement, error) {
	var s settlement.Settlement
	var status string

	err := row.Scan(
		&s.ID, &s.SettlementNumber, &s.DriverID, &s.PeriodFrom, &s.PeriodTo, &s.TripIDs,
		&s.Totals.TotalDriverExpense, &s.Totals.TotalDieselExpense, &s.Totals.TotalDieselQuantity,
		&s.Totals.TotalDistanceKM, &s.Totals.TotalStartingCash,
		&s.Totals.AvgMileage, &s.Totals.DieselTheoretical, &s.Totals.DieselDiff, &s.Totals.DieselValue,
		&s.Totals.RatePerKM, &s.Totals.DieselRate, &s.Totals.ExtraExpense,
		&s.Totals.KMEarning, &s.Totals.DriverTotal, &s.Totals.OwnerTotal, &s.Totals.OverallTotal,
		&status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Status = settlement.Status(status)
	return &s, nil
}
