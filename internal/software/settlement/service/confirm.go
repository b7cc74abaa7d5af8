package service

import (
	"context"
	"errors"
	"fmt"

	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/domain/trip"
	"truck-fleet/internal/ports"
)

var (
	// ErrTripMissing: the payload references a trip that does not exist
	// (or was soft-deleted since the preview).
	ErrTripMissing = errors.New("one or more trips do not exist")
	// ErrTripDriverMismatch: a referenced trip belongs to another driver.
	ErrTripDriverMismatch = errors.New("trip does not belong to the driver")
)

// Confirm commits the previewed settlement: one immutable settlement
// row, every trip flagged settled, the driver balance overwritten. The
// three writes happen in a single transaction; any failure rolls the
// whole commit back and the trips stay unsettled, so retrying the same
// confirm call is safe.
//
// The submitted totals are trusted as-is: the previewed overall_total
// is the authoritative net figure and is not recomputed here.
func (service *settlementService) Confirm(ctx context.Context, in ports.ConfirmInput) (ports.SettlementView, error) {
	// validation happens before any write; settlement.New rejects a
	// missing driver, an empty trip list, and an inverted period
	stmt, err := settlement.New(generateSettlementNumber(), in.DriverID, in.From, in.To, in.TripIDs, in.Totals)
	if err != nil {
		return ports.SettlementView{}, err
	}

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		// lock the referenced trips for the rest of the transaction; a
		// concurrent commit over an overlapping trip set blocks here
		// and then fails the settled check below
		locked, err := service.trips.LockByIDs(txCtx, in.TripIDs)
		if err != nil {
			return err
		}
		if len(locked) != len(in.TripIDs) {
			return ErrTripMissing
		}
		for i := range locked {
			t := &locked[i]
			if t.Deleted {
				return ErrTripMissing
			}
			if t.DriverID != in.DriverID {
				return fmt.Errorf("%w: trip %s", ErrTripDriverMismatch, t.ID)
			}
			if t.Settled {
				return fmt.Errorf("%w: trip %s", trip.ErrAlreadySettled, t.ID)
			}
		}

		// lock the driver row: one settlement commit per driver at a time
		d, err := service.drivers.LockByID(txCtx, in.DriverID)
		if err != nil {
			return err
		}

		// 1. the immutable snapshot
		if err := service.settlements.Insert(txCtx, stmt); err != nil {
			return err
		}

		// 2. flag the trips with the back-reference
		if err := service.trips.MarkSettled(txCtx, in.TripIDs, stmt.ID, stmt.CreatedAt); err != nil {
			return err
		}

		// 3. overwrite the driver's running balance
		d.ApplyClearing(stmt.Totals.OverallTotal, stmt.CreatedAt)
		return service.drivers.OverwriteBalance(txCtx, d)
	})
	if err != nil {
		service.logger.Error(ctx, "settlement_confirm_failed", "Settlement commit rolled back", err, map[string]any{
			"driver_id": in.DriverID,
			"trips":     len(in.TripIDs),
		})
		return ports.SettlementView{}, err
	}

	ctx = service.logger.WithSettlementID(ctx, stmt.ID)
	service.logger.Info(ctx, "settlement_confirmed", "Settlement committed", map[string]any{
		"driver_id":         in.DriverID,
		"settlement_number": stmt.SettlementNumber,
		"trips":             len(in.TripIDs),
		"status":            stmt.Status.String(),
		"overall_total":     stmt.Totals.OverallTotal,
	})

	// notify downstream consumers; a publish failure never unwinds the
	// committed settlement, it is logged and the response proceeds
	service.publishSettlementConfirmed(ctx, stmt)
	service.publishDriverBalance(ctx, stmt)

	return settlementView(stmt), nil
}
