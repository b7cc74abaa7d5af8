package service

import (
	"context"
	"strings"

	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/domain/trip"
	"truck-fleet/internal/ports"
)

// Preview selects the trips for the driver and period and computes the
// full settlement breakdown. Read-only and side-effect free: the same
// call can be repeated at will, nothing is persisted.
func (service *settlementService) Preview(ctx context.Context, in ports.PreviewInput) (ports.PreviewResult, error) {
	if strings.TrimSpace(in.DriverID) == "" {
		return ports.PreviewResult{}, settlement.ErrDriverRequired
	}

	// a single read-only transaction for a consistent trip snapshot
	var trips []trip.Trip
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		trips, err = service.trips.ListForSettlement(txCtx, in.DriverID, in.From, in.To, in.IncludeSettled)
		return err
	})
	if err != nil {
		service.logger.Error(ctx, "preview_query_failed", "Failed to select trips for preview", err, map[string]any{
			"driver_id": in.DriverID,
			"from":      in.From.Format("2006-01-02"),
			"to":        in.To.Format("2006-01-02"),
		})
		return ports.PreviewResult{}, err
	}

	// no matching trips is a success with zeroed totals, never an error
	agg := settlement.AggregateTrips(trips)
	rec := settlement.Reconcile(agg.TotalDistanceKM, agg.MileageMean, agg.TotalDieselQuantity, in.DieselRate, in.DefaultMileage)
	totals := settlement.ResolveBalance(agg, rec, in.RatePerKM, in.DieselRate, in.ExtraExpense)

	result := ports.PreviewResult{
		Journeys: make([]ports.TripView, 0, len(trips)),
		Totals:   totals,
	}
	for i := range trips {
		result.Journeys = append(result.Journeys, tripView(&trips[i]))
	}

	service.logger.Debug(ctx, "settlement_previewed", "Computed settlement preview", map[string]any{
		"driver_id":     in.DriverID,
		"journeys":      len(result.Journeys),
		"overall_total": totals.OverallTotal,
	})

	return result, nil
}
