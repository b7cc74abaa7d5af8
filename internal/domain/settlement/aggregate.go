package settlement

import (
	"truck-fleet/internal/domain/trip"
)

// Aggregate holds the raw period sums over a selected trip set.
type Aggregate struct {
	TotalDriverExpense  float64
	TotalDieselExpense  float64
	TotalDieselQuantity float64 // litres actually issued across every fuel record
	TotalDistanceKM     float64 // per-trip clamped odometer deltas
	TotalStartingCash   float64
	MileageMean         float64 // mean of non-zero per-trip average mileage; 0 if none recorded
	MileageSamples      int     // trips that contributed to MileageMean
}

// AggregateTrips accumulates the period sums for the given trips.
// Selection (driver, period, settled filter) happens upstream in the
// repository query; this function only sums what it is handed.
// An empty slice yields a zeroed Aggregate, never an error.
func AggregateTrips(trips []trip.Trip) Aggregate {
	var agg Aggregate
	var mileageSum float64

	for i := range trips {
		t := &trips[i]

		agg.TotalDriverExpense += t.DriverExpenseTotal()
		agg.TotalDieselExpense += t.DieselExpense()
		agg.TotalDieselQuantity += t.DieselQuantity()
		agg.TotalDistanceKM += t.DistanceKM()
		agg.TotalStartingCash += t.StartingCash

		// trips without a recorded mileage are excluded from the mean,
		// not treated as zero samples
		if t.AverageMileage != 0 {
			mileageSum += t.AverageMileage
			agg.MileageSamples++
		}
	}

	if agg.MileageSamples > 0 {
		agg.MileageMean = mileageSum / float64(agg.MileageSamples)
	}

	return agg
}
