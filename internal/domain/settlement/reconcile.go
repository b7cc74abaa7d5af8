package settlement

// Reconciliation compares odometer-implied fuel consumption against the
// fuel actually issued to the driver over the period.
type Reconciliation struct {
	AvgMileage        float64 // km per litre used for the derivation; 0 when unknown
	DieselTheoretical float64 // litres the distance should have required
	DieselDiff        float64 // theoretical - given; positive: driver covered a shortfall
	DieselValue       float64 // signed money value of the diff at the diesel rate
}

// Reconcile derives the diesel discrepancy for a period. Pure and
// storage-free so it can be pinned down in isolation.
//
// avgMileage resolution: the aggregated mean when any trip contributed
// one, otherwise the caller-supplied default. When neither exists the
// theoretical consumption is 0 rather than a division by zero.
func Reconcile(distanceKM, mileageMean, dieselGiven, dieselRate, defaultMileage float64) Reconciliation {
	avg := mileageMean
	if avg == 0 {
		avg = defaultMileage
	}

	var theoretical float64
	if avg != 0 {
		theoretical = distanceKM / avg
	}

	diff := theoretical - dieselGiven

	return Reconciliation{
		AvgMileage:        avg,
		DieselTheoretical: theoretical,
		DieselDiff:        diff,
		DieselValue:       diff * dieselRate,
	}
}
