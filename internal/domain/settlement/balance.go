package settlement

import "math"

// Totals is the full settlement breakdown. Every derived figure is
// exposed independently because the commit step and the audit trail
// need the whole picture, not just the final net. This struct travels
// over the wire in both directions (preview response, confirm payload)
// and is persisted verbatim on the settlement record.
type Totals struct {
	// Aggregated period sums
	TotalDriverExpense  float64 `json:"total_driver_expense"`
	TotalDieselExpense  float64 `json:"total_diesel_expense"`
	TotalDieselQuantity float64 `json:"total_diesel_quantity"`
	TotalDistanceKM     float64 `json:"total_distance_km"`
	TotalStartingCash   float64 `json:"total_starting_cash"`

	// Mileage reconciliation
	AvgMileage        float64 `json:"avg_mileage"`
	DieselTheoretical float64 `json:"diesel_theoretical"`
	DieselDiff        float64 `json:"diesel_diff"`
	DieselValue       float64 `json:"diesel_value"`

	// Parameters the figures were computed with
	RatePerKM    float64 `json:"rate_per_km"`
	DieselRate   float64 `json:"diesel_rate"`
	ExtraExpense float64 `json:"extra_expense"`

	// Resolved balance
	KMEarning    float64 `json:"km_earning"`
	DriverTotal  float64 `json:"driver_total"`
	OwnerTotal   float64 `json:"owner_total"`
	OverallTotal float64 `json:"overall_total"` // signed net: positive, owner pays the driver
}

// ResolveBalance turns the period aggregates and the diesel
// reconciliation into the signed owner/driver balance. Arithmetic runs
// at full precision; every exposed figure is rounded to 2 decimals
// only here, at the storage/display boundary.
func ResolveBalance(agg Aggregate, rec Reconciliation, ratePerKM, dieselRate, extraExpense float64) Totals {
	kmEarning := agg.TotalDistanceKM * ratePerKM

	// baseline: what the driver earned for work and covered in expenses
	driverTotal := kmEarning + agg.TotalDriverExpense

	// baseline: what the owner already advanced as trip cash
	ownerTotal := agg.TotalStartingCash

	// diesel adjustment lands on exactly one side, by the sign of the diff
	if rec.DieselDiff > 0 {
		// driver burned more than was issued and paid out of pocket
		driverTotal += rec.DieselValue
	} else {
		// surplus fuel was issued; the driver owes back its value
		ownerTotal += -rec.DieselValue
	}

	// extra-expense rule preserved as observed: positive always helps
	// the owner side, non-positive reduces the driver side
	if extraExpense > 0 {
		ownerTotal += extraExpense
	} else {
		driverTotal += extraExpense
	}

	return Totals{
		TotalDriverExpense:  round2(agg.TotalDriverExpense),
		TotalDieselExpense:  round2(agg.TotalDieselExpense),
		TotalDieselQuantity: round2(agg.TotalDieselQuantity),
		TotalDistanceKM:     round2(agg.TotalDistanceKM),
		TotalStartingCash:   round2(agg.TotalStartingCash),
		AvgMileage:          round2(rec.AvgMileage),
		DieselTheoretical:   round2(rec.DieselTheoretical),
		DieselDiff:          round2(rec.DieselDiff),
		DieselValue:         round2(rec.DieselValue),
		RatePerKM:           ratePerKM,
		DieselRate:          dieselRate,
		ExtraExpense:        round2(extraExpense),
		KMEarning:           round2(kmEarning),
		DriverTotal:         round2(driverTotal),
		OwnerTotal:          round2(ownerTotal),
		OverallTotal:        round2(ownerTotal - driverTotal),
	}
}

// round2 rounds to 2 decimal places for storage and display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
