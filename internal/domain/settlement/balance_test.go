package settlement

import (
	"math"
	"testing"

	"truck-fleet/internal/domain/trip"
)

// Worked end-to-end example: two trips, one without a mileage figure.
func TestSettlementPipelineWorkedExample(t *testing.T) {
	trips := []trip.Trip{
		{
			// Trip A: 500 km, mileage 10, 40L issued, exp 200, cash 1000
			StartingKM: 0, EndingKM: 500,
			AverageMileage: 10,
			FuelPurchases:  []trip.FuelPurchase{{Quantity: 40, Amount: 3440}},
			DriverExpenses: []trip.Expense{{Amount: 200}},
			StartingCash:   1000,
		},
		{
			// Trip B: 300 km, mileage unset, 20L issued, exp 100, cash 500
			StartingKM: 0, EndingKM: 300,
			FuelPurchases:  []trip.FuelPurchase{{Quantity: 20, Amount: 1720}},
			DriverExpenses: []trip.Expense{{Amount: 100}},
			StartingCash:   500,
		},
	}

	agg := AggregateTrips(trips)
	if agg.TotalDistanceKM != 800 {
		t.Fatalf("TotalDistanceKM = %v, want 800", agg.TotalDistanceKM)
	}
	if agg.MileageMean != 10 || agg.MileageSamples != 1 {
		t.Fatalf("mileage mean/samples = %v/%v, want 10/1 (only Trip A contributes)",
			agg.MileageMean, agg.MileageSamples)
	}

	rec := Reconcile(agg.TotalDistanceKM, agg.MileageMean, agg.TotalDieselQuantity, 86, 0)
	if rec.DieselTheoretical != 80 {
		t.Fatalf("DieselTheoretical = %v, want 80", rec.DieselTheoretical)
	}
	if rec.DieselDiff != 20 {
		t.Fatalf("DieselDiff = %v, want 20", rec.DieselDiff)
	}
	if rec.DieselValue != 1720 {
		t.Fatalf("DieselValue = %v, want 1720", rec.DieselValue)
	}

	totals := ResolveBalance(agg, rec, 3, 86, 0)
	if totals.KMEarning != 2400 {
		t.Errorf("KMEarning = %v, want 2400", totals.KMEarning)
	}
	if totals.DriverTotal != 4420 {
		t.Errorf("DriverTotal = %v, want 4420 (2400 earning + 300 expense + 1720 diesel)", totals.DriverTotal)
	}
	if totals.OwnerTotal != 1500 {
		t.Errorf("OwnerTotal = %v, want 1500", totals.OwnerTotal)
	}
	if totals.OverallTotal != -2920 {
		t.Errorf("OverallTotal = %v, want -2920 (driver owes the owner)", totals.OverallTotal)
	}
	if StatusForNet(totals.OverallTotal) != StatusDriverPaysOwner {
		t.Errorf("status = %v, want DRIVER_PAYS_OWNER", StatusForNet(totals.OverallTotal))
	}
}

func TestResolveBalance(t *testing.T) {
	tests := []struct {
		name         string
		agg          Aggregate
		rec          Reconciliation
		ratePerKM    float64
		extraExpense float64
		validate     func(t *testing.T, totals Totals)
	}{
		{
			name: "positive diesel diff credits the driver side only",
			agg:  Aggregate{TotalDistanceKM: 100, TotalStartingCash: 400},
			rec:  Reconciliation{DieselDiff: 5, DieselValue: 430},
			validate: func(t *testing.T, totals Totals) {
				if totals.DriverTotal != 430 {
					t.Errorf("DriverTotal = %v, want 430", totals.DriverTotal)
				}
				if totals.OwnerTotal != 400 {
					t.Errorf("OwnerTotal = %v, want 400 (no diesel surplus charged)", totals.OwnerTotal)
				}
			},
		},
		{
			name: "negative diesel diff charges the owner side the magnitude",
			agg:  Aggregate{TotalStartingCash: 400},
			rec:  Reconciliation{DieselDiff: -5, DieselValue: -430},
			validate: func(t *testing.T, totals Totals) {
				if totals.OwnerTotal != 830 {
					t.Errorf("OwnerTotal = %v, want 830 (400 + 430 surplus)", totals.OwnerTotal)
				}
				if totals.DriverTotal != 0 {
					t.Errorf("DriverTotal = %v, want 0", totals.DriverTotal)
				}
			},
		},
		{
			name: "zero diesel diff charges neither side",
			agg:  Aggregate{TotalStartingCash: 400},
			rec:  Reconciliation{},
			validate: func(t *testing.T, totals Totals) {
				if totals.DriverTotal != 0 || totals.OwnerTotal != 400 {
					t.Errorf("driver/owner = %v/%v, want 0/400", totals.DriverTotal, totals.OwnerTotal)
				}
			},
		},
		{
			// the asymmetric rule, preserved as observed: positive extra
			// expense helps the owner side
			name:         "positive extra expense raises the owner total",
			agg:          Aggregate{TotalStartingCash: 100},
			extraExpense: 50,
			validate: func(t *testing.T, totals Totals) {
				if totals.OwnerTotal != 150 {
					t.Errorf("OwnerTotal = %v, want 150", totals.OwnerTotal)
				}
				if totals.DriverTotal != 0 {
					t.Errorf("DriverTotal = %v, want 0", totals.DriverTotal)
				}
			},
		},
		{
			name:         "negative extra expense reduces the driver total",
			agg:          Aggregate{TotalDriverExpense: 200},
			extraExpense: -50,
			validate: func(t *testing.T, totals Totals) {
				if totals.DriverTotal != 150 {
					t.Errorf("DriverTotal = %v, want 150 (200 - 50)", totals.DriverTotal)
				}
				if totals.OwnerTotal != 0 {
					t.Errorf("OwnerTotal = %v, want 0", totals.OwnerTotal)
				}
			},
		},
		{
			name:      "figures are rounded to 2 decimals at the boundary",
			agg:       Aggregate{TotalDistanceKM: 333.333},
			ratePerKM: 3,
			validate: func(t *testing.T, totals Totals) {
				if totals.KMEarning != 1000.0 {
					t.Errorf("KMEarning = %v, want 1000.0 (999.999 rounded)", totals.KMEarning)
				}
				if totals.TotalDistanceKM != 333.33 {
					t.Errorf("TotalDistanceKM = %v, want 333.33", totals.TotalDistanceKM)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ResolveBalance(tt.agg, tt.rec, tt.ratePerKM, 86, tt.extraExpense)

			// invariant: net is always owner minus driver
			wantNet := math.Round((totals.OwnerTotal-totals.DriverTotal)*100) / 100
			if totals.OverallTotal != wantNet {
				t.Errorf("OverallTotal = %v, want owner-driver = %v", totals.OverallTotal, wantNet)
			}

			tt.validate(t, totals)
		})
	}
}

func TestStatusForNet(t *testing.T) {
	if got := StatusForNet(10); got != StatusOwnerPaysDriver {
		t.Errorf("StatusForNet(10) = %v, want OWNER_PAYS_DRIVER", got)
	}
	if got := StatusForNet(-10); got != StatusDriverPaysOwner {
		t.Errorf("StatusForNet(-10) = %v, want DRIVER_PAYS_OWNER", got)
	}
	if got := StatusForNet(0); got != StatusEven {
		t.Errorf("StatusForNet(0) = %v, want EVEN", got)
	}
}
