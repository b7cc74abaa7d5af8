package settlement

import (
	"math"
	"testing"

	"truck-fleet/internal/domain/trip"
)

func TestAggregateTrips(t *testing.T) {
	tests := []struct {
		name     string
		trips    []trip.Trip
		validate func(t *testing.T, agg Aggregate)
	}{
		{
			name:  "empty set yields zeroed aggregate",
			trips: nil,
			validate: func(t *testing.T, agg Aggregate) {
				if agg != (Aggregate{}) {
					t.Errorf("aggregate = %+v, want zero value", agg)
				}
			},
		},
		{
			name: "sums across trips and fuel records",
			trips: []trip.Trip{
				{
					StartingKM: 1000, EndingKM: 1500,
					StartingCash:   1000,
					AverageMileage: 10,
					FuelPurchases: []trip.FuelPurchase{
						{Quantity: 25, Amount: 2150},
						{Quantity: 15, Amount: 1290},
					},
					DriverExpenses: []trip.Expense{{Amount: 200, Reason: "toll"}},
				},
				{
					StartingKM: 200, EndingKM: 500,
					StartingCash:  500,
					FuelPurchases: []trip.FuelPurchase{{Quantity: 20, Amount: 1720}},
					DriverExpenses: []trip.Expense{
						{Amount: 60, Reason: "parking"},
						{Amount: 40, Reason: "loading"},
					},
				},
			},
			validate: func(t *testing.T, agg Aggregate) {
				if agg.TotalDistanceKM != 800 {
					t.Errorf("TotalDistanceKM = %v, want 800", agg.TotalDistanceKM)
				}
				if agg.TotalDieselQuantity != 60 {
					t.Errorf("TotalDieselQuantity = %v, want 60", agg.TotalDieselQuantity)
				}
				if agg.TotalDieselExpense != 5160 {
					t.Errorf("TotalDieselExpense = %v, want 5160", agg.TotalDieselExpense)
				}
				if agg.TotalDriverExpense != 300 {
					t.Errorf("TotalDriverExpense = %v, want 300", agg.TotalDriverExpense)
				}
				if agg.TotalStartingCash != 1500 {
					t.Errorf("TotalStartingCash = %v, want 1500", agg.TotalStartingCash)
				}
			},
		},
		{
			name: "corrupt odometer clamps per trip, not after summing",
			trips: []trip.Trip{
				{StartingKM: 1000, EndingKM: 1400}, // +400
				{StartingKM: 900, EndingKM: 100},   // corrupt: clamps to 0, not -800
			},
			validate: func(t *testing.T, agg Aggregate) {
				if agg.TotalDistanceKM != 400 {
					t.Errorf("TotalDistanceKM = %v, want 400", agg.TotalDistanceKM)
				}
			},
		},
		{
			name: "mileage mean excludes trips without a recorded figure",
			trips: []trip.Trip{
				{AverageMileage: 10},
				{AverageMileage: 0}, // unset; excluded from the mean
				{AverageMileage: 14},
			},
			validate: func(t *testing.T, agg Aggregate) {
				if agg.MileageSamples != 2 {
					t.Errorf("MileageSamples = %v, want 2", agg.MileageSamples)
				}
				if math.Abs(agg.MileageMean-12) > 1e-9 {
					t.Errorf("MileageMean = %v, want 12", agg.MileageMean)
				}
			},
		},
		{
			name:  "no trip has a mileage figure",
			trips: []trip.Trip{{StartingKM: 0, EndingKM: 100}},
			validate: func(t *testing.T, agg Aggregate) {
				if agg.MileageMean != 0 || agg.MileageSamples != 0 {
					t.Errorf("mean/samples = %v/%v, want 0/0", agg.MileageMean, agg.MileageSamples)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, AggregateTrips(tt.trips))
		})
	}
}
