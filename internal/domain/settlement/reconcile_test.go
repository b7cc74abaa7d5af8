package settlement

import (
	"math"
	"testing"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name           string
		distanceKM     float64
		mileageMean    float64
		dieselGiven    float64
		dieselRate     float64
		defaultMileage float64
		want           Reconciliation
	}{
		{
			name:       "shortfall: driver burned more than issued",
			distanceKM: 800, mileageMean: 10, dieselGiven: 60, dieselRate: 86,
			want: Reconciliation{AvgMileage: 10, DieselTheoretical: 80, DieselDiff: 20, DieselValue: 1720},
		},
		{
			name:       "surplus: more fuel issued than the distance needed",
			distanceKM: 500, mileageMean: 10, dieselGiven: 70, dieselRate: 86,
			want: Reconciliation{AvgMileage: 10, DieselTheoretical: 50, DieselDiff: -20, DieselValue: -1720},
		},
		{
			name:       "caller default used when no trip contributed a mean",
			distanceKM: 600, mileageMean: 0, dieselGiven: 50, dieselRate: 86, defaultMileage: 12,
			want: Reconciliation{AvgMileage: 12, DieselTheoretical: 50, DieselDiff: 0, DieselValue: 0},
		},
		{
			name:       "no mean and no default: theoretical consumption is zero, never NaN",
			distanceKM: 600, mileageMean: 0, dieselGiven: 50, dieselRate: 86,
			want: Reconciliation{AvgMileage: 0, DieselTheoretical: 0, DieselDiff: -50, DieselValue: -4300},
		},
		{
			name: "all zero inputs stay zero",
			want: Reconciliation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.distanceKM, tt.mileageMean, tt.dieselGiven, tt.dieselRate, tt.defaultMileage)

			if math.IsNaN(got.DieselTheoretical) || math.IsInf(got.DieselTheoretical, 0) {
				t.Fatalf("DieselTheoretical = %v, must be finite", got.DieselTheoretical)
			}
			if got != tt.want {
				t.Errorf("Reconcile() = %+v, want %+v", got, tt.want)
			}

			// the identity diff = theoretical - given must hold exactly
			if got.DieselDiff != got.DieselTheoretical-tt.dieselGiven {
				t.Errorf("DieselDiff = %v, want theoretical-given = %v",
					got.DieselDiff, got.DieselTheoretical-tt.dieselGiven)
			}
		})
	}
}
