package trip

import (
	"testing"
	"time"
)

func TestDistanceKM(t *testing.T) {
	tests := []struct {
		name     string
		starting float64
		ending   float64
		want     float64
	}{
		{name: "normal forward delta", starting: 1000, ending: 1500, want: 500},
		{name: "zero delta", starting: 1000, ending: 1000, want: 0},
		{name: "corrupt backwards odometer clamps to zero", starting: 1500, ending: 1000, want: 0},
		{name: "both zero", starting: 0, ending: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Trip{StartingKM: tt.starting, EndingKM: tt.ending}
			if got := tr.DistanceKM(); got != tt.want {
				t.Errorf("DistanceKM() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuelAndExpenseTotals(t *testing.T) {
	tr := Trip{
		FuelPurchases: []FuelPurchase{
			{Quantity: 40, Amount: 3440, Date: time.Now()},
			{Quantity: 20, Amount: 1720, Date: time.Now()},
		},
		DriverExpenses: []Expense{
			{Amount: 200, Reason: "toll"},
			{Amount: 100, Reason: "loading"},
		},
	}

	if got := tr.DieselQuantity(); got != 60 {
		t.Errorf("DieselQuantity() = %v, want 60", got)
	}
	if got := tr.DieselExpense(); got != 5160 {
		t.Errorf("DieselExpense() = %v, want 5160", got)
	}
	if got := tr.DriverExpenseTotal(); got != 300 {
		t.Errorf("DriverExpenseTotal() = %v, want 300", got)
	}
}

func TestSettle(t *testing.T) {
	tr := Trip{ID: "trip-1"}

	if err := tr.Settle(""); err != ErrSettlementIDMissing {
		t.Fatalf("Settle(\"\") error = %v, want ErrSettlementIDMissing", err)
	}

	if err := tr.Settle("stmt-1"); err != nil {
		t.Fatalf("Settle() unexpected error: %v", err)
	}
	if !tr.Settled {
		t.Error("trip should be marked settled")
	}
	if tr.SettlementID == nil || *tr.SettlementID != "stmt-1" {
		t.Errorf("SettlementID = %v, want stmt-1", tr.SettlementID)
	}

	// settling twice must fail, the back-reference stays intact
	if err := tr.Settle("stmt-2"); err != ErrAlreadySettled {
		t.Fatalf("second Settle() error = %v, want ErrAlreadySettled", err)
	}
	if *tr.SettlementID != "stmt-1" {
		t.Errorf("SettlementID overwritten to %v, want stmt-1", *tr.SettlementID)
	}
}
