package driver

import (
	"testing"
	"time"
)

func TestApplyClearing(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		net         float64
		wantPay     float64
		wantReceive float64
		wantLast    float64
	}{
		{name: "owner pays driver", net: 2920, wantPay: 2920, wantReceive: 0, wantLast: 2920},
		{name: "driver owes owner", net: -2920, wantPay: 0, wantReceive: 2920, wantLast: 2920},
		{name: "even settlement clears both", net: 0, wantPay: 0, wantReceive: 0, wantLast: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// stale balances in both directions must be overwritten, not summed
			d := Driver{ID: "d1", AmountToPay: 111, AmountToReceive: 222, AdvanceAmount: 500}
			d.ApplyClearing(tt.net, now)

			if d.AmountToPay != tt.wantPay {
				t.Errorf("AmountToPay = %v, want %v", d.AmountToPay, tt.wantPay)
			}
			if d.AmountToReceive != tt.wantReceive {
				t.Errorf("AmountToReceive = %v, want %v", d.AmountToReceive, tt.wantReceive)
			}
			if d.AmountToPay != 0 && d.AmountToReceive != 0 {
				t.Error("both balance fields non-zero after clearing")
			}
			if d.LastPaymentAmount != tt.wantLast {
				t.Errorf("LastPaymentAmount = %v, want %v", d.LastPaymentAmount, tt.wantLast)
			}
			if d.LastPaymentClearDate == nil || !d.LastPaymentClearDate.Equal(now) {
				t.Errorf("LastPaymentClearDate = %v, want %v", d.LastPaymentClearDate, now)
			}
			if d.AdvanceAmount != 0 {
				t.Errorf("AdvanceAmount = %v, want 0", d.AdvanceAmount)
			}
		})
	}
}
