package settlement

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		driverID string
		from, to time.Time
		tripIDs  []string
		wantErr  error
	}{
		{name: "valid", driverID: "d1", from: from, to: to, tripIDs: []string{"t1", "t2"}},
		{name: "missing driver", driverID: "  ", from: from, to: to, tripIDs: []string{"t1"}, wantErr: ErrDriverRequired},
		{name: "empty trip list", driverID: "d1", from: from, to: to, wantErr: ErrNoTrips},
		{name: "inverted period", driverID: "d1", from: to, to: from, tripIDs: []string{"t1"}, wantErr: ErrPeriodInvalid},
		{name: "zero period", driverID: "d1", tripIDs: []string{"t1"}, wantErr: ErrPeriodInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New("STMT_1", tt.driverID, tt.from, tt.to, tt.tripIDs, Totals{OverallTotal: -2920})
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if s.Status != StatusDriverPaysOwner {
				t.Errorf("Status = %v, want DRIVER_PAYS_OWNER", s.Status)
			}
			if s.SettlementNumber != "STMT_1" {
				t.Errorf("SettlementNumber = %q, want STMT_1", s.SettlementNumber)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus(" owner_pays_driver "); err != nil || st != StatusOwnerPaysDriver {
		t.Errorf("ParseStatus = %v, %v; want OWNER_PAYS_DRIVER, nil", st, err)
	}
	if _, err := ParseStatus("SETTLED_MAYBE"); err != ErrInvalidStatus {
		t.Errorf("ParseStatus error = %v, want ErrInvalidStatus", err)
	}
}
