package settlement

import (
	"errors"
	"strings"
	"time"
)

// Settlement is an immutable, period-scoped financial reconciliation
// between a driver and the fleet owner. Created exactly once by the
// commit transaction and never updated or deleted by this core;
// corrections require a new, separate settlement.
type Settlement struct {
	ID               string
	SettlementNumber string
	CreatedAt        time.Time

	DriverID   string
	PeriodFrom time.Time
	PeriodTo   time.Time

	// Ordered trips subsumed by this settlement
	TripIDs []string

	Totals Totals
	Status Status
}

var (
	ErrDriverRequired = errors.New("driver id is required")
	ErrNoTrips        = errors.New("at least one trip is required")
	ErrPeriodInvalid  = errors.New("settlement period is invalid")
	ErrNotFound       = errors.New("settlement not found")
)

// New validates and assembles a settlement from submitted figures.
// The status label derives from the sign of the submitted net.
func New(settlementNumber, driverID string, from, to time.Time, tripIDs []string, totals Totals) (*Settlement, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, ErrDriverRequired
	}
	if len(tripIDs) == 0 {
		return nil, ErrNoTrips
	}
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, ErrPeriodInvalid
	}

	return &Settlement{
		SettlementNumber: settlementNumber,
		CreatedAt:        time.Now().UTC(),
		DriverID:         driverID,
		PeriodFrom:       from,
		PeriodTo:         to,
		TripIDs:          tripIDs,
		Totals:           totals,
		Status:           StatusForNet(totals.OverallTotal),
	}, nil
}
