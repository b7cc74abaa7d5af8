package trip

import (
	"errors"
	"time"
)

// FuelPurchase is one diesel fill recorded during a trip.
type FuelPurchase struct {
	Quantity float64   `json:"quantity"` // litres
	Amount   float64   `json:"amount"`   // money paid
	Date     time.Time `json:"date"`
}

// Expense is one driver-paid expense recorded during a trip.
type Expense struct {
	Amount float64   `json:"amount"`
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// Trip is the domain entity corresponding to the `trips` table.
// Trips are created and edited by the trip-management feature; the
// settlement core only reads them and flips the settled flag.
type Trip struct {
	// Identity & audit
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Ownership
	DriverID  string
	VehicleID string

	// Journey window (calendar dates)
	JourneyStartDate time.Time
	JourneyEndDate   time.Time

	// Odometer
	StartingKM float64
	EndingKM   float64

	// Recorded money & fuel
	FuelPurchases  []FuelPurchase
	DriverExpenses []Expense
	StartingCash   float64
	AverageMileage float64 // km per litre as recorded for this trip; 0 if unknown

	// Settlement state
	Settled      bool
	SettlementID *string // nil until settled

	// Soft delete by the trip-management feature
	Deleted bool
}

var (
	ErrAlreadySettled      = errors.New("trip is already settled")
	ErrSettlementIDMissing = errors.New("settlement id is required to settle a trip")
	ErrNotFound            = errors.New("trip not found")
)

// DistanceKM is the odometer-implied distance for this trip.
// Corrupt deltas (ending below starting) are clamped to zero per trip,
// never allowed to drag the period total negative.
func (t *Trip) DistanceKM() float64 {
	d := t.EndingKM - t.StartingKM
	if d < 0 {
		return 0
	}
	return d
}

// DieselQuantity sums the litres across every fuel purchase.
func (t *Trip) DieselQuantity() float64 {
	var q float64
	for _, f := range t.FuelPurchases {
		q += f.Quantity
	}
	return q
}

// DieselExpense sums the money spent across every fuel purchase.
func (t *Trip) DieselExpense() float64 {
	var a float64
	for _, f := range t.FuelPurchases {
		a += f.Amount
	}
	return a
}

// DriverExpenseTotal sums every driver-paid expense on the trip.
func (t *Trip) DriverExpenseTotal() float64 {
	var a float64
	for _, e := range t.DriverExpenses {
		a += e.Amount
	}
	return a
}

// Settle marks the trip as subsumed by a settlement. A trip belongs to
// at most one settlement ever; re-settlement requires an explicit
// reversal, which this core does not implement.
func (t *Trip) Settle(settlementID string) error {
	if t.Settled {
		return ErrAlreadySettled
	}
	if settlementID == "" {
		return ErrSettlementIDMissing
	}
	t.Settled = true
	t.SettlementID = &settlementID
	t.UpdatedAt = time.Now().UTC()
	return nil
}
