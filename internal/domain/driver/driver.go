package driver

import (
	"errors"
	"math"
	"time"
)

// Driver is the domain entity corresponding to the `drivers` table.
// Only the running-balance fields are touched by the settlement core;
// profile data is managed elsewhere.
type Driver struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Running balance, owner's perspective. At most one of
	// AmountToPay / AmountToReceive is non-zero at a time.
	AmountToPay          float64    // owner still owes the driver
	AmountToReceive      float64    // driver owes the owner
	LastPaymentAmount    float64    // absolute figure of the last clearing
	LastPaymentClearDate *time.Time // when the last clearing happened
	AdvanceAmount        float64    // standing cash advance, reset on settlement
}

var (
	ErrDriverIDRequired = errors.New("driver id is required")
	ErrNotFound         = errors.New("driver not found")
)

// ApplyClearing overwrites (never increments) the balance fields from a
// signed net figure: positive means the owner must pay the driver,
// negative means the driver owes the owner the magnitude. A zero net
// clears both sides. The standing advance is always reset.
func (d *Driver) ApplyClearing(net float64, clearedAt time.Time) {
	abs := math.Abs(net)

	switch {
	case net > 0:
		d.AmountToPay = abs
		d.AmountToReceive = 0
	case net < 0:
		d.AmountToPay = 0
		d.AmountToReceive = abs
	default:
		d.AmountToPay = 0
		d.AmountToReceive = 0
	}

	d.LastPaymentAmount = abs
	t := clearedAt.UTC()
	d.LastPaymentClearDate = &t
	d.AdvanceAmount = 0
	d.UpdatedAt = t
}
