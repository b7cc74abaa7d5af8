package settlement

import (
	"errors"
	"strings"
)

// Status labels which party pays out the settlement net.
type Status string

const (
	// StatusOwnerPaysDriver: the period closed in the driver's favour.
	StatusOwnerPaysDriver Status = "OWNER_PAYS_DRIVER"
	// StatusDriverPaysOwner: the driver owes the owner the net figure.
	StatusDriverPaysOwner Status = "DRIVER_PAYS_OWNER"
	// StatusEven: the period closed exactly balanced.
	StatusEven Status = "EVEN"
)

var ErrInvalidStatus = errors.New("invalid settlement status")

// StatusForNet derives the status label from the signed net figure
// (positive: owner must pay the driver; negative: driver owes back).
func StatusForNet(net float64) Status {
	switch {
	case net > 0:
		return StatusOwnerPaysDriver
	case net < 0:
		return StatusDriverPaysOwner
	default:
		return StatusEven
	}
}

// ParseStatus normalizes and validates a status string.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if st.Valid() {
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether the status is one of the allowed constants.
func (s Status) Valid() bool {
	switch s {
	case StatusOwnerPaysDriver, StatusDriverPaysOwner, StatusEven:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}
