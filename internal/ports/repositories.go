package ports

import (
	"context"
	"time"

	"truck-fleet/internal/domain/driver"
	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/domain/trip"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TripRepository defines the methods the settlement core needs on trips.
type TripRepository interface {
	// ListForSettlement selects non-deleted trips for the driver whose
	// journey window lies inside [from, to] (inclusive calendar dates),
	// excluding settled trips unless includeSettled is set.
	ListForSettlement(ctx context.Context, driverID string, from, to time.Time, includeSettled bool) ([]trip.Trip, error)

	// LockByIDs fetches the given trips with row locks held for the
	// remainder of the current transaction.
	LockByIDs(ctx context.Context, ids []string) ([]trip.Trip, error)

	// MarkSettled flips settled=true and attaches the settlement
	// back-reference on every given trip.
	MarkSettled(ctx context.Context, ids []string, settlementID string, settledAt time.Time) error
}

// SettlementRepository persists immutable settlement records.
type SettlementRepository interface {
	Insert(ctx context.Context, s *settlement.Settlement) error
	GetByID(ctx context.Context, id string) (*settlement.Settlement, error)
	ListByDriver(ctx context.Context, driverID string, limit int) ([]*settlement.Settlement, error)
}

// DriverRepository defines the methods the settlement core needs on drivers.
type DriverRepository interface {
	GetByID(ctx context.Context, driverID string) (*driver.Driver, error)

	// LockByID fetches the driver with a row lock held for the
	// remainder of the current transaction.
	LockByID(ctx context.Context, driverID string) (*driver.Driver, error)

	// OverwriteBalance replaces the five running-balance fields.
	OverwriteBalance(ctx context.Context, d *driver.Driver) error
}
