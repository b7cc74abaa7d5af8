package postgres

import (
	"context"
	"errors"
	"fmt"

	"truck-fleet/internal/domain/driver"
	"truck-fleet/internal/ports"

	"github.com/jackc/pgx/v5"
)

// DriverRepo reads drivers and overwrites their running balance.
// Driver profiles are managed by the party-management feature.
type DriverRepo struct{}

// NewDriverRepo constructs a new DriverRepo.
func NewDriverRepo() ports.DriverRepository {
	return &DriverRepo{}
}

const driverColumns = `
	id, name, phone,
	amount_to_pay, amount_to_receive, last_payment_amount,
	last_payment_clear_date, advance_amount,
	created_at, updated_at`

// GetByID fetches a driver by primary key (uuid).
func (r *DriverRepo) GetByID(ctx context.Context, driverID string) (*driver.Driver, error) {
	return r.get(ctx, driverID, false)
}

// LockByID fetches a driver with a FOR UPDATE row lock, serializing
// concurrent settlement commits for the same driver.
func (r *DriverRepo) LockByID(ctx context.Context, driverID string) (*driver.Driver, error) {
	return r.get(ctx, driverID, true)
}

func (r *DriverRepo) get(ctx context.Context, driverID string, forUpdate bool) (*driver.Driver, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	var d driver.Driver
	err = tx.QueryRow(ctx, query, driverID).Scan(
		&d.ID, &d.Name, &d.Phone,
		&d.AmountToPay, &d.AmountToReceive, &d.LastPaymentAmount,
		&d.LastPaymentClearDate, &d.AdvanceAmount,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrNotFound
		}
		return nil, fmt.Errorf("query driver: %w", err)
	}

	return &d, nil
}

// OverwriteBalance replaces the five running-balance fields. Values
// are overwritten, never incremented: the settlement commit is the
// single source of truth for the post-clearing state.
func (r *DriverRepo) OverwriteBalance(ctx context.Context, d *driver.Driver) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE drivers
		SET amount_to_pay = $2,
		    amount_to_receive = $3,
		    last_payment_amount = $4,
		    last_payment_clear_date = $5,
		    advance_amount = $6,
		    updated_at = now()
		WHERE id = $1
	`,
		d.ID,
		d.AmountToPay, d.AmountToReceive, d.LastPaymentAmount,
		d.LastPaymentClearDate, d.AdvanceAmount,
	)
	if err != nil {
		return fmt.Errorf("overwrite driver balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrNotFound
	}

	return nil
}
