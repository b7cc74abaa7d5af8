package ports

import (
	"context"
	"time"

	"truck-fleet/internal/domain/settlement"
)

// ----- DTOs for the Settlement Service -----

// PreviewInput is the validated input for GET /settlements/preview.
// The numeric overrides are already defaulted by the HTTP layer
// (unparseable or missing values silently degrade, never error).
type PreviewInput struct {
	DriverID       string
	From           time.Time // inclusive calendar date
	To             time.Time // inclusive calendar date
	IncludeSettled bool
	RatePerKM      float64
	DieselRate     float64
	ExtraExpense   float64
	DefaultMileage float64 // fallback when no trip contributes a mileage figure
}

// TripView is the wire shape of one selected journey.
type TripView struct {
	ID               string             `json:"id"`
	DriverID         string             `json:"driver_id"`
	VehicleID        string             `json:"vehicle_id"`
	JourneyStartDate string             `json:"journey_start_date"` // YYYY-MM-DD
	JourneyEndDate   string             `json:"journey_end_date"`   // YYYY-MM-DD
	StartingKM       float64            `json:"starting_km"`
	EndingKM         float64            `json:"ending_km"`
	DistanceKM       float64            `json:"distance_km"`
	FuelPurchases    []FuelPurchaseView `json:"fuel_purchases"`
	DriverExpenses   []ExpenseView      `json:"driver_expenses"`
	StartingCash     float64            `json:"starting_cash"`
	AverageMileage   float64            `json:"average_mileage"`
	Settled          bool               `json:"settled"`
	SettlementID     *string            `json:"settlement_id,omitempty"`
}

// FuelPurchaseView is the wire shape of one diesel fill.
type FuelPurchaseView struct {
	Quantity float64   `json:"quantity"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// ExpenseView is the wire shape of one driver expense.
type ExpenseView struct {
	Amount float64   `json:"amount"`
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// PreviewResult is the full preview response: the selected journeys
// plus every aggregated and derived figure. Re-computable at will;
// nothing is persisted on this path.
type PreviewResult struct {
	Journeys []TripView        `json:"journeys"`
	Totals   settlement.Totals `json:"totals"`
}

// ConfirmInput is the validated input for POST /settlements. The
// totals are the previewed figures re-submitted by the caller; the
// service trusts them and does not recompute (the submitted
// overall_total is the authoritative signed net).
type ConfirmInput struct {
	DriverID string
	From     time.Time
	To       time.Time
	TripIDs  []string
	Totals   settlement.Totals
}

// SettlementView is the wire shape of a persisted settlement record.
type SettlementView struct {
	ID               string            `json:"id"`
	SettlementNumber string            `json:"settlement_number"`
	DriverID         string            `json:"driver_id"`
	PeriodFrom       string            `json:"period_from"` // YYYY-MM-DD
	PeriodTo         string            `json:"period_to"`   // YYYY-MM-DD
	TripIDs          []string          `json:"trip_ids"`
	Totals           settlement.Totals `json:"totals"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
}

// DriverBalanceView is the wire shape of a driver's running balance.
type DriverBalanceView struct {
	DriverID             string     `json:"driver_id"`
	Name                 string     `json:"name,omitempty"`
	AmountToPay          float64    `json:"amount_to_pay"`
	AmountToReceive      float64    `json:"amount_to_receive"`
	LastPaymentAmount    float64    `json:"last_payment_amount"`
	LastPaymentClearDate *time.Time `json:"last_payment_clear_date,omitempty"`
	AdvanceAmount        float64    `json:"advance_amount"`
}

// ----- Outbound ports -----

// EventPublisher sends post-commit notifications to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ----- Settlement Service Interface -----

// SettlementService exposes the boundary for the settlement feature.
type SettlementService interface {
	// Preview is read-only and side-effect free; safe under unlimited
	// concurrency. No matching trips is a success with zeroed totals.
	Preview(ctx context.Context, in PreviewInput) (PreviewResult, error)

	// Confirm performs the all-or-nothing commit: one settlement row,
	// every trip marked settled, the driver balance overwritten.
	Confirm(ctx context.Context, in ConfirmInput) (SettlementView, error)

	GetSettlement(ctx context.Context, id string) (SettlementView, error)
	ListSettlements(ctx context.Context, driverID string, limit int) ([]SettlementView, error)
	GetDriverBalance(ctx context.Context, driverID string) (DriverBalanceView, error)
}
