package contracts

import "time"

// SettlementConfirmedMessage is published after a settlement commit.
// Routing key: "settlement.confirmed.{status}" on ExchangeSettlementTopic.
type SettlementConfirmedMessage struct {
	SettlementID     string    `json:"settlement_id"`
	SettlementNumber string    `json:"settlement_number"`
	DriverID         string    `json:"driver_id"`
	Period           Period    `json:"period"`
	TripIDs          []string  `json:"trip_ids"`
	Status           string    `json:"status"` // OWNER_PAYS_DRIVER|DRIVER_PAYS_OWNER|EVEN
	OverallTotal     float64   `json:"overall_total"`
	Timestamp        time.Time `json:"timestamp"`
	Envelope
}

// DriverBalanceMessage notifies downstream consumers that a driver's
// running balance was overwritten by a settlement.
// Routing key: "driver.balance.{driver_id}" on ExchangeSettlementTopic.
type DriverBalanceMessage struct {
	DriverID        string    `json:"driver_id"`
	SettlementID    string    `json:"settlement_id"`
	AmountToPay     float64   `json:"amount_to_pay"`
	AmountToReceive float64   `json:"amount_to_receive"`
	ClearedAt       time.Time `json:"cleared_at"`
	Envelope
}
