package contracts

// Exchanges
const (
	ExchangeSettlementTopic = "settlement_topic"
)

// Queues
const (
	QueueSettlementConfirmed = "settlement_confirmed"
	QueueDriverBalance       = "driver_balance"
)

// Routing patterns
const (
	RouteSettlementConfirmedPrefix = "settlement.confirmed." // {status}
	RouteDriverBalancePrefix       = "driver.balance."       // {driver_id}
)
