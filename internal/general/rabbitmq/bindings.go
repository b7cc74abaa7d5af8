package rabbitmq

import (
	"fmt"

	"truck-fleet/internal/general/contracts"

	amqp "github.com/rabbitmq/amqp091-go"
)

func declareTopology(ch *amqp.Channel) error {
	// 1. Exchanges
	if err := ch.ExchangeDeclare(contracts.ExchangeSettlementTopic, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", contracts.ExchangeSettlementTopic, err)
	}

	// 2. Queues
	queues := []string{
		contracts.QueueSettlementConfirmed,
		contracts.QueueDriverBalance,
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	// 3. Bindings
	bindings := []struct {
		queue      string
		exchange   string
		routingKey string
	}{
		{contracts.QueueSettlementConfirmed, contracts.ExchangeSettlementTopic, contracts.RouteSettlementConfirmedPrefix + "*"},
		{contracts.QueueDriverBalance, contracts.ExchangeSettlementTopic, contracts.RouteDriverBalancePrefix + "*"},
	}

	for _, b := range bindings {
		if err := ch.QueueBind(b.queue, b.routingKey, b.exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
		}
	}

	return nil
}
