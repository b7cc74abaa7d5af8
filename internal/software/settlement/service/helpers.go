package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/domain/trip"
	"truck-fleet/internal/general/contracts"
	"truck-fleet/internal/ports"
)

const producerName = "settlement-service"

// generateSettlementNumber returns an ID like: STMT_YYYYMMDD_HHMMSS_XXX
// where XXX is a monotonic millisecond fragment to reduce collisions.
func generateSettlementNumber() string {
	now := time.Now().UTC()
	return fmt.Sprintf("STMT_%04d%02d%02d_%02d%02d%02d_%03d",
		now.Year(), int(now.Month()), now.Day(),
		now.Hour(), now.Minute(), now.Second(),
		now.Nanosecond()/1e6, // ms
	)
}

// tripView maps a domain trip onto its wire shape.
func tripView(t *trip.Trip) ports.TripView {
	v := ports.TripView{
		ID:               t.ID,
		DriverID:         t.DriverID,
		VehicleID:        t.VehicleID,
		JourneyStartDate: t.JourneyStartDate.Format("2006-01-02"),
		JourneyEndDate:   t.JourneyEndDate.Format("2006-01-02"),
		StartingKM:       t.StartingKM,
		EndingKM:         t.EndingKM,
		DistanceKM:       t.DistanceKM(),
		FuelPurchases:    make([]ports.FuelPurchaseView, 0, len(t.FuelPurchases)),
		DriverExpenses:   make([]ports.ExpenseView, 0, len(t.DriverExpenses)),
		StartingCash:     t.StartingCash,
		AverageMileage:   t.AverageMileage,
		Settled:          t.Settled,
		SettlementID:     t.SettlementID,
	}
	for _, fp := range t.FuelPurchases {
		v.FuelPurchases = append(v.FuelPurchases, ports.FuelPurchaseView{
			Quantity: fp.Quantity,
			Amount:   fp.Amount,
			Date:     fp.Date,
		})
	}
	for _, e := range t.DriverExpenses {
		v.DriverExpenses = append(v.DriverExpenses, ports.ExpenseView{
			Amount: e.Amount,
			Reason: e.Reason,
			Date:   e.Date,
		})
	}
	return v
}

// settlementView maps a persisted settlement onto its wire shape.
func settlementView(s *settlement.Settlement) ports.SettlementView {
	tripIDs := s.TripIDs
	if tripIDs == nil {
		tripIDs = []string{}
	}
	return ports.SettlementView{
		ID:               s.ID,
		SettlementNumber: s.SettlementNumber,
		DriverID:         s.DriverID,
		PeriodFrom:       s.PeriodFrom.Format("2006-01-02"),
		PeriodTo:         s.PeriodTo.Format("2006-01-02"),
		TripIDs:          tripIDs,
		Totals:           s.Totals,
		Status:           s.Status.String(),
		CreatedAt:        s.CreatedAt,
	}
}

// publishSettlementConfirmed sends the confirmed settlement to the
// settlement topic exchange using routing key settlement.confirmed.{status},
// e.g., settlement.confirmed.driver_pays_owner. Publish failures are
// logged and swallowed: the settlement is already committed.
func (service *settlementService) publishSettlementConfirmed(ctx context.Context, s *settlement.Settlement) {
	routingKey := contracts.RouteSettlementConfirmedPrefix + strings.ToLower(s.Status.String())

	msg := contracts.SettlementConfirmedMessage{
		SettlementID:     s.ID,
		SettlementNumber: s.SettlementNumber,
		DriverID:         s.DriverID,
		Period: contracts.Period{
			From: s.PeriodFrom.Format("2006-01-02"),
			To:   s.PeriodTo.Format("2006-01-02"),
		},
		TripIDs:      s.TripIDs,
		Status:       s.Status.String(),
		OverallTotal: s.Totals.OverallTotal,
		Timestamp:    s.CreatedAt,
		Envelope: contracts.Envelope{
			Producer: producerName,
			SentAt:   time.Now().UTC(),
		},
	}

	body, err := json.Marshal(msg)
	if err == nil {
		err = service.pub.Publish(contracts.ExchangeSettlementTopic, routingKey, body)
	}
	if err != nil {
		service.logger.Error(ctx, "settlement_confirmed_publish_failed", "Failed to publish settlement confirmation", err, map[string]any{
			"routing_key": routingKey,
		})
		return
	}

	service.logger.Info(ctx, "settlement_confirmed_published", "Published settlement confirmation to RabbitMQ", map[string]any{
		"routing_key": routingKey,
	})
}

// publishDriverBalance notifies consumers that the driver's running
// balance was overwritten. Routing key: driver.balance.{driver_id}.
func (service *settlementService) publishDriverBalance(ctx context.Context, s *settlement.Settlement) {
	routingKey := contracts.RouteDriverBalancePrefix + s.DriverID

	net := s.Totals.OverallTotal
	msg := contracts.DriverBalanceMessage{
		DriverID:     s.DriverID,
		SettlementID: s.ID,
		ClearedAt:    s.CreatedAt,
		Envelope: contracts.Envelope{
			Producer: producerName,
			SentAt:   time.Now().UTC(),
		},
	}
	if net > 0 {
		msg.AmountToPay = net
	} else if net < 0 {
		msg.AmountToReceive = -net
	}

	body, err := json.Marshal(msg)
	if err == nil {
		err = service.pub.Publish(contracts.ExchangeSettlementTopic, routingKey, body)
	}
	if err != nil {
		service.logger.Error(ctx, "driver_balance_publish_failed", "Failed to publish driver balance update", err, map[string]any{
			"routing_key": routingKey,
		})
		return
	}

	service.logger.Info(ctx, "driver_balance_published", "Published driver balance update to RabbitMQ", map[string]any{
		"routing_key": routingKey,
	})
}
