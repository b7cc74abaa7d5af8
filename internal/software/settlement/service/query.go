package service

import (
	"context"
	"strings"

	"truck-fleet/internal/domain/driver"
	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/ports"
)

// GetSettlement fetches one persisted settlement by id.
func (service *settlementService) GetSettlement(ctx context.Context, id string) (ports.SettlementView, error) {
	if strings.TrimSpace(id) == "" {
		return ports.SettlementView{}, settlement.ErrNotFound
	}

	var view ports.SettlementView
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		s, err := service.settlements.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		view = settlementView(s)
		return nil
	})
	if err != nil {
		return ports.SettlementView{}, err
	}
	return view, nil
}

// ListSettlements returns the driver's settlement history, newest first.
func (service *settlementService) ListSettlements(ctx context.Context, driverID string, limit int) ([]ports.SettlementView, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, settlement.ErrDriverRequired
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	views := make([]ports.SettlementView, 0, limit)
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		list, err := service.settlements.ListByDriver(txCtx, driverID, limit)
		if err != nil {
			return err
		}
		for _, s := range list {
			views = append(views, settlementView(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// GetDriverBalance returns the driver's current running balance.
func (service *settlementService) GetDriverBalance(ctx context.Context, driverID string) (ports.DriverBalanceView, error) {
	if strings.TrimSpace(driverID) == "" {
		return ports.DriverBalanceView{}, driver.ErrDriverIDRequired
	}

	var view ports.DriverBalanceView
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		d, err := service.drivers.GetByID(txCtx, driverID)
		if err != nil {
			return err
		}
		view = ports.DriverBalanceView{
			DriverID:             d.ID,
			Name:                 d.Name,
			AmountToPay:          d.AmountToPay,
			AmountToReceive:      d.AmountToReceive,
			LastPaymentAmount:    d.LastPaymentAmount,
			LastPaymentClearDate: d.LastPaymentClearDate,
			AdvanceAmount:        d.AdvanceAmount,
		}
		return nil
	})
	if err != nil {
		return ports.DriverBalanceView{}, err
	}
	return view, nil
}
