package service

import (
	"truck-fleet/internal/general/logger"
	"truck-fleet/internal/ports"
)

// settlementService encapsulates the settlement logic and dependencies.
type settlementService struct {
	logger      *logger.Logger
	uow         ports.UnitOfWork
	trips       ports.TripRepository
	settlements ports.SettlementRepository
	drivers     ports.DriverRepository
	pub         ports.EventPublisher
}

// NewSettlementService creates a new instance of the SettlementService with the provided dependencies.
func NewSettlementService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	trips ports.TripRepository,
	settlements ports.SettlementRepository,
	drivers ports.DriverRepository,
	pub ports.EventPublisher,
) ports.SettlementService {
	return &settlementService{
		logger:      logger,
		uow:         uow,
		trips:       trips,
		settlements: settlements,
		drivers:     drivers,
		pub:         pub,
	}
}
