package application

import (
	"context"
	"errors"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
)

type ClosureService struct {
	orders   repository.OrderRepo
	items    repository.ItemRepo
	volumes  repository.VolumeRepo
	closures repository.ClosureRepo
	events   EventPublisher
}

func NewClosureService(o repository.OrderRepo, i repository.ItemRepo, v repository.VolumeRepo, c repository.ClosureRepo, events EventPublisher) *ClosureService {
	return &ClosureService{orders: o, items: i, volumes: v, closures: c, events: orNoop(events)}
}

// Finalize writes the closure record and finalizes the order. Every
// defined item must be fully separated, and every volume confirmed and
// shipped, first.
func (s *ClosureService) Finalize(ctx context.Context, orderKey string, in domain.CloseShipmentInput) (*domain.Closure, error) {
	if _, err := openOrder(ctx, s.orders, orderKey); err != nil {
		return nil, err
	}
	c, err := domain.NewClosure(orderKey, in)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListItems(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	vols, err := s.volumes.ListVolumes(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckClosable(items, vols); err != nil {
		return nil, err
	}

	if err := s.closures.CloseOrder(ctx, c); err != nil {
		if errors.Is(err, repository.ErrOrderAlreadyClosed) {
			return nil, domain.ErrOrderFinalized
		}
		return nil, err
	}
	logger.Info("shipment closed", "order", orderKey, "plate", c.Plate, "photos", len(c.Photos))

	ev := domain.ShipmentEvent{
		Type:     domain.EventOrderFinalized,
		OrderKey: orderKey,
		Plate:    c.Plate,
		At:       c.ClosedAt,
	}
	if err := s.events.PublishEvent(ctx, ev); err != nil {
		logger.Warn("publish order finalized failed", "order", orderKey, "err", err)
	}
	return c, nil
}

func (s *ClosureService) Get(ctx context.Context, orderKey string) (*domain.Closure, error) {
	c, err := s.closures.GetClosure(ctx, orderKey)
	if err != nil {
		return nil, notFound(err, ErrClosureNotFound)
	}
	return c, nil
}
