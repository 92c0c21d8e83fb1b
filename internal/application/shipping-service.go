package application

import (
	"context"
	"time"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
	"github.com/google/uuid"
)

// ShippingService drives the verify-then-ship stage of each volume.
type ShippingService struct {
	orders  repository.OrderRepo
	items   repository.ItemRepo
	volumes repository.VolumeRepo
	weights repository.WeightRepo
	events  EventPublisher
}

func NewShippingService(o repository.OrderRepo, i repository.ItemRepo, v repository.VolumeRepo, w repository.WeightRepo, events EventPublisher) *ShippingService {
	return &ShippingService{orders: o, items: i, volumes: v, weights: w, events: orNoop(events)}
}

func (s *ShippingService) Board(ctx context.Context, orderKey string) (*domain.ShippingBoard, error) {
	if _, err := s.orders.GetOrderByKey(ctx, orderKey); err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	items, err := s.items.ListItems(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	vols, err := s.volumes.ListVolumes(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	weights, err := s.weights.UnitWeights(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewShippingBoard(orderKey, items, vols, weights), nil
}

// itemOf returns the volume's item among the order's items.
func itemOf(items []*domain.LineItem, v *domain.Volume) (*domain.LineItem, error) {
	for _, it := range items {
		if it.ID == v.ItemID {
			return it, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *ShippingService) openVolume(ctx context.Context, id uuid.UUID) (*domain.Volume, error) {
	v, err := s.volumes.GetVolume(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVolumeNotFound)
	}
	if _, err := openOrder(ctx, s.orders, v.OrderKey); err != nil {
		return nil, err
	}
	return v, nil
}

// Confirm marks the volume as checked. It is refused while its item, or
// any other defined item of the order, still has quantity left to pack.
func (s *ShippingService) Confirm(ctx context.Context, id uuid.UUID) (*domain.Volume, error) {
	v, err := s.openVolume(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Confirmed {
		return v, nil
	}
	items, err := s.items.ListItems(ctx, v.OrderKey)
	if err != nil {
		return nil, err
	}
	it, err := itemOf(items, v)
	if err != nil {
		return nil, err
	}
	siblings, err := s.volumes.ListItemVolumes(ctx, v.ItemID)
	if err != nil {
		return nil, err
	}
	if domain.PackedQuantity(siblings)[it.ID] < it.Defined {
		return nil, domain.ErrItemNotFullyPacked
	}
	if err := domain.CheckProceed(items); err != nil {
		return nil, err
	}
	if err := s.volumes.SetConfirmed(ctx, id); err != nil {
		return nil, notFound(err, ErrVolumeNotFound)
	}
	v.Confirmed = true
	logger.Info("volume confirmed", "order", v.OrderKey, "code", v.Code, "number", v.Number)
	return v, nil
}

// Ship marks a confirmed volume as loaded on the truck.
func (s *ShippingService) Ship(ctx context.Context, id uuid.UUID) (*domain.Volume, error) {
	v, err := s.openVolume(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Confirmed {
		return nil, domain.ErrVolumeNotConfirmed
	}
	if v.Shipped {
		return v, nil
	}
	items, err := s.items.ListItems(ctx, v.OrderKey)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckProceed(items); err != nil {
		return nil, err
	}
	if err := s.volumes.SetShipped(ctx, id); err != nil {
		return nil, notFound(err, ErrVolumeNotFound)
	}
	v.Shipped = true
	logger.Info("volume shipped", "order", v.OrderKey, "code", v.Code, "number", v.Number)

	ev := domain.ShipmentEvent{
		Type:     domain.EventVolumeShipped,
		OrderKey: v.OrderKey,
		VolumeID: v.ID.String(),
		At:       time.Now().UTC(),
	}
	if err := s.events.PublishEvent(ctx, ev); err != nil {
		logger.Warn("publish volume shipped failed", "volume", v.ID, "err", err)
	}
	return v, nil
}
