package application

import (
	"context"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
)

type OrdersService struct {
	orders repository.OrderRepo
	items  repository.ItemRepo
}

func NewOrdersService(o repository.OrderRepo, i repository.ItemRepo) *OrdersService {
	return &OrdersService{orders: o, items: i}
}

// ListPending returns non-finalized orders, latest delivery first.
func (s *OrdersService) ListPending(ctx context.Context) ([]*domain.Order, error) {
	out, err := s.orders.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Order{}
	}
	return out, nil
}

func (s *OrdersService) GetDetail(ctx context.Context, key string) (*domain.OrderDetail, error) {
	o, err := s.orders.GetOrderByKey(ctx, key)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	items, err := s.items.ListItems(ctx, key)
	if err != nil {
		return nil, err
	}
	return domain.NewOrderDetail(o, items), nil
}

// IngestOrder stores an order published by order entry. Redelivered
// orders update in place.
func (s *OrdersService) IngestOrder(ctx context.Context, o *domain.Order) error {
	if err := o.Normalize(); err != nil {
		return err
	}
	if err := s.orders.UpsertOrder(ctx, o); err != nil {
		logger.Warn("ingest order failed", "key", o.Key, "err", err)
		return err
	}
	logger.Info("order ingested", "key", o.Key, "items", len(o.Items))
	return nil
}
