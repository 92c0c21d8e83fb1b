package application

import (
	"context"
	"errors"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrVolumeNotFound  = errors.New("volume not found")
	ErrClosureNotFound = errors.New("shipment closure not found")
)

// EventPublisher sends shipment events downstream.
type EventPublisher interface {
	PublishEvent(ctx context.Context, e domain.ShipmentEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishEvent(context.Context, domain.ShipmentEvent) error { return nil }

func orNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func notFound(err, as error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return as
	}
	return err
}

// openOrder loads an order that can still be changed.
func openOrder(ctx context.Context, orders repository.OrderRepo, key string) (*domain.Order, error) {
	o, err := orders.GetOrderByKey(ctx, key)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	if o.Finalized {
		return nil, domain.ErrOrderFinalized
	}
	return o, nil
}
