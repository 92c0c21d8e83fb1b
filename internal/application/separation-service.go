package application

import (
	"context"
	"fmt"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
	"github.com/google/uuid"
)

// SeparationService defines shipment quantities and packs volumes.
type SeparationService struct {
	orders  repository.OrderRepo
	items   repository.ItemRepo
	volumes repository.VolumeRepo
}

func NewSeparationService(o repository.OrderRepo, i repository.ItemRepo, v repository.VolumeRepo) *SeparationService {
	return &SeparationService{orders: o, items: i, volumes: v}
}

type DefineQuantityInput struct {
	Quantity int  `json:"quantity"`
	Confirm  bool `json:"confirm"`
}

func (s *SeparationService) orderItem(ctx context.Context, orderKey string, itemID uuid.UUID) (*domain.LineItem, error) {
	if _, err := openOrder(ctx, s.orders, orderKey); err != nil {
		return nil, err
	}
	it, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	if it.OrderKey != orderKey {
		return nil, domain.ErrItemNotInOrder
	}
	return it, nil
}

// DefineQuantity sets the quantity of the item to load in this shipment.
// Packed volumes of the item are discarded when the quantity changes.
func (s *SeparationService) DefineQuantity(ctx context.Context, orderKey string, itemID uuid.UUID, in DefineQuantityInput) (*domain.LineItem, error) {
	it, err := s.orderItem(ctx, orderKey, itemID)
	if err != nil {
		return nil, err
	}
	ch, err := it.PlanQuantity(in.Quantity, in.Confirm)
	if err != nil {
		return nil, err
	}
	if ch.Noop() {
		return it, nil
	}
	if err := s.items.SetDefinedQuantity(ctx, ch); err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	it.Apply(ch)
	logger.Info("quantity defined", "order", orderKey, "code", it.Code, "from", ch.From, "to", ch.To)
	return it, nil
}

// TotalLoadResult reports a bulk quantity change. Items before FailedCode
// stay committed when the loop stops early.
type TotalLoadResult struct {
	Changed    int    `json:"changed"`
	Unchanged  int    `json:"unchanged"`
	FailedCode string `json:"failed_code,omitempty"`
}

// ApplyTotalLoad defines every item at its full contractual balance, or
// zero when revert is set. Items are written one at a time.
func (s *SeparationService) ApplyTotalLoad(ctx context.Context, orderKey string, revert bool) (TotalLoadResult, error) {
	var res TotalLoadResult
	if _, err := openOrder(ctx, s.orders, orderKey); err != nil {
		return res, err
	}
	items, err := s.items.ListItems(ctx, orderKey)
	if err != nil {
		return res, err
	}

	for _, it := range items {
		target := it.Available()
		if revert {
			target = 0
		}
		ch, err := it.PlanQuantity(target, true)
		if err != nil {
			res.FailedCode = it.Code
			return res, fmt.Errorf("item %s: %w", it.Code, err)
		}
		if ch.Noop() {
			res.Unchanged++
			continue
		}
		if err := s.items.SetDefinedQuantity(ctx, ch); err != nil {
			res.FailedCode = it.Code
			logger.Warn("total load stopped", "order", orderKey, "code", it.Code, "changed", res.Changed, "err", err)
			return res, fmt.Errorf("item %s: %w", it.Code, err)
		}
		res.Changed++
	}
	logger.Info("total load applied", "order", orderKey, "revert", revert, "changed", res.Changed)
	return res, nil
}

// PackVolume records a photographed volume for the item and moves its
// quantity from the item's remaining balance to the separated count.
func (s *SeparationService) PackVolume(ctx context.Context, orderKey string, itemID uuid.UUID, in domain.PackVolumeInput) (*domain.Volume, error) {
	it, err := s.orderItem(ctx, orderKey, itemID)
	if err != nil {
		return nil, err
	}
	v, err := domain.NewVolume(it, in)
	if err != nil {
		return nil, err
	}
	taken, err := s.volumes.VolumeNumberTaken(ctx, it.ID, v.Number)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrVolumeNumberTaken
	}
	if err := s.volumes.CreateVolume(ctx, v); err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	logger.Info("volume packed", "order", orderKey, "code", it.Code, "number", v.Number, "qty", v.Quantity)
	return v, nil
}
