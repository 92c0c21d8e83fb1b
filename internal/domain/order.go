package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order is a shipment request created upstream by the order-entry process.
// Key is the contract/load/work composite every other table references.
type Order struct {
	ID         uuid.UUID   `json:"id"`
	Key        string      `json:"key"`
	Contract   string      `json:"contract"`
	Load       string      `json:"load"`
	Work       string      `json:"work"`
	Client     string      `json:"client"`
	DeliveryAt time.Time   `json:"delivery_at"`
	Finalized  bool        `json:"finalized"`
	Items      []*LineItem `json:"items,omitempty"`
}

// BuildOrderKey joins the contract, load and work identifiers.
func BuildOrderKey(contract, load, work string) string {
	return strings.TrimSpace(contract) + "-" + strings.TrimSpace(load) + "-" + strings.TrimSpace(work)
}

// Normalize fills Key from its parts when upstream omitted it and binds
// every item to the order.
func (o *Order) Normalize() error {
	o.Key = strings.TrimSpace(o.Key)
	if o.Key == "" {
		if strings.TrimSpace(o.Contract) == "" {
			return ErrOrderKeyRequired
		}
		o.Key = BuildOrderKey(o.Contract, o.Load, o.Work)
	}
	for _, it := range o.Items {
		it.OrderKey = o.Key
		if strings.TrimSpace(it.Code) == "" {
			return ErrItemCodeRequired
		}
		if it.Balance < 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// OrderDetail is the order detail view: items plus separation progress.
type OrderDetail struct {
	Order    *Order     `json:"order"`
	Items    []ItemView `json:"items"`
	Progress Progress   `json:"progress"`
}

type ItemView struct {
	*LineItem
	Status        ItemStatus `json:"status"`
	BalanceToLoad int        `json:"balance_to_load"`
	CanPack       bool       `json:"can_pack"`
}

func NewOrderDetail(o *Order, items []*LineItem) *OrderDetail {
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, ItemView{
			LineItem:      it,
			Status:        it.Status(),
			BalanceToLoad: it.Balance,
			CanPack:       it.CheckPackable() == nil,
		})
	}
	return &OrderDetail{Order: o, Items: views, Progress: ComputeProgress(items)}
}
