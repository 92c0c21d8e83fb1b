package domain

import (
	"strconv"
	"strings"
	"time"
)

// ParseUnitWeight reads a unit weight that may use a decimal comma.
// Unparseable values weigh nothing.
func ParseUnitWeight(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

type VolumeView struct {
	*Volume
	Weight float64 `json:"weight"`
}

// ShippingBoard is the ship-and-verify view of an order's volumes.
type ShippingBoard struct {
	OrderKey    string       `json:"order_key"`
	Volumes     []VolumeView `json:"volumes"`
	TotalWeight float64      `json:"total_weight"`
	Confirmed   int          `json:"confirmed"`
	Shipped     int          `json:"shipped"`
	Progress    Progress     `json:"progress"`
	CanClose    bool         `json:"can_close"`
}

func NewShippingBoard(orderKey string, items []*LineItem, vols []*Volume, unitWeights map[string]float64) *ShippingBoard {
	b := &ShippingBoard{
		OrderKey: orderKey,
		Volumes:  make([]VolumeView, 0, len(vols)),
		Progress: ComputeProgress(items),
	}
	for _, v := range vols {
		w := float64(v.Quantity) * unitWeights[v.Code]
		b.Volumes = append(b.Volumes, VolumeView{Volume: v, Weight: w})
		b.TotalWeight += w
		if v.Confirmed {
			b.Confirmed++
		}
		if v.Shipped {
			b.Shipped++
		}
	}
	b.CanClose = CheckClosable(items, vols) == nil
	return b
}

// CheckClosable requires a fully separated order and at least one volume,
// every one confirmed and shipped.
func CheckClosable(items []*LineItem, vols []*Volume) error {
	if err := CheckProceed(items); err != nil {
		return err
	}
	if len(vols) == 0 {
		return ErrNoVolumes
	}
	for _, v := range vols {
		if !v.Confirmed || !v.Shipped {
			return ErrShipmentIncomplete
		}
	}
	return nil
}

type EventType string

const (
	EventVolumeShipped  EventType = "volume.shipped"
	EventOrderFinalized EventType = "order.finalized"
)

// ShipmentEvent is published downstream as shipping progresses.
type ShipmentEvent struct {
	Type     EventType `json:"type"`
	OrderKey string    `json:"order_key"`
	VolumeID string    `json:"volume_id,omitempty"`
	Plate    string    `json:"plate,omitempty"`
	At       time.Time `json:"at"`
}
