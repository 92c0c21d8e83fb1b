package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxVolumePhotos  = 4
	MaxClosurePhotos = 10
)

// Volume is a physical package holding some quantity of one line item.
type Volume struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	OrderKey    string    `json:"order_key"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Number      int       `json:"number"`
	Quantity    int       `json:"quantity"`
	Photos      []string  `json:"photos"`
	Confirmed   bool      `json:"confirmed"`
	Shipped     bool      `json:"shipped"`
	CreatedAt   time.Time `json:"created_at"`
}

type PackVolumeInput struct {
	Number   int      `json:"number"`
	Quantity int      `json:"quantity"`
	Photos   []string `json:"photos"`
}

// NewVolume validates in against the item and returns the volume to store.
// Uniqueness of the number is left to the caller.
func NewVolume(it *LineItem, in PackVolumeInput) (*Volume, error) {
	if err := it.CheckPackable(); err != nil {
		return nil, err
	}
	if in.Number <= 0 {
		return nil, ErrInvalidVolumeNumber
	}
	if in.Quantity <= 0 {
		return nil, ErrInvalidVolumeQty
	}
	if in.Quantity > it.Remaining {
		return nil, ErrRemainingExceeded
	}
	if in.Quantity > it.Defined {
		return nil, ErrDefinedExceeded
	}
	photos, err := CleanPhotos(in.Photos, MaxVolumePhotos)
	if err != nil {
		return nil, err
	}
	return &Volume{
		ID:          uuid.New(),
		ItemID:      it.ID,
		OrderKey:    it.OrderKey,
		Code:        it.Code,
		Description: it.Description,
		Number:      in.Number,
		Quantity:    in.Quantity,
		Photos:      photos,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// CleanPhotos drops blank slots and enforces 1..limit photos.
func CleanPhotos(photos []string, limit int) ([]string, error) {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, ErrPhotoRequired
	}
	if len(out) > limit {
		return nil, ErrTooManyPhotos
	}
	return out, nil
}

// PackedQuantity sums the volumes' quantities per item.
func PackedQuantity(vols []*Volume) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, v := range vols {
		out[v.ItemID] += v.Quantity
	}
	return out
}
