package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Closure is the record written once per order when the truck leaves.
type Closure struct {
	ID         uuid.UUID `json:"id"`
	OrderKey   string    `json:"order_key"`
	DriverName string    `json:"driver_name"`
	Plate      string    `json:"plate"`
	Photos     []string  `json:"photos"`
	ClosedAt   time.Time `json:"closed_at"`
}

type CloseShipmentInput struct {
	DriverName string   `json:"driver_name"`
	Plate      string   `json:"plate"`
	Photos     []string `json:"photos"`
}

func NewClosure(orderKey string, in CloseShipmentInput) (*Closure, error) {
	driver := strings.TrimSpace(in.DriverName)
	if driver == "" {
		return nil, ErrDriverRequired
	}
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if plate == "" {
		return nil, ErrPlateRequired
	}
	photos, err := CleanPhotos(in.Photos, MaxClosurePhotos)
	if err != nil {
		return nil, err
	}
	return &Closure{
		ID:         uuid.New(),
		OrderKey:   orderKey,
		DriverName: driver,
		Plate:      plate,
		Photos:     photos,
		ClosedAt:   time.Now().UTC(),
	}, nil
}
