package repository

import (
	"context"
	"errors"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrOrderAlreadyClosed = errors.New("order already closed")
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	pgErrUniqueViolation = "23505"
)

type OrderRepo interface {
	ListPending(ctx context.Context) ([]*domain.Order, error)
	GetOrderByKey(ctx context.Context, key string) (*domain.Order, error)
	UpsertOrder(ctx context.Context, order *domain.Order) error
}

type ItemRepo interface {
	ListItems(ctx context.Context, orderKey string) ([]*domain.LineItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.LineItem, error)
	// SetDefinedQuantity commits ch and drops the item's packed volumes. It
	// fails with domain.ErrItemChanged when the item no longer holds ch.From.
	SetDefinedQuantity(ctx context.Context, ch domain.QuantityChange) error
}

type VolumeRepo interface {
	ListVolumes(ctx context.Context, orderKey string) ([]*domain.Volume, error)
	ListItemVolumes(ctx context.Context, itemID uuid.UUID) ([]*domain.Volume, error)
	GetVolume(ctx context.Context, id uuid.UUID) (*domain.Volume, error)
	VolumeNumberTaken(ctx context.Context, itemID uuid.UUID, number int) (bool, error)
	// CreateVolume inserts v and moves its quantity from the item's
	// remaining balance to its separated count.
	CreateVolume(ctx context.Context, v *domain.Volume) error
	SetConfirmed(ctx context.Context, id uuid.UUID) error
	SetShipped(ctx context.Context, id uuid.UUID) error
}

type ClosureRepo interface {
	// CloseOrder stores c and marks the order finalized.
	CloseOrder(ctx context.Context, c *domain.Closure) error
	GetClosure(ctx context.Context, orderKey string) (*domain.Closure, error)
}

type WeightRepo interface {
	UnitWeights(ctx context.Context) (map[string]float64, error)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
