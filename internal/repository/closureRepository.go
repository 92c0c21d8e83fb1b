package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClosureRepository struct {
	pool *pgxpool.Pool
}

func NewClosureRepository(p *pgxpool.Pool) *ClosureRepository {
	return &ClosureRepository{pool: p}
}

func (p *ClosureRepository) CloseOrder(ctx context.Context, c *domain.Closure) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin close order: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO shipping.shipment_closures
				(id, order_key, driver_name, plate, photos, closed_at)
			 VALUES
				($1, $2, $3, $4, $5, $6)`,
		c.ID, c.OrderKey, c.DriverName, c.Plate, c.Photos, c.ClosedAt)
	if isUniqueViolation(err) {
		return ErrOrderAlreadyClosed
	}
	if err != nil {
		return fmt.Errorf("insert closure for %s: %w", c.OrderKey, err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE shipping.orders SET finalized = true WHERE key = $1 AND finalized = false`,
		c.OrderKey)
	if err != nil {
		return fmt.Errorf("finalize order %s: %w", c.OrderKey, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderAlreadyClosed
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit closure: %w", err)
	}
	tx = nil
	return nil
}

func (p *ClosureRepository) GetClosure(ctx context.Context, orderKey string) (*domain.Closure, error) {
	var c domain.Closure
	err := p.pool.QueryRow(ctx,
		`SELECT id, order_key, driver_name, plate, photos, closed_at
		   FROM shipping.shipment_closures
		  WHERE order_key = $1`, orderKey,
	).Scan(&c.ID, &c.OrderKey, &c.DriverName, &c.Plate, &c.Photos, &c.ClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get closure of %s: %w", orderKey, err)
	}
	return &c, nil
}
