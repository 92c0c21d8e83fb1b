package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(p *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: p}
}

const orderColumns = `id, key, contract, load, work, client, delivery_at, finalized`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.Key, &o.Contract, &o.Load, &o.Work, &o.Client, &o.DeliveryAt, &o.Finalized)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (p *OrderRepository) ListPending(ctx context.Context) ([]*domain.Order, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+orderColumns+`
		   FROM shipping.orders
		  WHERE finalized = false
		  ORDER BY delivery_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (p *OrderRepository) GetOrderByKey(ctx context.Context, key string) (*domain.Order, error) {
	o, err := scanOrder(p.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM shipping.orders WHERE key = $1`, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", key, err)
	}
	return o, nil
}

// UpsertOrder stores an order coming from order entry. Header fields are
// refreshed on redelivery; existing items keep their shipment counters.
func (p *OrderRepository) UpsertOrder(ctx context.Context, o *domain.Order) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin upsert order: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO shipping.orders
				(id, key, contract, load, work, client, delivery_at)
			 VALUES
				($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (key) DO UPDATE
				SET client = EXCLUDED.client,
				    delivery_at = EXCLUDED.delivery_at
			 RETURNING id, finalized`,
		o.ID, o.Key, o.Contract, o.Load, o.Work, o.Client, o.DeliveryAt,
	).Scan(&o.ID, &o.Finalized)
	if err != nil {
		logger.Warn("upsert order failed", "key", o.Key, "err", err)
		return fmt.Errorf("upsert order %s: %w", o.Key, err)
	}

	if len(o.Items) > 0 {
		batch := &pgx.Batch{}
		for _, it := range o.Items {
			if it.ID == uuid.Nil {
				it.ID = uuid.New()
			}
			batch.Queue(`
				INSERT INTO shipping.order_items
					(id, order_key, code, description, balance)
				VALUES
					($1, $2, $3, $4, $5)
				ON CONFLICT (order_key, code) DO UPDATE
					SET description = EXCLUDED.description`,
				it.ID, o.Key, it.Code, it.Description, it.Balance,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err = br.Close(); err != nil {
			return fmt.Errorf("upsert items of %s: %w", o.Key, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order %s: %w", o.Key, err)
	}
	tx = nil
	return nil
}
