package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(p *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: p}
}

const itemColumns = `id, order_key, code, description, balance, defined, separated, remaining, selected`

func scanItem(row pgx.Row) (*domain.LineItem, error) {
	var it domain.LineItem
	err := row.Scan(&it.ID, &it.OrderKey, &it.Code, &it.Description,
		&it.Balance, &it.Defined, &it.Separated, &it.Remaining, &it.Selected)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (p *ItemRepository) ListItems(ctx context.Context, orderKey string) ([]*domain.LineItem, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+itemColumns+`
		   FROM shipping.order_items
		  WHERE order_key = $1
		  ORDER BY code`, orderKey)
	if err != nil {
		return nil, fmt.Errorf("list items of %s: %w", orderKey, err)
	}
	defer rows.Close()

	var out []*domain.LineItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (p *ItemRepository) GetItem(ctx context.Context, id uuid.UUID) (*domain.LineItem, error) {
	it, err := scanItem(p.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM shipping.order_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return it, nil
}

func (p *ItemRepository) SetDefinedQuantity(ctx context.Context, ch domain.QuantityChange) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin define quantity: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Guarded on the quantity the change was planned from, so balance + defined
	// stays constant when two redefinitions race.
	tag, err := tx.Exec(ctx,
		`UPDATE shipping.order_items
		    SET defined = $2,
		        remaining = $2,
		        separated = 0,
		        selected = $2::int > 0,
		        balance = balance + defined - $2
		  WHERE id = $1 AND defined = $3 AND balance + defined >= $2`,
		ch.ItemID, ch.To, ch.From)
	if err != nil {
		return fmt.Errorf("define quantity of item %s: %w", ch.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM shipping.order_items WHERE id = $1)`, ch.ItemID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check item %s: %w", ch.ItemID, err)
		}
		if !exists {
			return ErrNotFound
		}
		return domain.ErrItemChanged
	}

	if _, err = tx.Exec(ctx, `DELETE FROM shipping.volumes WHERE item_id = $1`, ch.ItemID); err != nil {
		return fmt.Errorf("drop volumes of item %s: %w", ch.ItemID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit define quantity: %w", err)
	}
	tx = nil
	return nil
}
