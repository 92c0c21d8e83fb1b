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

type VolumeRepository struct {
	pool *pgxpool.Pool
}

func NewVolumeRepository(p *pgxpool.Pool) *VolumeRepository {
	return &VolumeRepository{pool: p}
}

const volumeColumns = `id, item_id, order_key, code, description, number, quantity, photos, confirmed, shipped, created_at`

func scanVolume(row pgx.Row) (*domain.Volume, error) {
	var v domain.Volume
	err := row.Scan(&v.ID, &v.ItemID, &v.OrderKey, &v.Code, &v.Description,
		&v.Number, &v.Quantity, &v.Photos, &v.Confirmed, &v.Shipped, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (p *VolumeRepository) listWhere(ctx context.Context, where string, arg any) ([]*domain.Volume, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+volumeColumns+`
		   FROM shipping.volumes
		  WHERE `+where+`
		  ORDER BY code, number`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Volume
	for rows.Next() {
		v, err := scanVolume(rows)
		if err != nil {
			return nil, fmt.Errorf("scan volume: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (p *VolumeRepository) ListVolumes(ctx context.Context, orderKey string) ([]*domain.Volume, error) {
	out, err := p.listWhere(ctx, "order_key = $1", orderKey)
	if err != nil {
		return nil, fmt.Errorf("list volumes of %s: %w", orderKey, err)
	}
	return out, nil
}

func (p *VolumeRepository) ListItemVolumes(ctx context.Context, itemID uuid.UUID) ([]*domain.Volume, error) {
	out, err := p.listWhere(ctx, "item_id = $1", itemID)
	if err != nil {
		return nil, fmt.Errorf("list volumes of item %s: %w", itemID, err)
	}
	return out, nil
}

func (p *VolumeRepository) GetVolume(ctx context.Context, id uuid.UUID) (*domain.Volume, error) {
	v, err := scanVolume(p.pool.QueryRow(ctx,
		`SELECT `+volumeColumns+` FROM shipping.volumes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get volume %s: %w", id, err)
	}
	return v, nil
}

func (p *VolumeRepository) VolumeNumberTaken(ctx context.Context, itemID uuid.UUID, number int) (bool, error) {
	var taken bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM shipping.volumes WHERE item_id = $1 AND number = $2)`,
		itemID, number).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check volume number: %w", err)
	}
	return taken, nil
}

func (p *VolumeRepository) CreateVolume(ctx context.Context, v *domain.Volume) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create volume: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO shipping.volumes
				(id, item_id, order_key, code, description, number, quantity, photos, confirmed, shipped, created_at)
			 VALUES
				($1, $2, $3, $4, $5, $6, $7, $8, false, false, $9)`,
		v.ID, v.ItemID, v.OrderKey, v.Code, v.Description, v.Number, v.Quantity, v.Photos, v.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrVolumeNumberTaken
	}
	if err != nil {
		return fmt.Errorf("insert volume: %w", err)
	}

	// Guarded so a concurrent pack cannot push remaining below zero.
	tag, err := tx.Exec(ctx,
		`UPDATE shipping.order_items
		    SET separated = separated + $2,
		        remaining = remaining - $2
		  WHERE id = $1 AND remaining >= $2`,
		v.ItemID, v.Quantity)
	if err != nil {
		return fmt.Errorf("update item counters: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRemainingExceeded
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit volume: %w", err)
	}
	tx = nil
	return nil
}

func (p *VolumeRepository) setFlag(ctx context.Context, column string, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE shipping.volumes SET `+column+` = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set %s on volume %s: %w", column, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *VolumeRepository) SetConfirmed(ctx context.Context, id uuid.UUID) error {
	return p.setFlag(ctx, "confirmed", id)
}

func (p *VolumeRepository) SetShipped(ctx context.Context, id uuid.UUID) error {
	return p.setFlag(ctx, "shipped", id)
}
