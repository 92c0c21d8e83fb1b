package repository

import (
	"context"
	"fmt"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WeightRepository struct {
	pool *pgxpool.Pool
}

func NewWeightRepository(p *pgxpool.Pool) *WeightRepository {
	return &WeightRepository{pool: p}
}

// UnitWeights maps item code to unit weight in kg.
func (p *WeightRepository) UnitWeights(ctx context.Context) (map[string]float64, error) {
	rows, err := p.pool.Query(ctx, `SELECT code, unit_weight FROM shipping.item_weights`)
	if err != nil {
		return nil, fmt.Errorf("list unit weights: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var code, raw string
		if err := rows.Scan(&code, &raw); err != nil {
			return nil, fmt.Errorf("scan unit weight: %w", err)
		}
		out[code] = domain.ParseUnitWeight(raw)
	}
	return out, rows.Err()
}
