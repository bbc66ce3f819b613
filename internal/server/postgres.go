package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shaoyanting/HT-financial-system/internal/types"
)

const assetColumns = `id, code, name, asset_category, current_price, change_percent,
	market_value, position, cost_price, weight, daily_gain, total_gain,
	pe, pb, dividend_yield, volatility, beta, sharpe_ratio, max_drawdown`

// PGRepository reads holdings from postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) List(ctx context.Context) ([]types.Asset, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+assetColumns+" FROM assets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []types.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *PGRepository) Get(ctx context.Context, id int) (*types.Asset, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+assetColumns+" FROM assets WHERE id = $1", id)
	a, err := scanAsset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAsset(row pgx.Row) (types.Asset, error) {
	var a types.Asset
	err := row.Scan(
		&a.ID, &a.Code, &a.Name, &a.AssetCategory, &a.CurrentPrice, &a.ChangePercent,
		&a.MarketValue, &a.Position, &a.CostPrice, &a.Weight, &a.DailyGain, &a.TotalGain,
		&a.PE, &a.PB, &a.DividendYield, &a.Volatility, &a.Beta, &a.SharpeRatio, &a.MaxDrawdown,
	)
	if err != nil {
		return types.Asset{}, fmt.Errorf("failed to scan asset: %w", err)
	}
	return a, nil
}
