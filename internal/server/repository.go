package server

import (
	"context"

	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
)

// AssetRepository is the holdings source behind the API. The in-memory
// implementation serves demo deployments; the postgres one backs real data.
type AssetRepository interface {
	List(ctx context.Context) ([]types.Asset, error)
	Get(ctx context.Context, id int) (*types.Asset, error)
}

// MemRepository keeps a fixed holdings set seeded at startup. Reads return
// copies so handlers can sort and slice freely.
type MemRepository struct {
	assets []types.Asset
}

// NewMemRepository seeds count holdings from the generator.
func NewMemRepository(gen *mockdata.Generator, count int) *MemRepository {
	return &MemRepository{assets: gen.Assets(count)}
}

func (r *MemRepository) List(ctx context.Context) ([]types.Asset, error) {
	out := make([]types.Asset, len(r.assets))
	copy(out, r.assets)
	return out, nil
}

func (r *MemRepository) Get(ctx context.Context, id int) (*types.Asset, error) {
	for i := range r.assets {
		if r.assets[i].ID == id {
			a := r.assets[i]
			return &a, nil
		}
	}
	return nil, nil
}
