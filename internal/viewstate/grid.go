package viewstate

import (
	"context"
	"sync"
	"time"

	"github.com/Shaoyanting/HT-financial-system/internal/dataaccess"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
)

// AssetGridState drives the asset grid: it owns the query parameters,
// debounces search input, and guards against out-of-order responses with a
// generation counter. Every mutator bumps the generation; a fetch started
// under an older generation discards its result instead of overwriting a
// newer one.
type AssetGridState struct {
	svc      *dataaccess.Service
	debounce *Debouncer[string]

	mu         sync.Mutex
	generation uint64
	params     dataaccess.ListParams

	page     *types.AssetPage
	degraded bool
}

// NewAssetGridState builds grid state with page 1, the given page size and
// a search debounce window (<= 0 selects DefaultDebounce).
func NewAssetGridState(svc *dataaccess.Service, size int, debounce time.Duration) *AssetGridState {
	if size < 1 {
		size = 10
	}
	return &AssetGridState{
		svc:      svc,
		debounce: NewDebouncer[string](debounce),
		params:   dataaccess.ListParams{Page: 1, Size: size},
	}
}

// SetSearch feeds raw search input into the debouncer. The query only
// changes once typing pauses; consume the settled terms via Run.
func (g *AssetGridState) SetSearch(term string) {
	g.debounce.Set(term)
}

// Run applies settled search terms and refreshes until ctx is done.
// Blocks; run it in its own goroutine.
func (g *AssetGridState) Run(ctx context.Context) error {
	defer g.debounce.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case term := <-g.debounce.C():
			g.mu.Lock()
			g.params.Search = term
			g.params.Page = 1
			g.generation++
			g.mu.Unlock()
			if err := g.Refresh(ctx); err != nil {
				return err
			}
		}
	}
}

// SetPage moves to a page.
func (g *AssetGridState) SetPage(page int) {
	g.mutate(func(p *dataaccess.ListParams) { p.Page = page })
}

// SetSize changes the page size and returns to page 1.
func (g *AssetGridState) SetSize(size int) {
	g.mutate(func(p *dataaccess.ListParams) { p.Size = size; p.Page = 1 })
}

// SetCategory filters by category and returns to page 1.
func (g *AssetGridState) SetCategory(category string) {
	g.mutate(func(p *dataaccess.ListParams) { p.Category = category; p.Page = 1 })
}

// SetSort orders by a column.
func (g *AssetGridState) SetSort(sortBy, sortOrder string) {
	g.mutate(func(p *dataaccess.ListParams) { p.SortBy = sortBy; p.SortOrder = sortOrder })
}

// SetDateRange filters by date range and returns to page 1.
func (g *AssetGridState) SetDateRange(dateFrom, dateTo string) {
	g.mutate(func(p *dataaccess.ListParams) {
		p.DateFrom, p.DateTo = dateFrom, dateTo
		p.Page = 1
	})
}

func (g *AssetGridState) mutate(fn func(*dataaccess.ListParams)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.params)
	g.generation++
}

// Refresh fetches the page for the current parameters. A result arriving
// after the parameters changed again is dropped.
func (g *AssetGridState) Refresh(ctx context.Context) error {
	gen, params := g.snapshot()
	return g.refresh(ctx, gen, params)
}

func (g *AssetGridState) snapshot() (uint64, dataaccess.ListParams) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation, g.params
}

func (g *AssetGridState) refresh(ctx context.Context, gen uint64, params dataaccess.ListParams) error {
	env, err := g.svc.GetAssets(ctx, params)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.generation != gen {
		// A newer query superseded this one while it was in flight.
		return nil
	}
	g.page = &env.Data
	g.degraded = !env.Success
	return nil
}

// Page returns the last applied page and whether it came from the degraded
// path. Nil until the first successful Refresh.
func (g *AssetGridState) Page() (*types.AssetPage, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.page, g.degraded
}

// Params returns the current query parameters.
func (g *AssetGridState) Params() dataaccess.ListParams {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}
