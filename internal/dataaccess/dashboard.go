package dataaccess

import (
	"context"
	"fmt"

	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// maxAllocationSlices caps the allocation pie; more slices than this stop
// being readable.
const maxAllocationSlices = 7

// GetDashboardMetrics returns the aggregate portfolio snapshot for an
// optional date range.
func (s *Service) GetDashboardMetrics(ctx context.Context, dateFrom, dateTo string) (*response.Envelope[types.PortfolioMetrics], error) {
	return fetch(ctx, s, "/dashboard/metrics"+rangeQuery(dateFrom, dateTo), s.gen.PortfolioMetrics)
}

// GetDashboardAllocation returns the allocation breakdown with duplicate
// categories merged, regardless of which source produced the rows.
func (s *Service) GetDashboardAllocation(ctx context.Context, dateFrom, dateTo string) (*response.Envelope[[]types.AssetAllocation], error) {
	env, err := fetch(ctx, s, "/dashboard/allocation"+rangeQuery(dateFrom, dateTo), s.gen.AssetAllocation)
	if err != nil {
		return nil, err
	}
	env.Data = MergeAllocations(env.Data)
	return env, nil
}

// GetDashboardPerformance returns the portfolio-vs-benchmark series for the
// dashboard chart.
func (s *Service) GetDashboardPerformance(ctx context.Context, days int) (*response.Envelope[[]types.PerformancePoint], error) {
	if days <= 0 {
		days = 180
	}
	endpoint := fmt.Sprintf("/dashboard/performance?days=%d", days)
	return fetch(ctx, s, endpoint, func() []types.PerformancePoint {
		return s.gen.PerformanceData(days)
	})
}

// GetIndustryDistribution returns the industry breakdown.
func (s *Service) GetIndustryDistribution(ctx context.Context) (*response.Envelope[[]types.IndustryDistribution], error) {
	return fetch(ctx, s, "/dashboard/industry", s.gen.IndustryDistribution)
}

// MergeAllocations collapses duplicate categories into one row each,
// averaging their values to two decimals. First-seen order and color win,
// and the result is capped at seven slices. Values are not renormalized
// after merging, so a capped set may sum below the original.
func MergeAllocations(rows []types.AssetAllocation) []types.AssetAllocation {
	type bucket struct {
		sum   float64
		n     int
		color string
	}

	order := make([]string, 0, len(rows))
	byCategory := make(map[string]*bucket, len(rows))
	for _, r := range rows {
		b, ok := byCategory[r.Category]
		if !ok {
			b = &bucket{color: r.Color}
			byCategory[r.Category] = b
			order = append(order, r.Category)
		}
		b.sum += r.Value
		b.n++
	}

	merged := make([]types.AssetAllocation, 0, len(order))
	for _, category := range order {
		b := byCategory[category]
		merged = append(merged, types.AssetAllocation{
			Category: category,
			Value:    round2(b.sum / float64(b.n)),
			Color:    b.color,
		})
	}
	if len(merged) > maxAllocationSlices {
		merged = merged[:maxAllocationSlices]
	}
	return merged
}
