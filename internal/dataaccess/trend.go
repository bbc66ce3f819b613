package dataaccess

import (
	"context"
	"fmt"

	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// GetPortfolioTrend returns the indexed portfolio-vs-benchmark series for
// the trend page.
func (s *Service) GetPortfolioTrend(ctx context.Context, days int) (*response.Envelope[[]types.PerformancePoint], error) {
	if days <= 0 {
		days = 365
	}
	endpoint := fmt.Sprintf("/trend/portfolio?days=%d", days)
	return fetch(ctx, s, endpoint, func() []types.PerformancePoint {
		return s.gen.PerformanceData(days)
	})
}

// GetBenchmarkData returns the benchmark index series on its own.
func (s *Service) GetBenchmarkData(ctx context.Context, days int) (*response.Envelope[[]types.BenchmarkDataPoint], error) {
	if days <= 0 {
		days = 365
	}
	endpoint := fmt.Sprintf("/trend/benchmark?days=%d", days)
	return fetch(ctx, s, endpoint, func() []types.BenchmarkDataPoint {
		return s.gen.BenchmarkData(days)
	})
}

// GetMonthlyReturns returns one bar per month, newest last.
func (s *Service) GetMonthlyReturns(ctx context.Context, months int) (*response.Envelope[[]types.MonthlyReturn], error) {
	if months <= 0 {
		months = 12
	}
	endpoint := fmt.Sprintf("/trend/monthly-returns?months=%d", months)
	return fetch(ctx, s, endpoint, func() []types.MonthlyReturn {
		return s.gen.MonthlyReturns(months)
	})
}

// GetTrendStats returns the trend page summary figures.
func (s *Service) GetTrendStats(ctx context.Context) (*response.Envelope[types.TrendStats], error) {
	return fetch(ctx, s, "/trend/stats", s.gen.TrendStats)
}
