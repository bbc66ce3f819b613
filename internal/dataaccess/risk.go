package dataaccess

import (
	"context"
	"fmt"

	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// GetRiskMetrics returns the risk figures. VaR and CVaR are taken as-is
// from whichever source produced them, never recomputed here.
func (s *Service) GetRiskMetrics(ctx context.Context) (*response.Envelope[types.RiskMetrics], error) {
	return fetch(ctx, s, "/risk/metrics", s.gen.RiskMetrics)
}

// GetDrawdownData returns the price-and-drawdown series for the risk page.
func (s *Service) GetDrawdownData(ctx context.Context, days int) (*response.Envelope[[]types.DrawdownDataPoint], error) {
	if days <= 0 {
		days = 365
	}
	endpoint := fmt.Sprintf("/risk/drawdown?days=%d", days)
	return fetch(ctx, s, endpoint, func() []types.DrawdownDataPoint {
		return s.gen.DrawdownData(days)
	})
}
