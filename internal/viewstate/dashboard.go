package viewstate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Shaoyanting/HT-financial-system/internal/dataaccess"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
)

// DashboardState loads the three dashboard panels in parallel. Each slot is
// written by its own goroutine; read the fields only after Load returns.
type DashboardState struct {
	DateFrom        string
	DateTo          string
	PerformanceDays int

	Metrics     types.PortfolioMetrics
	Allocation  []types.AssetAllocation
	Performance []types.PerformancePoint

	// Degraded reports whether any panel came from generated data.
	Degraded bool

	svc *dataaccess.Service
}

func NewDashboardState(svc *dataaccess.Service) *DashboardState {
	return &DashboardState{svc: svc, PerformanceDays: 180}
}

// Load fetches all panels concurrently. An auth failure from any panel
// cancels the rest and is returned; degraded panels are not errors.
func (d *DashboardState) Load(ctx context.Context) error {
	var metricsOK, allocationOK, performanceOK bool

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := d.svc.GetDashboardMetrics(ctx, d.DateFrom, d.DateTo)
		if err != nil {
			return err
		}
		d.Metrics = env.Data
		metricsOK = env.Success
		return nil
	})
	g.Go(func() error {
		env, err := d.svc.GetDashboardAllocation(ctx, d.DateFrom, d.DateTo)
		if err != nil {
			return err
		}
		d.Allocation = env.Data
		allocationOK = env.Success
		return nil
	})
	g.Go(func() error {
		env, err := d.svc.GetDashboardPerformance(ctx, d.PerformanceDays)
		if err != nil {
			return err
		}
		d.Performance = env.Data
		performanceOK = env.Success
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	d.Degraded = !metricsOK || !allocationOK || !performanceOK
	return nil
}
