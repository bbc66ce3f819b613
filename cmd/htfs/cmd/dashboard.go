package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/internal/output"
	"github.com/Shaoyanting/HT-financial-system/internal/viewstate"
)

var dashboardDays int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Portfolio overview",
	Long:  "Show portfolio metrics, allocation and the performance trend.",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().IntVar(&dashboardDays, "days", 180, "performance window in days")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	state := viewstate.NewDashboardState(svc)
	state.PerformanceDays = dashboardDays
	if err := state.Load(context.Background()); err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(map[string]any{
			"metrics":     state.Metrics,
			"allocation":  state.Allocation,
			"performance": state.Performance,
			"degraded":    state.Degraded,
		})
	}

	if state.Degraded {
		output.DegradedNotice("")
	}

	output.Header("Portfolio Metrics")
	m := state.Metrics
	output.KeyValue([][]string{
		{"Total Assets", output.Amount(m.TotalAssets)},
		{"Daily P&L", output.SignedAmount(m.DailyPnL)},
		{"Total P&L", output.SignedAmount(m.TotalPnL)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", m.SharpeRatio)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", m.MaxDrawdown)},
		{"Volatility", fmt.Sprintf("%.2f", m.Volatility)},
		{"Win Rate", fmt.Sprintf("%.2f%%", m.WinRate)},
	})

	fmt.Println()
	output.Header("Asset Allocation")
	rows := make([][]string, 0, len(state.Allocation))
	for _, a := range state.Allocation {
		rows = append(rows, []string{a.Category, fmt.Sprintf("%.2f%%", a.Value)})
	}
	output.Table([]string{"Category", "Share"}, rows)

	if n := len(state.Performance); n > 0 {
		first, last := state.Performance[0], state.Performance[n-1]
		fmt.Println()
		output.Header("Performance (indexed)")
		output.KeyValue([][]string{
			{"Range", first.Date + " .. " + last.Date},
			{"Portfolio", output.Percent(last.Portfolio - first.Portfolio)},
			{"Benchmark", output.Percent(last.Benchmark - first.Benchmark)},
		})
	}
	return nil
}
