package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/internal/output"
)

var trendMonths int

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Trend analysis",
	Long:  "Show trend summary statistics and monthly returns.",
	RunE:  runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
	trendCmd.Flags().IntVar(&trendMonths, "months", 12, "months of returns to show")
}

func runTrend(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	ctx := context.Background()

	statsEnv, err := svc.GetTrendStats(ctx)
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	monthlyEnv, err := svc.GetMonthlyReturns(ctx, trendMonths)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(map[string]any{
			"stats":    statsEnv.Data,
			"monthly":  monthlyEnv.Data,
			"degraded": !statsEnv.Success || !monthlyEnv.Success,
		})
	}

	if !statsEnv.Success || !monthlyEnv.Success {
		output.DegradedNotice("")
	}

	s := statsEnv.Data
	output.Header("Trend Summary")
	output.KeyValue([][]string{
		{"Total Return", output.Percent(s.TotalReturn)},
		{"Annualized Return", output.Percent(s.AnnualizedReturn)},
		{"Volatility", fmt.Sprintf("%.2f", s.Volatility)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", s.SharpeRatio)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", s.MaxDrawdown)},
		{"Win Rate", fmt.Sprintf("%.2f%%", s.WinRate)},
	})

	fmt.Println()
	output.Header("Monthly Returns")
	rows := make([][]string, 0, len(monthlyEnv.Data))
	for _, m := range monthlyEnv.Data {
		rows = append(rows, []string{m.Month, output.Percent(m.Return), output.Percent(m.Benchmark)})
	}
	output.Table([]string{"Month", "Portfolio", "Benchmark"}, rows)
	return nil
}
