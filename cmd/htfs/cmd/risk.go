package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/internal/output"
)

var riskDays int

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Risk management",
	Long:  "Show risk metrics and the worst drawdown over the window.",
	RunE:  runRisk,
}

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.Flags().IntVar(&riskDays, "days", 365, "drawdown window in days")
}

func runRisk(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	ctx := context.Background()

	metricsEnv, err := svc.GetRiskMetrics(ctx)
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	drawdownEnv, err := svc.GetDrawdownData(ctx, riskDays)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(map[string]any{
			"metrics":  metricsEnv.Data,
			"drawdown": drawdownEnv.Data,
			"degraded": !metricsEnv.Success || !drawdownEnv.Success,
		})
	}

	if !metricsEnv.Success || !drawdownEnv.Success {
		output.DegradedNotice("")
	}

	m := metricsEnv.Data
	output.Header("Risk Metrics")
	output.KeyValue([][]string{
		{"VaR (95%)", output.Amount(m.VaR95)},
		{"CVaR (95%)", output.Amount(m.CVaR95)},
		{"Stress Test Loss", output.Amount(m.StressTestLoss)},
		{"Liquidity Risk", fmt.Sprintf("%.2f", m.LiquidityRisk)},
		{"Concentration Risk", fmt.Sprintf("%.2f", m.ConcentrationRisk)},
		{"Credit Risk", fmt.Sprintf("%.2f", m.CreditRisk)},
	})

	worst := 0.0
	worstDate := ""
	for _, p := range drawdownEnv.Data {
		if p.Drawdown < worst {
			worst = p.Drawdown
			worstDate = p.Date
		}
	}
	fmt.Println()
	output.Header("Drawdown")
	pairs := [][]string{
		{"Window", fmt.Sprintf("%d days (%d points)", riskDays, len(drawdownEnv.Data))},
	}
	if worstDate != "" {
		pairs = append(pairs, []string{"Worst Drawdown", fmt.Sprintf("%.2f%% on %s", worst, worstDate)})
	} else {
		pairs = append(pairs, []string{"Worst Drawdown", "none in window"})
	}
	output.KeyValue(pairs)
	return nil
}
