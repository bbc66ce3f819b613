package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/internal/output"
	"github.com/Shaoyanting/HT-financial-system/internal/dataaccess"
)

var listParams struct {
	page     int
	size     int
	search   string
	category string
	sortBy   string
	order    string
}

var exportOut string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Holdings grid",
	Long:  "List holdings with search, category filter, sorting and paging.",
	RunE:  runAssets,
}

var assetCmd = &cobra.Command{
	Use:   "asset <id>",
	Short: "Show one holding",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsset,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export holdings as CSV",
	Long:  "Download the filtered holdings as CSV, to stdout or a file.",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(exportCmd)

	for _, c := range []*cobra.Command{assetsCmd, exportCmd} {
		c.Flags().StringVarP(&listParams.search, "search", "s", "", "search code or name")
		c.Flags().StringVarP(&listParams.category, "category", "c", "", "filter by asset category")
		c.Flags().StringVar(&listParams.sortBy, "sort", "", "sort column (code, name, currentPrice, changePercent, marketValue, ...)")
		c.Flags().StringVar(&listParams.order, "order", "asc", "sort order: asc, desc")
	}
	assetsCmd.Flags().IntVarP(&listParams.page, "page", "p", 1, "page number")
	assetsCmd.Flags().IntVarP(&listParams.size, "size", "n", 10, "page size")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: server-suggested name)")
}

func gridParams() dataaccess.ListParams {
	return dataaccess.ListParams{
		Page:      listParams.page,
		Size:      listParams.size,
		Search:    listParams.search,
		Category:  listParams.category,
		SortBy:    listParams.sortBy,
		SortOrder: listParams.order,
	}
}

func runAssets(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	env, err := svc.GetAssets(context.Background(), gridParams())
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(env)
	}

	if !env.Success {
		output.DegradedNotice(env.Message)
	}

	page := env.Data
	rows := make([][]string, 0, len(page.Data))
	for _, a := range page.Data {
		rows = append(rows, []string{
			strconv.Itoa(a.ID),
			a.Code,
			a.Name,
			string(a.AssetCategory),
			output.Amount(a.CurrentPrice),
			output.Percent(a.ChangePercent),
			output.Amount(a.MarketValue),
			output.SignedAmount(a.DailyGain),
		})
	}
	output.Table(
		[]string{"ID", "Code", "Name", "Category", "Price", "Change", "Market Value", "Daily Gain"},
		rows,
	)

	fmt.Println()
	output.KeyValue([][]string{
		{"Page", fmt.Sprintf("%d/%d (%d total)", page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)},
		{"Daily Gain (page)", output.SignedAmount(page.Stats.TotalDailyGain)},
		{"Avg Change (page)", output.Percent(page.Stats.AvgChangePercent)},
		{"Market Value (page)", output.Amount(page.Stats.TotalMarketValue)},
	})
	return nil
}

func runAsset(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		output.Error("invalid asset id: " + args[0])
		return nil
	}

	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	env, err := svc.GetAssetByID(context.Background(), id)
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if env.Data == nil {
		output.Error(fmt.Sprintf("asset %d not found", id))
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(env)
	}

	if !env.Success {
		output.DegradedNotice(env.Message)
	}

	a := env.Data
	output.Header(fmt.Sprintf("%s — %s", a.Code, a.Name))
	output.KeyValue([][]string{
		{"Category", string(a.AssetCategory)},
		{"Price", output.Amount(a.CurrentPrice)},
		{"Change", output.Percent(a.ChangePercent)},
		{"Market Value", output.Amount(a.MarketValue)},
		{"Position", strconv.Itoa(a.Position)},
		{"Cost Price", output.Amount(a.CostPrice)},
		{"Weight", fmt.Sprintf("%.2f%%", a.Weight)},
		{"Daily Gain", output.SignedAmount(a.DailyGain)},
		{"Total Gain", output.SignedAmount(a.TotalGain)},
		{"P/E", fmt.Sprintf("%.2f", a.PE)},
		{"P/B", fmt.Sprintf("%.2f", a.PB)},
		{"Dividend Yield", fmt.Sprintf("%.2f%%", a.DividendYield)},
		{"Volatility", fmt.Sprintf("%.2f", a.Volatility)},
		{"Beta", fmt.Sprintf("%.2f", a.Beta)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", a.SharpeRatio)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", a.MaxDrawdown)},
	})
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	params := gridParams()
	name, data, err := svc.ExportAssets(context.Background(), params)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	target := exportOut
	if target == "" {
		target = name
	}
	if target == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		output.Error("failed to write export: " + err.Error())
		return nil
	}
	output.Success("Exported to " + target)
	return nil
}
