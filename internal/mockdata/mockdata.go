// Package mockdata produces synthetic portfolio data. It is the fallback
// path for every data accessor: when the API is unreachable or the session
// is unauthenticated, the dashboard keeps functioning on generated numbers
// inside domain-realistic ranges.
package mockdata

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Shaoyanting/HT-financial-system/internal/types"
)

var assetCodes = []string{
	"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "JPM", "V",
	"JNJ", "WMT", "PG", "UNH", "HD", "BAC", "MA",
}

var namePrefixes = []string{
	"Apex", "Harbor", "Summit", "Sterling", "Meridian", "Pinnacle",
	"Granite", "Beacon", "Crestline", "Vanguard", "Ironwood", "Northgate",
}

var nameSuffixes = []string{"Holdings", "Group", "Capital", "Industries", "Partners"}

var allocationCategories = []types.AssetCategory{
	types.CategoryStock,
	types.CategoryBond,
	types.CategoryCash,
	types.CategoryCommodity,
	types.CategoryRealEstate,
	types.CategoryOther,
}

// Generator produces synthetic records from its own PRNG. Two generators
// built with the same seed produce identical output, which is what tests
// rely on. Generator methods never fail and never block.
type Generator struct {
	mu  sync.Mutex
	r   *rand.Rand
	now func() time.Time
}

// New returns a deterministic generator for seed.
func New(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed)), now: time.Now}
}

// NewRandom returns a time-seeded generator for production fallback use.
func NewRandom() *Generator {
	return New(time.Now().UnixNano())
}

// WithClock overrides the date anchor, for tests that pin "today".
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) float(min, max float64) float64 {
	return min + g.r.Float64()*(max-min)
}

func (g *Generator) float2(min, max float64) float64 {
	return round2(g.float(min, max))
}

func (g *Generator) float3(min, max float64) float64 {
	return math.Round(g.float(min, max)*1000) / 1000
}

func (g *Generator) intn(min, max int) int {
	return min + g.r.Intn(max-min+1)
}

func (g *Generator) pick(list []string) string {
	return list[g.r.Intn(len(list))]
}

func (g *Generator) color() string {
	return fmt.Sprintf("#%06x", g.r.Intn(0x1000000))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Assets generates count holdings. Weight values are independent draws and
// do not sum to 100; callers needing a normalized set must renormalize.
func (g *Generator) Assets(count int) []types.Asset {
	g.mu.Lock()
	defer g.mu.Unlock()

	assets := make([]types.Asset, count)
	for i := range assets {
		changePercent := g.float2(0.1, 15)
		if g.r.Intn(2) == 0 {
			changePercent = -changePercent
		}
		dailyGain := g.float2(1000, 50000)
		totalGain := g.float2(10000, 500000)
		if changePercent <= 0 {
			dailyGain = -dailyGain
			totalGain = -totalGain
		}

		assets[i] = types.Asset{
			ID:            i + 1,
			Code:          g.pick(assetCodes),
			Name:          g.pick(namePrefixes) + " " + g.pick(nameSuffixes),
			AssetCategory: allocationCategories[g.r.Intn(len(allocationCategories))],
			CurrentPrice:  g.float2(100, 5000),
			ChangePercent: changePercent,
			MarketValue:   g.float2(1_000_000, 1_000_000_000),
			Position:      g.intn(1000, 100000),
			CostPrice:     g.float2(80, 3000),
			Weight:        g.float2(0.1, 20),
			DailyGain:     dailyGain,
			TotalGain:     totalGain,
			PE:            g.float2(5, 50),
			PB:            g.float2(0.5, 10),
			DividendYield: g.float2(0.1, 5),
			Volatility:    g.float2(0.1, 3.2),
			Beta:          g.float2(0.5, 1.5),
			SharpeRatio:   g.float2(0.1, 2.5),
			MaxDrawdown:   g.float2(5, 30),
		}
	}
	return assets
}

// PortfolioMetrics generates one dashboard snapshot.
func (g *Generator) PortfolioMetrics() types.PortfolioMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()

	return types.PortfolioMetrics{
		TotalAssets: g.float2(1_000_000, 10_000_000),
		DailyPnL:    g.float2(-50000, 100000),
		TotalPnL:    g.float2(-200000, 500000),
		SharpeRatio: g.float2(0.5, 2.5),
		MaxDrawdown: g.float2(5, 25),
		Volatility:  g.float2(0.5, 2.5),
		Beta:        g.float2(0.8, 1.2),
		Alpha:       g.float3(-0.05, 0.05),
		WinRate:     g.float2(50, 80),
		AvgReturn:   g.float2(0.1, 1.5),
	}
}

// AssetAllocation generates one row per category. Values are independent
// percent draws; the set is not normalized to 100.
func (g *Generator) AssetAllocation() []types.AssetAllocation {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := make([]types.AssetAllocation, len(allocationCategories))
	for i, cat := range allocationCategories {
		rows[i] = types.AssetAllocation{
			Category: string(cat),
			Value:    g.float2(5, 40),
			Color:    g.color(),
		}
	}
	return rows
}

// IndustryDistribution generates one row per known industry.
func (g *Generator) IndustryDistribution() []types.IndustryDistribution {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := make([]types.IndustryDistribution, len(types.Industries))
	for i, industry := range types.Industries {
		rows[i] = types.IndustryDistribution{
			Industry: industry,
			Value:    g.float2(5, 25),
			Color:    g.color(),
		}
	}
	return rows
}

// HistoricalPrices generates a daily multiplicative random walk ending
// today. The series id only names the series; it does not influence the
// walk.
func (g *Generator) HistoricalPrices(seriesID string, days int) []types.HistoricalPrice {
	g.mu.Lock()
	defer g.mu.Unlock()

	_ = seriesID
	prices := make([]types.HistoricalPrice, 0, days)
	price := g.float2(100, 5000)
	start := g.now().AddDate(0, 0, -days)

	for i := 0; i < days; i++ {
		change := g.float3(-0.05, 0.05)
		price = price * (1 + change)
		prices = append(prices, types.HistoricalPrice{
			Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
			Price:  round2(price),
			Volume: int64(g.intn(100_000, 10_000_000)),
		})
	}
	return prices
}

// BenchmarkData generates the benchmark index walk, base 1000.
func (g *Generator) BenchmarkData(days int) []types.BenchmarkDataPoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	values := make([]types.BenchmarkDataPoint, 0, days)
	value := 1000.0
	start := g.now().AddDate(0, 0, -days)

	for i := 0; i < days; i++ {
		change := g.float3(-0.03, 0.03)
		value = value * (1 + change)
		values = append(values, types.BenchmarkDataPoint{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Value: round2(value),
		})
	}
	return values
}

// DrawdownData generates a thinned walk with drawdown relative to the
// running maximum. Drawdown is <= 0 everywhere and exactly 0 whenever the
// price sets a new high. The result is never empty.
func (g *Generator) DrawdownData(days int) []types.DrawdownDataPoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.now().AddDate(0, 0, -days)
	maxPrice := 1000.0
	price := 1000.0

	// Charts need 30-100 points, not one per day for long ranges.
	step := days / 100
	if step < 1 {
		step = 1
	}

	data := make([]types.DrawdownDataPoint, 0, days/step+1)
	for i := 0; i < days; i += step {
		change := g.float3(-0.02, 0.02)
		price = price * (1 + change)
		if price > maxPrice {
			maxPrice = price
		}
		drawdown := (price - maxPrice) / maxPrice * 100

		data = append(data, types.DrawdownDataPoint{
			Date:     start.AddDate(0, 0, i).Format("2006-01-02"),
			Price:    round2(price),
			Drawdown: round2(drawdown),
		})
	}

	if len(data) == 0 {
		data = append(data, types.DrawdownDataPoint{
			Date:     start.Format("2006-01-02"),
			Price:    1000,
			Drawdown: 0,
		})
	}
	return data
}

// RiskMetrics generates one set of risk figures.
func (g *Generator) RiskMetrics() types.RiskMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()

	return types.RiskMetrics{
		VaR95:             g.float2(10000, 50000),
		CVaR95:            g.float2(15000, 60000),
		StressTestLoss:    g.float2(50000, 200000),
		LiquidityRisk:     g.float2(0.1, 0.5),
		ConcentrationRisk: g.float2(0.2, 0.8),
		CreditRisk:        g.float2(0.1, 0.4),
	}
}

// PerformanceData generates portfolio-vs-benchmark series indexed to 100
// at range start, one point per day.
func (g *Generator) PerformanceData(days int) []types.PerformancePoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	points := make([]types.PerformancePoint, 0, days)
	portfolio := 100.0
	benchmark := 100.0
	start := g.now().AddDate(0, 0, -days)

	for i := 0; i < days; i++ {
		portfolio = portfolio * (1 + g.float3(-0.02, 0.025))
		benchmark = benchmark * (1 + g.float3(-0.015, 0.018))
		points = append(points, types.PerformancePoint{
			Date:      start.AddDate(0, 0, i).Format("2006-01-02"),
			Portfolio: round2(portfolio),
			Benchmark: round2(benchmark),
		})
	}
	return points
}

// MonthlyReturns generates one bar per month, newest last.
func (g *Generator) MonthlyReturns(months int) []types.MonthlyReturn {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := make([]types.MonthlyReturn, 0, months)
	anchor := g.now()
	for i := months - 1; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		rows = append(rows, types.MonthlyReturn{
			Month:     month.Format("2006-01"),
			Return:    g.float2(-8, 12),
			Benchmark: g.float2(-6, 9),
		})
	}
	return rows
}

// TrendStats generates the trend page summary.
func (g *Generator) TrendStats() types.TrendStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	return types.TrendStats{
		TotalReturn:      g.float2(-10, 60),
		AnnualizedReturn: g.float2(-5, 25),
		Volatility:       g.float2(0.5, 2.5),
		SharpeRatio:      g.float2(0.1, 2.5),
		MaxDrawdown:      g.float2(5, 30),
		WinRate:          g.float2(40, 75),
	}
}
