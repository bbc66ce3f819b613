package types

import (
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// AssetCategory is the coarse asset-class bucket used for allocation
// breakdowns and list filtering.
type AssetCategory string

const (
	CategoryCash       AssetCategory = "Cash"
	CategoryBond       AssetCategory = "Bond"
	CategoryStock      AssetCategory = "Stock"
	CategoryFund       AssetCategory = "Fund"
	CategoryCommodity  AssetCategory = "Commodity"
	CategoryRealEstate AssetCategory = "RealEstate"
	CategoryOther      AssetCategory = "Other"
)

// AllCategories lists the fixed category enumeration in display order.
var AllCategories = []AssetCategory{
	CategoryCash,
	CategoryBond,
	CategoryStock,
	CategoryFund,
	CategoryCommodity,
	CategoryRealEstate,
	CategoryOther,
}

// Industries is the fixed industry list used by the distribution breakdown.
var Industries = []string{
	"Technology",
	"Financials",
	"Consumer",
	"Healthcare",
	"Energy",
	"Industrials",
	"RealEstate",
	"Materials",
	"Utilities",
	"Communication",
}

// Asset is a single holding. Assets are value objects: constructed by the
// generator or decoded from a response, never mutated, replaced wholesale on
// refetch.
type Asset struct {
	ID            int           `json:"id"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	AssetCategory AssetCategory `json:"assetCategory"`
	CurrentPrice  float64       `json:"currentPrice"`
	ChangePercent float64       `json:"changePercent"`
	MarketValue   float64       `json:"marketValue"`
	Position      int           `json:"position"`
	CostPrice     float64       `json:"costPrice"`
	Weight        float64       `json:"weight"`
	DailyGain     float64       `json:"dailyGain"`
	TotalGain     float64       `json:"totalGain"`
	PE            float64       `json:"pe"`
	PB            float64       `json:"pb"`
	DividendYield float64       `json:"dividendYield"`
	Volatility    float64       `json:"volatility"`
	Beta          float64       `json:"beta"`
	SharpeRatio   float64       `json:"sharpeRatio"`
	MaxDrawdown   float64       `json:"maxDrawdown"`
}

// PortfolioMetrics is the aggregate dashboard snapshot, one per query.
type PortfolioMetrics struct {
	TotalAssets float64 `json:"totalAssets"`
	DailyPnL    float64 `json:"dailyPnL"`
	TotalPnL    float64 `json:"totalPnL"`
	SharpeRatio float64 `json:"sharpeRatio"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	Volatility  float64 `json:"volatility"`
	Beta        float64 `json:"beta"`
	Alpha       float64 `json:"alpha"`
	WinRate     float64 `json:"winRate"`
	AvgReturn   float64 `json:"avgReturn"`
}

// AssetAllocation is one slice of the portfolio breakdown pie. Value is a
// percent of the whole; a full set should sum to roughly 100.
type AssetAllocation struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
}

// IndustryDistribution mirrors AssetAllocation for industry buckets.
type IndustryDistribution struct {
	Industry string  `json:"industry"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
}

// HistoricalPrice is one point of a daily price series, date ascending.
type HistoricalPrice struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// BenchmarkDataPoint is one point of the benchmark index series.
type BenchmarkDataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DrawdownDataPoint carries price and its percent decline from the running
// maximum. Drawdown is always <= 0 and exactly 0 when price sets a new high.
type DrawdownDataPoint struct {
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
	Drawdown float64 `json:"drawdown"`
}

// PerformancePoint is one point of the portfolio-vs-benchmark trend, both
// series indexed to 100 at range start.
type PerformancePoint struct {
	Date      string  `json:"date"`
	Portfolio float64 `json:"portfolio"`
	Benchmark float64 `json:"benchmark"`
}

// MonthlyReturn is one bar of the monthly-returns chart.
type MonthlyReturn struct {
	Month     string  `json:"month"`
	Return    float64 `json:"return"`
	Benchmark float64 `json:"benchmark"`
}

// TrendStats summarizes the trend page's series.
type TrendStats struct {
	TotalReturn      float64 `json:"totalReturn"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
	WinRate          float64 `json:"winRate"`
}

// RiskMetrics holds backend-computed risk figures. VaR/CVaR are opaque
// numbers here, never derived client-side.
type RiskMetrics struct {
	VaR95             float64 `json:"var95"`
	CVaR95            float64 `json:"cvar95"`
	StressTestLoss    float64 `json:"stressTestLoss"`
	LiquidityRisk     float64 `json:"liquidityRisk"`
	ConcentrationRisk float64 `json:"concentrationRisk"`
	CreditRisk        float64 `json:"creditRisk"`
}

// User is the identity returned by login, persisted client-side without the
// password.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

const RoleAdmin = "admin"

// UserPermission is the per-user page access list.
type UserPermission struct {
	UserID       int      `json:"userId"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	AllowedPages []string `json:"allowedPages"`
}

// PagePermission describes one manageable page.
type PagePermission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// AssetStats are the aggregate figures shown above the asset grid. The
// server may supply them; otherwise the client reduces the loaded page.
type AssetStats struct {
	TotalDailyGain   float64 `json:"totalDailyGain"`
	AvgChangePercent float64 `json:"avgChangePercent"`
	Count            int     `json:"count"`
	TotalMarketValue float64 `json:"totalMarketValue"`
}

// AssetPage is the payload of the assets list endpoint.
type AssetPage struct {
	Pagination response.Pagination `json:"pagination"`
	Data       []Asset             `json:"data"`
	Stats      AssetStats          `json:"stats"`
}

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginData is the login endpoint payload.
type LoginData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
