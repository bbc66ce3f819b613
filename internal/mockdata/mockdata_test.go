package mockdata

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestAssets_RangesAndSigns(t *testing.T) {
	g := New(1)
	assets := g.Assets(200)

	if len(assets) != 200 {
		t.Fatalf("len = %d, want 200", len(assets))
	}

	for _, a := range assets {
		if a.CurrentPrice < 100 || a.CurrentPrice > 5000 {
			t.Errorf("asset %d: currentPrice %f out of range", a.ID, a.CurrentPrice)
		}
		if math.Abs(a.ChangePercent) < 0.1 || math.Abs(a.ChangePercent) > 15 {
			t.Errorf("asset %d: changePercent %f out of range", a.ID, a.ChangePercent)
		}
		if a.Position < 1000 || a.Position > 100000 {
			t.Errorf("asset %d: position %d out of range", a.ID, a.Position)
		}
		if a.Volatility < 0.1 || a.Volatility > 3.2 {
			t.Errorf("asset %d: volatility %f out of range", a.ID, a.Volatility)
		}
		// Gains follow the sign of the change percent.
		if a.ChangePercent > 0 && (a.DailyGain < 0 || a.TotalGain < 0) {
			t.Errorf("asset %d: positive change with negative gains", a.ID)
		}
		if a.ChangePercent < 0 && (a.DailyGain > 0 || a.TotalGain > 0) {
			t.Errorf("asset %d: negative change with positive gains", a.ID)
		}
		if a.AssetCategory == "" || a.Code == "" || a.Name == "" {
			t.Errorf("asset %d: missing identity fields", a.ID)
		}
	}

	// IDs are sequential from 1 so deep links resolve.
	for i, a := range assets {
		if a.ID != i+1 {
			t.Fatalf("asset IDs not sequential: got %d at index %d", a.ID, i)
		}
	}
}

func TestGenerator_DeterministicForSeed(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	a := New(42).WithClock(now)
	b := New(42).WithClock(now)

	if !reflect.DeepEqual(a.Assets(20), b.Assets(20)) {
		t.Error("Assets not deterministic for equal seeds")
	}
	if !reflect.DeepEqual(a.PortfolioMetrics(), b.PortfolioMetrics()) {
		t.Error("PortfolioMetrics not deterministic for equal seeds")
	}
	if !reflect.DeepEqual(a.DrawdownData(365), b.DrawdownData(365)) {
		t.Error("DrawdownData not deterministic for equal seeds")
	}

	// Different seeds should diverge.
	c := New(43).WithClock(now)
	if reflect.DeepEqual(New(42).WithClock(now).Assets(20), c.Assets(20)) {
		t.Error("different seeds produced identical assets")
	}
}

func TestDrawdownData_NonPositiveAndZeroAtHigh(t *testing.T) {
	g := New(7)
	data := g.DrawdownData(365)

	if len(data) == 0 {
		t.Fatal("drawdown series must never be empty")
	}

	runningMax := 0.0
	for i, p := range data {
		if p.Drawdown > 0 {
			t.Errorf("point %d: drawdown %f > 0", i, p.Drawdown)
		}
		if p.Price > runningMax {
			runningMax = p.Price
			if p.Drawdown != 0 {
				t.Errorf("point %d: new running max %f but drawdown %f != 0", i, p.Price, p.Drawdown)
			}
		}
	}
}

func TestDrawdownData_Thinning(t *testing.T) {
	g := New(3)

	// 365 days with step 3 yields ~122 points.
	long := g.DrawdownData(365)
	if len(long) < 30 || len(long) > 130 {
		t.Errorf("365-day series has %d points, want chart-sized", len(long))
	}

	// Short ranges keep daily resolution.
	short := New(3).DrawdownData(30)
	if len(short) != 30 {
		t.Errorf("30-day series has %d points, want 30", len(short))
	}

	// Degenerate input still yields one point.
	empty := New(3).DrawdownData(0)
	if len(empty) != 1 || empty[0].Drawdown != 0 || empty[0].Price != 1000 {
		t.Errorf("zero-day series = %+v, want single baseline point", empty)
	}
}

func TestHistoricalPrices_WalkAndDates(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) }
	g := New(9).WithClock(now)

	prices := g.HistoricalPrices("AAPL", 10)
	if len(prices) != 10 {
		t.Fatalf("len = %d, want 10", len(prices))
	}
	if prices[0].Date != "2026-08-21" {
		t.Errorf("first date = %s, want 2026-08-21", prices[0].Date)
	}
	if prices[9].Date != "2026-08-30" {
		t.Errorf("last date = %s, want 2026-08-30", prices[9].Date)
	}
	for i := 1; i < len(prices); i++ {
		if prices[i].Date <= prices[i-1].Date {
			t.Fatalf("dates not ascending at %d", i)
		}
	}
	for _, p := range prices {
		if p.Volume < 100_000 || p.Volume > 10_000_000 {
			t.Errorf("volume %d out of range", p.Volume)
		}
		if p.Price <= 0 {
			t.Errorf("price %f must stay positive", p.Price)
		}
	}
}

func TestAllocationAndIndustryShapes(t *testing.T) {
	g := New(11)

	alloc := g.AssetAllocation()
	if len(alloc) != 6 {
		t.Fatalf("allocation rows = %d, want 6", len(alloc))
	}
	for _, row := range alloc {
		if row.Value < 5 || row.Value > 40 {
			t.Errorf("allocation %s value %f out of range", row.Category, row.Value)
		}
		if len(row.Color) != 7 || row.Color[0] != '#' {
			t.Errorf("allocation %s color %q not hex", row.Category, row.Color)
		}
	}

	dist := g.IndustryDistribution()
	if len(dist) != 10 {
		t.Fatalf("industry rows = %d, want 10", len(dist))
	}
	for _, row := range dist {
		if row.Value < 5 || row.Value > 25 {
			t.Errorf("industry %s value %f out of range", row.Industry, row.Value)
		}
	}
}

func TestMonthlyReturns_ChronologicalMonths(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC) }
	g := New(5).WithClock(now)

	rows := g.MonthlyReturns(6)
	if len(rows) != 6 {
		t.Fatalf("len = %d, want 6", len(rows))
	}
	if rows[0].Month != "2026-03" || rows[5].Month != "2026-08" {
		t.Errorf("months = %s..%s, want 2026-03..2026-08", rows[0].Month, rows[5].Month)
	}
}
