package viewstate

import (
	"context"
	"testing"
	"time"

	"github.com/Shaoyanting/HT-financial-system/internal/dataaccess"
	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/session"
	"github.com/Shaoyanting/HT-financial-system/internal/storage"
	"github.com/Shaoyanting/HT-financial-system/internal/transport"
)

// offlineService has no session and an unreachable base URL, so every
// accessor serves generated data without touching the network.
func offlineService() *dataaccess.Service {
	sess := session.New(storage.NewMemStore())
	client := transport.New("http://127.0.0.1:1", sess, transport.Hooks{})
	return dataaccess.New(client, sess, mockdata.New(1), time.Second)
}

func TestDebouncer_DeliversOnlyFinalValue(t *testing.T) {
	d := NewDebouncer[string](30 * time.Millisecond)
	defer d.Stop()

	d.Set("a")
	d.Set("ap")
	d.Set("app")

	select {
	case got := <-d.C():
		if got != "app" {
			t.Errorf("delivered %q, want final value", got)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("no delivery after quiet window")
	}

	// Nothing else pending.
	select {
	case got := <-d.C():
		t.Errorf("unexpected second delivery %q", got)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncer_SetRestartsWindow(t *testing.T) {
	d := NewDebouncer[int](60 * time.Millisecond)
	defer d.Stop()

	d.Set(1)
	time.Sleep(40 * time.Millisecond)
	d.Set(2) // restarts the window before 1 settles

	select {
	case <-d.C():
		t.Fatal("delivered before the restarted window elapsed")
	case <-time.After(30 * time.Millisecond):
	}

	select {
	case got := <-d.C():
		if got != 2 {
			t.Errorf("delivered %d, want 2", got)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("no delivery")
	}
}

func TestDebouncer_StopSuppressesDelivery(t *testing.T) {
	d := NewDebouncer[int](20 * time.Millisecond)
	d.Set(1)
	d.Stop()

	select {
	case got := <-d.C():
		t.Errorf("delivered %d after Stop", got)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestAssetGridState_RefreshAndMutators(t *testing.T) {
	g := NewAssetGridState(offlineService(), 10, time.Millisecond)

	if page, _ := g.Page(); page != nil {
		t.Fatal("page set before first refresh")
	}
	if err := g.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	page, degraded := g.Page()
	if page == nil || len(page.Data) != 10 {
		t.Fatalf("page = %+v", page)
	}
	if !degraded {
		t.Error("offline refresh should be degraded")
	}

	g.SetPage(2)
	if err := g.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	page, _ = g.Page()
	if page.Pagination.Page != 2 || page.Data[0].ID != 11 {
		t.Errorf("page 2 starts at id %d, pagination %+v", page.Data[0].ID, page.Pagination)
	}

	// Filter mutators reset to page 1.
	g.SetCategory("Stock")
	if p := g.Params(); p.Page != 1 || p.Category != "Stock" {
		t.Errorf("params after SetCategory = %+v", p)
	}
}

func TestAssetGridState_StaleResponseDiscarded(t *testing.T) {
	g := NewAssetGridState(offlineService(), 10, time.Millisecond)

	gen, params := g.snapshot()

	// The query changes while the old fetch is in flight.
	g.SetPage(3)

	if err := g.refresh(context.Background(), gen, params); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if page, _ := g.Page(); page != nil {
		t.Error("stale response applied over a newer generation")
	}

	if err := g.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	page, _ := g.Page()
	if page == nil || page.Pagination.Page != 3 {
		t.Errorf("current refresh not applied: %+v", page)
	}
}

func TestAssetGridState_RunAppliesDebouncedSearch(t *testing.T) {
	g := NewAssetGridState(offlineService(), 10, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	g.SetSearch("AA")
	g.SetSearch("AAPL")

	deadline := time.After(2 * time.Second)
	for {
		if p := g.Params(); p.Search == "AAPL" && p.Page == 1 {
			if page, _ := g.Page(); page != nil {
				break
			}
		}
		select {
		case <-deadline:
			t.Fatal("debounced search never applied")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestDashboardState_LoadFansOut(t *testing.T) {
	d := NewDashboardState(offlineService())

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !d.Degraded {
		t.Error("offline load should be degraded")
	}
	if d.Metrics.TotalAssets == 0 {
		t.Error("metrics panel empty")
	}
	if len(d.Allocation) == 0 || len(d.Allocation) > 7 {
		t.Errorf("allocation rows = %d", len(d.Allocation))
	}
	if len(d.Performance) != 180 {
		t.Errorf("performance points = %d, want 180", len(d.Performance))
	}
}
