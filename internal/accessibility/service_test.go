package accessibility

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/accessnyc/liftwatch/internal/feed"
)

func jsonServer(t *testing.T, fetches *atomic.Int32, body any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode body: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

var equipmentRows = []map[string]any{
	{"station": "A", "trainno": "1/2", "equipmentno": "E1", "equipmenttype": "EL", "stationcomplexid": "100", "isactive": "Y"},
	{"station": "A", "trainno": "1", "equipmentno": "S1", "equipmenttype": "ES", "stationcomplexid": "100", "isactive": "Y"},
}

func TestServiceStationsCachedForProcessLifetime(t *testing.T) {
	var fetches atomic.Int32
	server := jsonServer(t, &fetches, equipmentRows)

	svc := NewService(feed.NewClient("", time.Second), server.URL, "")

	for i := 0; i < 3; i++ {
		stations, err := svc.Stations()
		if err != nil {
			t.Fatalf("Stations call %d: %v", i, err)
		}
		if len(stations) != 1 || stations[0].ID != "100" {
			t.Fatalf("stations = %+v", stations)
		}
	}

	if n := fetches.Load(); n != 1 {
		t.Errorf("equipment fetched %d times, want 1", n)
	}
}

func TestServiceStatusJoinsOutages(t *testing.T) {
	var equipFetches, outageFetches atomic.Int32
	equipServer := jsonServer(t, &equipFetches, equipmentRows)
	outageServer := jsonServer(t, &outageFetches, []map[string]any{
		{"equipment": "E1", "equipmenttype": "EL", "reason": "Repair", "isupcomingoutage": "N"},
	})

	svc := NewService(feed.NewClient("", time.Second), equipServer.URL, outageServer.URL)

	status, err := svc.Status("100")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.ElevatorStatus != StatusOutOfService {
		t.Errorf("ElevatorStatus = %q", status.ElevatorStatus)
	}
	if status.EscalatorStatus != StatusOperational {
		t.Errorf("EscalatorStatus = %q", status.EscalatorStatus)
	}

	// Outages are never cached; a second status query re-fetches them.
	if _, err := svc.Status("100"); err != nil {
		t.Fatalf("second Status: %v", err)
	}
	if n := outageFetches.Load(); n != 2 {
		t.Errorf("outages fetched %d times, want 2", n)
	}
	if n := equipFetches.Load(); n != 1 {
		t.Errorf("equipment fetched %d times, want 1", n)
	}
}

func TestServiceConcurrentLoadsSingleFetch(t *testing.T) {
	var fetches atomic.Int32
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		time.Sleep(50 * time.Millisecond)
		json.NewEncoder(w).Encode(equipmentRows)
	}))
	t.Cleanup(slow.Close)

	svc := NewService(feed.NewClient("", 5*time.Second), slow.URL, "")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Stations(); err != nil {
				t.Errorf("Stations: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := fetches.Load(); n != 1 {
		t.Errorf("equipment fetched %d times under concurrency, want 1", n)
	}
}

func TestServiceMissingEquipmentURL(t *testing.T) {
	svc := NewService(feed.NewClient("", time.Second), "", "")
	if _, err := svc.Stations(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestServiceMissingOutagesURLOnlyFailsStatus(t *testing.T) {
	var fetches atomic.Int32
	server := jsonServer(t, &fetches, equipmentRows)

	svc := NewService(feed.NewClient("", time.Second), server.URL, "")

	if _, err := svc.Stations(); err != nil {
		t.Fatalf("Stations should work without outages URL: %v", err)
	}
	if _, err := svc.Status("100"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Status err = %v, want ErrNotConfigured", err)
	}
}

func TestServiceUpstreamFailureNotCached(t *testing.T) {
	var calls atomic.Int32
	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(equipmentRows)
	}))
	t.Cleanup(flaky.Close)

	svc := NewService(feed.NewClient("", time.Second), flaky.URL, "")

	if _, err := svc.Stations(); err == nil {
		t.Fatal("want error from failing upstream")
	}
	stations, err := svc.Stations()
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if len(stations) != 1 {
		t.Errorf("stations = %+v", stations)
	}
}

func TestServiceEnvelopeFeed(t *testing.T) {
	var fetches atomic.Int32
	server := jsonServer(t, &fetches, map[string]any{"data": equipmentRows})

	svc := NewService(feed.NewClient("", time.Second), server.URL, "")
	stations, err := svc.Stations()
	if err != nil {
		t.Fatalf("Stations: %v", err)
	}
	if len(stations) != 1 {
		t.Errorf("stations = %+v", stations)
	}
}
