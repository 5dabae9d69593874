// README: Gathering coordinator tests covering preconditions and failure isolation.
package agent

import (
	"context"
	"errors"
	"testing"

	"voyago/internal/search"
)

// stubAdapter is a test double for search.Adapter.
type stubAdapter struct {
	key    string
	res    search.Result
	err    error
	panics bool
	gotQ   search.Query
	called bool
}

func (s *stubAdapter) Key() string { return s.key }

func (s *stubAdapter) Search(_ context.Context, q search.Query) (search.Result, error) {
	s.called = true
	s.gotQ = q
	if s.panics {
		panic("adapter blew up")
	}
	return s.res, s.err
}

func liveResult(name string) search.Result {
	return search.Result{Items: []search.Item{{Name: name}}, DataSource: "live"}
}

func fullDetails() TravelDetails {
	d := NewTravelDetails()
	d.FromLocation = "New York"
	d.ToLocation = "Tokyo"
	d.DepartureDate = "2026-09-10"
	d.Budget = "$4000"
	d.Travelers = 2
	return d
}

func newStubSet() map[string]*stubAdapter {
	return map[string]*stubAdapter{
		"weather":     {key: "weather", res: liveResult("sunny")},
		"flights":     {key: "flights", res: liveResult("NYC-TYO")},
		"hotels":      {key: "hotels", res: liveResult("Park Hotel")},
		"attractions": {key: "attractions", res: liveResult("Senso-ji")},
		"restaurants": {key: "restaurants", res: liveResult("Sushi Dai")},
	}
}

func gathererFrom(stubs map[string]*stubAdapter) *Gatherer {
	return NewGatherer(0,
		stubs["weather"], stubs["flights"], stubs["hotels"],
		stubs["attractions"], stubs["restaurants"])
}

func TestGather_AllApplicable(t *testing.T) {
	stubs := newStubSet()
	results := gathererFrom(stubs).Gather(context.Background(), fullDetails())

	keys := results.Keys()
	if len(keys) != 5 {
		t.Fatalf("expected 5 populated keys, got %v", keys)
	}
	for _, key := range keys {
		res := results.Get(key)
		if res.Error != "" || len(res.Items) == 0 {
			t.Errorf("%s: unexpected result %+v", key, res)
		}
	}
}

func TestGather_IsolatesSingleFailure(t *testing.T) {
	stubs := newStubSet()
	stubs["restaurants"].err = errors.New("provider exploded")
	results := gathererFrom(stubs).Gather(context.Background(), fullDetails())

	if results.Restaurants == nil || results.Restaurants.Error == "" {
		t.Errorf("restaurants should carry an error marker: %+v", results.Restaurants)
	}
	for _, key := range []string{"weather", "flights", "hotels", "attractions"} {
		res := results.Get(key)
		if res == nil || res.Error != "" || len(res.Items) == 0 {
			t.Errorf("%s should have succeeded despite restaurants failing: %+v", key, res)
		}
	}
}

func TestGather_IsolatesPanic(t *testing.T) {
	stubs := newStubSet()
	stubs["weather"].panics = true
	results := gathererFrom(stubs).Gather(context.Background(), fullDetails())

	if results.Weather == nil || results.Weather.Error == "" {
		t.Errorf("weather should carry an error marker after panic: %+v", results.Weather)
	}
	if results.Hotels == nil || results.Hotels.Error != "" {
		t.Errorf("hotels should be unaffected: %+v", results.Hotels)
	}
}

func TestGather_SkipsFlightsWithoutOrigin(t *testing.T) {
	stubs := newStubSet()
	d := fullDetails()
	d.FromLocation = NotSpecified

	results := gathererFrom(stubs).Gather(context.Background(), d)

	if results.Flights != nil {
		t.Errorf("flights should be absent (not applicable), got %+v", results.Flights)
	}
	if stubs["flights"].called {
		t.Error("flights adapter must not be invoked without an origin")
	}
	for _, key := range []string{"weather", "hotels", "attractions", "restaurants"} {
		if results.Get(key) == nil {
			t.Errorf("%s should still be populated", key)
		}
	}
}

func TestGather_NothingApplicableWithoutDestination(t *testing.T) {
	stubs := newStubSet()
	results := gathererFrom(stubs).Gather(context.Background(), NewTravelDetails())

	if keys := results.Keys(); len(keys) != 0 {
		t.Errorf("expected no populated keys, got %v", keys)
	}
	if results.Err != "" {
		t.Errorf("no-op gathering is not an error, got %q", results.Err)
	}
}

func TestGather_CancelledContextSetsTopLevelError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := gathererFrom(newStubSet()).Gather(ctx, fullDetails())
	if results.Err == "" {
		t.Error("expected top-level error for aborted gathering")
	}
}

func TestGather_QueryParameters(t *testing.T) {
	stubs := newStubSet()
	gathererFrom(stubs).Gather(context.Background(), fullDetails())

	fq := stubs["flights"].gotQ
	if fq.From != "New York" || fq.Location != "Tokyo" || fq.DepartureDate != "2026-09-10" || fq.Travelers != 2 {
		t.Errorf("flights query = %+v", fq)
	}
	if tier := stubs["restaurants"].gotQ.PriceTier; tier != "luxury" {
		t.Errorf("restaurants price tier = %q, want luxury for $4000", tier)
	}
	// Sentinel fields are blanked, never interpolated.
	if stubs["weather"].gotQ.ReturnDate != "" {
		t.Errorf("returnDate should be blank, got %q", stubs["weather"].gotQ.ReturnDate)
	}
}

func TestBudgetTier(t *testing.T) {
	tests := []struct {
		budget string
		want   string
	}{
		{"2500", "luxury"},
		{"$2,500", "luxury"},
		{"1800", "mid-range"},
		{"2000", "mid-range"},
		{"not specified", "mid-range"},
		{"cheap as possible", "mid-range"},
		{"", "mid-range"},
	}
	for _, tt := range tests {
		t.Run(tt.budget, func(t *testing.T) {
			if got := budgetTier(tt.budget); got != tt.want {
				t.Errorf("budgetTier(%q) = %q, want %q", tt.budget, got, tt.want)
			}
		})
	}
}
