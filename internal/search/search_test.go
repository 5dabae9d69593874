// README: Adapter tests covering fallback payloads, normalization, and provider parsing.
package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"googlemaps.github.io/maps"
)

func TestFallback_LabeledAndNonEmpty(t *testing.T) {
	for _, key := range []string{"weather", "flights", "hotels", "attractions", "restaurants"} {
		t.Run(key, func(t *testing.T) {
			res := Fallback(key, "Tokyo")
			if res.DataSource != FallbackSource {
				t.Errorf("dataSource = %q, want %q", res.DataSource, FallbackSource)
			}
			if len(res.Items) == 0 {
				t.Fatal("fallback payload is empty")
			}
			for _, item := range res.Items {
				if item.Name == "" {
					t.Errorf("fallback item without a name: %+v", item)
				}
			}
		})
	}
}

func TestFallback_BlankLocation(t *testing.T) {
	res := Fallback("attractions", "")
	if len(res.Items) == 0 {
		t.Fatal("fallback payload is empty")
	}
	if res.Items[0].Name == "Popular Attraction in " {
		t.Errorf("blank location leaked into item name: %q", res.Items[0].Name)
	}
}

func TestNormalizePlaces(t *testing.T) {
	results := []maps.PlacesSearchResult{
		{Name: "Senso-ji", FormattedAddress: "2 Chome-3-1 Asakusa", Rating: 4.7, PlaceID: "abc", PriceLevel: 0},
		{Name: "Sushi Dai", FormattedAddress: "Toyosu Market", Rating: 4.6, PlaceID: "def", PriceLevel: 3},
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}

	items := normalizePlaces(results)
	if len(items) != maxItems {
		t.Fatalf("expected cut at %d items, got %d", maxItems, len(items))
	}
	if items[0].Name != "Senso-ji" || items[1].Name != "Sushi Dai" {
		t.Errorf("provider rank not preserved: %v", items)
	}
	if items[0].Link != "https://www.google.com/maps/place/?q=place_id:abc" {
		t.Errorf("link = %q", items[0].Link)
	}
	if items[0].Price != "" {
		t.Errorf("price level 0 should be blank, got %q", items[0].Price)
	}
	if items[1].Price != "$$$" {
		t.Errorf("price level 3 = %q, want $$$", items[1].Price)
	}
}

func TestPlacesAdapters_NilClientFallsBack(t *testing.T) {
	adapters := []Adapter{
		NewPlacesAdapter(nil),
		NewHotelsAdapter(nil),
		NewRestaurantsAdapter(nil),
	}
	for _, a := range adapters {
		t.Run(a.Key(), func(t *testing.T) {
			res, err := a.Search(context.Background(), Query{Location: "Tokyo"})
			if err != nil {
				t.Fatalf("adapters must not fail on missing credentials: %v", err)
			}
			if res.DataSource != FallbackSource {
				t.Errorf("dataSource = %q, want fallback", res.DataSource)
			}
		})
	}
}

func TestSerpBackedAdapters_UnconfiguredFallsBack(t *testing.T) {
	serp := NewSerpClient("", time.Second)
	for _, a := range []Adapter{NewFlightsAdapter(serp), NewWeatherAdapter(serp)} {
		t.Run(a.Key(), func(t *testing.T) {
			res, err := a.Search(context.Background(), Query{Location: "Tokyo", From: "New York", DepartureDate: "2026-09-10"})
			if err != nil {
				t.Fatalf("adapters must not fail on missing credentials: %v", err)
			}
			if res.DataSource != FallbackSource {
				t.Errorf("dataSource = %q, want fallback", res.DataSource)
			}
		})
	}
}

func TestFlightsAdapter_ParsesProviderResponse(t *testing.T) {
	payload := `{
		"best_flights": [
			{
				"flights": [
					{"airline": "ANA",
					 "departure_airport": {"name": "JFK", "time": "2026-09-10 11:05"},
					 "arrival_airport": {"name": "HND", "time": "2026-09-11 14:10"}}
				],
				"price": 1250,
				"total_duration": 840
			}
		],
		"other_flights": [
			{
				"flights": [
					{"airline": "United",
					 "departure_airport": {"name": "JFK", "time": "2026-09-10 08:00"},
					 "arrival_airport": {"name": "ORD", "time": "2026-09-10 09:30"}},
					{"airline": "United",
					 "departure_airport": {"name": "ORD", "time": "2026-09-10 11:00"},
					 "arrival_airport": {"name": "HND", "time": "2026-09-11 15:20"}}
				],
				"price": 980
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("engine") != "google_flights" {
			t.Errorf("engine = %q", r.URL.Query().Get("engine"))
		}
		if r.URL.Query().Get("departure_id") != "New York" {
			t.Errorf("departure_id = %q", r.URL.Query().Get("departure_id"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	serp := NewSerpClient("test-key", time.Second)
	serp.baseURL = srv.URL

	res, err := NewFlightsAdapter(serp).Search(context.Background(), Query{
		From: "New York", Location: "Tokyo", DepartureDate: "2026-09-10", Travelers: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.DataSource != serpSource {
		t.Errorf("dataSource = %q", res.DataSource)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 flight options, got %d", len(res.Items))
	}
	if res.Items[0].Name != "ANA" || res.Items[0].Price != "$1250" {
		t.Errorf("best flight = %+v", res.Items[0])
	}
	if res.Items[1].Description == "" || res.Items[1].Price != "$980" {
		t.Errorf("connecting flight = %+v", res.Items[1])
	}
}

func TestFlightsAdapter_ProviderErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	serp := NewSerpClient("test-key", time.Second)
	serp.baseURL = srv.URL

	res, err := NewFlightsAdapter(serp).Search(context.Background(), Query{
		From: "New York", Location: "Tokyo", DepartureDate: "2026-09-10",
	})
	if err != nil {
		t.Fatalf("provider errors must degrade, not fail: %v", err)
	}
	if res.DataSource != FallbackSource {
		t.Errorf("dataSource = %q, want fallback", res.DataSource)
	}
}

func TestWeatherAdapter_ParsesAnswerBox(t *testing.T) {
	payload := `{
		"answer_box": {
			"temperature": "72",
			"unit": "Fahrenheit",
			"weather": "Partly cloudy",
			"location": "Tokyo, Japan",
			"forecast": [
				{"day": "Friday", "high": "75", "low": "61", "weather": "Sunny"},
				{"day": "Saturday", "high": "73", "low": "60", "weather": "Rain"}
			]
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	serp := NewSerpClient("test-key", time.Second)
	serp.baseURL = srv.URL

	res, err := NewWeatherAdapter(serp).Search(context.Background(), Query{Location: "Tokyo"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 3 {
		t.Fatalf("expected current + 2 forecast items, got %d", len(res.Items))
	}
	if res.Items[0].Name != "Current conditions in Tokyo, Japan" {
		t.Errorf("current item = %+v", res.Items[0])
	}
	if res.Items[1].Name != "Friday" {
		t.Errorf("forecast item = %+v", res.Items[1])
	}
}

func TestWeatherAdapter_MissingAnswerBoxFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic_results": []}`))
	}))
	defer srv.Close()

	serp := NewSerpClient("test-key", time.Second)
	serp.baseURL = srv.URL

	res, err := NewWeatherAdapter(serp).Search(context.Background(), Query{Location: "Tokyo"})
	if err != nil {
		t.Fatal(err)
	}
	if res.DataSource != FallbackSource {
		t.Errorf("dataSource = %q, want fallback", res.DataSource)
	}
}

func TestSerpClient_SendsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	serp := NewSerpClient("secret", time.Second)
	serp.baseURL = srv.URL

	if _, err := serp.Get(context.Background(), url.Values{"engine": {"google"}}); err != nil {
		t.Fatal(err)
	}
	if gotKey != "secret" {
		t.Errorf("api_key = %q", gotKey)
	}
}
