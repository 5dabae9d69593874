// README: Capability adapter contract and fallback payloads.
package search

import (
	"context"
	"fmt"
)

// FallbackSource labels degraded payloads so downstream consumers and end
// users can distinguish them from live provider data.
const FallbackSource = "Fallback recommendations"

// Item is one normalized search result. Fields are capability-specific;
// unused ones stay empty.
type Item struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Rating      float32 `json:"rating,omitempty"`
	Price       string  `json:"price,omitempty"`
	Link        string  `json:"link,omitempty"`
}

// Result is a rank-preserving list of items plus the marker saying where
// they came from.
type Result struct {
	Items      []Item `json:"items"`
	DataSource string `json:"dataSource"`
}

// Query carries the semantic parameters an adapter turns into a
// provider-specific request. Only the fields relevant to a capability are
// consulted.
type Query struct {
	Location      string
	From          string
	DepartureDate string
	ReturnDate    string
	Travelers     int
	PriceTier     string
}

// Adapter wraps one external search integration. Implementations never
// return an error for provider outages; they degrade to a fallback payload
// instead. A non-nil error means the adapter itself misbehaved and is
// isolated per key by the gathering coordinator.
type Adapter interface {
	Key() string
	Search(ctx context.Context, q Query) (Result, error)
}

// Fallback builds the fixed-shape degraded payload for a capability. The
// entries are generic but actionable, so a provider outage never aborts the
// user-facing response.
func Fallback(key, location string) Result {
	loc := location
	if loc == "" {
		loc = "your destination"
	}

	var items []Item
	switch key {
	case "attractions":
		items = []Item{
			{Name: fmt.Sprintf("Popular Attraction in %s", loc), Description: "Check local tourism sites for top-rated attractions and current opening hours."},
			{Name: fmt.Sprintf("%s City Walking Tour", loc), Description: "Guided and self-guided walking tours are a reliable first-day option."},
			{Name: fmt.Sprintf("Museums and Landmarks of %s", loc), Description: "Most cities offer combination tickets for major museums and landmarks."},
		}
	case "restaurants":
		items = []Item{
			{Name: fmt.Sprintf("Local Favorite in %s", loc), Description: "Ask hotel staff or check recent reviews for well-rated local cuisine."},
			{Name: fmt.Sprintf("%s Food Market", loc), Description: "Food markets are a dependable way to sample regional dishes."},
		}
	case "hotels":
		items = []Item{
			{Name: fmt.Sprintf("Central %s Hotel", loc), Description: "Compare rates on major booking sites for central locations.", Price: "varies"},
			{Name: fmt.Sprintf("Budget Stay near %s center", loc), Description: "Hostels and guesthouses offer lower rates close to transit."},
		}
	case "flights":
		items = []Item{
			{Name: fmt.Sprintf("Flights to %s", loc), Description: "Live flight data is unavailable; check Google Flights, Skyscanner, or airline sites directly for current fares."},
		}
	case "weather":
		items = []Item{
			{Name: fmt.Sprintf("Weather in %s", loc), Description: "Live forecast unavailable; check a local weather service closer to your travel date."},
		}
	default:
		items = []Item{
			{Name: fmt.Sprintf("Suggestions for %s", loc), Description: "Live data unavailable; check local resources directly."},
		}
	}

	return Result{Items: items, DataSource: FallbackSource}
}
