// README: Attractions adapter backed by Google Places text search.
package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"googlemaps.github.io/maps"
)

const (
	placesSource = "Google Places API"
	maxItems     = 5
)

// PlacesAdapter searches tourist attractions near the destination.
type PlacesAdapter struct {
	client *maps.Client
}

// NewPlacesAdapter wraps a maps client. A nil client means no credentials
// are configured and every search degrades to the fallback payload.
func NewPlacesAdapter(client *maps.Client) *PlacesAdapter {
	return &PlacesAdapter{client: client}
}

func (a *PlacesAdapter) Key() string { return "attractions" }

func (a *PlacesAdapter) Search(ctx context.Context, q Query) (Result, error) {
	if a.client == nil {
		return Fallback(a.Key(), q.Location), nil
	}

	r := &maps.TextSearchRequest{
		Query: fmt.Sprintf("top tourist attractions in %s", q.Location),
	}
	resp, err := a.client.TextSearch(ctx, r)
	if err != nil {
		log.Printf("attractions search error: %v", err)
		return Fallback(a.Key(), q.Location), nil
	}

	items := normalizePlaces(resp.Results)
	if len(items) == 0 {
		return Fallback(a.Key(), q.Location), nil
	}
	return Result{Items: items, DataSource: placesSource}, nil
}

// normalizePlaces converts Places API results into the adapter item shape,
// preserving provider rank and cutting at maxItems.
func normalizePlaces(results []maps.PlacesSearchResult) []Item {
	var items []Item
	for _, r := range results {
		items = append(items, Item{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  r.Rating,
			Price:   priceLevelLabel(r.PriceLevel),
			Link:    placeLink(r.PlaceID),
		})
		if len(items) >= maxItems {
			break
		}
	}
	return items
}

func placeLink(placeID string) string {
	if placeID == "" {
		return ""
	}
	return "https://www.google.com/maps/place/?q=place_id:" + placeID
}

func priceLevelLabel(level int) string {
	if level <= 0 || level > 4 {
		return ""
	}
	return strings.Repeat("$", level)
}
