// README: Hotels adapter backed by Google Places text search.
package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"googlemaps.github.io/maps"
)

// HotelsAdapter searches lodging at the destination. Check-in/out dates and
// traveler count are optional refinements carried into the item description.
type HotelsAdapter struct {
	client *maps.Client
}

func NewHotelsAdapter(client *maps.Client) *HotelsAdapter {
	return &HotelsAdapter{client: client}
}

func (a *HotelsAdapter) Key() string { return "hotels" }

func (a *HotelsAdapter) Search(ctx context.Context, q Query) (Result, error) {
	if a.client == nil {
		return Fallback(a.Key(), q.Location), nil
	}

	resp, err := a.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query: fmt.Sprintf("hotels in %s", q.Location),
	})
	if err != nil {
		log.Printf("hotels search error: %v", err)
		return Fallback(a.Key(), q.Location), nil
	}

	items := normalizePlaces(resp.Results)
	if len(items) == 0 {
		return Fallback(a.Key(), q.Location), nil
	}

	if note := stayNote(q); note != "" {
		for i := range items {
			items[i].Description = note
		}
	}
	return Result{Items: items, DataSource: placesSource}, nil
}

// stayNote summarizes the requested stay so the synthesizer can surface it.
func stayNote(q Query) string {
	var parts []string
	if q.DepartureDate != "" {
		parts = append(parts, "check-in "+q.DepartureDate)
	}
	if q.ReturnDate != "" {
		parts = append(parts, "check-out "+q.ReturnDate)
	}
	if q.Travelers > 0 {
		parts = append(parts, fmt.Sprintf("%d traveler(s)", q.Travelers))
	}
	return strings.Join(parts, ", ")
}
