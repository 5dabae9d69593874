// README: Restaurants adapter backed by Google Places text search.
package search

import (
	"context"
	"fmt"
	"log"

	"googlemaps.github.io/maps"
)

// RestaurantsAdapter searches restaurants at the destination, biased by the
// price tier the coordinator derives from the traveler's budget.
type RestaurantsAdapter struct {
	client *maps.Client
}

func NewRestaurantsAdapter(client *maps.Client) *RestaurantsAdapter {
	return &RestaurantsAdapter{client: client}
}

func (a *RestaurantsAdapter) Key() string { return "restaurants" }

func (a *RestaurantsAdapter) Search(ctx context.Context, q Query) (Result, error) {
	if a.client == nil {
		return Fallback(a.Key(), q.Location), nil
	}

	query := fmt.Sprintf("popular restaurants in %s", q.Location)
	if q.PriceTier == "luxury" {
		query = fmt.Sprintf("fine dining restaurants in %s", q.Location)
	}

	resp, err := a.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		log.Printf("restaurants search error: %v", err)
		return Fallback(a.Key(), q.Location), nil
	}

	items := normalizePlaces(resp.Results)
	if len(items) == 0 {
		return Fallback(a.Key(), q.Location), nil
	}
	return Result{Items: items, DataSource: placesSource}, nil
}
