// README: Flights adapter backed by the SerpAPI Google Flights engine.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
)

// FlightsAdapter queries flight options between the origin and destination
// around the departure date.
type FlightsAdapter struct {
	serp *SerpClient
}

func NewFlightsAdapter(serp *SerpClient) *FlightsAdapter {
	return &FlightsAdapter{serp: serp}
}

func (a *FlightsAdapter) Key() string { return "flights" }

func (a *FlightsAdapter) Search(ctx context.Context, q Query) (Result, error) {
	if !a.serp.Configured() {
		return Fallback(a.Key(), q.Location), nil
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.From)
	params.Set("arrival_id", q.Location)
	params.Set("outbound_date", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	} else {
		params.Set("type", "2") // one-way
	}
	if q.Travelers > 0 {
		params.Set("adults", strconv.Itoa(q.Travelers))
	}
	params.Set("currency", "USD")
	params.Set("hl", "en")

	raw, err := a.serp.Get(ctx, params)
	if err != nil {
		log.Printf("flights search error: %v", err)
		return Fallback(a.Key(), q.Location), nil
	}

	items := parseFlights(raw)
	if len(items) == 0 {
		return Fallback(a.Key(), q.Location), nil
	}
	return Result{Items: items, DataSource: serpSource}, nil
}

type serpFlightLeg struct {
	Airline          string `json:"airline"`
	DepartureAirport struct {
		Name string `json:"name"`
		Time string `json:"time"`
	} `json:"departure_airport"`
	ArrivalAirport struct {
		Name string `json:"name"`
		Time string `json:"time"`
	} `json:"arrival_airport"`
}

type serpFlightOption struct {
	Flights       []serpFlightLeg `json:"flights"`
	Price         float64         `json:"price"`
	TotalDuration int             `json:"total_duration"`
}

// parseFlights reads best_flights then other_flights, preserving rank.
func parseFlights(raw map[string]json.RawMessage) []Item {
	var options []serpFlightOption
	for _, key := range []string{"best_flights", "other_flights"} {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		var batch []serpFlightOption
		if err := json.Unmarshal(msg, &batch); err != nil {
			continue
		}
		options = append(options, batch...)
	}

	var items []Item
	for _, opt := range options {
		if len(opt.Flights) == 0 {
			continue
		}
		first := opt.Flights[0]
		last := opt.Flights[len(opt.Flights)-1]

		item := Item{
			Name: first.Airline,
			Description: strings.TrimSpace(fmt.Sprintf("%s (%s) to %s (%s), %s",
				first.DepartureAirport.Name, first.DepartureAirport.Time,
				last.ArrivalAirport.Name, last.ArrivalAirport.Time,
				stopsLabel(len(opt.Flights)-1))),
		}
		if opt.Price > 0 {
			item.Price = fmt.Sprintf("$%.0f", opt.Price)
		}
		items = append(items, item)
		if len(items) >= maxItems {
			break
		}
	}
	return items
}

func stopsLabel(stops int) string {
	switch {
	case stops <= 0:
		return "nonstop"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
