// README: Weather adapter backed by the SerpAPI answer box.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
)

// WeatherAdapter looks up the current conditions and short forecast for the
// destination.
type WeatherAdapter struct {
	serp *SerpClient
}

func NewWeatherAdapter(serp *SerpClient) *WeatherAdapter {
	return &WeatherAdapter{serp: serp}
}

func (a *WeatherAdapter) Key() string { return "weather" }

func (a *WeatherAdapter) Search(ctx context.Context, q Query) (Result, error) {
	if !a.serp.Configured() {
		return Fallback(a.Key(), q.Location), nil
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", "weather in "+q.Location)
	params.Set("hl", "en")

	raw, err := a.serp.Get(ctx, params)
	if err != nil {
		log.Printf("weather search error: %v", err)
		return Fallback(a.Key(), q.Location), nil
	}

	items := parseWeather(raw, q.Location)
	if len(items) == 0 {
		return Fallback(a.Key(), q.Location), nil
	}
	return Result{Items: items, DataSource: serpSource}, nil
}

type serpAnswerBox struct {
	Temperature string `json:"temperature"`
	Unit        string `json:"unit"`
	Weather     string `json:"weather"`
	Location    string `json:"location"`
	Forecast    []struct {
		Day     string `json:"day"`
		High    string `json:"high"`
		Low     string `json:"low"`
		Weather string `json:"weather"`
	} `json:"forecast"`
}

func parseWeather(raw map[string]json.RawMessage, location string) []Item {
	msg, ok := raw["answer_box"]
	if !ok {
		return nil
	}
	var box serpAnswerBox
	if err := json.Unmarshal(msg, &box); err != nil {
		return nil
	}
	if box.Temperature == "" && box.Weather == "" {
		return nil
	}

	loc := box.Location
	if loc == "" {
		loc = location
	}

	items := []Item{{
		Name:        fmt.Sprintf("Current conditions in %s", loc),
		Description: fmt.Sprintf("%s° %s, %s", box.Temperature, box.Unit, box.Weather),
	}}
	for _, day := range box.Forecast {
		items = append(items, Item{
			Name:        day.Day,
			Description: fmt.Sprintf("%s, high %s / low %s", day.Weather, day.High, day.Low),
		})
		if len(items) >= maxItems {
			break
		}
	}
	return items
}
