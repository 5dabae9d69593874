// README: One-shot CLI demo of the itinerary pipeline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"voyago/internal/agent"
	"voyago/internal/ai"
	"voyago/internal/config"
	"voyago/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	message := "I want to go from New York to Tokyo next month for 5 days with a $4000 budget"
	if len(os.Args) > 1 {
		message = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()

	var provider ai.CompletionProvider = ai.Unconfigured{}
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
		if err != nil {
			log.Printf("gemini init failed, running without model: %v", err)
		} else {
			defer gemini.Close()
			provider = gemini
		}
	}

	var mapsClient *maps.Client
	if cfg.Search.MapsKey != "" {
		if mc, err := maps.NewClient(maps.WithAPIKey(cfg.Search.MapsKey)); err == nil {
			mapsClient = mc
		}
	}
	serp := search.NewSerpClient(cfg.Search.SerpKey, time.Duration(cfg.Search.TimeoutSeconds)*time.Second)

	gatherer := agent.NewGatherer(time.Duration(cfg.Search.TimeoutSeconds)*time.Second,
		search.NewWeatherAdapter(serp),
		search.NewFlightsAdapter(serp),
		search.NewHotelsAdapter(mapsClient),
		search.NewPlacesAdapter(mapsClient),
		search.NewRestaurantsAdapter(mapsClient),
	)

	orchestrator := agent.NewOrchestrator(
		agent.NewDetailExtractor(provider),
		gatherer,
		agent.NewSynthesizer(provider),
	)

	fmt.Printf("User: %s\n\n", message)
	state := orchestrator.Run(ctx, message)

	details, _ := json.MarshalIndent(state.TravelDetails, "", "  ")
	fmt.Printf("Travel details:\n%s\n\n", details)
	fmt.Printf("Tools used: %s\n\n", strings.Join(state.ToolResults.Keys(), ", "))
	fmt.Println(state.FinalResponse)
}
