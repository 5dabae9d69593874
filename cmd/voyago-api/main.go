// README: Entry point; loads config, wires providers and stores, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"googlemaps.github.io/maps"

	"voyago/internal/agent"
	"voyago/internal/ai"
	"voyago/internal/config"
	"voyago/internal/conversation"
	httptransport "voyago/internal/http"
	"voyago/internal/http/handlers"
	"voyago/internal/infra"
	"voyago/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiTimeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	searchTimeout := time.Duration(cfg.Search.TimeoutSeconds) * time.Second

	// Missing credentials are tolerated everywhere: the pipeline degrades
	// to heuristic extraction, fallback payloads, and templated synthesis.
	var provider ai.CompletionProvider = ai.Unconfigured{}
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, aiTimeout)
		if err != nil {
			log.Printf("gemini init failed, running without model: %v", err)
		} else {
			defer gemini.Close()
			provider = gemini
		}
	}

	var mapsClient *maps.Client
	if cfg.Search.MapsKey != "" {
		mc, err := maps.NewClient(maps.WithAPIKey(cfg.Search.MapsKey))
		if err != nil {
			log.Printf("maps init failed, places adapters will use fallbacks: %v", err)
		} else {
			mapsClient = mc
		}
	}

	serp := search.NewSerpClient(cfg.Search.SerpKey, searchTimeout)

	gatherer := agent.NewGatherer(searchTimeout,
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

	var store conversation.Store
	switch cfg.Store.Backend {
	case "redis":
		store = conversation.NewRedisStore(infra.NewRedis(cfg.Redis.Addr))
	case "postgres":
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		store = conversation.NewPostgresStore(pool)
	default:
		store = conversation.NewMemoryStore()
	}

	handler := httptransport.NewRouter(orchestrator, store, handlers.ProviderStatus{
		Gemini:     provider.Configured(),
		GoogleMaps: mapsClient != nil,
		SerpAPI:    serp.Configured(),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("voyago-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
