package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/adapters/database"
	"github.com/zatekoja/hospitallocator/internal/adapters/search"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	"github.com/zatekoja/hospitallocator/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "drop the Typesense hospitals collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("hospital-indexer", cfg.Env, cfg.LogLevel)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		count, err := indexOnce(ctx, cfg, reset)
		if err != nil {
			log.Error().Err(err).Msg("reindex failed")
		} else {
			log.Info().Int("hospitals", count).Msg("reindex complete")
		}

		if interval <= 0 {
			break
		}
		reset = false

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

// indexOnce copies every stored hospital into the search index and returns
// how many were indexed. Individual document failures are logged and skipped.
func indexOnce(ctx context.Context, cfg *config.Config, reset bool) (int, error) {
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return 0, err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return 0, err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Str("collection", typesense.HospitalsCollection).Msg("resetting collection")
		if err := tsClient.ResetSchema(ctx); err != nil {
			return 0, err
		}
	} else if err := tsClient.InitSchema(ctx); err != nil {
		return 0, err
	}

	hospitals, err := database.NewHospitalAdapter(pgClient, nil).List(ctx)
	if err != nil {
		return 0, err
	}

	index := search.NewTypesenseAdapter(tsClient)
	indexed := 0
	for _, h := range hospitals {
		if err := index.Index(ctx, h); err != nil {
			log.Warn().Err(err).Str("hospital_id", h.ID).Msg("failed to index hospital")
			continue
		}
		indexed++
	}
	return indexed, nil
}
