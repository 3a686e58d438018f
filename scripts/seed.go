package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/adapters/database"
	"github.com/zatekoja/hospitallocator/internal/adapters/search"
	"github.com/zatekoja/hospitallocator/internal/application/services"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/auth"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	"github.com/zatekoja/hospitallocator/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("hospital-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE hospitals, user_locations RESTART IDENTITY`); err != nil {
			log.Fatal().Err(err).Msg("failed to truncate tables")
		}
	}

	var searchRepo repositories.HospitalSearchRepository
	if cfg.Typesense.Enabled {
		if tsClient, err := typesense.NewClient(&cfg.Typesense); err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, seeding without indexing")
		} else if err := tsClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema, seeding without indexing")
		} else {
			searchRepo = search.NewTypesenseAdapter(tsClient)
		}
	}

	service := services.NewHospitalService(database.NewHospitalAdapter(pgClient, nil), searchRepo, auth.ContextIdentity{})

	// The seed operation requires a caller; the script acts as a fixed operator.
	message, err := service.SeedHospitals(auth.WithUserID(ctx, "seed-script"))
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg(message)
}
