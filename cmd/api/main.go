package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/adapters/cache"
	"github.com/zatekoja/hospitallocator/internal/adapters/database"
	"github.com/zatekoja/hospitallocator/internal/adapters/events"
	"github.com/zatekoja/hospitallocator/internal/adapters/memory"
	"github.com/zatekoja/hospitallocator/internal/adapters/providers/geolocation"
	"github.com/zatekoja/hospitallocator/internal/adapters/search"
	"github.com/zatekoja/hospitallocator/internal/api/handlers"
	"github.com/zatekoja/hospitallocator/internal/api/middleware"
	"github.com/zatekoja/hospitallocator/internal/api/routes"
	"github.com/zatekoja/hospitallocator/internal/application/services"
	"github.com/zatekoja/hospitallocator/internal/domain/providers"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/auth"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	"github.com/zatekoja/hospitallocator/pkg/config"
)

const cacheWarmInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Redis is optional: without it there is no cache and no event bus
	var (
		cacheProvider providers.CacheProvider
		eventBus      *events.RedisEventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
		}
	}

	var (
		hospitalRepo repositories.HospitalRepository
		locationRepo repositories.UserLocationRepository
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		hospitalRepo = memory.NewHospitalRepository()
		locationRepo = memory.NewUserLocationRepository()
		log.Info().Msg("using in-memory storage")
	default:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()

		if err := pgClient.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to apply database schema")
		}

		hospitalRepo = database.NewHospitalAdapter(pgClient, metrics)
		locationRepo = database.NewUserLocationAdapter(pgClient, metrics)
	}

	if cacheProvider != nil {
		services.NewCacheWarmingService(hospitalRepo, cacheProvider).StartPeriodicWarming(ctx, cacheWarmInterval)
		hospitalRepo = database.NewCachedHospitalAdapter(hospitalRepo, cacheProvider, metrics)
		log.Info().Msg("hospital repository wrapped with cache")
	}

	var searchRepo repositories.HospitalSearchRepository
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, name search uses the database")
		} else if err := tsClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema, name search uses the database")
		} else {
			searchRepo = search.NewTypesenseAdapter(tsClient)
		}
	}

	var geolocationProvider providers.GeolocationProvider
	if cfg.Geocoding.GoogleAPIKey != "" {
		geolocationProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geocoding.GoogleAPIKey, cacheProvider)
	} else {
		log.Info().Msg("GOOGLE_MAPS_API_KEY not set, using built-in gazetteer for geocoding")
		geolocationProvider = geolocation.NewStaticGeolocationProvider()
	}

	identity := auth.ContextIdentity{}

	hospitalService := services.NewHospitalService(hospitalRepo, searchRepo, identity)
	hospitalService.SetMetrics(metrics)
	hospitalService.SetDefaultRadius(cfg.Search.DefaultRadiusKm)
	locationService := services.NewLocationService(locationRepo, identity)

	var invalidation *services.CacheInvalidationService
	if eventBus != nil {
		hospitalService.SetEventBus(eventBus)
		invalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation service")
		}
	}

	var tokens middleware.TokenVerifier
	if cfg.Auth.JWTSecret != "" {
		tokens = auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	} else {
		log.Warn().Msg("AUTH_JWT_SECRET not set, all requests are anonymous")
	}

	router := routes.NewRouter(
		handlers.NewHospitalHandler(hospitalService),
		handlers.NewLocationHandler(locationService),
		handlers.NewGeolocationHandler(geolocationProvider),
		tokens,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if invalidation != nil {
		invalidation.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
