// Command token mints an access token for local development and scripts.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/infrastructure/auth"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	"github.com/zatekoja/hospitallocator/pkg/config"
)

func main() {
	var userID string
	var ttl time.Duration
	flag.StringVar(&userID, "user", "", "user ID to embed in the token (random when empty)")
	flag.DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("hospital-token", cfg.Env, cfg.LogLevel)

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("AUTH_JWT_SECRET must be set")
	}
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	token, err := auth.NewManager(cfg.Auth.JWTSecret, ttl).GenerateAccessToken(userID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign token")
	}
	fmt.Println(token)
}
