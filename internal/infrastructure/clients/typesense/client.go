package typesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/hospitallocator/pkg/config"
	"github.com/zatekoja/hospitallocator/pkg/retry"
)

const (
	HospitalsCollection = "hospitals"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.Do(
		context.Background(),
		retry.DefaultConfig(),
		"Typesense",
		func(ctx context.Context) error {
			healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			ok, err := client.Health(healthCtx, 2*time.Second)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("typesense reported unhealthy")
			}
			return nil
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("Typesense connection attempt failed")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// HospitalsSchema describes the indexed fields of a hospital document.
// Remaining fields are stored with the document but not indexed.
func HospitalsSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: HospitalsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "type", Type: "string", Facet: pointer.True()},
			{Name: "is_emergency", Type: "bool", Facet: pointer.True()},
			{Name: "location", Type: "geopoint"},
			{Name: "rating", Type: "float", Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}
}

// InitSchema ensures the hospitals collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	_, err := c.client.Collection(HospitalsCollection).Retrieve(ctx)
	if err == nil {
		log.Debug().Str("collection", HospitalsCollection).Msg("Typesense collection already exists")
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to retrieve collection: %w", err)
	}

	if _, err := c.client.Collections().Create(ctx, HospitalsSchema()); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", HospitalsCollection).Msg("created Typesense collection")
	return nil
}

// ResetSchema drops and recreates the hospitals collection
func (c *Client) ResetSchema(ctx context.Context) error {
	if _, err := c.client.Collection(HospitalsCollection).Delete(ctx); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return c.InitSchema(ctx)
}

func isNotFound(err error) bool {
	var httpErr *typesense.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status == http.StatusNotFound
	}
	return false
}
