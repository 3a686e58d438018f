package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	tsclient "github.com/zatekoja/hospitallocator/internal/infrastructure/clients/typesense"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

const maxPerPage = 250

// TypesenseAdapter implements hospital search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.HospitalSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// hospitalDocument is the shape stored in the hospitals collection
type hospitalDocument struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Address        string                  `json:"address"`
	Phone          string                  `json:"phone,omitempty"`
	Email          string                  `json:"email,omitempty"`
	Website        string                  `json:"website,omitempty"`
	Type           string                  `json:"type"`
	Services       []string                `json:"services"`
	Rating         *float64                `json:"rating,omitempty"`
	IsEmergency    bool                    `json:"is_emergency"`
	OperatingHours entities.OperatingHours `json:"operating_hours"`
	Location       []float64               `json:"location"`
	CreatedAt      int64                   `json:"created_at"`
}

func toDocument(h *entities.Hospital) hospitalDocument {
	services := h.Services
	if services == nil {
		services = []string{}
	}
	return hospitalDocument{
		ID:             h.ID,
		Name:           h.Name,
		Address:        h.Address,
		Phone:          h.Phone,
		Email:          h.Email,
		Website:        h.Website,
		Type:           h.Type,
		Services:       services,
		Rating:         h.Rating,
		IsEmergency:    h.IsEmergency,
		OperatingHours: h.OperatingHours,
		Location:       []float64{h.Latitude, h.Longitude},
		CreatedAt:      h.CreatedAt.UnixMilli(),
	}
}

func (d hospitalDocument) toEntity() *entities.Hospital {
	h := &entities.Hospital{
		ID:             d.ID,
		Name:           d.Name,
		Address:        d.Address,
		Phone:          d.Phone,
		Email:          d.Email,
		Website:        d.Website,
		Type:           d.Type,
		Services:       d.Services,
		Rating:         d.Rating,
		IsEmergency:    d.IsEmergency,
		OperatingHours: d.OperatingHours,
		CreatedAt:      time.UnixMilli(d.CreatedAt).UTC(),
	}
	if h.Services == nil {
		h.Services = []string{}
	}
	if len(d.Location) == 2 {
		h.Latitude = d.Location[0]
		h.Longitude = d.Location[1]
	}
	return h
}

// Index upserts a hospital document
func (a *TypesenseAdapter) Index(ctx context.Context, hospital *entities.Hospital) error {
	_, err := a.client.Client().Collection(tsclient.HospitalsCollection).Documents().Upsert(ctx, toDocument(hospital))
	if err != nil {
		return apperrors.NewExternalError(fmt.Sprintf("failed to index hospital %s", hospital.ID), err)
	}
	return nil
}

// Delete removes a hospital from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.HospitalsCollection).Document(id).Delete(ctx)
	if err != nil {
		return apperrors.NewExternalError(fmt.Sprintf("failed to delete hospital %s from index", id), err)
	}
	return nil
}

// SearchByName runs a full-text query on the name field. Type and emergency
// constraints are pushed down as index filters. Hits keep Typesense's
// relevance order.
func (a *TypesenseAdapter) SearchByName(ctx context.Context, term string, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(strings.TrimSpace(term)),
		QueryBy: pointer.String("name"),
		Page:    pointer.Int(1),
		PerPage: pointer.Int(maxPerPage),
	}
	if f := buildFilter(filter); f != "" {
		searchParams.FilterBy = pointer.String(f)
	}

	result, err := a.client.Client().Collection(tsclient.HospitalsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to search hospitals", err)
	}

	hospitals := make([]*entities.Hospital, 0)
	if result.Hits == nil {
		return hospitals, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		h, err := decodeDocument(*hit.Document)
		if err != nil {
			return nil, apperrors.NewExternalError("failed to decode search hit", err)
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}

func buildFilter(filter repositories.HospitalFilter) string {
	var clauses []string
	if filter.Type != "" {
		clauses = append(clauses, fmt.Sprintf("type:=`%s`", strings.ReplaceAll(filter.Type, "`", "")))
	}
	if filter.EmergencyOnly {
		clauses = append(clauses, "is_emergency:=true")
	}
	return strings.Join(clauses, " && ")
}

func decodeDocument(doc map[string]interface{}) (*entities.Hospital, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var d hospitalDocument
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d.toEntity(), nil
}
