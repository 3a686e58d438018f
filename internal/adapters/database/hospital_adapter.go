package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

const hospitalsTable = "hospitals"

var hospitalColumns = []interface{}{
	"id", "name", "address", "phone", "email", "website",
	"latitude", "longitude", "type", "services", "rating",
	"is_emergency", "operating_hours", "created_at",
}

// HospitalAdapter implements HospitalRepository on PostgreSQL
type HospitalAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewHospitalAdapter creates a new hospital adapter. metrics may be nil.
func NewHospitalAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.HospitalRepository {
	return &HospitalAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// Create inserts a new hospital
func (a *HospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	defer a.observe(ctx, "hospitals.create", time.Now())

	hours, err := json.Marshal(hospital.OperatingHours)
	if err != nil {
		return apperrors.NewInternalError("failed to encode operating hours", err)
	}

	services := hospital.Services
	if services == nil {
		services = []string{}
	}

	record := goqu.Record{
		"id":              hospital.ID,
		"name":            hospital.Name,
		"address":         hospital.Address,
		"phone":           hospital.Phone,
		"email":           hospital.Email,
		"website":         hospital.Website,
		"latitude":        hospital.Latitude,
		"longitude":       hospital.Longitude,
		"type":            hospital.Type,
		"services":        pq.Array(services),
		"rating":          nullFloat(hospital.Rating),
		"is_emergency":    hospital.IsEmergency,
		"operating_hours": string(hours),
		"created_at":      hospital.CreatedAt,
	}

	query, args, err := a.db.Insert(hospitalsTable).Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("hospital %s already exists", hospital.ID))
		}
		return apperrors.NewInternalError("failed to create hospital", err)
	}
	return nil
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	defer a.observe(ctx, "hospitals.get", time.Now())

	query, args, err := a.db.Select(hospitalColumns...).
		From(hospitalsTable).
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	hospital, err := scanHospital(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}
	return hospital, nil
}

// List returns every hospital in insertion order
func (a *HospitalAdapter) List(ctx context.Context) ([]*entities.Hospital, error) {
	defer a.observe(ctx, "hospitals.list", time.Now())

	query, args, err := a.db.Select(hospitalColumns...).
		From(hospitalsTable).
		Order(goqu.I("seq").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.query(ctx, query, args)
}

// Count returns the number of stored hospitals
func (a *HospitalAdapter) Count(ctx context.Context) (int, error) {
	defer a.observe(ctx, "hospitals.count", time.Now())

	query, args, err := a.db.From(hospitalsTable).
		Select(goqu.COUNT("*")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count hospitals", err)
	}
	return count, nil
}

// SearchByName matches term as a case-insensitive substring of the name
func (a *HospitalAdapter) SearchByName(ctx context.Context, term string, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	defer a.observe(ctx, "hospitals.search", time.Now())

	ds := a.db.Select(hospitalColumns...).
		From(hospitalsTable).
		Where(goqu.C("name").ILike("%" + escapeLike(strings.TrimSpace(term)) + "%"))
	if filter.Type != "" {
		ds = ds.Where(goqu.Ex{"type": filter.Type})
	}
	if filter.EmergencyOnly {
		ds = ds.Where(goqu.Ex{"is_emergency": true})
	}

	query, args, err := ds.Order(goqu.I("seq").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}
	return a.query(ctx, query, args)
}

func (a *HospitalAdapter) query(ctx context.Context, query string, args []interface{}) ([]*entities.Hospital, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query hospitals", err)
	}
	defer rows.Close()

	hospitals := make([]*entities.Hospital, 0)
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hospitals", err)
	}
	return hospitals, nil
}

func (a *HospitalAdapter) observe(ctx context.Context, operation string, start time.Time) {
	observability.RecordDBMetric(ctx, a.metrics, operation, time.Since(start))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHospital(row rowScanner) (*entities.Hospital, error) {
	h := &entities.Hospital{}
	var (
		services pq.StringArray
		rating   sql.NullFloat64
		hours    []byte
	)

	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Address,
		&h.Phone,
		&h.Email,
		&h.Website,
		&h.Latitude,
		&h.Longitude,
		&h.Type,
		&services,
		&rating,
		&h.IsEmergency,
		&hours,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Services = []string(services)
	if h.Services == nil {
		h.Services = []string{}
	}
	if rating.Valid {
		v := rating.Float64
		h.Rating = &v
	}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &h.OperatingHours); err != nil {
			return nil, fmt.Errorf("decode operating hours: %w", err)
		}
	}
	return h, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
