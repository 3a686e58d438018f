package routes

import (
	"net/http"

	"github.com/zatekoja/hospitallocator/internal/api/handlers"
	"github.com/zatekoja/hospitallocator/internal/api/middleware"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler    *handlers.HospitalHandler
	locationHandler    *handlers.LocationHandler
	geolocationHandler *handlers.GeolocationHandler

	tokens         middleware.TokenVerifier
	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router. tokens and metrics may be nil.
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	locationHandler *handlers.LocationHandler,
	geolocationHandler *handlers.GeolocationHandler,
	tokens middleware.TokenVerifier,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		hospitalHandler:    hospitalHandler,
		locationHandler:    locationHandler,
		geolocationHandler: geolocationHandler,
		tokens:             tokens,
		allowedOrigins:     allowedOrigins,
		metrics:            metrics,
	}
}

// handle registers a route. Observability sits inside the mux so spans and
// metrics are labelled with the matched pattern.
func (r *Router) handle(pattern string, fn http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.ObservabilityMiddleware(r.metrics)(fn))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Hospitals
	r.handle("GET /api/hospitals/nearby", r.hospitalHandler.GetNearbyHospitals)
	r.handle("GET /api/hospitals/search", r.hospitalHandler.SearchHospitals)
	r.handle("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)
	r.handle("POST /api/hospitals", r.hospitalHandler.CreateHospital)
	r.handle("POST /api/hospitals/seed", r.hospitalHandler.SeedHospitals)
	r.handle("GET /api/hospital-types", r.hospitalHandler.ListHospitalTypes)

	// Caller location
	r.handle("PUT /api/me/location", r.locationHandler.SaveLocation)
	r.handle("GET /api/me/location", r.locationHandler.GetLocation)

	if r.geolocationHandler != nil {
		r.handle("GET /api/geocode", r.geolocationHandler.Geocode)
	}

	// Last applied runs first
	var handler http.Handler = r.mux
	handler = middleware.OptionalAuth(r.tokens)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
