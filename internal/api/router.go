package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/mergington-activities/internal/api/apierr"
	"github.com/mcoot/mergington-activities/internal/api/handler"
	apimiddleware "github.com/mcoot/mergington-activities/internal/api/middleware"
	"github.com/mcoot/mergington-activities/internal/middleware"
	"github.com/mcoot/mergington-activities/internal/services/auth"
	"github.com/mcoot/mergington-activities/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	RegistryService *registry.Service
	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins []string
	// Web serves every path the API does not own (optional)
	Web http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	activityHandler := handler.NewActivityHandler(cfg.RegistryService)
	teacherHandler := handler.NewTeacherHandler(cfg.AuthService, cfg.RegistryService)

	// Common middleware, applied to every matched route
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(apimiddleware.Metrics)

	// Listing and open signup path (no auth)
	r.HandleFunc("/activities", activityHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/activities/{name}/signup", activityHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/activities/{name}/unregister", activityHandler.Unregister).Methods(http.MethodDelete)

	// Teacher-gated path (credentials in the body)
	r.HandleFunc("/login", teacherHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/register", teacherHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/unregister", teacherHandler.Unregister).Methods(http.MethodPost)

	// Operational endpoints
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if cfg.Web != nil {
		// Skipped when an API route already matched the path with another
		// method, so that request still gets a 405.
		r.PathPrefix("/").MatcherFunc(func(_ *http.Request, m *mux.RouteMatch) bool {
			return m.MatchErr == nil
		}).Handler(cfg.Web)
	} else {
		r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			apierr.WriteError(w, apierr.NewNotFoundError())
		})
	}

	// CORS wraps the router so preflight requests never reach route matching
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})(r)
}
