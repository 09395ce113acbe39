package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fantasy-keepers/internal/api/handler"
	"github.com/mcoot/fantasy-keepers/internal/api/middleware"
	"github.com/mcoot/fantasy-keepers/internal/api/response"
	sharedmw "github.com/mcoot/fantasy-keepers/internal/middleware"
	"github.com/mcoot/fantasy-keepers/internal/services/keepers"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	KeepersController keepers.ControllerInterface
	// Season is reported by the health check
	Season int
	// CORSOrigins lists allowed browser origins; empty allows any
	CORSOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	keepersHandler := handler.NewKeepersHandler(cfg.KeepersController)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(sharedmw.RequestID)
	api.Use(sharedmw.Logging(cfg.Logger))

	keeperRoutes := api.PathPrefix("/keepers").Subrouter()
	keeperRoutes.HandleFunc("/teams", keepersHandler.Teams).Methods(http.MethodGet)
	keeperRoutes.HandleFunc("/team/{team}", keepersHandler.Team).Methods(http.MethodGet)
	keeperRoutes.HandleFunc("/submit", keepersHandler.Submit).Methods(http.MethodPost)
	keeperRoutes.HandleFunc("/decrypt", keepersHandler.Decrypt).Methods(http.MethodPost)

	api.HandleFunc("/health", healthHandler(cfg.Season)).Methods(http.MethodGet)

	// CORS wraps the router so preflight OPTIONS requests are answered before route matching
	return middleware.CORS(cfg.CORSOrigins)(r)
}

func healthHandler(season int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Season: season})
	}
}
