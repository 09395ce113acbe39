package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	sharedmw "github.com/mcoot/fantasy-keepers/internal/middleware"
	"github.com/mcoot/fantasy-keepers/internal/services/keepers"
	"github.com/mcoot/fantasy-keepers/internal/web/handler"
	"github.com/mcoot/fantasy-keepers/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger            *slog.Logger
	KeepersController keepers.ControllerInterface
	Season            int
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(sharedmw.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Flash())

	keepersHandler := handler.NewKeepersHandler(cfg.KeepersController, cfg.Season, cfg.Logger)

	r.HandleFunc("/", keepersHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/", keepersHandler.LockIn).Methods(http.MethodPost)

	return r
}
