package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arcadehub/arcade/internal/api/handler"
	"github.com/arcadehub/arcade/internal/api/middleware"
	"github.com/arcadehub/arcade/internal/services/stats"
	"github.com/arcadehub/arcade/internal/storage"
)

// RouterConfig holds configuration for the API router. The live room
// table is deliberately absent: it belongs to the dispatcher goroutine
// and must not be read from HTTP handlers.
type RouterConfig struct {
	Logger  *slog.Logger
	Stats   *stats.Service
	Storage storage.Storage
}

// NewRouter creates the HTTP router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.Stats)
	historyHandler := handler.NewHistoryHandler(cfg.Storage)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/scores", playerHandler.SubmitScore).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", playerHandler.Leaderboard).Methods(http.MethodGet)

	api.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", historyHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
