package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arcadehub/arcade/internal/api/response"
	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/storage"
)

// HistoryHandler serves the completed-session archive routes
type HistoryHandler struct {
	storage storage.Storage
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(store storage.Storage) *HistoryHandler {
	return &HistoryHandler{storage: store}
}

// List returns all archived sessions in completion order
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.ListSessionRecords(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"records": records})
}

// Get returns one archived session by id
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	record, err := h.storage.GetSessionRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			response.Error(w, http.StatusNotFound, "session not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	response.JSON(w, http.StatusOK, record)
}
