package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arcadehub/arcade/internal/api/response"
	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/services/stats"
)

// PlayerHandler serves the player directory routes
type PlayerHandler struct {
	stats *stats.Service
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(statsService *stats.Service) *PlayerHandler {
	return &PlayerHandler{stats: statsService}
}

type registerRequest struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

// Register stores a display name for a player, creating the profile on
// first sight
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		response.Error(w, http.StatusBadRequest, "player_id is required")
		return
	}

	profile := h.stats.Register(r.Context(), model.PlayerID(req.PlayerID), req.DisplayName)
	response.JSON(w, http.StatusOK, profile)
}

type scoreRequest struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// SubmitScore applies a best-score-wins submission against the stored
// win count
func (h *PlayerHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		response.Error(w, http.StatusBadRequest, "player_id is required")
		return
	}
	if req.Score < 0 {
		response.Error(w, http.StatusBadRequest, "score must not be negative")
		return
	}

	h.stats.SubmitScore(r.Context(), model.PlayerID(req.PlayerID), req.DisplayName, req.Score)
	response.NoContent(w)
}

// Leaderboard returns the standings over all stored profiles
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries := h.stats.Leaderboard(r.Context())
	response.JSON(w, http.StatusOK, map[string]any{"entries": entries})
}
