package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/augur/internal/nbadata"
	"github.com/fortuna/augur/internal/service"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc *service.AnalysisService
}

// NewHandler creates a new handler
func NewHandler(svc *service.AnalysisService) *Handler {
	return &Handler{svc: svc}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "augur",
		"version": "1.0.0",
	})
}

// Analyze runs the projection pipeline for one player
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req service.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Player == "" {
		respondError(w, http.StatusBadRequest, "Missing field 'player'", nil)
		return
	}

	analysis, err := h.svc.Analyze(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// SearchPlayers searches the player index by name
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'", nil)
		return
	}

	limit := 10 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	players, err := h.svc.SearchPlayers(r.Context(), query, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
		"count":   len(players),
	})
}

// GetTeams returns the league team directory
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams := make([]map[string]interface{}, 0, len(nbadata.Teams))
	for _, t := range nbadata.Teams {
		teams = append(teams, map[string]interface{}{
			"id":           t.ID,
			"abbreviation": t.Abbreviation,
			"name":         t.DisplayName(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTeamNextGame returns a team's next scheduled game
func (h *Handler) GetTeamNextGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	team, ok := nbadata.Resolve(vars["team"])
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown team", nil)
		return
	}

	game, err := h.svc.NextGame(r.Context(), team.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to resolve schedule", err)
		return
	}
	if game == nil {
		respondError(w, http.StatusNotFound, "No upcoming game found", nil)
		return
	}

	opponent := ""
	if opp, ok := nbadata.ByID(game.OpponentID); ok {
		opponent = opp.DisplayName()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":     team.DisplayName(),
		"date":     game.Date.Format("2006-01-02"),
		"opponent": opponent,
		"home":     game.Home,
	})
}

// GetInjuries returns the current league-wide injury report
func (h *Handler) GetInjuries(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.InjuryReport(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"injuries": report,
		"count":    len(report),
	})
}

// respondServiceError maps service errors onto HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		respondError(w, http.StatusNotFound, "Player not found", nil)
	case errors.Is(err, service.ErrNoUpcomingGame):
		respondError(w, http.StatusNotFound, "No upcoming game found", nil)
	case errors.Is(err, service.ErrDataUnavailable):
		respondError(w, http.StatusBadGateway, "External data unavailable", nil)
	default:
		respondError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
