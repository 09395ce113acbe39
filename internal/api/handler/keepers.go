package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fantasy-keepers/internal/api/request"
	"github.com/mcoot/fantasy-keepers/internal/api/response"
	"github.com/mcoot/fantasy-keepers/internal/services/keepers"
)

// maxBodyBytes bounds request bodies; a submission is a team, three names and a password
const maxBodyBytes = 64 << 10

// KeepersHandler handles keeper-related API requests
type KeepersHandler struct {
	controller keepers.ControllerInterface
}

// NewKeepersHandler creates a new KeepersHandler
func NewKeepersHandler(controller keepers.ControllerInterface) *KeepersHandler {
	return &KeepersHandler{controller: controller}
}

// Teams handles GET /api/keepers/teams
func (h *KeepersHandler) Teams(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.controller.Roster(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamsFromSnapshot(snapshot))
}

// Team handles GET /api/keepers/team/{team}
func (h *KeepersHandler) Team(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]

	players, err := h.controller.TeamRoster(r.Context(), team)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamRoster{Team: team, Players: players})
}

// Submit handles POST /api/keepers/submit
func (h *KeepersHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	confirmation, err := h.controller.Submit(r.Context(), keepers.SubmitRequest{
		Team:     req.Team,
		Players:  req.PlayerNames(),
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitFromConfirmation(confirmation))
}

// Decrypt handles POST /api/keepers/decrypt
func (h *KeepersHandler) Decrypt(w http.ResponseWriter, r *http.Request) {
	var req request.DecryptRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	confirmation, err := h.controller.Decrypt(r.Context(), req.Team, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Decrypt{
		Team:    confirmation.Team,
		Keepers: confirmation.Keepers,
	})
}
