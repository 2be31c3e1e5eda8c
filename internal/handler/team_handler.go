package handler

import (
	"net/http"

	"github.com/bagdasarian/team-registration/internal/handler/response"
)

const teamRegisteredMessage = "Team registered successfully"

// RegisterTeam - POST /register
func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.handleError(w, r, err, registerFailedMessage)
		return
	}

	team, err := h.registrationService.Register(r.Context(), httpRegisterToInput(req))
	if err != nil {
		h.handleError(w, r, err, registerFailedMessage)
		return
	}

	response.JSON(w, http.StatusCreated, RegisterResponse{
		Success: true,
		Message: teamRegisteredMessage,
		TeamID:  team.ID,
	})
}

// ListTeams - GET /register
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.registrationService.ListTeams(r.Context())
	if err != nil {
		h.handleError(w, r, err, fetchTeamsFailedMessage)
		return
	}

	response.JSON(w, http.StatusOK, ListTeamsResponse{
		Teams: domainTeamsToHTTP(teams),
	})
}
