package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"safesurf/backend/app/dto"
	"safesurf/backend/app/services"
	"safesurf/backend/global"
)

type WhitelistController struct {
	service *services.WhitelistService
}

func NewWhitelistController(svc *services.WhitelistService) *WhitelistController {
	return &WhitelistController{service: svc}
}

// Get GET /api/whitelist
func (c *WhitelistController) Get(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	resp, err := c.service.Get(r.Context(), userID)
	if err != nil {
		global.Logger.Error().Err(err).Str("user", userID).Msg("failed to get whitelist")
		writeJSONError(w, http.StatusInternalServerError, "failed to get whitelist")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update PUT /api/whitelist
func (c *WhitelistController) Update(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	var req dto.WhitelistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	resp, err := c.service.Update(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDomain) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		global.Logger.Error().Err(err).Str("user", userID).Msg("failed to update whitelist")
		writeJSONError(w, http.StatusInternalServerError, "failed to update whitelist")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
