package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"safesurf/backend/app/dto"
	"safesurf/backend/app/middleware"
	"safesurf/backend/app/services"
	"safesurf/backend/global"
)

type SettingsController struct {
	service *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{service: svc}
}

// requestUserID resolves the target user: the caller's own id, or the userid
// query parameter when an admin is acting on another account.
func requestUserID(r *http.Request) string {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		return ""
	}
	if qid := r.URL.Query().Get("userid"); qid != "" && claims.Role == "admin" {
		return qid
	}
	return claims.UserID
}

// Get GET /api/settings
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	resp, err := c.service.Get(r.Context(), userID)
	if err != nil {
		global.Logger.Error().Err(err).Str("user", userID).Msg("failed to get settings")
		writeJSONError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update PUT /api/settings
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	var req dto.SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	resp, err := c.service.Update(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		global.Logger.Error().Err(err).Str("user", userID).Msg("failed to update settings")
		writeJSONError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
