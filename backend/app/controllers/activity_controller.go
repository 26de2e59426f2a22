package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"safesurf/backend/app/dto"
	"safesurf/backend/app/services"
	"safesurf/backend/global"
)

const defaultActivityLimit = 100

type ActivityController struct {
	service *services.ActivityService
}

func NewActivityController(svc *services.ActivityService) *ActivityController {
	return &ActivityController{service: svc}
}

// Post POST /api/activity
func (c *ActivityController) Post(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	var req dto.ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.URL == "" || req.Reason == "" {
		writeJSONError(w, http.StatusBadRequest, "url and reason are required")
		return
	}
	resp, err := c.service.Append(r.Context(), userID, req)
	if err != nil {
		global.Logger.Error().Err(err).Str("user", userID).Msg("failed to append activity")
		writeJSONError(w, http.StatusInternalServerError, "failed to append activity")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List GET /api/activity?limit=
func (c *ActivityController) List(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	limit := defaultActivityLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	logs, err := c.service.Latest(r.Context(), userID, limit)
	if err != nil {
		global.Logger.Error().Err(err).Str("user", userID).Msg("failed to list activity")
		writeJSONError(w, http.StatusInternalServerError, "failed to list activity")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
