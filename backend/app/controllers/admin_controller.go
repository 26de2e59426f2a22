package controllers

import (
	"encoding/json"
	"net/http"

	"safesurf/backend/app/services"
	"safesurf/backend/global"
)

type AdminController struct{ users *services.UserService }

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{users: users}
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser POST /admin/users
func (c *AdminController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if err := c.users.CreateUser(req.Username, req.Password, req.Role); err != nil {
		global.Logger.Error().Err(err).Str("user", req.Username).Msg("failed to create user")
		writeJSONError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}
