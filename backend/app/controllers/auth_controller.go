package controllers

import (
	"encoding/json"
	"net/http"

	"safesurf/backend/app/dto"
	jwtutil "safesurf/backend/app/jwt"
	"safesurf/backend/app/services"
	"safesurf/backend/global"
)

type AuthController struct {
	users  *services.UserService
	signer *jwtutil.Signer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{users: users, signer: signer}
}

// Login POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, err := c.users.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := c.signer.Sign(u.PublicID, u.Username, u.Role)
	if err != nil {
		global.Logger.Error().Err(err).Str("user", u.Username).Msg("failed to sign token")
		writeJSONError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	writeJSON(w, http.StatusOK, dto.LoginResponse{AccessToken: token, UserID: u.PublicID, Role: u.Role})
}
