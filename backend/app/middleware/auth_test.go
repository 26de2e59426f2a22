package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtutil "safesurf/backend/app/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuth() *Auth {
	return &Auth{Signer: &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "safesurf", ExpMin: 5}}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRequireAuthPassesClaimsThrough(t *testing.T) {
	a := testAuth()
	token, err := a.Signer.Sign("u1", "parent1", "parent")
	require.NoError(t, err)

	var got *jwtutil.Claims
	h := a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "parent", got.Role)
}

func TestRequireAuthRejectsWithJSONBody(t *testing.T) {
	a := testAuth()
	h := a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), name)
		assert.Equal(t, "missing or invalid token", decodeError(t, rec), name)
	}
}

func TestRequireAdminForbidsNonAdmins(t *testing.T) {
	a := testAuth()
	token, err := a.Signer.Sign("u1", "parent1", "parent")
	require.NoError(t, err)

	h := a.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	req := httptest.NewRequest(http.MethodPost, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin access required", decodeError(t, rec))
}

func TestRequireAdminAcceptsAdmins(t *testing.T) {
	a := testAuth()
	token, err := a.Signer.Sign("u0", "admin", "admin")
	require.NoError(t, err)

	ran := false
	h := a.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true }))
	req := httptest.NewRequest(http.MethodPost, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ran)
}
