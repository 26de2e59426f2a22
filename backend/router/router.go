package router

import (
	"net/http"

	"safesurf/backend/app/controllers"
	"safesurf/backend/app/middleware"
)

func NewRouter(httpCtrl *controllers.HTTPController, authCtrl *controllers.AuthController, adminCtrl *controllers.AdminController, settingsCtrl *controllers.SettingsController, whitelistCtrl *controllers.WhitelistController, activityCtrl *controllers.ActivityController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("/ping", httpCtrl.Ping)
	mux.HandleFunc("/login", authCtrl.Login)

	// admin-only
	mux.Handle("/admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.CreateUser)))

	// policy documents
	mux.Handle("/api/settings", mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			settingsCtrl.Get(w, r)
		case http.MethodPut:
			settingsCtrl.Update(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/api/whitelist", mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			whitelistCtrl.Get(w, r)
		case http.MethodPut:
			whitelistCtrl.Update(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))

	// activity log (append-only)
	mux.Handle("/api/activity", mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			activityCtrl.List(w, r)
		case http.MethodPost:
			activityCtrl.Post(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))

	return mux
}
