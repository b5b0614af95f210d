package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/zenithweb/zenith/internal/config"
	"github.com/zenithweb/zenith/pkg/auth"
)

// RegisterRoutes registers all API endpoints. List/get/create/update require
// the Member role, delete requires Admin, and the week view is public.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {
	member := auth.RequireRole(deps.Authenticator, auth.RoleMember)
	admin := auth.RequireRole(deps.Authenticator, auth.RoleAdmin)

	// Events
	r.HandleFunc("/api/events/week", deps.EventHandler.CurrentWeekEvents).Methods("GET")
	r.Handle("/api/events", member(http.HandlerFunc(deps.EventHandler.ListEvents))).Methods("GET")
	r.Handle("/api/events", member(http.HandlerFunc(deps.EventHandler.CreateEvent))).Methods("POST")
	r.Handle("/api/events/{id}", member(http.HandlerFunc(deps.EventHandler.GetEvent))).Methods("GET")
	r.Handle("/api/events/{id}", member(http.HandlerFunc(deps.EventHandler.UpdateEvent))).Methods("PUT")
	r.Handle("/api/events/{id}", admin(http.HandlerFunc(deps.EventHandler.DeleteEvent))).Methods("DELETE")

	// Activities
	r.Handle("/api/activities", member(http.HandlerFunc(deps.ActivityHandler.ListActivities))).Methods("GET")
	r.Handle("/api/activities", member(http.HandlerFunc(deps.ActivityHandler.CreateActivity))).Methods("POST")
	r.Handle("/api/activities/{id}", member(http.HandlerFunc(deps.ActivityHandler.GetActivity))).Methods("GET")
	r.Handle("/api/activities/{id}", member(http.HandlerFunc(deps.ActivityHandler.UpdateActivity))).Methods("PUT")
	r.Handle("/api/activities/{id}", admin(http.HandlerFunc(deps.ActivityHandler.DeleteActivity))).Methods("DELETE")
}
