// internal/contact/routes.go

package contact

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires the contact endpoints. Submission is public;
// triage is restricted to administrators.
func RegisterRoutes(router *mux.Router, handler *Handler, authenticate, requireAdmin mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/contact").Subrouter()

	api.HandleFunc("", handler.Submit).Methods(http.MethodPost)

	admin := router.PathPrefix("/api/v1/contact/admin").Subrouter()
	admin.Use(authenticate, requireAdmin)

	admin.HandleFunc("", handler.ListMessages).Methods(http.MethodGet)
	admin.HandleFunc("/stats", handler.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/{id}", handler.GetMessage).Methods(http.MethodGet)
	admin.HandleFunc("/{id}", handler.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/{id}", handler.DeleteMessage).Methods(http.MethodDelete)
}
