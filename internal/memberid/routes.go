package memberid

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires the member ID admin surface. Every route
// requires an authenticated administrator.
func RegisterRoutes(router *mux.Router, handler *Handler, authenticate, requireAdmin mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/memberid").Subrouter()
	api.Use(authenticate, requireAdmin)

	api.HandleFunc("/stats", handler.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/migrate", handler.MigrateAll).Methods(http.MethodPost)
	api.HandleFunc("/users-without", handler.GetUsersWithout).Methods(http.MethodGet)
	api.HandleFunc("/generate/{userId}", handler.GenerateForUser).Methods(http.MethodPost)
	api.HandleFunc("/validate/{memberid}", handler.ValidateID).Methods(http.MethodGet)
}
