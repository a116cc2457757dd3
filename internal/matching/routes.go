// internal/matching/routes.go

package matching

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires the matching endpoints. All routes require
// authentication; the forced removal route additionally requires an
// administrative caller.
func RegisterRoutes(router *mux.Router, handler *Handler, authenticate, requireAdmin mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authenticate)

	api.HandleFunc("/like/{targetId}", handler.ToggleLike).Methods(http.MethodPost)
	api.HandleFunc("/like/{targetId}", handler.Unlike).Methods(http.MethodDelete)
	api.HandleFunc("/matches", handler.GetMatches).Methods(http.MethodGet)
	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods(http.MethodGet)
	api.HandleFunc("/search", handler.Search).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{targetId}", handler.ViewProfile).Methods(http.MethodGet)

	admin := router.PathPrefix("/api/v1/matching/admin").Subrouter()
	admin.Use(authenticate, requireAdmin)

	admin.HandleFunc("/likes/{senderId}/{receiverId}", handler.ForceRemoveLike).Methods(http.MethodDelete)
}
