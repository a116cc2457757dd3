// internal/notification/routes.go

package notification

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authenticate, requireAdmin mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authenticate)

	api.HandleFunc("", handler.GetNotifications).Methods(http.MethodGet)
	api.HandleFunc("/read-all", handler.MarkAllAsRead).Methods(http.MethodPost)
	api.HandleFunc("/ws", handler.ServeWS).Methods(http.MethodGet)
	api.HandleFunc("/{id}/read", handler.MarkAsRead).Methods(http.MethodPatch)

	admin := router.PathPrefix("/api/v1/notifications/admin").Subrouter()
	admin.Use(authenticate, requireAdmin)

	admin.HandleFunc("/all", handler.GetAllNotifications).Methods(http.MethodGet)
}
