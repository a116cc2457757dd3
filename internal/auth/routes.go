// internal/auth/routes.go

package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1/auth").Subrouter()

	api.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh", handler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/forgot-password", handler.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/reset-password", handler.ResetPassword).Methods(http.MethodPost)
}
