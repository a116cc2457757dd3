// internal/interest/routes.go

package interest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires the interest and wishlist endpoints. All routes
// require authentication.
func RegisterRoutes(router *mux.Router, handler *Handler, authenticate mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/interests").Subrouter()
	api.Use(authenticate)

	api.HandleFunc("/sent", handler.GetSentInterests).Methods(http.MethodGet)
	api.HandleFunc("/received", handler.GetReceivedInterests).Methods(http.MethodGet)
	api.HandleFunc("/{id}/accept", handler.AcceptInterest).Methods(http.MethodPost)
	api.HandleFunc("/{id}/reject", handler.RejectInterest).Methods(http.MethodPost)
	api.HandleFunc("/{receiverId}", handler.SendInterest).Methods(http.MethodPost)

	wishlist := router.PathPrefix("/api/v1/wishlist").Subrouter()
	wishlist.Use(authenticate)

	wishlist.HandleFunc("", handler.GetWishlist).Methods(http.MethodGet)
	wishlist.HandleFunc("/{wishedUserId}", handler.AddToWishlist).Methods(http.MethodPost)
	wishlist.HandleFunc("/{wishedUserId}", handler.RemoveFromWishlist).Methods(http.MethodDelete)
}
