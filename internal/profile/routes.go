// internal/profile/routes.go

package profile

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authenticate, requireAdmin mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/profiles").Subrouter()
	api.Use(authenticate)

	api.HandleFunc("", handler.ListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/me", handler.GetOwnProfile).Methods(http.MethodGet)
	api.HandleFunc("/me", handler.UpdateOwnProfile).Methods(http.MethodPut)
	api.HandleFunc("/me/photo", handler.UploadProfilePhoto).Methods(http.MethodPost)
	api.HandleFunc("/me/gallery", handler.GetOwnGallery).Methods(http.MethodGet)
	api.HandleFunc("/me/gallery", handler.UploadGalleryPhoto).Methods(http.MethodPost)
	api.HandleFunc("/me/gallery", handler.DeleteGalleryPhoto).Methods(http.MethodDelete)

	admin := router.PathPrefix("/api/v1/profiles/admin").Subrouter()
	admin.Use(authenticate, requireAdmin)

	admin.HandleFunc("/admins", handler.AdminListAdmins).Methods(http.MethodGet)
	admin.HandleFunc("/{id}", handler.AdminGetProfile).Methods(http.MethodGet)
	admin.HandleFunc("/{id}", handler.AdminUpdateProfile).Methods(http.MethodPut)
	admin.HandleFunc("/{id}", handler.AdminDeleteProfile).Methods(http.MethodDelete)
}
