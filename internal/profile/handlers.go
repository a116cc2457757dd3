// internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/prempath/prempath-backend/internal/auth"
	"github.com/prempath/prempath-backend/internal/common/utils"
)

// Multipart uploads are capped at 10 MB
const maxUploadSize = 10 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetOwnProfile handles GET /profiles/me
func (h *Handler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.service.GetOwnProfile(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Profile", result)
}

// UpdateOwnProfile handles PUT /profiles/me
func (h *Handler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.service.UpdateOwnProfile(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Profile updated", profile)
}

// ListProfiles handles GET /profiles
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filters := &ListFilters{
		Location: r.URL.Query().Get("location"),
		Religion: r.URL.Query().Get("religion"),
		Caste:    r.URL.Query().Get("caste"),
	}
	if raw := r.URL.Query().Get("age"); raw != "" {
		if age, err := strconv.Atoi(raw); err == nil && age > 0 {
			filters.Age = age
		}
	}

	profiles, err := h.service.ListProfiles(r.Context(), userID, filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Profiles", profiles)
}

// UploadProfilePhoto handles POST /profiles/me/photo
func (h *Handler) UploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.service.UploadProfilePhoto(r.Context(), userID, file, header)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Profile photo uploaded", map[string]string{"url": url})
}

// UploadGalleryPhoto handles POST /profiles/me/gallery
func (h *Handler) UploadGalleryPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	gallery, err := h.service.UploadGalleryPhoto(r.Context(), userID, file, header)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Photo added to gallery", gallery)
}

// GetOwnGallery handles GET /profiles/me/gallery
func (h *Handler) GetOwnGallery(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	gallery, err := h.service.GetGallery(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Gallery", gallery)
}

// DeleteGalleryPhoto handles DELETE /profiles/me/gallery
func (h *Handler) DeleteGalleryPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		URL string `json:"url" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Photo url is required")
		return
	}

	if err := h.service.DeleteGalleryPhoto(r.Context(), userID, req.URL); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Photo not found")
			return
		}
		h.respondError(w, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Photo removed")
}

// AdminGetProfile handles GET /profiles/admin/{id}
func (h *Handler) AdminGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfileByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Profile", profile)
}

// AdminUpdateProfile handles PUT /profiles/admin/{id}
func (h *Handler) AdminUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.service.AdminUpdateProfile(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Profile updated", profile)
}

// AdminDeleteProfile handles DELETE /profiles/admin/{id}
func (h *Handler) AdminDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.service.AdminDeleteProfile(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Profile deleted")
}

// AdminListAdmins handles GET /profiles/admin/admins
func (h *Handler) AdminListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdmins(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Administrators", admins)
}

func (h *Handler) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, nil, false
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No photo file uploaded")
		return nil, nil, false
	}
	return file, header, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile id")
	case errors.Is(err, ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
