// internal/notification/handlers.go

package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/prempath/prempath-backend/internal/auth"
	"github.com/prempath/prempath-backend/internal/common/utils"
)

type Handler struct {
	service Service
	hub     *Hub
}

func NewHandler(service Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// GetNotifications handles GET /notifications
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit := parseQueryInt(r, "limit", defaultPageSize)
	offset := parseQueryInt(r, "offset", 0)

	response, err := h.service.GetNotifications(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Notifications", response)
}

// GetAllNotifications handles GET /notifications/admin/all
func (h *Handler) GetAllNotifications(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", defaultPageSize)
	offset := parseQueryInt(r, "offset", 0)

	notifications, err := h.service.GetAllNotifications(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "All notifications", notifications)
}

// MarkAsRead handles PATCH /notifications/{id}/read
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := h.service.MarkAsRead(r.Context(), mux.Vars(r)["id"], userID)
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
	case errors.Is(err, ErrUnauthorized):
		utils.RespondWithError(w, http.StatusForbidden, "Notification belongs to another user")
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark notification read")
	default:
		utils.RespondWithMessage(w, http.StatusOK, "Notification marked as read")
	}
}

// MarkAllAsRead handles POST /notifications/read-all
func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.service.MarkAllAsRead(r.Context(), userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark notifications read")
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "All notifications marked as read")
}

// ServeWS handles GET /notifications/ws
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
