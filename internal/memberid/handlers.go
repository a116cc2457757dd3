// internal/memberid/handlers.go

package memberid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prempath/prempath-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetStats handles GET /api/v1/memberid/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get member ID statistics")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Member ID statistics", stats)
}

// MigrateAll handles POST /api/v1/memberid/migrate
func (h *Handler) MigrateAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.MigrateAll(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to run member ID migration")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Migration complete", result)
}

// GenerateForUser handles POST /api/v1/memberid/generate/{userId}
func (h *Handler) GenerateForUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	memberID, err := h.service.Ensure(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate member ID")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Member ID assigned", map[string]string{
		"user_id":  userID,
		"memberid": memberID,
	})
}

// GetUsersWithout handles GET /api/v1/memberid/users-without
func (h *Handler) GetUsersWithout(w http.ResponseWriter, r *http.Request) {
	page := parseQueryInt(r, "page", 1)
	limit := parseQueryInt(r, "limit", 10)

	result, err := h.service.UsersWithoutMemberID(r.Context(), page, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get users without member IDs")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Users without member IDs", result)
}

// ValidateID handles GET /api/v1/memberid/validate/{memberid}
func (h *Handler) ValidateID(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["memberid"]

	utils.RespondWithData(w, http.StatusOK, "Validation result", map[string]interface{}{
		"memberid": memberID,
		"is_valid": Validate(memberID),
	})
}

func parseQueryInt(r *http.Request, key string, def int64) int64 {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
