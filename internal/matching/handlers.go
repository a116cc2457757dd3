// internal/matching/handlers.go

package matching

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
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ToggleLike handles POST /matching/like/{targetId}
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	targetID := mux.Vars(r)["targetId"]

	result, err := h.service.ToggleLike(r.Context(), viewerID, targetID)
	if err != nil {
		h.respondLikeError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, result.Message, result)
}

// Unlike handles DELETE /matching/like/{targetId}
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	targetID := mux.Vars(r)["targetId"]

	if err := h.service.Unlike(r.Context(), viewerID, targetID); err != nil {
		h.respondLikeError(w, err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Profile unliked")
}

// GetMatches handles GET /matching/matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	matches, err := h.service.GetMatches(r.Context(), viewerID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Mutual matches", matches)
}

// GetRecommendations handles GET /matching/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	recommendations, err := h.service.Recommend(r.Context(), viewerID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build recommendations")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Recommended profiles", recommendations)
}

// Search handles GET /matching/search with optional maxAge, location,
// religion and caste query parameters.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filters := &SearchFilters{
		Location: r.URL.Query().Get("location"),
		Religion: r.URL.Query().Get("religion"),
		Caste:    r.URL.Query().Get("caste"),
	}
	if raw := r.URL.Query().Get("maxAge"); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil || maxAge < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid maxAge")
			return
		}
		filters.MaxAge = maxAge
	}

	profiles, err := h.service.Search(r.Context(), viewerID, filters)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Search results", profiles)
}

// ViewProfile handles GET /matching/profiles/{targetId}
func (h *Handler) ViewProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	targetID := mux.Vars(r)["targetId"]

	view, err := h.service.ViewProfile(r.Context(), viewerID, targetID)
	if err != nil {
		h.respondLikeError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile", view)
}

// ForceRemoveLike handles DELETE /matching/admin/likes/{senderId}/{receiverId}
func (h *Handler) ForceRemoveLike(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	outcome, err := h.service.ForceRemoveLike(r.Context(), vars["senderId"], vars["receiverId"])
	if err != nil {
		if errors.Is(err, ErrInvalidID) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile id")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove like")
		return
	}

	messages := map[RemovalOutcome]string{
		RemovedRelationship:     "Like removed",
		RemovedNotificationOnly: "No like found; stray notification removed",
		RemovedNothing:          "No like or notification found",
	}
	utils.RespondWithData(w, http.StatusOK, messages[outcome], map[string]string{
		"outcome": string(outcome),
	})
}

func (h *Handler) respondLikeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile id")
	case errors.Is(err, ErrSelfLike):
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot like your own profile")
	case errors.Is(err, ErrAlreadyLiked):
		utils.RespondWithError(w, http.StatusConflict, "Profile already liked")
	case errors.Is(err, ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
