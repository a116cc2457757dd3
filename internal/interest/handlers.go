// internal/interest/handlers.go

package interest

import (
	"errors"
	"net/http"

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

// SendInterest handles POST /interests/{receiverId}
func (h *Handler) SendInterest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	interest, err := h.service.SendInterest(r.Context(), userID, mux.Vars(r)["receiverId"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, "Interest sent", interest)
}

// GetSentInterests handles GET /interests/sent
func (h *Handler) GetSentInterests(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	interests, err := h.service.GetSentInterests(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Sent interests", interests)
}

// GetReceivedInterests handles GET /interests/received
func (h *Handler) GetReceivedInterests(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	interests, err := h.service.GetReceivedInterests(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Received interests", interests)
}

// AcceptInterest handles POST /interests/{id}/accept
func (h *Handler) AcceptInterest(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

// RejectInterest handles POST /interests/{id}/reject
func (h *Handler) RejectInterest(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	interest, err := h.service.RespondToInterest(r.Context(), mux.Vars(r)["id"], userID, accept)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Interest "+interest.Status, interest)
}

// AddToWishlist handles POST /wishlist/{wishedUserId}
func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entry, err := h.service.AddToWishlist(r.Context(), userID, mux.Vars(r)["wishedUserId"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, "Added to wishlist", entry)
}

// GetWishlist handles GET /wishlist
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	wishes, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Wishlist", wishes)
}

// RemoveFromWishlist handles DELETE /wishlist/{wishedUserId}
func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.service.RemoveFromWishlist(r.Context(), userID, mux.Vars(r)["wishedUserId"]); err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Removed from wishlist")
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile id")
	case errors.Is(err, ErrSelfInterest):
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot target your own profile")
	case errors.Is(err, ErrDuplicateInterest):
		utils.RespondWithError(w, http.StatusConflict, "Interest already sent")
	case errors.Is(err, ErrDuplicateWish):
		utils.RespondWithError(w, http.StatusConflict, "Profile already in wishlist")
	case errors.Is(err, ErrInterestNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrNotReceiver):
		utils.RespondWithError(w, http.StatusForbidden, "Only the receiver can respond")
	case errors.Is(err, ErrAlreadyClosed):
		utils.RespondWithError(w, http.StatusConflict, "Interest already responded to")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
