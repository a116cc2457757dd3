// internal/contact/handlers.go

package contact

import (
	"encoding/json"
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

// Submit handles POST /contact (public, no authentication)
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}
	utils.RespondWithData(w, http.StatusCreated, "Message received", message)
}

// ListMessages handles GET /contact/admin
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	filters := &ListFilters{
		Status: r.URL.Query().Get("status"),
		Page:   parseQueryInt(r, "page"),
		Limit:  parseQueryInt(r, "limit"),
	}

	result, err := h.service.ListMessages(r.Context(), filters)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Contact messages", result)
}

// GetMessage handles GET /contact/admin/{id}
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	message, err := h.service.GetMessage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Contact message", message)
}

// UpdateStatus handles PATCH /contact/admin/{id}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.service.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Status updated", message)
}

// DeleteMessage handles DELETE /contact/admin/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMessage(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Message deleted")
}

// GetStats handles GET /contact/admin/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Contact statistics", stats)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrMessageNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
}

func parseQueryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}
