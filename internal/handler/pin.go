package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/w24010/Mapmoments/internal/httputil"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/service"
	"github.com/w24010/Mapmoments/internal/transport/http/middleware"
)

type PinHandler struct {
	pinService *service.PinService
}

func NewPinHandler(pinService *service.PinService) *PinHandler {
	return &PinHandler{pinService: pinService}
}

// Create handles POST /pins
func (h *PinHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	pin, err := h.pinService.Create(r.Context(), user, &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPrivacy) {
			httputil.WriteBadRequest(w, "Privacy must be public, friends or private")
			return
		}
		log.Printf("[ERROR] Create pin handler: user=%s err=%v", user.ID, err)
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, pin)
}

// Feed handles GET /pins
func (h *PinHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	pins, err := h.pinService.ListFeed(r.Context(), user)
	if err != nil {
		log.Printf("[ERROR] Feed handler: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to load feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pins)
}

// Search handles GET /pins/search?q=
func (h *PinHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteBadRequest(w, "Query parameter q is required")
		return
	}

	pins, err := h.pinService.Search(r.Context(), query)
	if err != nil {
		log.Printf("[ERROR] Pin search handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to search pins")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pins)
}

// Get handles GET /pins/{id}
func (h *PinHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	pinID := chi.URLParam(r, "id")

	pin, err := h.pinService.Get(r.Context(), pinID, user)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPinNotFound):
			httputil.WriteNotFound(w, "Pin not found")
		case errors.Is(err, model.ErrPinAccessDenied):
			httputil.WriteForbidden(w, "Access denied")
		default:
			log.Printf("[ERROR] Get pin handler: pin=%s err=%v", pinID, err)
			httputil.WriteInternalError(w, "Failed to get pin")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pin)
}

// Delete handles DELETE /pins/{id}
func (h *PinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	pinID := chi.URLParam(r, "id")

	if err := h.pinService.Delete(r.Context(), pinID, user); err != nil {
		switch {
		case errors.Is(err, model.ErrPinNotFound):
			httputil.WriteNotFound(w, "Pin not found")
		case errors.Is(err, model.ErrNotPinOwner):
			httputil.WriteForbidden(w, "You can only delete your own pins")
		default:
			log.Printf("[ERROR] Delete pin handler: user=%s pin=%s err=%v", user.ID, pinID, err)
			httputil.WriteInternalError(w, "Failed to delete pin")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Pin deleted"})
}

// ToggleLike handles POST /pins/{id}/like
func (h *PinHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	pinID := chi.URLParam(r, "id")

	result, err := h.pinService.ToggleLike(r.Context(), pinID, user)
	if err != nil {
		if errors.Is(err, model.ErrPinNotFound) {
			httputil.WriteNotFound(w, "Pin not found")
			return
		}
		log.Printf("[ERROR] Toggle like handler: user=%s pin=%s err=%v", user.ID, pinID, err)
		httputil.WriteInternalError(w, "Failed to toggle like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// AddComment handles POST /pins/{id}/comments
func (h *PinHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	pinID := chi.URLParam(r, "id")

	var req model.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.pinService.AddComment(r.Context(), pinID, user, &req)
	if err != nil {
		if errors.Is(err, model.ErrPinNotFound) {
			httputil.WriteNotFound(w, "Pin not found")
			return
		}
		log.Printf("[ERROR] Add comment handler: user=%s pin=%s err=%v", user.ID, pinID, err)
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// DeleteComment handles DELETE /pins/{id}/comments/{commentId}
func (h *PinHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	pinID := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "commentId")

	if err := h.pinService.DeleteComment(r.Context(), pinID, commentID, user); err != nil {
		switch {
		case errors.Is(err, model.ErrPinNotFound):
			httputil.WriteNotFound(w, "Pin not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotPinOwner):
			httputil.WriteForbidden(w, "Not authorized to delete comments on this pin")
		default:
			log.Printf("[ERROR] Delete comment handler: user=%s pin=%s err=%v", user.ID, pinID, err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

// UserPins handles GET /users/{id}/pins
func (h *PinHandler) UserPins(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	ownerID := chi.URLParam(r, "id")

	pins, err := h.pinService.ListByOwner(r.Context(), ownerID, user)
	if err != nil {
		if errors.Is(err, model.ErrPinAccessDenied) {
			httputil.WriteForbidden(w, "Not authorized to view pins of other users")
			return
		}
		log.Printf("[ERROR] User pins handler: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to list pins")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pins)
}
