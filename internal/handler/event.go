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

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	event, err := h.eventService.Create(r.Context(), user, &req)
	if err != nil {
		log.Printf("[ERROR] Create event handler: user=%s err=%v", user.ID, err)
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, event)
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	events, err := h.eventService.List(r.Context(), user)
	if err != nil {
		log.Printf("[ERROR] List events handler: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to list events")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, events)
}

// Search handles GET /events/search?q=
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteBadRequest(w, "Query parameter q is required")
		return
	}

	events, err := h.eventService.Search(r.Context(), query)
	if err != nil {
		log.Printf("[ERROR] Event search handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to search events")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, events)
}

// Attend handles POST /events/{id}/attend
func (h *EventHandler) Attend(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	eventID := chi.URLParam(r, "id")

	result, err := h.eventService.ToggleAttendance(r.Context(), eventID, user)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			httputil.WriteNotFound(w, "Event not found")
			return
		}
		log.Printf("[ERROR] Attend handler: user=%s event=%s err=%v", user.ID, eventID, err)
		httputil.WriteInternalError(w, "Failed to toggle attendance")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
