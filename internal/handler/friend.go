package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/w24010/Mapmoments/internal/httputil"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/service"
	"github.com/w24010/Mapmoments/internal/transport/http/middleware"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// Request handles POST /friends/request/{userId}
func (h *FriendHandler) Request(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	targetID := chi.URLParam(r, "userId")

	if err := h.friendService.Request(r.Context(), user.ID, targetID); err != nil {
		switch {
		case errors.Is(err, model.ErrSelfFriendRequest):
			httputil.WriteConflict(w, "Cannot add yourself")
		case errors.Is(err, model.ErrAlreadyFriends):
			httputil.WriteConflict(w, "Already friends")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] Friend request handler: user=%s target=%s err=%v", user.ID, targetID, err)
			httputil.WriteInternalError(w, "Failed to send friend request")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Friend request sent"})
}

// Accept handles POST /friends/accept/{userId}
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	requesterID := chi.URLParam(r, "userId")

	if err := h.friendService.Accept(r.Context(), user.ID, requesterID); err != nil {
		if errors.Is(err, model.ErrNoPendingRequest) {
			httputil.WriteBadRequest(w, "No friend request found")
			return
		}
		log.Printf("[ERROR] Friend accept handler: user=%s requester=%s err=%v", user.ID, requesterID, err)
		httputil.WriteInternalError(w, "Failed to accept friend request")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Friend request accepted"})
}

// List handles GET /friends
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		log.Printf("[ERROR] List friends handler: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to list friends")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, friends)
}

// Requests handles GET /friends/requests
func (h *FriendHandler) Requests(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	requests, err := h.friendService.ListRequests(r.Context(), user.ID)
	if err != nil {
		log.Printf("[ERROR] List friend requests handler: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to list friend requests")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, requests)
}
