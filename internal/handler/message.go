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

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send handles POST /messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	message, err := h.messageService.Send(r.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFriends):
			httputil.WriteForbidden(w, "Can only message friends")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] Send message handler: user=%s err=%v", user.ID, err)
			httputil.WriteBadRequest(w, err.Error())
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, message)
}

// Thread handles GET /messages/{friendId}
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	friendID := chi.URLParam(r, "friendId")

	messages, err := h.messageService.Thread(r.Context(), user, friendID)
	if err != nil {
		if errors.Is(err, model.ErrNotFriends) {
			httputil.WriteForbidden(w, "Can only message friends")
			return
		}
		log.Printf("[ERROR] Thread handler: user=%s friend=%s err=%v", user.ID, friendID, err)
		httputil.WriteInternalError(w, "Failed to load messages")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messages)
}

// Conversations handles GET /messages
func (h *MessageHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	conversations, err := h.messageService.Conversations(r.Context(), user)
	if err != nil {
		log.Printf("[ERROR] Conversations handler: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to load conversations")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, conversations)
}
