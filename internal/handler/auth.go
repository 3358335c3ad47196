package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/w24010/Mapmoments/internal/httputil"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/service"
	"github.com/w24010/Mapmoments/internal/transport/http/middleware"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService *service.TokenService
}

func NewAuthHandler(userService *service.UserService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrUserExists) {
			httputil.WriteConflict(w, "Email or username already registered")
			return
		}
		log.Printf("[ERROR] Register handler: err=%v", err)
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid email or password")
			return
		}
		log.Printf("[ERROR] Login handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// Guest handles POST /auth/guest
// Creates a throwaway guest account with a short-lived token.
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GuestLogin(r.Context())
	if err != nil {
		log.Printf("[ERROR] Guest login handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to create guest session")
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *model.User) {
	token, err := h.tokenService.Generate(user.ID, h.tokenService.MaxAgeFor(user.IsGuest))
	if err != nil {
		log.Printf("[ERROR] Token generation: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to issue token")
		return
	}

	httputil.WriteJSON(w, status, model.AuthResponse{
		Token: token,
		User:  user,
	})
}
