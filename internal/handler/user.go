package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/w24010/Mapmoments/internal/httputil"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/service"
	"github.com/w24010/Mapmoments/internal/transport/http/middleware"
)

// maxUploadSize caps multipart uploads at 32 MiB.
const maxUploadSize = 32 << 20

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Search handles GET /users/search?q=
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteBadRequest(w, "Query parameter q is required")
		return
	}

	users, err := h.userService.Search(r.Context(), query, user.ID)
	if err != nil {
		log.Printf("[ERROR] User search handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to search users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// UploadProfilePhoto handles POST /users/profile-picture
func (h *UserHandler) UploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	data, contentType, err := readUploadedFile(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid file upload")
		return
	}

	key, err := h.userService.UploadProfilePhoto(r.Context(), user, data, contentType)
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedMediaType) {
			httputil.WriteBadRequest(w, "Invalid file type. Only images allowed.")
			return
		}
		log.Printf("[ERROR] Profile photo upload handler: user=%s err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to upload profile picture")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Profile picture updated",
		"file_id": key,
	})
}

// GetProfilePhoto handles GET /users/{id}/profile-picture
func (h *UserHandler) GetProfilePhoto(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	data, contentType, err := h.userService.GetProfilePhoto(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound),
			errors.Is(err, model.ErrProfilePhotoNotFound),
			errors.Is(err, model.ErrBlobNotFound):
			httputil.WriteNotFound(w, "Profile picture not found")
		default:
			log.Printf("[ERROR] Profile photo handler: user=%s err=%v", userID, err)
			httputil.WriteInternalError(w, "Error retrieving profile picture")
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// readUploadedFile pulls the "file" part out of a multipart form.
func readUploadedFile(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	return data, header.Header.Get("Content-Type"), nil
}
