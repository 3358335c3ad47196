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

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload handles POST /pins/{id}/media
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	pinID := chi.URLParam(r, "id")

	data, contentType, err := readUploadedFile(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid file upload")
		return
	}

	var caption *string
	if c := r.FormValue("caption"); c != "" {
		caption = &c
	}

	media, err := h.mediaService.Upload(r.Context(), pinID, user, data, contentType, caption)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPinNotFound):
			httputil.WriteNotFound(w, "Pin not found")
		case errors.Is(err, model.ErrNotPinOwner):
			httputil.WriteForbidden(w, "Not authorized")
		case errors.Is(err, model.ErrUnsupportedMediaType):
			httputil.WriteBadRequest(w, "Invalid file type")
		default:
			log.Printf("[ERROR] Upload media handler: user=%s pin=%s err=%v", user.ID, pinID, err)
			httputil.WriteInternalError(w, "Failed to upload media")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, media)
}

// List handles GET /pins/{id}/media
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	pinID := chi.URLParam(r, "id")

	media, err := h.mediaService.List(r.Context(), pinID)
	if err != nil {
		log.Printf("[ERROR] List media handler: pin=%s err=%v", pinID, err)
		httputil.WriteInternalError(w, "Failed to list media")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, media)
}

// Delete handles DELETE /media/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	mediaID := chi.URLParam(r, "id")

	if err := h.mediaService.Delete(r.Context(), mediaID, user); err != nil {
		switch {
		case errors.Is(err, model.ErrMediaNotFound):
			httputil.WriteNotFound(w, "Media not found")
		case errors.Is(err, model.ErrNotMediaOwner):
			httputil.WriteForbidden(w, "Not authorized")
		default:
			log.Printf("[ERROR] Delete media handler: user=%s media=%s err=%v", user.ID, mediaID, err)
			httputil.WriteInternalError(w, "Failed to delete media")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Media deleted"})
}
