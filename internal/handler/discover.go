package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/w24010/Mapmoments/internal/httputil"
	"github.com/w24010/Mapmoments/internal/service"
)

type DiscoverHandler struct {
	discoverService *service.DiscoverService
}

func NewDiscoverHandler(discoverService *service.DiscoverService) *DiscoverHandler {
	return &DiscoverHandler{discoverService: discoverService}
}

// Trending handles GET /discover/trending
func (h *DiscoverHandler) Trending(w http.ResponseWriter, r *http.Request) {
	pins, err := h.discoverService.Trending(r.Context())
	if err != nil {
		log.Printf("[ERROR] Trending handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to load trending pins")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pins)
}

// Nearby handles GET /discover/nearby?lat=&lng=&radius_km=
func (h *DiscoverHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Query parameter lat is required")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Query parameter lng is required")
		return
	}

	var radiusKm float64
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid radius_km")
			return
		}
	}

	pins, err := h.discoverService.Nearby(r.Context(), lat, lng, radiusKm)
	if err != nil {
		log.Printf("[ERROR] Nearby handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to load nearby pins")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pins)
}
