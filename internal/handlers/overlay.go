package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bloomviewer/internal/models"
	"bloomviewer/internal/services"
	"bloomviewer/internal/utils"
)

type OverlayHandler struct {
	service *services.OverlayService
	logr    *zap.Logger
}

func NewOverlayHandler(svc *services.OverlayService, logr *zap.Logger) *OverlayHandler {
	return &OverlayHandler{service: svc, logr: logr}
}

// List handles GET /api/v1/overlays[?ids=1,2][&q=name]
func (h *OverlayHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := parseIDs(q)
	if err != nil {
		fail(w, http.StatusBadRequest, "ids must be integers")
		return
	}

	stats, err := h.service.List(r.Context(), services.OverlayFilter{IDs: ids, Query: q.Get("q")})
	if err != nil {
		h.logr.Error("failed to build overlay stats", zap.Error(err))
		fail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	ok(w, http.StatusOK, stats, "Overlays retrieved successfully")
}

// Get handles GET /api/v1/overlays/{id}
func (h *OverlayHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid overlay ID")
		return
	}

	stats, err := h.service.Get(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrOverlayNotFound):
		fail(w, http.StatusNotFound, "Overlay not found")
	case err != nil:
		h.logr.Error("failed to build overlay stats", zap.Int("id", id), zap.Error(err))
		fail(w, http.StatusInternalServerError, msgInternal)
	default:
		ok(w, http.StatusOK, stats, "Overlay retrieved successfully")
	}
}

// At handles GET /api/v1/overlays/at?lon=&lat=
func (h *OverlayHandler) At(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	if errLon != nil || errLat != nil {
		fail(w, http.StatusBadRequest, "lon and lat must be numbers")
		return
	}

	stats, err := h.service.At(r.Context(), models.Coordinates{lon, lat})
	if err != nil {
		h.logr.Error("failed to find overlays at point", zap.Float64("lon", lon), zap.Float64("lat", lat), zap.Error(err))
		fail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	ok(w, http.StatusOK, stats, "Overlays retrieved successfully")
}

// Summary handles GET /api/v1/overlays/summary?ids=1,2
func (h *OverlayHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query())
	if err != nil {
		fail(w, http.StatusBadRequest, "ids must be integers")
		return
	}

	sum, err := h.service.Summarize(r.Context(), ids)
	if err != nil {
		h.logr.Error("failed to summarize selection", zap.Error(err))
		fail(w, http.StatusInternalServerError, msgInternal)
		return
	}
	ok(w, http.StatusOK, sum, "Selection summarized successfully")
}

func parseIDs(q map[string][]string) ([]int, error) {
	raw := utils.ParseQueryList(q, "ids")
	ids := make([]int, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
