package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bloomviewer/internal/models"
	"bloomviewer/internal/services"
	"bloomviewer/internal/validation"
)

type LocationHandler struct {
	service *services.LocationService
	bloom   *services.BloomService
	logr    *zap.Logger
}

func NewLocationHandler(svc *services.LocationService, bloom *services.BloomService, logr *zap.Logger) *LocationHandler {
	return &LocationHandler{service: svc, bloom: bloom, logr: logr}
}

// List handles GET /api/v1/locations[?speciesId=N]
// A speciesId that is not an integer matches nothing.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	var speciesID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("speciesId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ok(w, http.StatusOK, []models.Location{}, "Locations retrieved successfully")
			return
		}
		speciesID = &id
	}

	locs, err := h.service.List(r.Context(), speciesID)
	if err != nil {
		writeError(w, h.logr, "list", err)
		return
	}
	ok(w, http.StatusOK, locs, "Locations retrieved successfully")
}

// Get handles GET /api/v1/locations/{id}
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, msg := locationID(r, chi.URLParam(r, "id"))
	if msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}

	loc, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logr, "get", err)
		return
	}
	ok(w, http.StatusOK, loc, "Location retrieved successfully")
}

// Create handles POST /api/v1/locations
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		h.logr.Warn("invalid create body", zap.Error(err))
		fail(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	loc, err := h.service.Create(r.Context(), p)
	if err != nil {
		writeError(w, h.logr, "create", err)
		return
	}
	ok(w, http.StatusCreated, loc, "Location created successfully")
}

// Update handles PUT /api/v1/locations/{id} and PUT /api/v1/locations?id=N
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, msg := locationID(r, chi.URLParam(r, "id"))
	if msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}

	patch, err := decodePayload(r)
	if err != nil {
		h.logr.Warn("invalid update body", zap.Int64("id", id), zap.Error(err))
		fail(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	loc, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logr, "update", err)
		return
	}
	ok(w, http.StatusOK, loc, "Location updated successfully")
}

// Delete handles DELETE /api/v1/locations/{id} and DELETE /api/v1/locations?id=N
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, msg := locationID(r, chi.URLParam(r, "id"))
	if msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}

	loc, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.logr, "delete", err)
		return
	}
	ok(w, http.StatusOK, loc, "Location deleted successfully")
}

// InBloom handles GET /api/v1/locations/in-bloom[?date=YYYY-MM-DD]
func (h *LocationHandler) InBloom(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date != "" {
		if _, err := time.Parse(validation.DateLayout, date); err != nil {
			fail(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
	}

	blooms, err := h.bloom.InBloom(r.Context(), date)
	if err != nil {
		writeError(w, h.logr, "in-bloom", err)
		return
	}
	ok(w, http.StatusOK, blooms, "Locations in bloom retrieved successfully")
}
