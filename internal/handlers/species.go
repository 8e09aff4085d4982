package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bloomviewer/internal/services"
)

type SpeciesHandler struct {
	service *services.SpeciesService
	logr    *zap.Logger
}

func NewSpeciesHandler(svc *services.SpeciesService, logr *zap.Logger) *SpeciesHandler {
	return &SpeciesHandler{service: svc, logr: logr}
}

func (h *SpeciesHandler) List(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, h.service.List(), "Species retrieved successfully")
}

func (h *SpeciesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid species ID")
		return
	}

	sp, err := h.service.Get(id)
	if err != nil {
		h.logr.Debug("species lookup missed", zap.Int64("id", id))
		fail(w, http.StatusNotFound, "Species not found")
		return
	}
	ok(w, http.StatusOK, sp, "Species retrieved successfully")
}
