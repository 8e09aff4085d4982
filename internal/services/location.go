package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bloomviewer/internal/metrics"
	"bloomviewer/internal/models"
	"bloomviewer/internal/store"
	"bloomviewer/internal/validation"
)

// LocationService fronts the location store with logging and metrics.
type LocationService struct {
	store   store.LocationStore
	metrics *metrics.Metrics
	logr    *zap.Logger
}

func NewLocationService(s store.LocationStore, m *metrics.Metrics, logr *zap.Logger) *LocationService {
	return &LocationService{store: s, metrics: m, logr: logr}
}

// Create validates p and stores it under a fresh id.
func (s *LocationService) Create(ctx context.Context, p validation.Payload) (models.Location, error) {
	loc, err := s.store.Create(ctx, p)
	s.record(ctx, "create", err)
	if err != nil {
		return models.Location{}, err
	}
	s.logr.Info("location created",
		zap.Int64("id", loc.ID),
		zap.Int64("species_id", loc.SpeciesID),
		zap.String("name", loc.LocationName))
	return loc, nil
}

// List returns every location, or only those of speciesID when it is non-nil.
func (s *LocationService) List(ctx context.Context, speciesID *int64) ([]models.Location, error) {
	locs, err := s.store.List(ctx, speciesID)
	s.metrics.Observe("list", outcome(err))
	return locs, err
}

func (s *LocationService) Get(ctx context.Context, id int64) (models.Location, error) {
	loc, err := s.store.Get(ctx, id)
	s.metrics.Observe("get", outcome(err))
	return loc, err
}

// Update merges patch into location id.
func (s *LocationService) Update(ctx context.Context, id int64, patch validation.Payload) (models.Location, error) {
	loc, err := s.store.Update(ctx, id, patch)
	s.record(ctx, "update", err)
	if err != nil {
		return models.Location{}, err
	}
	s.logr.Info("location updated", zap.Int64("id", id))
	return loc, nil
}

// Delete removes location id and returns it.
func (s *LocationService) Delete(ctx context.Context, id int64) (models.Location, error) {
	loc, err := s.store.Delete(ctx, id)
	s.record(ctx, "delete", err)
	if err != nil {
		return models.Location{}, err
	}
	s.logr.Info("location deleted", zap.Int64("id", id))
	return loc, nil
}

// SyncGauge refreshes the stored-locations gauge from the store.
func (s *LocationService) SyncGauge(ctx context.Context) {
	n, err := s.store.Count(ctx)
	if err != nil {
		s.logr.Warn("failed to count locations", zap.Error(err))
		return
	}
	s.metrics.SetStored(n)
}

func (s *LocationService) record(ctx context.Context, op string, err error) {
	s.metrics.Observe(op, outcome(err))
	if err == nil {
		s.SyncGauge(ctx)
	}
}

func outcome(err error) string {
	var verr *validation.Error
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &verr):
		return metrics.OutcomeInvalid
	case errors.Is(err, store.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
