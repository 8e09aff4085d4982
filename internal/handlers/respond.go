package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"bloomviewer/internal/models"
	"bloomviewer/internal/store"
	"bloomviewer/internal/validation"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgInternal       = "Internal server error"
	msgIDRequired     = "Location ID is required"
	msgInvalidID      = "Invalid location ID"
	msgLocationAbsent = "Location not found"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(data)
}

func ok(w http.ResponseWriter, status int, data any, msg string) {
	writeJSON(w, status, models.Response{Success: true, Data: data, Message: msg})
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.Response{Success: false, Message: msg})
}

// writeError maps a service error onto a status and a user-facing message.
// Only unexpected errors get the generic message.
func writeError(w http.ResponseWriter, logr *zap.Logger, op string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		logr.Warn("rejected location payload",
			zap.String("op", op),
			zap.String("kind", string(verr.Kind)))
		fail(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, store.ErrNotFound):
		fail(w, http.StatusNotFound, msgLocationAbsent)
	default:
		logr.Error("location operation failed", zap.String("op", op), zap.Error(err))
		fail(w, http.StatusInternalServerError, msgInternal)
	}
}

// locationID reads the id from the route (/{id}) or, failing that, ?id=.
func locationID(r *http.Request, routeID string) (int64, string) {
	raw := strings.TrimSpace(routeID)
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("id"))
	}
	if raw == "" {
		return 0, msgIDRequired
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, msgInvalidID
	}
	return id, ""
}

func decodePayload(r *http.Request) (validation.Payload, error) {
	var p validation.Payload
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&p); err != nil {
		return validation.Payload{}, err
	}
	return p, nil
}
