package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/blob"
	"github.com/flashapp/flash-api/config"
	"github.com/flashapp/flash-api/notify"
	"github.com/flashapp/flash-api/store"
	"github.com/flashapp/flash-api/study"
)

// Handler carries every injected dependency the endpoints need. Tests swap in
// an sqlite-backed store, a fake blob store and a manual clock.
type Handler struct {
	Store    store.Store
	Blob     blob.Store
	Notify   *notify.Hub
	Study    *study.Registry
	Config   *config.Config
	Log      zerolog.Logger
	Validate *validator.Validate
}

func New(s store.Store, b blob.Store, n *notify.Hub, reg *study.Registry, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		Store:    s,
		Blob:     b,
		Notify:   n,
		Study:    reg,
		Config:   cfg,
		Log:      log,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps the error taxonomy onto HTTP statuses in one place.
// Forbidden renders as 404 so course/card ids never leak their existence.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperr.ValidationError
	var rerr *apperr.RemoteError

	switch {
	case errors.Is(err, apperr.ErrAuthRequired):
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
	case errors.Is(err, apperr.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, apperr.ErrForbidden):
		h.Log.Warn().Str("path", r.URL.Path).Msg("access to record owned by another user")
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &rerr):
		h.Log.Error().Str("path", r.URL.Path).Err(err).Msg("remote call failed")
		status := http.StatusInternalServerError
		if rerr.Op == "storage" {
			status = http.StatusBadGateway
		}
		respondJSON(w, status, errorBody{Error: rerr.Op + " unavailable"})
	default:
		h.Log.Error().Str("path", r.URL.Path).Err(err).Msg("unexpected error")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// decodeJSON decodes a request body, rejecting unknown fields the way the
// flashcard create endpoint always has.
func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return apperr.Validation("body", "could not decode request")
	}
	return nil
}
