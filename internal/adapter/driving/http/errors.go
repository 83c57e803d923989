package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huddle-rtc/huddle/internal/core/domain"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Anything unexpected is
// logged and reported as a 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrInvitationNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrRoomEnded):
		writeJSON(w, http.StatusGone, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidPassword), errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
