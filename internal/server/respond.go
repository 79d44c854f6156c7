package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/colonyops/feedboard/internal/api"
)

const maxBodyBytes = 1 << 20

var errBadJSON = errors.New("malformed JSON body")

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Ctx(r.Context()).Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBadJSON) {
		s.writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	status, body := api.ErrorFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Ctx(r.Context()).Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	s.writeJSON(w, r, status, body)
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}
