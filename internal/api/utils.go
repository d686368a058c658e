package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

const maxBodyBytes = 1 << 20

func respondWithJson(w http.ResponseWriter, statusCode int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(response); err != nil {
		log.Errorf("cannot write response, %v", err)
	}
}

func respondWithValue(w http.ResponseWriter, statusCode int, value any) {
	responseBytes, err := json.Marshal(value)
	if err != nil {
		log.Errorf("unable to marshal %T, %v", value, err)
		http.Error(w, bot_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}
	respondWithJson(w, statusCode, responseBytes)
}

func decodeJsonBody(body io.Reader, v any) error {
	decoder := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("cannot decode json body, %w", err)
	}
	return nil
}

// optional positive integer query parameter, 0 when absent
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("%w, limit must be a positive integer", bot_errors.ErrInvalidRequest)
	}
	return limit, nil
}

// handlerError maps service errors to status codes. Client errors keep their
// message, server errors only expose the sentinel.
func handlerError(err error, w http.ResponseWriter) {
	switch {
	// store failures may also wrap the classified db error, keep them a 503
	case errors.Is(err, bot_errors.ErrPersistenceFailed):
		http.Error(w, bot_errors.ErrPersistenceFailed.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, bot_errors.ErrInvalidInput), errors.Is(err, bot_errors.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, bot_errors.ErrUnAuthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, bot_errors.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, bot_errors.ErrExhausted):
		http.Error(w, bot_errors.ErrExhausted.Error(), http.StatusConflict)
	case errors.Is(err, bot_errors.ErrCatalogUnavailable):
		http.Error(w, bot_errors.ErrCatalogUnavailable.Error(), http.StatusBadGateway)
	case errors.Is(err, bot_errors.ErrHttpResponse):
		http.Error(w, "cannot reach the chat webhook", http.StatusBadGateway)
	default:
		log.Errorf("unexpected error reached handler, %v", err)
		http.Error(w, bot_errors.ErrInternal.Error(), http.StatusInternalServerError)
	}
}
