package app

import (
	"encoding/json"
	"net/http"

	"threadsfetcher/internal/pipeline"
	"threadsfetcher/internal/ratelimit"
	"threadsfetcher/internal/threadsurl"
	apperrors "threadsfetcher/pkg/errors"
	"threadsfetcher/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func handleFetchPost(log logger.Logger, pipe pipeline.Client, limiter ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(r.RemoteAddr) {
			writeJSON(w, log, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}

		rawURL := r.URL.Query().Get("url")
		if rawURL == "" {
			writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
			return
		}

		post, err := pipe.FetchPost(r.Context(), rawURL)
		if err != nil {
			// The pipeline only errors on a malformed post URL.
			status := http.StatusBadRequest
			if !apperrors.Is(err, threadsurl.ErrInvalidFormat) {
				status = http.StatusInternalServerError
			}
			writeJSON(w, log, status, errorResponse{Error: apperrors.GetMessage(err)})
			return
		}

		writeJSON(w, log, http.StatusOK, post)
	}
}

func writeJSON(w http.ResponseWriter, log logger.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
