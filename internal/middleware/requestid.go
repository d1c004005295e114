// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package middleware provides HTTP middleware shared by all routes:
// request-ID propagation and Prometheus instrumentation.
package middleware

import (
	"net/http"

	"github.com/tomtom215/squadmatch/internal/logging"
)

// RequestID assigns each request a correlation id, honoring an
// X-Request-ID set by an upstream proxy. The id is echoed in the
// response header and stored in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.GenerateRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := logging.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
