package middleware

import (
	"context"
	"net/http"
)

// AfterWrite calls fn once a state-changing request (anything but GET, HEAD
// and OPTIONS) has completed with a status below 400. It is used to drop
// cached public documents after admin edits.
func AfterWrite(fn func(ctx context.Context)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			if wrapped.statusCode < http.StatusBadRequest {
				fn(r.Context())
			}
		})
	}
}
