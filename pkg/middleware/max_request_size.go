package middleware

import (
	"net/http"

	apperrors "roombook/pkg/errors"
)

// MaxRequestSize caps the request body at maxBytes. Requests that declare a
// larger Content-Length are rejected up front; others fail when the handler
// reads past the limit.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > maxBytes {
				writeAppError(w, apperrors.New(
					apperrors.CodeRequestTooLarge,
					"Request body too large",
					http.StatusRequestEntityTooLarge,
				))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
