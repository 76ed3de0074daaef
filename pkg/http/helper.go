package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "roombook/pkg/errors"
)

// DecodeJSON decodes the request body into dst. Malformed or empty bodies
// yield INVALID_INPUT; bodies cut off by MaxRequestSize yield
// REQUEST_TOO_LARGE.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("Request body is required")
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperrors.New(apperrors.CodeRequestTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.InvalidInput("Invalid JSON format")
	}
	return nil
}
