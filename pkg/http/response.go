package http

import (
	"encoding/json"
	"net/http"

	apperrors "roombook/pkg/errors"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Message string `json:"message,omitempty"`
	Details any    `json:"details"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders err as an ErrorResponse. Errors that are not AppErrors
// become a 500 without leaking their text.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), apperrors.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, message string, details any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Message: message, Details: details})
}

func WriteCreated(w http.ResponseWriter, message string, details any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Message: message, Details: details})
}

func WriteMessage(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, MessageResponse{Message: message})
}
