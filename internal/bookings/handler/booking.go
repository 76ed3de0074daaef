package handler

import (
	"errors"
	"net/http"

	"roombook/internal/bookings/service"
	"roombook/internal/bookings/validator"
	apperrors "roombook/pkg/errors"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	msgBooked   = "Room booked successfully"
	msgCanceled = "Booking canceled successfully"
	msgWelcome  = "Welcome to the Hotel Room Booking System!"
)

type BookingHandler struct {
	service   service.BookingService
	validator *validator.BookingValidator
	log       *logger.Logger
}

func NewBookingHandler(service service.BookingService, validator *validator.BookingValidator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:   service,
		validator: validator,
		log:       log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateBookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	input, err := h.validator.ValidateCreate(&req)
	if err != nil {
		h.log.Warn("Booking create validation failed", "email", req.Email, "error", err)
		h.writeError(w, "Create", toValidationError(err))
		return
	}

	booking, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, msgBooked, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email, err := h.validator.ValidateEmail(ps.ByName("email"))
	if err != nil {
		h.writeError(w, "GetByEmail", toValidationError(err))
		return
	}

	bookings, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, "GetByEmail", err)
		return
	}

	if err := httputil.WriteSuccess(w, "", bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListGuests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	guests, err := h.service.ListGuests(r.Context())
	if err != nil {
		h.writeError(w, "ListGuests", err)
		return
	}

	if err := httputil.WriteSuccess(w, "", guests); err != nil {
		h.log.Error("failed to write success response", "handler", "ListGuests", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CancelBookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	input, err := h.validator.ValidateCancel(&req)
	if err != nil {
		h.log.Warn("Booking cancel validation failed", "email", req.Email, "error", err)
		h.writeError(w, "Cancel", toValidationError(err))
		return
	}

	if err := h.service.Cancel(r.Context(), input); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteMessage(w, msgCanceled); err != nil {
		h.log.Error("failed to write message response", "handler", "Cancel", "operation", "WriteMessage", "error", err)
	}
}

func (h *BookingHandler) Modify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ModifyBookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Modify", err)
		return
	}

	input, err := h.validator.ValidateModify(&req)
	if err != nil {
		h.log.Warn("Booking modify validation failed", "email", req.Email, "error", err)
		h.writeError(w, "Modify", toValidationError(err))
		return
	}

	result, err := h.service.Modify(r.Context(), input)
	if err != nil {
		h.writeError(w, "Modify", err)
		return
	}

	if err := httputil.WriteSuccess(w, result.Outcome.Message(), result.Booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Modify", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Welcome(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(msgWelcome)); err != nil {
		h.log.Error("failed to write welcome response", "handler", "Welcome", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// toValidationError turns validator output into a 400 listing each failed
// field. Anything else is passed through untouched.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return apperrors.Validation("Validation failed", map[string]any{
		"errors": []validator.ValidationError(fieldErrs),
	})
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Welcome)
	router.POST("/api/v1/booking", h.Create)
	router.GET("/api/v1/booking", h.ListGuests)
	router.GET("/api/v1/booking/:email", h.GetByEmail)
	router.PUT("/api/v1/booking", h.Modify)
	router.DELETE("/api/v1/booking", h.Cancel)
}
