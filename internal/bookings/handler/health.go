package handler

import (
	"context"
	"net/http"
	"time"

	httputil "roombook/pkg/http"
	"roombook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Rooms    int    `json:"rooms,omitempty"`
	Bookings *int   `json:"bookings,omitempty"`
}

type bookingCounter interface {
	Count(ctx context.Context) (int, error)
}

type HealthHandler struct {
	store     bookingCounter
	roomCount int
	log       *logger.Logger
}

func NewHealthHandler(store bookingCounter, roomCount int, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		roomCount: roomCount,
		log:       log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

// Ready reports ready once the store answers within two seconds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	count, err := h.store.Count(ctx)
	if err != nil {
		h.log.Error("Booking store health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Rooms:    h.roomCount,
		Bookings: &count,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
