// Package bookings assembles the room booking service: the in-memory store,
// the booking service, its request validator and the HTTP handlers.
package bookings

import (
	"roombook/internal/bookings/events"
	"roombook/internal/bookings/handler"
	"roombook/internal/bookings/repository"
	"roombook/internal/bookings/service"
	"roombook/internal/bookings/validator"
	"roombook/pkg/config"
)

type Components struct {
	Publisher  events.Publisher
	Repository repository.BookingRepository
	Service    service.BookingService
	Handler    *handler.BookingHandler
	Health     *handler.HealthHandler
}

// Wire builds the service graph. A nil publisher drops booking events; any
// other publisher is fed from a background queue so delivery never runs on
// the request path. Components.Publisher must be closed on shutdown.
func Wire(cfg *config.Config, publisher events.Publisher) *Components {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	} else {
		publisher = events.NewAsyncPublisher(publisher, cfg.EventsBufferSize, cfg.EventsPublishTimeout, cfg.Log)
	}

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMemoryBookingRepository()
	bookingService := service.NewBookingService(bookingRepo, publisher, cfg)

	cfg.Log.Info("Booking service initialized",
		"store", "memory",
		"room_count", cfg.RoomCount,
		"allow_multiple_bookings_per_email", cfg.AllowMultipleBookingsPerEmail,
	)

	return &Components{
		Publisher:  publisher,
		Repository: bookingRepo,
		Service:    bookingService,
		Handler:    handler.NewBookingHandler(bookingService, bookingValidator, cfg.Log),
		Health:     handler.NewHealthHandler(bookingRepo, cfg.RoomCount, cfg.Log),
	}
}
