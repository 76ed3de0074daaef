package events

import (
	"context"

	"roombook/pkg/kafka"
	"roombook/pkg/logger"
)

// LogHandler returns a consumer handler that decodes booking events and logs
// them. Undecodable payloads are reported as permanent so they are not retried.
func LogHandler(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event Event
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("failed to decode booking event", err)
		}

		attrs := []any{
			"event_type", event.Type,
			"booking_id", event.Booking.ID,
			"email", event.Booking.Email,
			"room_number", event.Booking.RoomNumber,
			"check_in", event.Booking.CheckIn,
			"check_out", event.Booking.CheckOut,
			"occurred_at", event.OccurredAt,
		}
		if event.Type == BookingModified {
			attrs = append(attrs, "previous_room_number", event.PreviousRoomNumber, "outcome", event.Outcome)
		}
		log.Info("Booking event received", attrs...)
		return nil
	}
}
