package events

import (
	"context"
	"time"

	"roombook/pkg/model"
)

type Type string

const (
	BookingCreated  Type = "booking.created"
	BookingModified Type = "booking.modified"
	BookingCanceled Type = "booking.canceled"
)

// Event is the payload published for every committed change to the store.
type Event struct {
	Type               Type                `json:"type"`
	Booking            model.Booking       `json:"booking"`
	PreviousRoomNumber int                 `json:"previousRoomNumber,omitempty"`
	Outcome            model.ModifyOutcome `json:"outcome,omitempty"`
	OccurredAt         time.Time           `json:"occurredAt"`
}

func Created(b *model.Booking) Event {
	return Event{Type: BookingCreated, Booking: *b, OccurredAt: time.Now().UTC()}
}

func Modified(result *model.ModifyResult, previousRoom int) Event {
	return Event{
		Type:               BookingModified,
		Booking:            *result.Booking,
		PreviousRoomNumber: previousRoom,
		Outcome:            result.Outcome,
		OccurredAt:         time.Now().UTC(),
	}
}

func Canceled(b *model.Booking) Event {
	return Event{Type: BookingCanceled, Booking: *b, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() error { return nil }
