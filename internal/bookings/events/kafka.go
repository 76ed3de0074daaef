package events

import (
	"context"

	"roombook/pkg/kafka"
)

const source = "bookings-service"

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer messagePublisher
}

// NewKafkaPublisher publishes events through producer, keyed by guest email
// so that one guest's events keep their order within a partition.
func NewKafkaPublisher(producer *kafka.Producer) Publisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := kafka.NewMessage().
		WithKey(event.Booking.Email).
		WithValue(event).
		WithEventType(string(event.Type)).
		WithCorrelationID(event.Booking.ID).
		WithSource(source).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
