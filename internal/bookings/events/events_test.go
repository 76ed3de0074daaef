package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"roombook/pkg/kafka"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (p *recordingProducer) Publish(ctx context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingProducer) Close() error {
	p.closed = true
	return nil
}

func testBooking() *model.Booking {
	return &model.Booking{
		ID:         "b-1",
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		RoomNumber: 3,
		DateRange: model.NewDateRange(
			time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &recordingProducer{}
	pub := &kafkaPublisher{producer: producer}

	result := &model.ModifyResult{Booking: testBooking(), Outcome: model.NewRoom}
	require.NoError(t, pub.Publish(context.Background(), Modified(result, 1)))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "ada@example.com", msg.Key)
	assert.Equal(t, string(BookingModified), msg.GetEventType())
	assert.Equal(t, "b-1", msg.GetCorrelationID())
	assert.NotEmpty(t, msg.GetEventID())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "booking.modified", decoded["type"])
	assert.Equal(t, float64(1), decoded["previousRoomNumber"])
	assert.Equal(t, "new_room", decoded["outcome"])

	booking := decoded["booking"].(map[string]any)
	assert.Equal(t, float64(3), booking["roomNumber"])
	assert.Equal(t, "2025-01-10T00:00:00Z", booking["checkInDate"])
}

func TestKafkaPublisher_PropagatesProducerError(t *testing.T) {
	producerErr := errors.New("broker down")
	pub := &kafkaPublisher{producer: &recordingProducer{err: producerErr}}

	err := pub.Publish(context.Background(), Created(testBooking()))
	assert.ErrorIs(t, err, producerErr)
}

func TestKafkaPublisher_Close(t *testing.T) {
	producer := &recordingProducer{}
	pub := &kafkaPublisher{producer: producer}

	require.NoError(t, pub.Close())
	assert.True(t, producer.closed)
}

func TestCreatedAndCanceledOmitModifyFields(t *testing.T) {
	for _, event := range []Event{Created(testBooking()), Canceled(testBooking())} {
		data, err := json.Marshal(event)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "previousRoomNumber")
		assert.NotContains(t, string(data), "outcome")
	}
}

func TestLogHandler(t *testing.T) {
	handler := LogHandler(logger.Discard())

	t.Run("valid event", func(t *testing.T) {
		msg, err := kafka.NewMessage().WithKey("ada@example.com").WithValue(Created(testBooking())).Build()
		require.NoError(t, err)
		assert.NoError(t, handler(context.Background(), msg))
	})

	t.Run("undecodable payload is permanent", func(t *testing.T) {
		msg := kafka.Message{Key: "k", Value: []byte("{not json"), Headers: map[string]string{}}
		err := handler(context.Background(), msg)
		require.Error(t, err)
		assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
		assert.False(t, kafka.ShouldRetry(err, 0, 3))
	})
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher()
	assert.NoError(t, pub.Publish(context.Background(), Created(testBooking())))
	assert.NoError(t, pub.Close())
}

type slowPublisher struct {
	mu     sync.Mutex
	delay  time.Duration
	events []Event
	closed bool
}

func (p *slowPublisher) Publish(ctx context.Context, event Event) error {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *slowPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *slowPublisher) delivered() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

func TestAsyncPublisher_DoesNotWaitForDelivery(t *testing.T) {
	next := &slowPublisher{delay: 200 * time.Millisecond}
	pub := NewAsyncPublisher(next, 8, time.Second, logger.Discard())

	start := time.Now()
	require.NoError(t, pub.Publish(context.Background(), Created(testBooking())))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Empty(t, next.delivered())

	require.NoError(t, pub.Close())
	assert.Len(t, next.delivered(), 1)
	assert.True(t, next.closed)
}

func TestAsyncPublisher_KeepsOrderAndDrainsOnClose(t *testing.T) {
	next := &slowPublisher{delay: time.Millisecond}
	pub := NewAsyncPublisher(next, 8, time.Second, logger.Discard())

	booking := testBooking()
	require.NoError(t, pub.Publish(context.Background(), Created(booking)))
	require.NoError(t, pub.Publish(context.Background(), Modified(&model.ModifyResult{Booking: booking, Outcome: model.SameRoom}, 3)))
	require.NoError(t, pub.Publish(context.Background(), Canceled(booking)))
	require.NoError(t, pub.Close())

	var types []Type
	for _, e := range next.delivered() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []Type{BookingCreated, BookingModified, BookingCanceled}, types)

	assert.ErrorIs(t, pub.Publish(context.Background(), Created(booking)), ErrPublisherClosed)
	assert.NoError(t, pub.Close())
}

func TestAsyncPublisher_BoundsEachDelivery(t *testing.T) {
	next := &slowPublisher{delay: time.Hour}
	pub := NewAsyncPublisher(next, 1, 20*time.Millisecond, logger.Discard())

	require.NoError(t, pub.Publish(context.Background(), Created(testBooking())))

	closed := make(chan struct{})
	go func() {
		_ = pub.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("close blocked on an undeliverable event")
	}
	assert.Empty(t, next.delivered())
}

func TestAsyncPublisher_RejectsWhenQueueFull(t *testing.T) {
	next := &slowPublisher{delay: 200 * time.Millisecond}
	pub := NewAsyncPublisher(next, 1, time.Second, logger.Discard())
	defer pub.Close()

	var rejected int
	for i := 0; i < 5; i++ {
		if err := pub.Publish(context.Background(), Created(testBooking())); err != nil {
			assert.ErrorIs(t, err, ErrQueueFull)
			rejected++
		}
	}
	assert.Positive(t, rejected)
}
