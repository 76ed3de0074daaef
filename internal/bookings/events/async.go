package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"roombook/pkg/logger"
)

var (
	ErrPublisherClosed = errors.New("event publisher is closed")
	ErrQueueFull       = errors.New("event queue is full")
)

// asyncPublisher hands events to a single background worker, so a slow
// broker never holds up the request that produced the event. Events reach
// the wrapped publisher in the order they were accepted.
type asyncPublisher struct {
	next    Publisher
	timeout time.Duration
	log     *logger.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

// NewAsyncPublisher wraps next with a queue of bufferSize events. Each
// delivery gets its own timeout. Publish never blocks: when the queue is
// full the event is rejected with ErrQueueFull.
func NewAsyncPublisher(next Publisher, bufferSize int, timeout time.Duration, log *logger.Logger) Publisher {
	p := &asyncPublisher{
		next:    next,
		timeout: timeout,
		log:     log,
		queue:   make(chan Event, max(bufferSize, 1)),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *asyncPublisher) Publish(_ context.Context, event Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *asyncPublisher) run() {
	defer close(p.done)

	for event := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.next.Publish(ctx, event); err != nil {
			p.log.Error("Failed to deliver booking event",
				"event_type", event.Type,
				"booking_id", event.Booking.ID,
				"error", err,
			)
		}
		cancel()
	}
}

// Close stops accepting events, waits for the queued ones to be delivered
// and then closes the wrapped publisher.
func (p *asyncPublisher) Close() error {
	var err error
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()

		<-p.done
		err = p.next.Close()
	})
	return err
}
