package repository

import (
	"context"
	"sync"

	"roombook/pkg/model"

	"github.com/google/uuid"
)

type BookingRepository interface {
	FindByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	FindAll(ctx context.Context) ([]*model.Booking, error)
	Count(ctx context.Context) (int, error)
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
	Reset()
	Seed(bookings []*model.Booking)
}

// memoryBookingRepository keeps bookings in insertion order. A single
// RWMutex guards the whole collection so that one transaction's
// read-check-write cannot interleave with another's.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []*model.Booking
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make([]*model.Booking, 0),
	}
}

func (r *memoryBookingRepository) FindByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*model.Booking, 0)
	for _, b := range r.bookings {
		if b.Email == email {
			matches = append(matches, clone(b))
		}
	}
	return matches, nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAll(r.bookings), nil
}

func (r *memoryBookingRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bookings), nil
}

func (r *memoryBookingRepository) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryTx{bookings: cloneAll(r.bookings)}
	if err := fn(tx); err != nil {
		return err
	}

	r.bookings = tx.bookings
	return nil
}

func (r *memoryBookingRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = make([]*model.Booking, 0)
}

// Seed replaces the store contents. Bookings without an ID are given one.
// It does not check the room invariant; callers seeding test fixtures are
// expected to pass a consistent set.
func (r *memoryBookingRepository) Seed(bookings []*model.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = cloneAll(bookings)
	for _, b := range r.bookings {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
	}
}

func clone(b *model.Booking) *model.Booking {
	c := *b
	return &c
}

func cloneAll(bookings []*model.Booking) []*model.Booking {
	out := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, clone(b))
	}
	return out
}
