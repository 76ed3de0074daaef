package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"testing"
	"time"

	"roombook/internal/bookings/allocation"
	bookingserrors "roombook/internal/bookings/errors"
	"roombook/internal/bookings/events"
	"roombook/internal/bookings/repository"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────
// Test helpers
// ────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func stay(from, to int) model.DateRange {
	return model.NewDateRange(day(from), day(to))
}

type fixture struct {
	repo      repository.BookingRepository
	publisher *recordingPublisher
	service   BookingService
}

func newFixture(rooms int, allowMultiple bool) *fixture {
	repo := repository.NewMemoryBookingRepository()
	pub := &recordingPublisher{}
	cfg := &config.Config{
		RoomCount:                     rooms,
		AllowMultipleBookingsPerEmail: allowMultiple,
		Log:                           logger.Discard(),
	}
	return &fixture{repo: repo, publisher: pub, service: NewBookingService(repo, pub, cfg)}
}

func (f *fixture) create(t *testing.T, name, email string, r model.DateRange) *model.Booking {
	t.Helper()
	b, err := f.service.Create(context.Background(), &model.CreateInput{Name: name, Email: email, Range: r})
	require.NoError(t, err)
	return b
}

func (f *fixture) all(t *testing.T) []*model.Booking {
	t.Helper()
	all, err := f.repo.FindAll(context.Background())
	require.NoError(t, err)
	return all
}

func assertAppError(t *testing.T, err error, sentinel error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, code, appErr.Code)
}

// assertNoDoubleBooking checks that no room holds two overlapping stays.
func assertNoDoubleBooking(t *testing.T, bookings []*model.Booking) {
	t.Helper()
	for i := range bookings {
		for j := i + 1; j < len(bookings); j++ {
			a, b := bookings[i], bookings[j]
			if a.RoomNumber == b.RoomNumber && allocation.Overlaps(a.DateRange, b.DateRange) {
				t.Errorf("room %d double-booked by %s and %s", a.RoomNumber, a.Email, b.Email)
			}
		}
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_EmptyStoreGetsRoomOne(t *testing.T) {
	f := newFixture(10, false)

	b := f.create(t, "Monika M", "monika@gmail.com", stay(12, 13))
	assert.Equal(t, 1, b.RoomNumber)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, day(12), b.CheckIn)
	assert.Equal(t, day(13), b.CheckOut)
	assert.Equal(t, []events.Type{events.BookingCreated}, f.publisher.types())
}

func TestCreate_OverlappingGuestsGetSuccessiveRooms(t *testing.T) {
	f := newFixture(10, false)

	first := f.create(t, "Monika M", "monika@gmail.com", stay(12, 13))
	second := f.create(t, "Monika M", "other@gmail.com", stay(12, 13))
	assert.Equal(t, 1, first.RoomNumber)
	assert.Equal(t, 2, second.RoomNumber)
}

func TestCreate_TouchingStaySharesRoom(t *testing.T) {
	f := newFixture(10, false)

	f.create(t, "A", "a@example.com", stay(12, 13))
	b := f.create(t, "B", "b@example.com", stay(13, 14))
	assert.Equal(t, 1, b.RoomNumber)
}

func TestCreate_AtMostNOverlappingBookings(t *testing.T) {
	f := newFixture(3, false)

	for i := 1; i <= 3; i++ {
		b := f.create(t, "Guest", fmt.Sprintf("g%d@example.com", i), stay(12, 15))
		assert.Equal(t, i, b.RoomNumber)
	}

	_, err := f.service.Create(context.Background(), &model.CreateInput{
		Name: "Late", Email: "late@example.com", Range: stay(13, 14),
	})
	assertAppError(t, err, bookingserrors.ErrNoRoomAvailable, apperrors.CodeNoRoomAvailable)
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).StatusCode())
	assert.Len(t, f.all(t), 3)
	assert.Len(t, f.publisher.events, 3)
}

func TestCreate_DuplicateEmailPolicy(t *testing.T) {
	t.Run("rejected by default", func(t *testing.T) {
		f := newFixture(10, false)
		f.create(t, "A", "a@example.com", stay(12, 13))

		_, err := f.service.Create(context.Background(), &model.CreateInput{
			Name: "A", Email: "a@example.com", Range: stay(20, 21),
		})
		assertAppError(t, err, bookingserrors.ErrDuplicateBooking, apperrors.CodeConflict)
		assert.Len(t, f.all(t), 1)
	})

	t.Run("allowed when configured", func(t *testing.T) {
		f := newFixture(10, true)
		f.create(t, "A", "a@example.com", stay(12, 13))
		second := f.create(t, "A", "a@example.com", stay(12, 13))
		assert.Equal(t, 2, second.RoomNumber)
		assert.Len(t, f.all(t), 2)
	})
}

func TestCreate_ReturnedBookingIsDetached(t *testing.T) {
	f := newFixture(10, false)
	b := f.create(t, "A", "a@example.com", stay(12, 13))
	b.RoomNumber = 9

	assert.Equal(t, 1, f.all(t)[0].RoomNumber)
}

func TestCreate_ConcurrentRequestsNeverDoubleBook(t *testing.T) {
	f := newFixture(10, false)
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0

	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.service.Create(context.Background(), &model.CreateInput{
				Name: "Guest", Email: fmt.Sprintf("g%d@example.com", i), Range: stay(12, 14),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, bookingserrors.ErrNoRoomAvailable) {
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 15, rejected)
	assertNoDoubleBooking(t, f.all(t))
}

func TestCreate_PublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(10, false)
	f.publisher.err = errors.New("broker down")

	b := f.create(t, "A", "a@example.com", stay(12, 13))
	assert.Equal(t, 1, b.RoomNumber)
	assert.Len(t, f.all(t), 1)
}

// ────────────────────────────────────────────────
// Read by email / list guests
// ────────────────────────────────────────────────

func TestGetByEmail(t *testing.T) {
	f := newFixture(10, true)

	_, err := f.service.GetByEmail(context.Background(), "monika@gmail.com")
	assertAppError(t, err, bookingserrors.ErrNoBookingFound, apperrors.CodeNotFound)

	f.create(t, "Monika", "monika@gmail.com", stay(12, 13))
	f.create(t, "Other", "other@gmail.com", stay(12, 13))
	f.create(t, "Monika", "monika@gmail.com", stay(20, 22))

	bookings, err := f.service.GetByEmail(context.Background(), "monika@gmail.com")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, day(12), bookings[0].CheckIn)
	assert.Equal(t, day(20), bookings[1].CheckIn)
}

func TestListGuests(t *testing.T) {
	f := newFixture(10, false)

	guests, err := f.service.ListGuests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, guests)
	assert.NotNil(t, guests)

	f.create(t, "Ada", "ada@example.com", stay(12, 13))
	f.create(t, "Grace", "grace@example.com", stay(12, 13))

	guests, err = f.service.ListGuests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Guest{
		{Name: "Ada", RoomNumber: 1},
		{Name: "Grace", RoomNumber: 2},
	}, guests)
}

// ────────────────────────────────────────────────
// Cancel
// ────────────────────────────────────────────────

func TestCancel(t *testing.T) {
	f := newFixture(10, false)
	f.create(t, "Monika", "monika@gmail.com", stay(12, 13))

	input := &model.CancelInput{Email: "monika@gmail.com", RoomNumber: 1}
	require.NoError(t, f.service.Cancel(context.Background(), input))
	assert.Empty(t, f.all(t))

	err := f.service.Cancel(context.Background(), input)
	assertAppError(t, err, bookingserrors.ErrBookingNotFound, apperrors.CodeNotFound)

	assert.Equal(t, []events.Type{events.BookingCreated, events.BookingCanceled}, f.publisher.types())
}

func TestCancel_RequiresMatchingRoom(t *testing.T) {
	f := newFixture(10, false)
	f.create(t, "Monika", "monika@gmail.com", stay(12, 13))

	err := f.service.Cancel(context.Background(), &model.CancelInput{Email: "monika@gmail.com", RoomNumber: 2})
	assertAppError(t, err, bookingserrors.ErrBookingNotFound, apperrors.CodeNotFound)
	assert.Len(t, f.all(t), 1)
}

// ────────────────────────────────────────────────
// Modify
// ────────────────────────────────────────────────

func TestModify_KeepsRoomWhenFree(t *testing.T) {
	f := newFixture(10, false)
	original := f.create(t, "A", "a@example.com", stay(12, 14))

	// Overlaps only the guest's own booking.
	result, err := f.service.Modify(context.Background(), &model.ModifyInput{Email: "a@example.com", Range: stay(13, 16)})
	require.NoError(t, err)
	assert.Equal(t, model.SameRoom, result.Outcome)
	assert.Equal(t, "Booking updated successfully", result.Outcome.Message())
	assert.Equal(t, 1, result.Booking.RoomNumber)
	assert.Equal(t, original.ID, result.Booking.ID)

	stored := f.all(t)
	require.Len(t, stored, 1)
	assert.Equal(t, day(13), stored[0].CheckIn)
	assert.Equal(t, day(16), stored[0].CheckOut)
}

func TestModify_MovesToNewRoomWhenCurrentTaken(t *testing.T) {
	f := newFixture(10, false)
	f.create(t, "First", "first@example.com", stay(12, 13))
	second := f.create(t, "Second", "second@example.com", stay(14, 15))
	require.Equal(t, 1, second.RoomNumber)

	result, err := f.service.Modify(context.Background(), &model.ModifyInput{Email: "first@example.com", Range: stay(14, 15)})
	require.NoError(t, err)
	assert.Equal(t, model.NewRoom, result.Outcome)
	assert.Equal(t, "Booking updated successfully with a new room", result.Outcome.Message())
	assert.NotEqual(t, 1, result.Booking.RoomNumber)
	assert.Equal(t, 2, result.Booking.RoomNumber)

	assertNoDoubleBooking(t, f.all(t))

	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, events.BookingModified, last.Type)
	assert.Equal(t, 1, last.PreviousRoomNumber)
	assert.Equal(t, 2, last.Booking.RoomNumber)
}

func TestModify_NoRoomLeavesBookingUntouched(t *testing.T) {
	f := newFixture(10, false)
	target := f.create(t, "Target", "target@example.com", stay(1, 2))
	for i := 0; i < 10; i++ {
		f.create(t, "Guest", fmt.Sprintf("g%d@example.com", i), stay(14, 15))
	}

	_, err := f.service.Modify(context.Background(), &model.ModifyInput{Email: "target@example.com", Range: stay(14, 15)})
	assertAppError(t, err, bookingserrors.ErrNoRoomAvailable, apperrors.CodeNoRoomAvailable)

	bookings, err := f.service.GetByEmail(context.Background(), "target@example.com")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, target.RoomNumber, bookings[0].RoomNumber)
	assert.Equal(t, day(1), bookings[0].CheckIn)
	assert.Equal(t, day(2), bookings[0].CheckOut)
}

func TestModify_FallsBackToLowestFreeRoom(t *testing.T) {
	f := newFixture(2, false)
	f.repo.Seed([]*model.Booking{
		{ID: "1", Name: "A", Email: "a@example.com", RoomNumber: 2, DateRange: stay(10, 12)},
		{ID: "2", Name: "B", Email: "b@example.com", RoomNumber: 2, DateRange: stay(12, 14)},
		{ID: "3", Name: "C", Email: "c@example.com", RoomNumber: 1, DateRange: stay(13, 20)},
	})

	// Room 2 is taken by B on the 12th and room 1 by C from the 13th. The
	// new stay only fits room 1 before C arrives.
	result, err := f.service.Modify(context.Background(), &model.ModifyInput{Email: "a@example.com", Range: stay(11, 13)})
	require.NoError(t, err)
	assert.Equal(t, model.NewRoom, result.Outcome)
	assert.Equal(t, 1, result.Booking.RoomNumber)
	assertNoDoubleBooking(t, f.all(t))
}

func TestModify_UnknownEmail(t *testing.T) {
	f := newFixture(10, false)

	_, err := f.service.Modify(context.Background(), &model.ModifyInput{Email: "nobody@example.com", Range: stay(1, 2)})
	assertAppError(t, err, bookingserrors.ErrBookingNotFound, apperrors.CodeNotFound)
}

func TestOperations_HonourCancelledContext(t *testing.T) {
	f := newFixture(10, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Create(ctx, &model.CreateInput{Name: "A", Email: "a@example.com", Range: stay(1, 2)})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternal, apperrors.AsAppError(err).Code)
	assert.Empty(t, f.all(t))
}

// ────────────────────────────────────────────────
// Seeded stores
// ────────────────────────────────────────────────

func seeded(name, email string, room int, r model.DateRange) *model.Booking {
	return &model.Booking{Name: name, Email: email, RoomNumber: room, DateRange: r}
}

func TestSeededBookingsWithoutIDs_CancelRemovesTheMatchingBooking(t *testing.T) {
	f := newFixture(10, true)
	f.repo.Seed([]*model.Booking{
		seeded("A", "a@example.com", 1, stay(12, 13)),
		seeded("B", "b@example.com", 2, stay(12, 13)),
	})

	require.NoError(t, f.service.Cancel(context.Background(), &model.CancelInput{Email: "b@example.com", RoomNumber: 2}))

	remaining := f.all(t)
	require.Len(t, remaining, 1)
	assert.Equal(t, "a@example.com", remaining[0].Email)
	assert.Equal(t, 1, remaining[0].RoomNumber)
}

func TestSeededBookingsWithoutIDs_ModifyRespectsOtherGuests(t *testing.T) {
	f := newFixture(10, true)
	f.repo.Seed([]*model.Booking{
		seeded("A", "a@example.com", 1, stay(10, 12)),
		seeded("B", "b@example.com", 1, stay(14, 16)),
	})

	result, err := f.service.Modify(context.Background(), &model.ModifyInput{Email: "a@example.com", Range: stay(14, 16)})
	require.NoError(t, err)
	assert.Equal(t, model.NewRoom, result.Outcome)
	assert.Equal(t, 2, result.Booking.RoomNumber)
	assertNoDoubleBooking(t, f.all(t))
}

func countMatching(bookings []*model.Booking, email string, room int) int {
	n := 0
	for _, b := range bookings {
		if b.Email == email && b.RoomNumber == room {
			n++
		}
	}
	return n
}

func firstFor(bookings []*model.Booking, email string) *model.Booking {
	for _, b := range bookings {
		if b.Email == email {
			return b
		}
	}
	return nil
}

// TestRandomOperationSequencesKeepRoomsExclusive drives a small hotel through
// pseudo-random Create, Modify and Cancel calls, starting from fixtures that
// carry no IDs, and checks the room invariant after every step.
func TestRandomOperationSequencesKeepRoomsExclusive(t *testing.T) {
	const rooms = 4
	emails := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com", "e@example.com", "f@example.com"}

	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed*7919))
			ctx := context.Background()
			f := newFixture(rooms, true)
			f.repo.Seed([]*model.Booking{
				seeded("A", emails[0], 1, stay(1, 4)),
				seeded("B", emails[1], 1, stay(4, 8)),
				seeded("C", emails[2], 2, stay(2, 6)),
			})

			randomStay := func() model.DateRange {
				from := 1 + rng.IntN(20)
				return stay(from, from+1+rng.IntN(4))
			}

			for step := 0; step < 200; step++ {
				email := emails[rng.IntN(len(emails))]
				before := f.all(t)

				switch rng.IntN(3) {
				case 0:
					booking, err := f.service.Create(ctx, &model.CreateInput{Name: "Guest", Email: email, Range: randomStay()})
					after := f.all(t)
					if err != nil {
						assert.ErrorIs(t, err, bookingserrors.ErrNoRoomAvailable)
						assert.Equal(t, before, after)
						break
					}
					assert.Len(t, after, len(before)+1)
					assert.True(t, booking.RoomNumber >= 1 && booking.RoomNumber <= rooms)

				case 1:
					r := randomStay()
					result, err := f.service.Modify(ctx, &model.ModifyInput{Email: email, Range: r})
					after := f.all(t)
					if err != nil {
						if !errors.Is(err, bookingserrors.ErrNoRoomAvailable) {
							assert.ErrorIs(t, err, bookingserrors.ErrBookingNotFound)
						}
						assert.Equal(t, before, after)
						break
					}
					require.Len(t, after, len(before))
					first := firstFor(after, email)
					require.NotNil(t, first)
					assert.Equal(t, result.Booking.ID, first.ID)
					assert.Equal(t, r, first.DateRange)

				case 2:
					room := 1 + rng.IntN(rooms)
					err := f.service.Cancel(ctx, &model.CancelInput{Email: email, RoomNumber: room})
					after := f.all(t)
					if want := countMatching(before, email, room); want == 0 {
						assert.ErrorIs(t, err, bookingserrors.ErrBookingNotFound)
						assert.Equal(t, before, after)
					} else {
						require.NoError(t, err)
						assert.Len(t, after, len(before)-1)
						assert.Equal(t, want-1, countMatching(after, email, room))
					}
				}

				assertNoDoubleBooking(t, f.all(t))
			}
		})
	}
}
