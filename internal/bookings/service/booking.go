package service

import (
	"context"
	"errors"
	"time"

	"roombook/internal/bookings/allocation"
	bookingserrors "roombook/internal/bookings/errors"
	"roombook/internal/bookings/events"
	"roombook/internal/bookings/repository"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"

	"github.com/google/uuid"
)

type BookingService interface {
	Create(ctx context.Context, input *model.CreateInput) (*model.Booking, error)
	GetByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	ListGuests(ctx context.Context) ([]model.Guest, error)
	Cancel(ctx context.Context, input *model.CancelInput) error
	Modify(ctx context.Context, input *model.ModifyInput) (*model.ModifyResult, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	publisher events.Publisher
	pool      allocation.RoomPool
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		pool:      allocation.NewRoomPool(cfg.RoomCount),
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, input *model.CreateInput) (*model.Booking, error) {
	var created *model.Booking

	err := s.repo.ExecuteTransaction(ctx, func(tx repository.Tx) error {
		if !s.cfg.AllowMultipleBookingsPerEmail {
			if _, exists := tx.FindFirst(byEmail(input.Email)); exists {
				return bookingserrors.ErrDuplicateBooking
			}
		}

		room, ok := allocation.FindAvailableRoom(input.Range, tx.All(), s.pool, nil)
		if !ok {
			return bookingserrors.ErrNoRoomAvailable
		}

		created = &model.Booking{
			ID:         uuid.New().String(),
			Name:       input.Name,
			Email:      input.Email,
			RoomNumber: room,
			DateRange:  input.Range,
			CreatedAt:  time.Now().UTC(),
		}
		tx.Append(created)
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to create booking",
			"email", input.Email,
			"check_in", input.Range.CheckIn,
			"check_out", input.Range.CheckOut,
			"error", err,
		)
		return nil, toAppError(err, "Failed to create booking")
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", created.ID,
		"email", created.Email,
		"room_number", created.RoomNumber,
		"check_in", created.CheckIn,
		"check_out", created.CheckOut,
	)
	s.publish(ctx, events.Created(created))

	booking := *created
	return &booking, nil
}

func (s *bookingService) GetByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to look up bookings", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if len(bookings) == 0 {
		return nil, apperrors.NotFound(bookingserrors.ErrNoBookingFound)
	}
	return bookings, nil
}

func (s *bookingService) ListGuests(ctx context.Context) ([]model.Guest, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve guests", err)
	}

	guests := make([]model.Guest, 0, len(bookings))
	for _, b := range bookings {
		guests = append(guests, model.Guest{Name: b.Name, RoomNumber: b.RoomNumber})
	}
	return guests, nil
}

func (s *bookingService) Cancel(ctx context.Context, input *model.CancelInput) error {
	var canceled model.Booking

	err := s.repo.ExecuteTransaction(ctx, func(tx repository.Tx) error {
		booking, ok := tx.FindFirst(func(b *model.Booking) bool {
			return b.Email == input.Email && b.RoomNumber == input.RoomNumber
		})
		if !ok {
			return bookingserrors.ErrBookingNotFound
		}
		canceled = *booking
		tx.Remove(booking)
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to cancel booking",
			"email", input.Email,
			"room_number", input.RoomNumber,
			"error", err,
		)
		return toAppError(err, "Failed to cancel booking")
	}

	s.cfg.Log.Info("Booking canceled successfully",
		"id", canceled.ID,
		"email", canceled.Email,
		"room_number", canceled.RoomNumber,
	)
	s.publish(ctx, events.Canceled(&canceled))
	return nil
}

// Modify moves the guest's first booking to the new range. The current room is
// kept when it is free for the new range; otherwise the first free room is
// assigned. The guest's own booking never blocks either search.
func (s *bookingService) Modify(ctx context.Context, input *model.ModifyInput) (*model.ModifyResult, error) {
	var (
		updated      model.Booking
		outcome      model.ModifyOutcome
		previousRoom int
	)

	err := s.repo.ExecuteTransaction(ctx, func(tx repository.Tx) error {
		booking, ok := tx.FindFirst(byEmail(input.Email))
		if !ok {
			return bookingserrors.ErrBookingNotFound
		}
		previousRoom = booking.RoomNumber
		own := allocation.ExcludeBooking(booking)

		switch {
		case allocation.IsRoomAvailable(booking.RoomNumber, input.Range, tx.All(), own):
			outcome = model.SameRoom
		default:
			room, found := allocation.FindAvailableRoom(input.Range, tx.All(), s.pool, own)
			if !found {
				return bookingserrors.ErrNoRoomAvailable
			}
			booking.RoomNumber = room
			outcome = model.NewRoom
		}

		booking.DateRange = input.Range
		updated = *booking
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to modify booking",
			"email", input.Email,
			"check_in", input.Range.CheckIn,
			"check_out", input.Range.CheckOut,
			"error", err,
		)
		return nil, toAppError(err, "Failed to modify booking")
	}

	result := &model.ModifyResult{Booking: &updated, Outcome: outcome}
	s.cfg.Log.Info("Booking modified successfully",
		"id", updated.ID,
		"email", updated.Email,
		"previous_room_number", previousRoom,
		"room_number", updated.RoomNumber,
		"outcome", outcome,
	)
	s.publish(ctx, events.Modified(result, previousRoom))
	return result, nil
}

// publish runs after the store lock is released. Failures are logged only;
// the booking change has already been committed.
func (s *bookingService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", event.Type,
			"booking_id", event.Booking.ID,
			"error", err,
		)
	}
}

func byEmail(email string) func(b *model.Booking) bool {
	return func(b *model.Booking) bool {
		return b.Email == email
	}
}

func toAppError(err error, internalMessage string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNoRoomAvailable):
		return apperrors.NoRoomAvailable(err)
	case errors.Is(err, bookingserrors.ErrBookingNotFound),
		errors.Is(err, bookingserrors.ErrNoBookingFound):
		return apperrors.NotFound(err)
	case errors.Is(err, bookingserrors.ErrDuplicateBooking):
		return apperrors.Conflict(err)
	default:
		return apperrors.Internal(internalMessage, err)
	}
}
