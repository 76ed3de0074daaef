package errors

import "errors"

var (
	ErrNoRoomAvailable = errors.New("no rooms available for the requested dates")

	ErrNoBookingFound = errors.New("no booking found for this email")

	ErrBookingNotFound = errors.New("booking not found")

	ErrDuplicateBooking = errors.New("guest already holds an active booking")
)
