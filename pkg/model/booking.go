package model

import (
	"time"
)

// DateRange is a stay from check-in (inclusive) to check-out (exclusive).
type DateRange struct {
	CheckIn  time.Time `json:"checkInDate"`
	CheckOut time.Time `json:"checkOutDate"`
}

func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}
}

func (r DateRange) Valid() bool {
	return r.CheckOut.After(r.CheckIn)
}

type Booking struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RoomNumber int    `json:"roomNumber"`
	DateRange
	CreatedAt time.Time `json:"createdAt"`
}

type Guest struct {
	Name       string `json:"name"`
	RoomNumber int    `json:"roomNumber"`
}

type ModifyOutcome string

const (
	SameRoom ModifyOutcome = "same_room"
	NewRoom  ModifyOutcome = "new_room"
)

func (o ModifyOutcome) Message() string {
	if o == NewRoom {
		return "Booking updated successfully with a new room"
	}
	return "Booking updated successfully"
}

type ModifyResult struct {
	Booking *Booking
	Outcome ModifyOutcome
}
