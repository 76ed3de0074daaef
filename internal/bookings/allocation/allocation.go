// Package allocation decides which room a stay can go into. Everything here
// is a pure function of its arguments: no locking, no logging, no I/O.
package allocation

import (
	"roombook/pkg/model"
)

// RoomPool is the fixed set of bookable rooms, numbered 1..Size.
type RoomPool struct {
	size int
}

func NewRoomPool(size int) RoomPool {
	return RoomPool{size: max(size, 0)}
}

func (p RoomPool) Size() int {
	return p.size
}

func (p RoomPool) Contains(room int) bool {
	return room >= 1 && room <= p.size
}

// Rooms returns the room numbers in ascending order.
func (p RoomPool) Rooms() []int {
	rooms := make([]int, p.size)
	for i := range rooms {
		rooms[i] = i + 1
	}
	return rooms
}

// Exclude reports whether a booking should be ignored during a search.
type Exclude func(b *model.Booking) bool

// ExcludeBooking ignores target itself. Identity is the pointer, not the
// ID, so two bookings that share an ID are still told apart.
func ExcludeBooking(target *model.Booking) Exclude {
	return func(b *model.Booking) bool {
		return b == target
	}
}

// Overlaps reports whether two ranges share an instant. A check-out on the
// same day as the next check-in is not an overlap.
func Overlaps(a, b model.DateRange) bool {
	return a.CheckIn.Before(b.CheckOut) && a.CheckOut.After(b.CheckIn)
}

// IsRoomAvailable reports whether no booking other than the excluded ones
// holds room for a range overlapping requested.
func IsRoomAvailable(room int, requested model.DateRange, bookings []*model.Booking, exclude Exclude) bool {
	for _, b := range bookings {
		if b.RoomNumber != room {
			continue
		}
		if exclude != nil && exclude(b) {
			continue
		}
		if Overlaps(requested, b.DateRange) {
			return false
		}
	}
	return true
}

// FindAvailableRoom returns the lowest-numbered room in the pool that is free
// for requested. ok is false when every room is taken.
func FindAvailableRoom(requested model.DateRange, bookings []*model.Booking, pool RoomPool, exclude Exclude) (room int, ok bool) {
	for room = 1; room <= pool.Size(); room++ {
		if IsRoomAvailable(room, requested, bookings, exclude) {
			return room, true
		}
	}
	return 0, false
}
