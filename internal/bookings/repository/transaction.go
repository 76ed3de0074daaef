package repository

import "roombook/pkg/model"

// TransactionFunc runs with exclusive access to the store. Changes made
// through tx become visible only if it returns nil.
type TransactionFunc func(tx Tx) error

// Tx is the working copy of the store seen inside a transaction. Bookings
// returned by All and FindFirst belong to the working copy and may be
// modified in place. Remove matches by pointer, so it only accepts a booking
// obtained from the same Tx.
type Tx interface {
	All() []*model.Booking
	FindFirst(match func(b *model.Booking) bool) (*model.Booking, bool)
	Append(booking *model.Booking)
	Remove(booking *model.Booking) bool
}

type memoryTx struct {
	bookings []*model.Booking
}

func (tx *memoryTx) All() []*model.Booking {
	return tx.bookings
}

func (tx *memoryTx) FindFirst(match func(b *model.Booking) bool) (*model.Booking, bool) {
	for _, b := range tx.bookings {
		if match(b) {
			return b, true
		}
	}
	return nil, false
}

func (tx *memoryTx) Append(booking *model.Booking) {
	tx.bookings = append(tx.bookings, booking)
}

func (tx *memoryTx) Remove(booking *model.Booking) bool {
	for i, b := range tx.bookings {
		if b == booking {
			tx.bookings = append(tx.bookings[:i], tx.bookings[i+1:]...)
			return true
		}
	}
	return false
}
