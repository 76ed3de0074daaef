package model

// Request payloads as they arrive on the wire. Dates stay strings until the
// validator has checked them.

type CreateBookingRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	CheckInDate  string `json:"checkInDate" validate:"required,isodate"`
	CheckOutDate string `json:"checkOutDate" validate:"required,isodate"`
}

type ModifyBookingRequest struct {
	Email        string `json:"email" validate:"required,email"`
	CheckInDate  string `json:"checkInDate" validate:"required,isodate"`
	CheckOutDate string `json:"checkOutDate" validate:"required,isodate"`
}

type CancelBookingRequest struct {
	Email      string `json:"email" validate:"required,email"`
	RoomNumber int    `json:"roomNumber" validate:"required,min=1"`
}

type EmailLookup struct {
	Email string `validate:"required,email"`
}

// Inputs accepted by the booking service once a request has been validated.

type CreateInput struct {
	Name  string
	Email string
	Range DateRange
}

type ModifyInput struct {
	Email string
	Range DateRange
}

type CancelInput struct {
	Email      string
	RoomNumber int
}
