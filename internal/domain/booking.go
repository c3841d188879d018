package domain

import (
	"errors"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusPaid     BookingStatus = "paid"
	BookingStatusCanceled BookingStatus = "canceled"
)

// ErrInvalidTransition is returned when a booking status change would
// leave a terminal state. Only pending bookings may move.
var ErrInvalidTransition = errors.New("booking: invalid status transition")

// CanTransitionTo reports whether a booking in status s may move to next.
// Paid and canceled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return next == BookingStatusPaid || next == BookingStatusCanceled
}

type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	ScheduleID     int64         `json:"schedule_id"`
	TotalPrice     float64       `json:"total_price"`
	Status         BookingStatus `json:"status"`
	ReasonCanceled string        `json:"reason_canceled,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	PaymentURL     string        `json:"payment_url,omitempty"`
}

// Transaction is the back-office view of one booking: the record
// joined with its schedule and passenger list.
type Transaction struct {
	Booking
	Schedule   *Schedule   `json:"schedule,omitempty"`
	Passengers []Passenger `json:"passengers"`
}

type PassengerStatus string

const (
	PassengerAdult PassengerStatus = "adult"
	PassengerChild PassengerStatus = "child"
)

// Passenger belongs to a booking by id only; the reference is not
// checked against the booking collection.
type Passenger struct {
	ID         string          `json:"id"`
	BookingID  string          `json:"booking_id"`
	Name       string          `json:"name"`
	IDNumber   string          `json:"id_number"`
	SeatNumber int             `json:"seat_number"`
	Status     PassengerStatus `json:"status"`
}
