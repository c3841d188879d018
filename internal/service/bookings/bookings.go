package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/gateway"
)

// MaxAdults is the hard cap on adult passengers per booking, enforced
// before any network call.
const MaxAdults = 3

var (
	ErrTooManyAdults   = errors.New("bookings: at most 3 adult passengers per booking")
	ErrNoPassengers    = errors.New("bookings: at least one passenger is required")
	ErrMissingIDNumber = errors.New("bookings: adult passengers require an id number")
	ErrNegativePrice   = errors.New("bookings: total price must be non-negative")
)

type CreateRequest struct {
	UserID     string             `json:"user_id"`
	ScheduleID int64              `json:"schedule_id"`
	TotalPrice float64            `json:"total_price"`
	Passengers []domain.Passenger `json:"passengers"`
}

func (r CreateRequest) Validate() error {
	if len(r.Passengers) == 0 {
		return ErrNoPassengers
	}
	if r.TotalPrice < 0 {
		return ErrNegativePrice
	}
	adults := 0
	for _, p := range r.Passengers {
		if p.Status != domain.PassengerAdult {
			continue
		}
		adults++
		if p.IDNumber == "" {
			return fmt.Errorf("%w: passenger %q", ErrMissingIDNumber, p.Name)
		}
	}
	if adults > MaxAdults {
		return ErrTooManyAdults
	}
	return nil
}

type statusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

type paymentResponse struct {
	PaymentURL string `json:"payment_url"`
}

type Service struct {
	api *gateway.Client
}

func NewService(api *gateway.Client) *Service {
	return &Service{api: api}
}

// Create posts the booking with its passenger list and returns the
// backend's record, payment URL included.
func (s *Service) Create(ctx context.Context, req CreateRequest) (domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return domain.Booking{}, err
	}

	var out domain.Booking
	if err := s.api.Post(ctx, "/bookings", req, &out); err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

// PaymentURL fetches the checkout URL for an existing booking.
func (s *Service) PaymentURL(ctx context.Context, bookingID string) (string, error) {
	var out paymentResponse
	if err := s.api.Get(ctx, "/payment/"+bookingID, nil, &out); err != nil {
		return "", err
	}
	return out.PaymentURL, nil
}

// History returns the caller's past bookings.
func (s *Service) History(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := s.api.Get(ctx, "/bookings/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus asks the backend to move a booking to status.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (domain.Booking, error) {
	var out domain.Booking
	if err := s.api.Put(ctx, "/bookings/"+bookingID+"/status", statusRequest{Status: status}, &out); err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}
