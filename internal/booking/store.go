package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/kafka"
	"github.com/prasetyodt/railbooking/internal/storage"
)

// Namespace is the persisted blob key for booking lifecycle state.
const Namespace = "booking-storage"

// DefaultExpiryWindow is how long a pending booking may sit unpaid
// before a sweep cancels it.
const DefaultExpiryWindow = 15 * time.Minute

// ExpiredReason is recorded on bookings canceled by the sweep.
const ExpiredReason = "payment window expired"

var ErrBookingNotFound = errors.New("booking: not found")

// Publisher receives booking lifecycle events. A nil Publisher disables
// publishing entirely.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type state struct {
	Bookings   []domain.Booking   `json:"bookings"`
	Passengers []domain.Passenger `json:"passengers"`
}

// Store stages bookings and their passengers on the client side while
// the backend confirms them. All mutations persist the whole state
// synchronously; bookings are never deleted, only status-transitioned.
type Store struct {
	mu        sync.Mutex
	state     state
	storage   storage.Store
	publisher Publisher
	topic     string
	expiry    time.Duration
	now       func() time.Time
	log       *logrus.Logger
}

type StoreOption func(*Store)

// WithPublisher mirrors every lifecycle transition to topic.
func WithPublisher(p Publisher, topic string) StoreOption {
	return func(s *Store) {
		s.publisher = p
		s.topic = topic
	}
}

func WithExpiryWindow(d time.Duration) StoreOption {
	return func(s *Store) { s.expiry = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithLogger(log *logrus.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore rehydrates booking state from st. A missing blob starts
// empty; a corrupt one is logged and discarded.
func NewStore(ctx context.Context, st storage.Store, opts ...StoreOption) *Store {
	s := &Store{
		storage: st,
		expiry:  DefaultExpiryWindow,
		now:     time.Now,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var loaded state
	if err := st.Load(ctx, &loaded); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Warn("booking: failed to rehydrate, starting empty")
		}
		return s
	}
	s.state = loaded
	return s
}

// CreateBooking allocates a new pending booking and appends it to the
// collection. CreatedAt and UpdatedAt carry the same stamp.
func (s *Store) CreateBooking(ctx context.Context, userID string, scheduleID int64, totalPrice float64) (domain.Booking, error) {
	if totalPrice < 0 {
		return domain.Booking{}, fmt.Errorf("booking: total price must be non-negative, got %v", totalPrice)
	}

	s.mu.Lock()
	now := s.now()
	b := domain.Booking{
		ID:         uuid.NewString(),
		UserID:     userID,
		ScheduleID: scheduleID,
		TotalPrice: totalPrice,
		Status:     domain.BookingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.state.Bookings = append(s.state.Bookings, b)
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, "booking_created", b)
	return b, nil
}

// AddPassenger appends a passenger tagged with bookingID. The reference
// is weak: no check that the booking exists. A passenger without an id
// gets one allocated.
func (s *Store) AddPassenger(ctx context.Context, bookingID string, p domain.Passenger) domain.Passenger {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.BookingID = bookingID
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.state.Passengers = append(s.state.Passengers, p)
	s.persist(ctx)
	return p
}

// GetBookingByID looks a booking up by id. The second result is false
// when no such booking exists.
func (s *Store) GetBookingByID(id string) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.state.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// PassengersByBooking returns every passenger attached to bookingID in
// insertion order; an unknown id yields an empty slice.
func (s *Store) PassengersByBooking(bookingID string) []domain.Passenger {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Passenger, 0)
	for _, p := range s.state.Passengers {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out
}

// Bookings returns a snapshot of all bookings in insertion order.
func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, len(s.state.Bookings))
	copy(out, s.state.Bookings)
	return out
}

// UpdateBookingStatus moves a booking to status and stamps UpdatedAt.
// Only pending bookings may move, and only to paid or canceled; any
// other call returns ErrInvalidTransition.
func (s *Store) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Booking{}, ErrBookingNotFound
	}

	current := s.state.Bookings[idx]
	if !current.Status.CanTransitionTo(status) {
		s.mu.Unlock()
		return domain.Booking{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, status)
	}

	current.Status = status
	current.UpdatedAt = s.now()
	s.state.Bookings[idx] = current
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, "booking_"+string(status), current)
	return current, nil
}

// SetPaymentURL attaches the payment URL handed back by the backend.
// Status is untouched.
func (s *Store) SetPaymentURL(ctx context.Context, id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrBookingNotFound
	}
	s.state.Bookings[idx].PaymentURL = url
	s.persist(ctx)
	return nil
}

// ExpireOldBookings cancels every pending booking older than the expiry
// window and returns the transitioned set. It runs once at process
// startup; cmd/worker repeats it on a ticker.
func (s *Store) ExpireOldBookings(ctx context.Context) []domain.Booking {
	s.mu.Lock()
	now := s.now()
	var expired []domain.Booking
	for i, b := range s.state.Bookings {
		if b.Status != domain.BookingStatusPending {
			continue
		}
		if now.Sub(b.CreatedAt) <= s.expiry {
			continue
		}
		b.Status = domain.BookingStatusCanceled
		b.ReasonCanceled = ExpiredReason
		b.UpdatedAt = now
		s.state.Bookings[i] = b
		expired = append(expired, b)
	}
	if len(expired) > 0 {
		s.persist(ctx)
	}
	s.mu.Unlock()

	for _, b := range expired {
		s.publish(ctx, "booking_expired", b)
	}
	return expired
}

// indexOf is called with the lock held.
func (s *Store) indexOf(id string) int {
	for i, b := range s.state.Bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// persist is called with the lock held. A write failure keeps the
// in-memory mutation and is only logged.
func (s *Store) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.state); err != nil {
		s.log.WithError(err).Warn("booking: failed to persist state")
	}
}

func (s *Store) publish(ctx context.Context, eventType string, b domain.Booking) {
	if s.publisher == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		UserID:     b.UserID,
		ScheduleID: b.ScheduleID,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		At:         b.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, s.topic, b.ID, event); err != nil {
		s.log.WithError(err).Warnf("booking: failed to publish %s event for %s", eventType, b.ID)
	}
}
