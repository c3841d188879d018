package mockapi

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prasetyodt/railbooking/internal/domain"
)

// DefaultTokenTTL matches the expiry the real backend hands out.
const DefaultTokenTTL = 2 * time.Hour

var (
	ErrEmailTaken         = errors.New("mockapi: email already registered")
	ErrInvalidCredentials = errors.New("mockapi: invalid email or password")
	ErrNotFound           = errors.New("mockapi: not found")
)

type account struct {
	domain.User
	Password string
}

type tokenInfo struct {
	UserID    string
	ExpiresAt time.Time
}

// Store is the offline variant of the backend: static tables joined
// manually in memory. It exists for demos and end-to-end tests; nothing
// here survives a restart.
type Store struct {
	mu         sync.Mutex
	accounts   []account
	tokens     map[string]tokenInfo
	stations   []domain.Station
	trains     []domain.Train
	routes     []domain.Route
	schedules  []domain.Schedule
	bookings   []domain.Booking
	passengers []domain.Passenger
	nextID     int64
	now        func() time.Time
	tokenTTL   time.Duration
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Store) { s.tokenTTL = ttl }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		tokens:   map[string]tokenInfo{},
		nextID:   1,
		now:      time.Now,
		tokenTTL: DefaultTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// allocID is called with the lock held.
func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) Register(name, email, password string, role domain.Role) (domain.User, string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return domain.User{}, "", time.Time{}, ErrEmailTaken
		}
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: s.now(),
	}
	s.accounts = append(s.accounts, account{User: user, Password: password})

	token, expiresAt := s.issueToken(user.ID)
	return user, token, expiresAt, nil
}

func (s *Store) Login(email, password string) (domain.User, string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email && a.Password == password {
			token, expiresAt := s.issueToken(a.User.ID)
			return a.User, token, expiresAt, nil
		}
	}
	return domain.User{}, "", time.Time{}, ErrInvalidCredentials
}

// issueToken is called with the lock held.
func (s *Store) issueToken(userID string) (string, time.Time) {
	token := uuid.NewString()
	expiresAt := s.now().Add(s.tokenTTL)
	s.tokens[token] = tokenInfo{UserID: userID, ExpiresAt: expiresAt}
	return token, expiresAt
}

func (s *Store) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// UserByToken resolves a bearer token to its user. Expired or unknown
// tokens resolve to nothing.
func (s *Store) UserByToken(token string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.tokens[token]
	if !ok || info.ExpiresAt.Before(s.now()) {
		return domain.User{}, false
	}
	for _, a := range s.accounts {
		if a.User.ID == info.UserID {
			return a.User, true
		}
	}
	return domain.User{}, false
}

func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.User)
	}
	return out
}

func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.User.ID == id {
			return a.User, true
		}
	}
	return domain.User{}, false
}

func (s *Store) Stations(city string) []domain.Station {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Station, 0, len(s.stations))
	for _, st := range s.stations {
		if city == "" || st.City == city {
			out = append(out, st)
		}
	}
	return out
}

// stationRef resolves a search parameter to a station, accepting either
// the numeric id or the station code. Called with the lock held.
func (s *Store) stationRef(ref string) (domain.Station, bool) {
	for _, st := range s.stations {
		if st.Code == ref || strconv.FormatInt(st.ID, 10) == ref {
			return st, true
		}
	}
	return domain.Station{}, false
}

// SearchSchedules joins schedules against routes, stations and trains
// by hand and filters on the search form: route must run origin to
// destination, departure must fall on date when one is given, and
// enough seats must remain for the adult count.
func (s *Store) SearchSchedules(origin, destination, date string, adults int) []domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Schedule, 0)
	from, okFrom := s.stationRef(origin)
	to, okTo := s.stationRef(destination)
	if !okFrom || !okTo {
		return out
	}

	for _, sched := range s.schedules {
		route, ok := s.routeByID(sched.RouteID)
		if !ok || route.OriginID != from.ID || route.DestinationID != to.ID {
			continue
		}
		if date != "" && sched.DepartureTime.Format("2006-01-02") != date {
			continue
		}
		if sched.SeatAvailable < adults {
			continue
		}
		out = append(out, s.joined(sched))
	}
	return out
}

// AllSchedules returns every schedule with its joins attached.
func (s *Store) AllSchedules() []domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Schedule, 0, len(s.schedules))
	for _, sched := range s.schedules {
		out = append(out, s.joined(sched))
	}
	return out
}

// joined attaches nested train and route records the way the real
// backend embeds them. Called with the lock held.
func (s *Store) joined(sched domain.Schedule) domain.Schedule {
	for _, t := range s.trains {
		if t.ID == sched.TrainID {
			train := t
			sched.Train = &train
			break
		}
	}
	if route, ok := s.routeByID(sched.RouteID); ok {
		for _, st := range s.stations {
			if st.ID == route.OriginID {
				origin := st
				route.Origin = &origin
			}
			if st.ID == route.DestinationID {
				dest := st
				route.Destination = &dest
			}
		}
		sched.Route = &route
	}
	return sched
}

// routeByID is called with the lock held.
func (s *Store) routeByID(id int64) (domain.Route, bool) {
	for _, r := range s.routes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Route{}, false
}

func (s *Store) CreateBooking(userID string, scheduleID int64, totalPrice float64, passengers []domain.Passenger) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, sched := range s.schedules {
		if sched.ID == scheduleID {
			found = true
			break
		}
	}
	if !found {
		return domain.Booking{}, fmt.Errorf("%w: schedule %d", ErrNotFound, scheduleID)
	}

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
	b.PaymentURL = "https://payment.example.com/checkout/" + b.ID
	s.bookings = append(s.bookings, b)

	for _, p := range passengers {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.BookingID = b.ID
		s.passengers = append(s.passengers, p)
	}
	return b, nil
}

func (s *Store) PaymentURL(bookingID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ID == bookingID {
			return b.PaymentURL, true
		}
	}
	return "", false
}

func (s *Store) History(userID string) []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// TransactionsPerPage is the page size of the back-office transaction
// listing.
const TransactionsPerPage = 10

// Transactions returns one page of every booking joined with its
// schedule and passengers, in insertion order, plus the total count.
func (s *Store) Transactions(page int) ([]domain.Transaction, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	total := len(s.bookings)
	start := (page - 1) * TransactionsPerPage
	if start > total {
		start = total
	}
	end := start + TransactionsPerPage
	if end > total {
		end = total
	}

	out := make([]domain.Transaction, 0, end-start)
	for _, b := range s.bookings[start:end] {
		tx := domain.Transaction{Booking: b, Passengers: make([]domain.Passenger, 0)}
		for _, sched := range s.schedules {
			if sched.ID == b.ScheduleID {
				joined := s.joined(sched)
				tx.Schedule = &joined
				break
			}
		}
		for _, p := range s.passengers {
			if p.BookingID == b.ID {
				tx.Passengers = append(tx.Passengers, p)
			}
		}
		out = append(out, tx)
	}
	return out, total
}

func (s *Store) UpdateBookingStatus(bookingID string, status domain.BookingStatus) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookings {
		if b.ID != bookingID {
			continue
		}
		if !b.Status.CanTransitionTo(status) {
			return domain.Booking{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, status)
		}
		b.Status = status
		b.UpdatedAt = s.now()
		s.bookings[i] = b
		return b, nil
	}
	return domain.Booking{}, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
}
