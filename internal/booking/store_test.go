package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/kafka"
	"github.com/prasetyodt/railbooking/internal/storage"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	return NewStore(context.Background(), storage.NewMemoryStore(), opts...)
}

func TestStore_CreateBooking(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 42, 700000)
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "u-1", b.UserID)
	assert.Equal(t, int64(42), b.ScheduleID)
	assert.Equal(t, domain.BookingStatusPending, b.Status)
	assert.True(t, b.CreatedAt.Equal(b.UpdatedAt))
	assert.Empty(t, b.PaymentURL)

	// The booking appears exactly once in the collection.
	count := 0
	for _, stored := range store.Bookings() {
		if stored.ID == b.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestStore_CreateBooking_NegativePrice(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateBooking(context.Background(), "u-1", 1, -10)
	assert.Error(t, err)
	assert.Empty(t, store.Bookings())
}

func TestStore_GetBookingByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)

	found, ok := store.GetBookingByID(b.ID)
	assert.True(t, ok)
	assert.Equal(t, b.ID, found.ID)

	_, ok = store.GetBookingByID("no-such-booking")
	assert.False(t, ok)
}

func TestStore_PassengerAssociation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)

	first := store.AddPassenger(ctx, b.ID, domain.Passenger{Name: "Budi", IDNumber: "317", SeatNumber: 1, Status: domain.PassengerAdult})
	second := store.AddPassenger(ctx, b.ID, domain.Passenger{Name: "Ani", SeatNumber: 2, Status: domain.PassengerChild})

	// Another booking's passengers must not leak in.
	store.AddPassenger(ctx, "other-booking", domain.Passenger{Name: "X", SeatNumber: 1, Status: domain.PassengerAdult})

	got := store.PassengersByBooking(b.ID)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, b.ID, got[0].BookingID)

	assert.Empty(t, store.PassengersByBooking("unknown-id"))
}

func TestStore_UpdateBookingStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)

	paid, err := store.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPaid, paid.Status)
	assert.False(t, paid.UpdatedAt.Before(b.UpdatedAt))

	// Paid is terminal.
	_, err = store.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusCanceled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = store.UpdateBookingStatus(ctx, "no-such-booking", domain.BookingStatusPaid)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestStore_UpdateBookingStatus_CanceledIsTerminal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)

	_, err = store.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusCanceled)
	require.NoError(t, err)

	_, err = store.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestStore_SetPaymentURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)

	require.NoError(t, store.SetPaymentURL(ctx, b.ID, "https://payment.example.com/checkout/x"))

	found, ok := store.GetBookingByID(b.ID)
	require.True(t, ok)
	assert.Equal(t, "https://payment.example.com/checkout/x", found.PaymentURL)
	assert.Equal(t, domain.BookingStatusPending, found.Status)

	assert.ErrorIs(t, store.SetPaymentURL(ctx, "missing", "url"), ErrBookingNotFound)
}

func TestStore_ExpireOldBookings(t *testing.T) {
	now := time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	old, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)

	now = now.Add(6 * time.Minute)
	fresh, err := store.CreateBooking(ctx, "u-1", 2, 200)
	require.NoError(t, err)

	// old is now 16 minutes stale, fresh only 10.
	now = now.Add(10 * time.Minute)
	expired := store.ExpireOldBookings(ctx)

	require.Len(t, expired, 1)
	assert.Equal(t, old.ID, expired[0].ID)
	assert.Equal(t, domain.BookingStatusCanceled, expired[0].Status)
	assert.Equal(t, ExpiredReason, expired[0].ReasonCanceled)
	assert.True(t, expired[0].UpdatedAt.Equal(now))

	stillPending, ok := store.GetBookingByID(fresh.ID)
	require.True(t, ok)
	assert.Equal(t, domain.BookingStatusPending, stillPending.Status)

	// A second sweep finds nothing new.
	assert.Empty(t, store.ExpireOldBookings(ctx))
}

func TestStore_ExpireOldBookings_SkipsTerminal(t *testing.T) {
	now := time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)
	_, err = store.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusPaid)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	assert.Empty(t, store.ExpireOldBookings(ctx))

	kept, _ := store.GetBookingByID(b.ID)
	assert.Equal(t, domain.BookingStatusPaid, kept.Status)
}

func TestStore_RehydratesFromStorage(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()

	first := NewStore(ctx, backing)
	b, err := first.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)
	first.AddPassenger(ctx, b.ID, domain.Passenger{Name: "Budi", SeatNumber: 1, Status: domain.PassengerAdult})

	second := NewStore(ctx, backing)
	found, ok := second.GetBookingByID(b.ID)
	assert.True(t, ok)
	assert.Equal(t, b.ID, found.ID)
	assert.Len(t, second.PassengersByBooking(b.ID), 1)
}

func TestStore_PublishesLifecycleEvents(t *testing.T) {
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(nil)

	now := time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t,
		WithClock(func() time.Time { return now }),
		WithPublisher(publisher, "booking-events"),
	)
	ctx := context.Background()

	b, err := store.CreateBooking(ctx, "u-1", 1, 100)
	require.NoError(t, err)
	_, err = store.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusPaid)
	require.NoError(t, err)

	publisher.AssertNumberOfCalls(t, "Publish", 2)

	created := publisher.Calls[0].Arguments.Get(3).(kafka.BookingEvent)
	assert.Equal(t, "booking_created", created.Type)
	assert.Equal(t, b.ID, created.BookingID)

	paid := publisher.Calls[1].Arguments.Get(3).(kafka.BookingEvent)
	assert.Equal(t, "booking_paid", paid.Type)
	assert.Equal(t, string(domain.BookingStatusPaid), paid.Status)
}

func TestStore_PublisherFailureDoesNotFailMutation(t *testing.T) {
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	store := newTestStore(t, WithPublisher(publisher, "booking-events"))

	b, err := store.CreateBooking(context.Background(), "u-1", 1, 100)
	require.NoError(t, err)
	_, ok := store.GetBookingByID(b.ID)
	assert.True(t, ok)
}
