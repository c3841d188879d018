package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/gateway"
	"github.com/prasetyodt/railbooking/internal/guard"
	"github.com/prasetyodt/railbooking/internal/mockapi"
	"github.com/prasetyodt/railbooking/internal/service/admin"
	"github.com/prasetyodt/railbooking/internal/service/bookings"
	"github.com/prasetyodt/railbooking/internal/service/schedules"
	"github.com/prasetyodt/railbooking/internal/service/users"
	"github.com/prasetyodt/railbooking/internal/session"
	"github.com/prasetyodt/railbooking/internal/storage"
)

type testEnv struct {
	server    *httptest.Server
	sessions  *session.Store
	users     *users.Service
	schedules *schedules.Service
	bookings  *bookings.Service
	admin     *admin.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mockapi.NewStore()
	store.Seed()

	server := httptest.NewServer(NewRouter(store))
	t.Cleanup(server.Close)

	sessions := session.NewStore(context.Background(), storage.NewMemoryStore())
	client := gateway.New(server.URL, sessions)

	return &testEnv{
		server:    server,
		sessions:  sessions,
		users:     users.NewService(client),
		schedules: schedules.NewService(client),
		bookings:  bookings.NewService(client),
		admin:     admin.NewService(client),
	}
}

func (e *testEnv) loginCustomer(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	auth, err := e.users.Login(ctx, users.Credentials{Email: "customer@gmail.com", Password: "customer12345"})
	require.NoError(t, err)
	e.sessions.Login(ctx, auth.User, auth.Token, auth.ExpiresAt)
}

func (e *testEnv) loginAdmin(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	auth, err := e.users.Login(ctx, users.Credentials{Email: "admin@gmail.com", Password: "admin12345"})
	require.NoError(t, err)
	e.sessions.Login(ctx, auth.User, auth.Token, auth.ExpiresAt)
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestEndToEnd_CustomerJourney(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Anonymous visitors get bounced to login.
	assert.Equal(t, guard.RedirectLogin, guard.Check(env.sessions, nil))

	env.loginCustomer(t)
	assert.Equal(t, guard.Allow, guard.Check(env.sessions, nil))
	assert.Equal(t, guard.RedirectUnauthorized, guard.Check(env.sessions, []domain.Role{domain.RoleAdmin}))

	found, err := env.schedules.Search(ctx, schedules.SearchParams{
		Origin:      "GMR",
		Destination: "YK",
		Date:        tomorrow(),
		Adults:      2,
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].Route)
	require.NotNil(t, found[0].Route.Origin)
	assert.Equal(t, "GMR", found[0].Route.Origin.Code)
	assert.Equal(t, "YK", found[0].Route.Destination.Code)
	assert.GreaterOrEqual(t, found[0].SeatAvailable, 2)

	booked, err := env.bookings.Create(ctx, bookings.CreateRequest{
		ScheduleID: found[0].ID,
		TotalPrice: found[0].Price * 2,
		Passengers: []domain.Passenger{
			{Name: "Budi", IDNumber: "3171-1", SeatNumber: 1, Status: domain.PassengerAdult},
			{Name: "Siti", IDNumber: "3171-2", SeatNumber: 2, Status: domain.PassengerAdult},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booked.Status)
	assert.NotEmpty(t, booked.PaymentURL)

	url, err := env.bookings.PaymentURL(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, booked.PaymentURL, url)

	history, err := env.bookings.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, booked.ID, history[0].ID)

	paid, err := env.bookings.UpdateStatus(ctx, booked.ID, domain.BookingStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPaid, paid.Status)

	// Paid is terminal; the backend answers with a conflict.
	_, err = env.bookings.UpdateStatus(ctx, booked.ID, domain.BookingStatusCanceled)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
}

func TestEndToEnd_SearchRespectsSeatAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.loginCustomer(t)

	// The Surabaya departure has a single seat left.
	found, err := env.schedules.Search(ctx, schedules.SearchParams{
		Origin:      "GMR",
		Destination: "SGU",
		Date:        tomorrow(),
		Adults:      2,
	})
	require.NoError(t, err)
	assert.Empty(t, found)

	solo, err := env.schedules.Search(ctx, schedules.SearchParams{
		Origin:      "GMR",
		Destination: "SGU",
		Date:        tomorrow(),
		Adults:      1,
	})
	require.NoError(t, err)
	assert.Len(t, solo, 1)
}

func TestEndToEnd_BookingsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bookings.History(context.Background())

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestEndToEnd_AdminEndpointsForbiddenForCustomer(t *testing.T) {
	env := newTestEnv(t)
	env.loginCustomer(t)
	ctx := context.Background()

	_, err := env.users.All(ctx)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	_, err = env.admin.Transactions(ctx, 1)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestEndToEnd_AdminTransactionListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.loginCustomer(t)
	found, err := env.schedules.Search(ctx, schedules.SearchParams{
		Origin:      "GMR",
		Destination: "YK",
		Date:        tomorrow(),
		Adults:      1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, found)

	booked, err := env.bookings.Create(ctx, bookings.CreateRequest{
		ScheduleID: found[0].ID,
		TotalPrice: found[0].Price,
		Passengers: []domain.Passenger{
			{Name: "Budi", IDNumber: "3171-1", SeatNumber: 1, Status: domain.PassengerAdult},
		},
	})
	require.NoError(t, err)

	env.loginAdmin(t)
	page, err := env.admin.Transactions(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)

	tx := page.Data[0]
	assert.Equal(t, booked.ID, tx.ID)
	assert.Equal(t, domain.BookingStatusPending, tx.Status)
	require.NotNil(t, tx.Schedule)
	require.NotNil(t, tx.Schedule.Train)
	require.NotNil(t, tx.Schedule.Route)
	assert.Equal(t, "GMR", tx.Schedule.Route.Origin.Code)
	require.Len(t, tx.Passengers, 1)
	assert.Equal(t, "Budi", tx.Passengers[0].Name)

	// Past the last page the listing is empty, the total unchanged.
	beyond, err := env.admin.Transactions(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, beyond.Total)
	assert.Empty(t, beyond.Data)
}

func TestEndToEnd_LogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.loginCustomer(t)

	_, err := env.bookings.History(ctx)
	require.NoError(t, err)

	// Revoke server-side first; the session store still holds the stale
	// token, so the next call goes out with it and gets rejected.
	require.NoError(t, env.users.Logout(ctx))

	_, err = env.bookings.History(ctx)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	env.sessions.Logout(ctx)
	assert.Equal(t, guard.RedirectLogin, guard.Check(env.sessions, nil))
}
