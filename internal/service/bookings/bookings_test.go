package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/gateway"
)

type noTokens struct{}

func (noTokens) Token() string { return "" }

func newTestService() *Service {
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	return NewService(gateway.New("http://backend.test/api", noTokens{}, gateway.WithHTTPClient(hc)))
}

func adult(name, seat string) domain.Passenger {
	return domain.Passenger{Name: name, IDNumber: "3171-" + seat, Status: domain.PassengerAdult}
}

func TestCreateRequest_Validate(t *testing.T) {
	ok := CreateRequest{
		UserID:     "u-1",
		ScheduleID: 1,
		TotalPrice: 700000,
		Passengers: []domain.Passenger{
			adult("Budi", "1"),
			adult("Siti", "2"),
			adult("Agus", "3"),
			{Name: "Ani", Status: domain.PassengerChild},
		},
	}
	assert.NoError(t, ok.Validate())

	fourAdults := ok
	fourAdults.Passengers = append([]domain.Passenger{adult("Dewi", "4")}, ok.Passengers...)
	assert.ErrorIs(t, fourAdults.Validate(), ErrTooManyAdults)

	empty := ok
	empty.Passengers = nil
	assert.ErrorIs(t, empty.Validate(), ErrNoPassengers)

	negative := ok
	negative.TotalPrice = -1
	assert.ErrorIs(t, negative.Validate(), ErrNegativePrice)

	missingID := ok
	missingID.Passengers = []domain.Passenger{{Name: "Budi", Status: domain.PassengerAdult}}
	assert.ErrorIs(t, missingID.Validate(), ErrMissingIDNumber)

	childWithoutID := ok
	childWithoutID.Passengers = []domain.Passenger{adult("Budi", "1"), {Name: "Ani", Status: domain.PassengerChild}}
	assert.NoError(t, childWithoutID.Validate())
}

// Four adults must be rejected before anything goes over the wire.
func TestService_Create_RejectsFourAdultsClientSide(t *testing.T) {
	defer httpmock.DeactivateAndReset()
	svc := newTestService()

	httpmock.RegisterResponder("POST", "http://backend.test/api/bookings",
		httpmock.NewJsonResponderOrPanic(201, map[string]any{"data": map[string]any{"id": "b-1"}}))

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID:     "u-1",
		ScheduleID: 1,
		TotalPrice: 100,
		Passengers: []domain.Passenger{adult("A", "1"), adult("B", "2"), adult("C", "3"), adult("D", "4")},
	})
	assert.ErrorIs(t, err, ErrTooManyAdults)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestService_Create_PostsPayload(t *testing.T) {
	defer httpmock.DeactivateAndReset()
	svc := newTestService()

	var gotBody CreateRequest
	httpmock.RegisterResponder("POST", "http://backend.test/api/bookings",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(201, map[string]any{"data": map[string]any{
				"id":          "b-1",
				"user_id":     gotBody.UserID,
				"schedule_id": gotBody.ScheduleID,
				"total_price": gotBody.TotalPrice,
				"status":      "pending",
				"payment_url": "https://payment.example.com/checkout/b-1",
			}})
		})

	created, err := svc.Create(context.Background(), CreateRequest{
		UserID:     "u-1",
		ScheduleID: 7,
		TotalPrice: 700000,
		Passengers: []domain.Passenger{adult("Budi", "1"), adult("Siti", "2")},
	})
	require.NoError(t, err)

	assert.Equal(t, "b-1", created.ID)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, "https://payment.example.com/checkout/b-1", created.PaymentURL)
	assert.Equal(t, int64(7), gotBody.ScheduleID)
	require.Len(t, gotBody.Passengers, 2)
	assert.Equal(t, "Budi", gotBody.Passengers[0].Name)
}

func TestService_PaymentURL(t *testing.T) {
	defer httpmock.DeactivateAndReset()
	svc := newTestService()

	httpmock.RegisterResponder("GET", "http://backend.test/api/payment/b-1",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"payment_url": "https://payment.example.com/checkout/b-1",
		}))

	url, err := svc.PaymentURL(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "https://payment.example.com/checkout/b-1", url)
}

func TestService_History_BackendError(t *testing.T) {
	defer httpmock.DeactivateAndReset()
	svc := newTestService()

	httpmock.RegisterResponder("GET", "http://backend.test/api/bookings/history",
		httpmock.NewJsonResponderOrPanic(401, map[string]any{"message": "missing bearer token"}))

	_, err := svc.History(context.Background())

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}
