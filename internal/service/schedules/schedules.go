package schedules

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/gateway"
)

// Search form rules, enforced before any request leaves the client.
var (
	ErrOriginRequired      = errors.New("schedules: origin station is required")
	ErrDestinationRequired = errors.New("schedules: destination station is required")
	ErrSameStation         = errors.New("schedules: origin and destination must differ")
	ErrDateRequired        = errors.New("schedules: departure date is required")
	ErrNoAdults            = errors.New("schedules: at least one adult passenger is required")
	ErrTooManyInfants      = errors.New("schedules: at most 10 infants are allowed")
	ErrInfantsExceedAdults = errors.New("schedules: infants may not outnumber adults")
)

type SearchParams struct {
	Origin      string
	Destination string
	Date        string
	Adults      int
	Infants     int
}

func (p SearchParams) Validate() error {
	switch {
	case p.Origin == "":
		return ErrOriginRequired
	case p.Destination == "":
		return ErrDestinationRequired
	case p.Origin == p.Destination:
		return ErrSameStation
	case p.Date == "":
		return ErrDateRequired
	case p.Adults < 1:
		return ErrNoAdults
	case p.Infants < 0 || p.Infants > 10:
		return ErrTooManyInfants
	case p.Infants > p.Adults:
		return ErrInfantsExceedAdults
	}
	return nil
}

// stationPage is the paginated wrapper the backend puts inside its data
// envelope for /stations.
type stationPage struct {
	Data []domain.Station `json:"data"`
}

type Service struct {
	api *gateway.Client
}

func NewService(api *gateway.Client) *Service {
	return &Service{api: api}
}

// Search forwards the validated form to the backend. Returned schedules
// may carry nested train/route data supplied by the backend; the client
// does no joining of its own.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]domain.Schedule, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("origin_id", p.Origin)
	query.Set("destination_id", p.Destination)
	query.Set("departure_date", p.Date)
	query.Set("adults", strconv.Itoa(p.Adults))
	query.Set("infants", strconv.Itoa(p.Infants))

	var out []domain.Schedule
	if err := s.api.Get(ctx, "/schedules", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stations returns the first page of the paginated station list,
// optionally filtered by city.
func (s *Service) Stations(ctx context.Context, city string) ([]domain.Station, error) {
	query := url.Values{}
	if city != "" {
		query.Set("city", city)
	}

	var page stationPage
	if err := s.api.Get(ctx, "/stations", query, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// AllStations returns the flat, unpaginated list.
func (s *Service) AllStations(ctx context.Context) ([]domain.Station, error) {
	var out []domain.Station
	if err := s.api.Get(ctx, "/stations/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
