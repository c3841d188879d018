package admin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/gateway"
	"github.com/prasetyodt/railbooking/internal/geo"
)

// Service wraps the admin CRUD endpoints for stations, trains, routes
// and schedules. These are plain round-trips; the backend owns all
// invariants.
type Service struct {
	api *gateway.Client
}

func NewService(api *gateway.Client) *Service {
	return &Service{api: api}
}

// TransactionPage is one page of the back-office transaction listing.
type TransactionPage struct {
	CurrentPage int                  `json:"current_page"`
	Data        []domain.Transaction `json:"data"`
	Total       int                  `json:"total"`
}

// Transactions lists every booking joined with its schedule and
// passenger list, one page at a time.
func (s *Service) Transactions(ctx context.Context, page int) (TransactionPage, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}

	var out TransactionPage
	if err := s.api.Get(ctx, "/transactions", query, &out); err != nil {
		return TransactionPage{}, err
	}
	return out, nil
}

type StationRequest struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	City      string `json:"city"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

func (s *Service) CreateStation(ctx context.Context, req StationRequest) (domain.Station, error) {
	var out domain.Station
	if err := s.api.Post(ctx, "/stations", req, &out); err != nil {
		return domain.Station{}, err
	}
	return out, nil
}

func (s *Service) UpdateStation(ctx context.Context, id int64, req StationRequest) (domain.Station, error) {
	var out domain.Station
	if err := s.api.Put(ctx, fmt.Sprintf("/stations/%d", id), req, &out); err != nil {
		return domain.Station{}, err
	}
	return out, nil
}

func (s *Service) DeleteStation(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/stations/%d", id))
}

type TrainRequest struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

func (s *Service) Trains(ctx context.Context) ([]domain.Train, error) {
	var out []domain.Train
	if err := s.api.Get(ctx, "/trains", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateTrain(ctx context.Context, req TrainRequest) (domain.Train, error) {
	var out domain.Train
	if err := s.api.Post(ctx, "/trains", req, &out); err != nil {
		return domain.Train{}, err
	}
	return out, nil
}

func (s *Service) UpdateTrain(ctx context.Context, id int64, req TrainRequest) (domain.Train, error) {
	var out domain.Train
	if err := s.api.Put(ctx, fmt.Sprintf("/trains/%d", id), req, &out); err != nil {
		return domain.Train{}, err
	}
	return out, nil
}

func (s *Service) DeleteTrain(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/trains/%d", id))
}

type RouteRequest struct {
	OriginID      int64 `json:"origin_id"`
	DestinationID int64 `json:"destination_id"`
}

// RouteView is a route plus the display distance computed client-side
// from the nested station coordinates.
type RouteView struct {
	domain.Route
	DistanceKm float64 `json:"distance_km"`
}

// Routes lists routes and annotates each with its great-circle
// distance when both nested stations are present. Routes without
// usable coordinates keep a zero distance rather than failing the
// whole listing.
func (s *Service) Routes(ctx context.Context) ([]RouteView, error) {
	var routes []domain.Route
	if err := s.api.Get(ctx, "/routes", nil, &routes); err != nil {
		return nil, err
	}

	out := make([]RouteView, 0, len(routes))
	for _, r := range routes {
		view := RouteView{Route: r}
		if r.Origin != nil && r.Destination != nil {
			if km, err := geo.StationDistanceKm(*r.Origin, *r.Destination); err == nil {
				view.DistanceKm = km
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Service) CreateRoute(ctx context.Context, req RouteRequest) (domain.Route, error) {
	var out domain.Route
	if err := s.api.Post(ctx, "/routes", req, &out); err != nil {
		return domain.Route{}, err
	}
	return out, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/routes/%d", id))
}

type ScheduleRequest struct {
	TrainID       int64   `json:"train_id"`
	RouteID       int64   `json:"route_id"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	SeatAvailable int     `json:"seat_available"`
	Price         float64 `json:"price"`
}

func (s *Service) Schedules(ctx context.Context) ([]domain.Schedule, error) {
	var out []domain.Schedule
	if err := s.api.Get(ctx, "/schedules/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateSchedule(ctx context.Context, req ScheduleRequest) (domain.Schedule, error) {
	var out domain.Schedule
	if err := s.api.Post(ctx, "/schedules", req, &out); err != nil {
		return domain.Schedule{}, err
	}
	return out, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, id int64, req ScheduleRequest) (domain.Schedule, error) {
	var out domain.Schedule
	if err := s.api.Put(ctx, fmt.Sprintf("/schedules/%d", id), req, &out); err != nil {
		return domain.Schedule{}, err
	}
	return out, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/schedules/%d", id))
}
