package domain

import "time"

// Station, Route, Train and Schedule are read models owned by the
// backend; the client only displays them or round-trips them through
// the admin CRUD endpoints. Coordinates stay strings as the backend
// sends them.
type Station struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	City      string    `json:"city"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Train struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

type Route struct {
	ID            int64    `json:"id"`
	OriginID      int64    `json:"origin_id"`
	DestinationID int64    `json:"destination_id"`
	Origin        *Station `json:"origin,omitempty"`
	Destination   *Station `json:"destination,omitempty"`
}

type Schedule struct {
	ID            int64     `json:"id"`
	TrainID       int64     `json:"train_id"`
	RouteID       int64     `json:"route_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	SeatAvailable int       `json:"seat_available"`
	Price         float64   `json:"price"`
	Train         *Train    `json:"train,omitempty"`
	Route         *Route    `json:"route,omitempty"`
}
