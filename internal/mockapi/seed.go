package mockapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/prasetyodt/railbooking/internal/domain"
)

// Seed loads the demo dataset: a handful of Java rail stations, two
// trains, the routes between them and tomorrow's departures, plus an
// admin and a customer account.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	s.accounts = append(s.accounts,
		account{
			User: domain.User{
				ID:        uuid.NewString(),
				Name:      "Admin User",
				Email:     "admin@gmail.com",
				Role:      domain.RoleAdmin,
				CreatedAt: now,
			},
			Password: "admin12345",
		},
		account{
			User: domain.User{
				ID:        uuid.NewString(),
				Name:      "Customer User",
				Email:     "customer@gmail.com",
				Role:      domain.RoleCustomer,
				CreatedAt: now,
			},
			Password: "customer12345",
		},
	)

	gambir := s.seedStation("Gambir", "GMR", "Jakarta", "-6.1767", "106.8306")
	yogya := s.seedStation("Yogyakarta", "YK", "Yogyakarta", "-7.7892", "110.3639")
	bandung := s.seedStation("Bandung", "BD", "Bandung", "-6.9142", "107.6023")
	gubeng := s.seedStation("Surabaya Gubeng", "SGU", "Surabaya", "-7.2652", "112.7520")

	taksaka := domain.Train{ID: s.allocID(), Name: "Taksaka", Class: "Eksekutif"}
	argo := domain.Train{ID: s.allocID(), Name: "Argo Bromo Anggrek", Class: "Eksekutif"}
	serayu := domain.Train{ID: s.allocID(), Name: "Serayu", Class: "Ekonomi"}
	s.trains = append(s.trains, taksaka, argo, serayu)

	jkYk := domain.Route{ID: s.allocID(), OriginID: gambir.ID, DestinationID: yogya.ID}
	ykJk := domain.Route{ID: s.allocID(), OriginID: yogya.ID, DestinationID: gambir.ID}
	jkSb := domain.Route{ID: s.allocID(), OriginID: gambir.ID, DestinationID: gubeng.ID}
	jkBd := domain.Route{ID: s.allocID(), OriginID: gambir.ID, DestinationID: bandung.ID}
	s.routes = append(s.routes, jkYk, ykJk, jkSb, jkBd)

	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	s.schedules = append(s.schedules,
		domain.Schedule{
			ID:            s.allocID(),
			TrainID:       taksaka.ID,
			RouteID:       jkYk.ID,
			DepartureTime: tomorrow.Add(8 * time.Hour),
			ArrivalTime:   tomorrow.Add(15 * time.Hour),
			SeatAvailable: 40,
			Price:         350000,
		},
		domain.Schedule{
			ID:            s.allocID(),
			TrainID:       taksaka.ID,
			RouteID:       ykJk.ID,
			DepartureTime: tomorrow.Add(17 * time.Hour),
			ArrivalTime:   tomorrow.Add(24 * time.Hour),
			SeatAvailable: 12,
			Price:         350000,
		},
		domain.Schedule{
			ID:            s.allocID(),
			TrainID:       argo.ID,
			RouteID:       jkSb.ID,
			DepartureTime: tomorrow.Add(9 * time.Hour),
			ArrivalTime:   tomorrow.Add(18 * time.Hour),
			SeatAvailable: 1,
			Price:         550000,
		},
		domain.Schedule{
			ID:            s.allocID(),
			TrainID:       serayu.ID,
			RouteID:       jkBd.ID,
			DepartureTime: tomorrow.Add(6 * time.Hour),
			ArrivalTime:   tomorrow.Add(10 * time.Hour),
			SeatAvailable: 80,
			Price:         75000,
		},
	)
}

// seedStation is called with the lock held.
func (s *Store) seedStation(name, code, city, lat, lon string) domain.Station {
	now := s.now()
	st := domain.Station{
		ID:        s.allocID(),
		Name:      name,
		Code:      code,
		City:      city,
		Latitude:  lat,
		Longitude: lon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.stations = append(s.stations, st)
	return st
}
