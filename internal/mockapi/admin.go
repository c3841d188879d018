package mockapi

import (
	"fmt"
	"time"

	"github.com/prasetyodt/railbooking/internal/domain"
)

// Admin CRUD over the static tables. The real backend owns these
// invariants; the mock only needs enough behavior for the admin forms
// to round-trip.

func (s *Store) CreateStation(st domain.Station) domain.Station {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.ID = s.allocID()
	st.CreatedAt = s.now()
	st.UpdatedAt = st.CreatedAt
	s.stations = append(s.stations, st)
	return st
}

func (s *Store) UpdateStation(id int64, st domain.Station) (domain.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.stations {
		if existing.ID != id {
			continue
		}
		st.ID = id
		st.CreatedAt = existing.CreatedAt
		st.UpdatedAt = s.now()
		s.stations[i] = st
		return st, nil
	}
	return domain.Station{}, fmt.Errorf("%w: station %d", ErrNotFound, id)
}

func (s *Store) DeleteStation(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, st := range s.stations {
		if st.ID == id {
			s.stations = append(s.stations[:i], s.stations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: station %d", ErrNotFound, id)
}

func (s *Store) Trains() []domain.Train {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Train, len(s.trains))
	copy(out, s.trains)
	return out
}

func (s *Store) CreateTrain(t domain.Train) domain.Train {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.allocID()
	s.trains = append(s.trains, t)
	return t
}

func (s *Store) UpdateTrain(id int64, t domain.Train) (domain.Train, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.trains {
		if existing.ID == id {
			t.ID = id
			s.trains[i] = t
			return t, nil
		}
	}
	return domain.Train{}, fmt.Errorf("%w: train %d", ErrNotFound, id)
}

func (s *Store) DeleteTrain(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.trains {
		if t.ID == id {
			s.trains = append(s.trains[:i], s.trains[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: train %d", ErrNotFound, id)
}

// Routes returns every route with nested stations attached.
func (s *Store) Routes() []domain.Route {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Route, 0, len(s.routes))
	for _, r := range s.routes {
		for _, st := range s.stations {
			if st.ID == r.OriginID {
				origin := st
				r.Origin = &origin
			}
			if st.ID == r.DestinationID {
				dest := st
				r.Destination = &dest
			}
		}
		out = append(out, r)
	}
	return out
}

func (s *Store) CreateRoute(originID, destinationID int64) (domain.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, want := range []int64{originID, destinationID} {
		found := false
		for _, st := range s.stations {
			if st.ID == want {
				found = true
				break
			}
		}
		if !found {
			return domain.Route{}, fmt.Errorf("%w: station %d", ErrNotFound, want)
		}
	}

	r := domain.Route{ID: s.allocID(), OriginID: originID, DestinationID: destinationID}
	s.routes = append(s.routes, r)
	return r, nil
}

func (s *Store) DeleteRoute(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.routes {
		if r.ID == id {
			s.routes = append(s.routes[:i], s.routes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: route %d", ErrNotFound, id)
}

func (s *Store) CreateSchedule(sched domain.Schedule) (domain.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routeByID(sched.RouteID); !ok {
		return domain.Schedule{}, fmt.Errorf("%w: route %d", ErrNotFound, sched.RouteID)
	}
	sched.ID = s.allocID()
	sched.Train = nil
	sched.Route = nil
	s.schedules = append(s.schedules, sched)
	return sched, nil
}

func (s *Store) UpdateSchedule(id int64, sched domain.Schedule) (domain.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.schedules {
		if existing.ID == id {
			sched.ID = id
			sched.Train = nil
			sched.Route = nil
			s.schedules[i] = sched
			return sched, nil
		}
	}
	return domain.Schedule{}, fmt.Errorf("%w: schedule %d", ErrNotFound, id)
}

func (s *Store) DeleteSchedule(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sched := range s.schedules {
		if sched.ID == id {
			s.schedules = append(s.schedules[:i], s.schedules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: schedule %d", ErrNotFound, id)
}

// ParseScheduleTime accepts the datetime formats the admin form sends.
func ParseScheduleTime(v string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("mockapi: unrecognized time %q", v)
}
