package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prasetyodt/railbooking/api"
	"github.com/prasetyodt/railbooking/config"
	"github.com/prasetyodt/railbooking/internal/booking"
	"github.com/prasetyodt/railbooking/internal/bootstrap"
	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/gateway"
	"github.com/prasetyodt/railbooking/internal/guard"
	"github.com/prasetyodt/railbooking/internal/kafka"
	"github.com/prasetyodt/railbooking/internal/mockapi"
	"github.com/prasetyodt/railbooking/internal/service/bookings"
	"github.com/prasetyodt/railbooking/internal/service/schedules"
	"github.com/prasetyodt/railbooking/internal/service/users"
	"github.com/prasetyodt/railbooking/internal/session"
	"github.com/prasetyodt/railbooking/internal/storage"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log := logrus.New()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionStore := session.NewStore(ctx, storage.FromConfig(cfg, session.Namespace), session.WithLogger(log))

	bookingOpts := []booking.StoreOption{booking.WithLogger(log)}
	if cfg.Booking.ExpiryMinutes > 0 {
		bookingOpts = append(bookingOpts, booking.WithExpiryWindow(time.Duration(cfg.Booking.ExpiryMinutes)*time.Minute))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, booking.WithPublisher(producer, cfg.Kafka.BookingEventsTopic))
	}
	bookingStore := booking.NewStore(ctx, storage.FromConfig(cfg, booking.Namespace), bookingOpts...)

	// One-shot sweep at startup; cmd/worker repeats it on a ticker.
	if expired := bookingStore.ExpireOldBookings(ctx); len(expired) > 0 {
		log.Infof("canceled %d stale pending bookings", len(expired))
	}

	baseURL := cfg.API.BaseURL
	serverErr := make(chan error, 1)
	if cfg.Mock.Enabled {
		store := mockapi.NewStore()
		store.Seed()
		// Bind before the demo dials the address.
		ln, err := net.Listen("tcp", cfg.Mock.Address)
		if err != nil {
			log.WithError(err).Fatal("bind mock server")
		}
		go func() { serverErr <- bootstrap.Serve(ctx, ln, api.NewRouter(store)) }()
		baseURL = "http://" + ln.Addr().String()
	}

	apiClient := gateway.New(baseURL, sessionStore)
	userService := users.NewService(apiClient)
	scheduleService := schedules.NewService(apiClient)
	bookingService := bookings.NewService(apiClient)

	if err := runDemo(ctx, log, sessionStore, bookingStore, userService, scheduleService, bookingService); err != nil {
		log.WithError(err).Fatal("demo flow failed")
	}

	stop()
	if cfg.Mock.Enabled {
		if err := <-serverErr; err != nil {
			log.WithError(err).Fatal("mock server error")
		}
	}
}

// runDemo walks the customer journey end to end: login, guarded
// navigation, schedule search, passenger entry, local staging, remote
// booking and payment URL retrieval.
func runDemo(
	ctx context.Context,
	log *logrus.Logger,
	sessionStore *session.Store,
	bookingStore *booking.Store,
	userService *users.Service,
	scheduleService *schedules.Service,
	bookingService *bookings.Service,
) error {
	if d := guard.Check(sessionStore, nil); d != guard.Allow {
		log.Infof("not logged in, redirecting to %s", guard.RedirectPath(d))
	}

	auth, err := userService.Login(ctx, users.Credentials{Email: "customer@gmail.com", Password: "customer12345"})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	sessionStore.Login(ctx, auth.User, auth.Token, auth.ExpiresAt)
	log.Infof("logged in as %s (%s)", auth.User.Name, auth.User.Role)

	if d := guard.Check(sessionStore, []domain.Role{domain.RoleAdmin}); d == guard.RedirectUnauthorized {
		log.Infof("admin area denied, would redirect to %s", guard.RedirectPath(d))
	}

	params := schedules.SearchParams{
		Origin:      "GMR",
		Destination: "YK",
		Date:        time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		Adults:      2,
		Infants:     0,
	}
	found, err := scheduleService.Search(ctx, params)
	if err != nil {
		return fmt.Errorf("search schedules: %w", err)
	}
	if len(found) == 0 {
		return fmt.Errorf("no schedules for %s -> %s on %s", params.Origin, params.Destination, params.Date)
	}
	picked := found[0]
	log.Infof("found %d schedules, taking %s departing %s", len(found), picked.Train.Name, picked.DepartureTime.Format(time.RFC3339))

	passengers := []domain.Passenger{
		{Name: "Budi Santoso", IDNumber: "3171012345670001", SeatNumber: 1, Status: domain.PassengerAdult},
		{Name: "Siti Rahayu", IDNumber: "3171012345670002", SeatNumber: 2, Status: domain.PassengerAdult},
	}
	totalPrice := picked.Price * float64(len(passengers))

	staged, err := bookingStore.CreateBooking(ctx, auth.User.ID, picked.ID, totalPrice)
	if err != nil {
		return fmt.Errorf("stage booking: %w", err)
	}
	for _, p := range passengers {
		bookingStore.AddPassenger(ctx, staged.ID, p)
	}

	created, err := bookingService.Create(ctx, bookings.CreateRequest{
		UserID:     auth.User.ID,
		ScheduleID: picked.ID,
		TotalPrice: totalPrice,
		Passengers: passengers,
	})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	if err := bookingStore.SetPaymentURL(ctx, staged.ID, created.PaymentURL); err != nil {
		return fmt.Errorf("attach payment url: %w", err)
	}

	url, err := bookingService.PaymentURL(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("fetch payment url: %w", err)
	}
	log.Infof("booking %s staged locally as %s, pay at %s", created.ID, staged.ID, url)
	return nil
}
