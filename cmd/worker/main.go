package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prasetyodt/railbooking/config"
	"github.com/prasetyodt/railbooking/internal/booking"
	"github.com/prasetyodt/railbooking/internal/kafka"
	"github.com/prasetyodt/railbooking/internal/notify"
	"github.com/prasetyodt/railbooking/internal/storage"
)

// The worker owns the recurring half of booking expiry: the app runs
// one sweep at startup, this process repeats it on a ticker and tails
// the lifecycle event stream.
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

	opts := []booking.StoreOption{booking.WithLogger(log)}
	if cfg.Booking.ExpiryMinutes > 0 {
		opts = append(opts, booking.WithExpiryWindow(time.Duration(cfg.Booking.ExpiryMinutes)*time.Minute))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, booking.WithPublisher(producer, cfg.Kafka.BookingEventsTopic))
	}
	bookingStore := booking.NewStore(ctx, storage.FromConfig(cfg, booking.Namespace), opts...)

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic,
			kafka.WithConsumerLogger(log))
		defer consumer.Close()

		notifier := notify.NewNotifier(log)
		go func() {
			err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
				return notifier.Notify(ctx, event)
			})
			if err != nil {
				log.WithError(err).Info("consumer stopped")
			}
		}()
	}

	sweepEvery := time.Duration(cfg.Worker.ExpirationSweepMinutes) * time.Minute
	if sweepEvery <= 0 {
		sweepEvery = 5 * time.Minute
	}
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	log.Infof("expiry sweep every %s", sweepEvery)
	for {
		select {
		case <-ticker.C:
			if expired := bookingStore.ExpireOldBookings(ctx); len(expired) > 0 {
				log.Infof("canceled %d stale pending bookings", len(expired))
			}
		case <-ctx.Done():
			log.Info("shutting down")
			return
		}
	}
}
