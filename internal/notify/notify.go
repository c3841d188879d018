package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/prasetyodt/railbooking/internal/kafka"
)

// Notifier surfaces booking lifecycle events for operators. The event
// stream has no user-facing channel; logging is the whole delivery.
type Notifier struct {
	log *logrus.Logger
}

func NewNotifier(log *logrus.Logger) *Notifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Notifier{log: log}
}

func (n *Notifier) Notify(_ context.Context, event kafka.BookingEvent) error {
	n.log.WithFields(logrus.Fields{
		"type":        event.Type,
		"booking_id":  event.BookingID,
		"user_id":     event.UserID,
		"schedule_id": event.ScheduleID,
		"status":      event.Status,
	}).Info("booking event")
	return nil
}
