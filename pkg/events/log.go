package events

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher writes events to the log instead of a broker. Used when no
// broker URL is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(zap.String("publisher", "log"))}
}

func (p *LogPublisher) Publish(_ context.Context, event BookingEvent) error {
	p.log.Info("Booking event",
		zap.String("type", event.Type),
		zap.String("booking_id", event.BookingID),
		zap.String("status", string(event.Status)),
		zap.String("actor_id", event.ActorID),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// New connects to url when set and falls back to a LogPublisher otherwise.
func New(url, exchange string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		log.Info("RABBITMQ_URL not set, booking events will only be logged")
		return NewLogPublisher(log), nil
	}
	return NewRabbitPublisher(url, exchange, log)
}
