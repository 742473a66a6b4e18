// Package events publishes booking lifecycle events to a message broker.
package events

import (
	"context"
	"time"

	"sport-booking/internal/data/entity"
)

const (
	BookingCreated     = "booking.created"
	BookingRescheduled = "booking.rescheduled"
	BookingConfirmed   = "booking.confirmed"
	BookingCancelled   = "booking.cancelled"
)

// BookingEvent is the message body for every booking routing key.
type BookingEvent struct {
	Type        string               `json:"type"`
	BookingID   string               `json:"booking_id"`
	UserID      string               `json:"user_id"`
	FieldID     string               `json:"field_id"`
	BookingDate string               `json:"booking_date"`
	StartTime   entity.Clock         `json:"start_time"`
	EndTime     entity.Clock         `json:"end_time"`
	TotalPrice  string               `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	ActorID     string               `json:"actor_id"`
	OccurredAt  time.Time            `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *entity.Booking, actorID string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:        eventType,
		BookingID:   b.ID.String(),
		UserID:      b.UserID.String(),
		FieldID:     b.FieldID.String(),
		BookingDate: b.BookingDate.Format(entity.DateLayout),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalPrice:  b.TotalPrice.StringFixed(2),
		Status:      b.Status,
		ActorID:     actorID,
		OccurredAt:  at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}
