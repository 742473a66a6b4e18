package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ActiveBookingStatuses hold a slot on the field's calendar.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// Active reports whether the status still occupies its slot.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

type Booking struct {
	Base
	UserID      uuid.UUID       `db:"user_id"`
	FieldID     uuid.UUID       `db:"field_id"`
	BookingDate time.Time       `db:"booking_date"`
	StartTime   Clock           `db:"start_time"`
	EndTime     Clock           `db:"end_time"`
	Hours       decimal.Decimal `db:"hours"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	Status      BookingStatus   `db:"status"`
	Note        string          `db:"note"`
}
