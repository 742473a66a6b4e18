// Package booking holds the rules for reserving a field: slot validation,
// pricing and status transitions. Nothing here touches storage.
package booking

import (
	"time"

	"sport-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Draft is a proposed reservation. ID is set when rescheduling an existing booking.
type Draft struct {
	ID          uuid.UUID
	FieldID     uuid.UUID
	BookingDate time.Time
	StartTime   entity.Clock
	EndTime     entity.Clock
}

// DraftOf builds the draft describing b's current slot.
func DraftOf(b *entity.Booking) Draft {
	return Draft{
		ID:          b.ID,
		FieldID:     b.FieldID,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
	}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd entity.Clock) bool {
	return aStart < bEnd && aEnd > bStart
}

// Validate checks draft against its field and the bookings already on the
// field's calendar. Checks run in order: time range, field status, date,
// overlap. now decides "today" in its own location.
func Validate(draft Draft, field *entity.Field, existing []*entity.Booking, now time.Time) error {
	if !draft.StartTime.Valid() || !draft.EndTime.Valid() || !draft.StartTime.Before(draft.EndTime) {
		return ErrInvalidTimeRange
	}

	if field == nil {
		return ErrNotFound
	}
	if !field.Bookable() {
		return ErrFieldUnavailable
	}

	if entity.DateOf(draft.BookingDate).Before(entity.DateOf(now)) {
		return ErrPastDate
	}

	return checkConflicts(draft, existing)
}

func checkConflicts(draft Draft, existing []*entity.Booking) error {
	day := entity.DateOf(draft.BookingDate)
	for _, b := range existing {
		if b == nil || !b.Status.Active() {
			continue
		}
		if draft.ID != uuid.Nil && b.ID == draft.ID {
			continue
		}
		if b.FieldID != draft.FieldID || !entity.DateOf(b.BookingDate).Equal(day) {
			continue
		}
		if Overlaps(draft.StartTime, draft.EndTime, b.StartTime, b.EndTime) {
			return &SlotConflictError{Start: b.StartTime, End: b.EndTime}
		}
	}
	return nil
}
