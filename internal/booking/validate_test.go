package booking

import (
	"errors"
	"testing"
	"time"

	"sport-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 18, 21, 45, 0, 0, time.UTC)

func clock(s string) entity.Clock {
	c, err := entity.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func availableField() *entity.Field {
	return &entity.Field{
		Base:   entity.Base{ID: uuid.New()},
		Name:   "Court 1",
		Status: entity.FieldStatusAvailable,
	}
}

func draftFor(field *entity.Field, day time.Time, start, end string) Draft {
	return Draft{
		FieldID:     field.ID,
		BookingDate: day,
		StartTime:   clock(start),
		EndTime:     clock(end),
	}
}

func existingBooking(field *entity.Field, day time.Time, start, end string, status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		FieldID:     field.ID,
		BookingDate: day,
		StartTime:   clock(start),
		EndTime:     clock(end),
		Status:      status,
	}
}

func TestValidate_TimeRange(t *testing.T) {
	field := availableField()
	day := entity.DateOf(testNow).AddDate(0, 0, 1)

	tests := []struct {
		name       string
		start, end string
	}{
		{"equal", "10:00", "10:00"},
		{"reversed", "12:00", "10:00"},
		{"reversed by a second", "10:00:01", "10:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(draftFor(field, day, tt.start, tt.end), field, nil, testNow)
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestValidate_Overlap(t *testing.T) {
	field := availableField()
	day := entity.DateOf(testNow).AddDate(0, 0, 3)
	existing := []*entity.Booking{existingBooking(field, day, "10:00", "12:00", entity.BookingStatusPending)}

	tests := []struct {
		name       string
		start, end string
		conflict   bool
	}{
		{"overlaps tail", "11:00", "13:00", true},
		{"overlaps head", "09:00", "10:30", true},
		{"inside", "10:30", "11:30", true},
		{"covers", "09:00", "13:00", true},
		{"same slot", "10:00", "12:00", true},
		{"touches end", "12:00", "13:00", false},
		{"touches start", "08:00", "10:00", false},
		{"disjoint", "14:00", "15:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(draftFor(field, day, tt.start, tt.end), field, existing, testNow)
			if !tt.conflict {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrSlotConflict)
			var conflict *SlotConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, clock("10:00"), conflict.Start)
			assert.Equal(t, clock("12:00"), conflict.End)
		})
	}
}

func TestValidate_IgnoresInactiveAndOtherSlots(t *testing.T) {
	field := availableField()
	other := availableField()
	day := entity.DateOf(testNow).AddDate(0, 0, 1)

	existing := []*entity.Booking{
		existingBooking(field, day, "10:00", "12:00", entity.BookingStatusCancelled),
		existingBooking(field, day, "10:00", "12:00", entity.BookingStatusCompleted),
		existingBooking(other, day, "10:00", "12:00", entity.BookingStatusConfirmed),
		existingBooking(field, day.AddDate(0, 0, 1), "10:00", "12:00", entity.BookingStatusConfirmed),
	}

	assert.NoError(t, Validate(draftFor(field, day, "10:00", "12:00"), field, existing, testNow))
}

func TestValidate_ExcludesItself(t *testing.T) {
	field := availableField()
	day := entity.DateOf(testNow).AddDate(0, 0, 1)
	current := existingBooking(field, day, "10:00", "12:00", entity.BookingStatusConfirmed)

	draft := draftFor(field, day, "11:00", "13:00")
	draft.ID = current.ID

	assert.NoError(t, Validate(draft, field, []*entity.Booking{current}, testNow))
}

func TestValidate_FieldUnavailable(t *testing.T) {
	field := availableField()
	field.Status = entity.FieldStatusMaintenance
	day := entity.DateOf(testNow).AddDate(0, 0, 1)

	err := Validate(draftFor(field, day, "10:00", "11:00"), field, nil, testNow)
	assert.ErrorIs(t, err, ErrFieldUnavailable)
}

func TestValidate_MissingField(t *testing.T) {
	day := entity.DateOf(testNow)
	err := Validate(Draft{BookingDate: day, StartTime: clock("10:00"), EndTime: clock("11:00")}, nil, nil, testNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidate_PastDate(t *testing.T) {
	field := availableField()
	yesterday := entity.DateOf(testNow).AddDate(0, 0, -1)

	for _, slot := range [][2]string{{"00:00", "01:00"}, {"10:00", "12:00"}, {"22:00", "23:30"}} {
		err := Validate(draftFor(field, yesterday, slot[0], slot[1]), field, nil, testNow)
		assert.ErrorIs(t, err, ErrPastDate, "slot %v", slot)
	}
}

func TestValidate_SameDayAllowedAfterSlotTime(t *testing.T) {
	field := availableField()
	today := entity.DateOf(testNow)

	// testNow is 21:45, the slot is earlier the same day.
	assert.NoError(t, Validate(draftFor(field, today, "08:00", "09:00"), field, nil, testNow))
}

func TestValidate_TodayFollowsLocation(t *testing.T) {
	field := availableField()
	bangkok := time.FixedZone("ICT", 7*60*60)
	// 2026-10-18 21:45 UTC is already 2026-10-19 in Bangkok.
	now := testNow.In(bangkok)

	err := Validate(draftFor(field, entity.DateOf(testNow), "10:00", "11:00"), field, nil, now)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(clock("10:00"), clock("12:00"), clock("11:59"), clock("13:00")))
	assert.False(t, Overlaps(clock("10:00"), clock("12:00"), clock("12:00"), clock("13:00")))
	assert.False(t, Overlaps(clock("12:00"), clock("13:00"), clock("10:00"), clock("12:00")))
}
