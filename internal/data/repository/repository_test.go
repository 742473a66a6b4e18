package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"sport-booking/internal/access"
	"sport-booking/internal/booking"
	"sport-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatePgError(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"exclusion", pgExclusionViolation, booking.ErrSlotConflict},
		{"foreign key", pgForeignKeyViolation, ErrNotFound},
		{"unique", pgUniqueViolation, ErrDuplicate},
		{"numeric overflow", pgNumericOutOfRange, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, ConstraintName: "bookings_no_overlap"}
			err := translatePgError(fmt.Errorf("insert booking: %w", pgErr))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTranslatePgError_PassThrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, translatePgError(plain))

	other := fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"})
	assert.Same(t, other, translatePgError(other))

	assert.NoError(t, translatePgError(nil))
}

func TestBookingFilterWhere(t *testing.T) {
	owner := uuid.New()
	fieldID := uuid.New()
	status := entity.BookingStatusConfirmed
	date := time.Date(2026, 10, 20, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   BookingFilter
		wantSQL  string
		wantArgs []any
		wantNext string
	}{
		{
			name:     "admin sees all",
			filter:   BookingFilter{Scope: access.BookingScope{All: true}},
			wantSQL:  "",
			wantArgs: []any{},
			wantNext: "$1",
		},
		{
			name:     "user scope",
			filter:   BookingFilter{Scope: access.BookingScope{OwnerID: owner}},
			wantSQL:  " WHERE user_id = $1",
			wantArgs: []any{owner},
			wantNext: "$2",
		},
		{
			name:     "user scope with field",
			filter:   BookingFilter{Scope: access.BookingScope{OwnerID: owner}, FieldID: &fieldID},
			wantSQL:  " WHERE user_id = $1 AND field_id = $2",
			wantArgs: []any{owner, fieldID},
			wantNext: "$3",
		},
		{
			name:     "admin with status and date",
			filter:   BookingFilter{Scope: access.BookingScope{All: true}, Status: &status, Date: &date},
			wantSQL:  " WHERE status = $1 AND booking_date = $2",
			wantArgs: []any{status, entity.DateOf(date)},
			wantNext: "$3",
		},
		{
			name: "user scope with every filter",
			filter: BookingFilter{
				Scope:   access.BookingScope{OwnerID: owner},
				FieldID: &fieldID,
				Status:  &status,
				Date:    &date,
			},
			wantSQL:  " WHERE user_id = $1 AND field_id = $2 AND status = $3 AND booking_date = $4",
			wantArgs: []any{owner, fieldID, status, entity.DateOf(date)},
			wantNext: "$5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.filter.where()
			assert.Equal(t, tt.wantSQL, w.sql())
			assert.ElementsMatch(t, tt.wantArgs, w.args)

			assert.Equal(t, tt.wantNext, w.next(10))
			require.Len(t, w.args, len(tt.wantArgs)+1)
			assert.Equal(t, 10, w.args[len(w.args)-1])
		})
	}
}

func TestFieldFilterWhere(t *testing.T) {
	sport := entity.SportTennis
	status := entity.FieldStatusAvailable

	w := FieldFilter{}.where()
	assert.Equal(t, "", w.sql())

	w = FieldFilter{SportType: &sport, Status: &status}.where()
	assert.Equal(t, " WHERE sport_type = $1 AND status = $2", w.sql())
	assert.Equal(t, []any{sport, status}, w.args)
	assert.Equal(t, "$3", w.next(20))
}

func TestSlotLockKey(t *testing.T) {
	fieldID := uuid.MustParse("7d9f3c1e-2b4a-4c8e-9f61-0a1b2c3d4e5f")
	morning := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 20, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, "7d9f3c1e-2b4a-4c8e-9f61-0a1b2c3d4e5f/2026-10-20", slotLockKey(fieldID, morning))
	assert.Equal(t, slotLockKey(fieldID, morning), slotLockKey(fieldID, evening))
	assert.NotEqual(t, slotLockKey(fieldID, morning), slotLockKey(fieldID, morning.AddDate(0, 0, 1)))
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "confirmed"}, activeStatuses())
	assert.Equal(t, []string{"pending"}, statusStrings([]entity.BookingStatus{entity.BookingStatusPending}))
}
