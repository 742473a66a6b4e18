package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sport-booking/internal/access"
	"sport-booking/internal/booking"
	"sport-booking/internal/data/entity"
	"sport-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// SlotCheck runs inside the slot lock with the field row and the active
// bookings on the target field and date. A non-nil error aborts the write.
type SlotCheck func(field *entity.Field, existing []*entity.Booking) error

type BookingFilter struct {
	Scope   access.BookingScope
	FieldID *uuid.UUID
	Status  *entity.BookingStatus
	Date    *time.Time
}

func (f BookingFilter) where() *whereBuilder {
	w := &whereBuilder{}
	if !f.Scope.All {
		// uuid.Nil matches no row, so an empty scope lists nothing
		w.add("user_id = $%d", f.Scope.OwnerID)
	}
	if f.FieldID != nil {
		w.add("field_id = $%d", *f.FieldID)
	}
	if f.Status != nil {
		w.add("status = $%d", *f.Status)
	}
	if f.Date != nil {
		w.add("booking_date = $%d", entity.DateOf(*f.Date))
	}
	return w
}

type BookingRepository interface {
	// CreateChecked inserts b once check passes under the (field, date) lock.
	CreateChecked(ctx context.Context, b *entity.Booking, check SlotCheck) error
	// RescheduleChecked moves b to its new slot once check passes under the lock
	// and returns the row as stored.
	RescheduleChecked(ctx context.Context, b *entity.Booking, check SlotCheck) (*entity.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindActiveByFieldAndDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	// TransitionStatus applies t only if the stored status is still one of t.From.
	// It returns nil, nil when the row exists but did not match.
	TransitionStatus(ctx context.Context, id uuid.UUID, t booking.Transition) (*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, field_id, booking_date, start_time, end_time,
		       hours, total_price, status, note, created_at, updated_at`

func clockArg(c entity.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: c.Duration().Microseconds(), Valid: true}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		b          entity.Booking
		start, end pgtype.Time
	)
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.FieldID,
		&b.BookingDate,
		&start,
		&end,
		&b.Hours,
		&b.TotalPrice,
		&b.Status,
		&b.Note,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.StartTime = entity.Clock(time.Duration(start.Microseconds) * time.Microsecond)
	b.EndTime = entity.Clock(time.Duration(end.Microseconds) * time.Microsecond)
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}

func slotLockKey(fieldID uuid.UUID, date time.Time) string {
	return fieldID.String() + "/" + entity.DateOf(date).Format(entity.DateLayout)
}

// withSlotLock serializes writers on one field and date. It takes a
// transaction-scoped advisory lock, reads the field FOR SHARE so its status
// and price cannot change underneath, loads the active bookings, runs check
// and then write. The lock is released on commit or rollback.
func (r *bookingRepository) withSlotLock(
	ctx context.Context,
	fieldID uuid.UUID,
	date time.Time,
	check SlotCheck,
	write func(tx pgx.Tx) error,
) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, slotLockKey(fieldID, date)); err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}

	field, err := scanField(tx.QueryRow(ctx, `SELECT `+fieldColumns+` FROM fields WHERE id = $1 FOR SHARE`, fieldID))
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("field %s: %w", fieldID.String(), ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load field %s: %w", fieldID.String(), err)
	}

	rows, err := tx.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE field_id = $1 AND booking_date = $2 AND status = ANY($3)
		ORDER BY start_time
	`, fieldID, entity.DateOf(date), activeStatuses())
	if err != nil {
		return fmt.Errorf("load bookings for slot: %w", err)
	}
	existing, err := collectBookings(rows)
	if err != nil {
		return err
	}

	if err := check(field, existing); err != nil {
		return err
	}

	if err := write(tx); err != nil {
		return translatePgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", translatePgError(err))
	}
	return nil
}

func activeStatuses() []string {
	out := make([]string, len(entity.ActiveBookingStatuses))
	for i, s := range entity.ActiveBookingStatuses {
		out[i] = string(s)
	}
	return out
}

func statusStrings(statuses []entity.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *bookingRepository) CreateChecked(ctx context.Context, b *entity.Booking, check SlotCheck) error {
	err := r.withSlotLock(ctx, b.FieldID, b.BookingDate, check, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bookings (id, user_id, field_id, booking_date, start_time, end_time,
			                      hours, total_price, status, note, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			b.ID,
			b.UserID,
			b.FieldID,
			entity.DateOf(b.BookingDate),
			clockArg(b.StartTime),
			clockArg(b.EndTime),
			b.Hours,
			b.TotalPrice,
			b.Status,
			b.Note,
			b.CreatedAt,
			b.UpdatedAt,
		)
		return err
	})
	if err != nil {
		r.log.Warn("Booking not created",
			zap.Error(err),
			zap.String("field_id", b.FieldID.String()),
			zap.String("user_id", b.UserID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) RescheduleChecked(ctx context.Context, b *entity.Booking, check SlotCheck) (*entity.Booking, error) {
	var stored *entity.Booking
	err := r.withSlotLock(ctx, b.FieldID, b.BookingDate, check, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE bookings
			SET booking_date = $2, start_time = $3, end_time = $4,
			    hours = $5, total_price = $6, note = $7, updated_at = $8
			WHERE id = $1 AND status = ANY($9)
			RETURNING `+bookingColumns,
			b.ID,
			entity.DateOf(b.BookingDate),
			clockArg(b.StartTime),
			clockArg(b.EndTime),
			b.Hours,
			b.TotalPrice,
			b.Note,
			b.UpdatedAt,
			activeStatuses(),
		)
		updated, err := scanBooking(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: booking %s is no longer active", booking.ErrInvalidTransition, b.ID.String())
		}
		if err != nil {
			return err
		}
		stored = updated
		return nil
	})
	if err != nil {
		r.log.Warn("Booking not rescheduled",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
		)
		return nil, fmt.Errorf("reschedule booking %s: %w", b.ID.String(), err)
	}

	return stored, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return b, nil
}

func (r *bookingRepository) FindActiveByFieldAndDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE field_id = $1 AND booking_date = $2 AND status = ANY($3)
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, fieldID, entity.DateOf(date), activeStatuses())
	if err != nil {
		r.log.Error("Failed to find active bookings",
			zap.Error(err),
			zap.String("field_id", fieldID.String()),
		)
		return nil, fmt.Errorf("find active bookings for field %s: %w", fieldID.String(), err)
	}

	return collectBookings(rows)
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	w := filter.where()
	query := `SELECT ` + bookingColumns + ` FROM bookings` + w.sql() +
		` ORDER BY booking_date DESC, start_time DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return collectBookings(rows)
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	w := filter.where()

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+w.sql(), w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, t booking.Transition) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
		RETURNING ` + bookingColumns

	b, err := scanBooking(r.db.QueryRow(ctx, query, id, t.To, statusStrings(t.From)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(t.To)),
		)
		return nil, fmt.Errorf("%s booking %s: %w", t.Action, id.String(), err)
	}

	return b, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
