package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sport-booking/internal/access"
	"sport-booking/internal/booking"
	"sport-booking/internal/data/entity"
	"sport-booking/internal/data/repository"
	"sport-booking/internal/dto/request"
	"sport-booking/internal/dto/response"
	"sport-booking/pkg/events"
	"sport-booking/pkg/metrics"
	"sport-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxTransitionAttempts bounds the re-read loop when a status update loses a race.
const maxTransitionAttempts = 3

type BookingService interface {
	CreateBooking(ctx context.Context, actor access.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// ListBookings returns every booking for admins and only their own for users.
	ListBookings(ctx context.Context, actor access.Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	MyBookings(ctx context.Context, actor access.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, actor access.Actor, id uuid.UUID) (*response.BookingResponse, error)
	RescheduleBooking(ctx context.Context, actor access.Actor, id uuid.UUID, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor access.Actor, id uuid.UUID) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, actor access.Actor, id uuid.UUID) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	publisher   events.Publisher
	clock       localClock
	log         *zap.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	publisher events.Publisher,
	clock localClock,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		clock:       clock,
		log:         log.With(zap.String("service", "booking")),
	}
}

// parseSlot turns the request strings into a booking date and a clock range.
func parseSlot(date, start, end string) (time.Time, entity.Clock, entity.Clock, error) {
	fields := map[string]string{}

	d, err := entity.ParseDate(date)
	if err != nil {
		fields["booking_date"] = "Must match format " + entity.DateLayout
	}
	s, err := entity.ParseClock(start)
	if err != nil {
		fields["start_time"] = "Must match format HH:MM"
	}
	e, err := entity.ParseClock(end)
	if err != nil {
		fields["end_time"] = "Must match format HH:MM"
	}
	if len(fields) > 0 {
		return time.Time{}, 0, 0, &utils.ValidationError{Fields: fields}
	}

	if !s.Before(e) {
		return time.Time{}, 0, 0, booking.ErrInvalidTimeRange
	}
	return d, s, e, nil
}

// slotCheck validates b against the locked field and its active bookings,
// then prices it from the field's current rate.
func (s *bookingService) slotCheck(b *entity.Booking) repository.SlotCheck {
	return func(field *entity.Field, existing []*entity.Booking) error {
		if err := booking.Validate(booking.DraftOf(b), field, existing, s.clock.Now()); err != nil {
			return err
		}
		booking.Price(b, field)
		return nil
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor access.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	fieldID, err := uuid.Parse(req.FieldID)
	if err != nil {
		return nil, utils.NewValidationError("field_id", "Must be a valid UUID")
	}

	date, start, end, err := parseSlot(req.BookingDate, req.StartTime, req.EndTime)
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	now := time.Now()
	b := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      actor.ID,
		FieldID:     fieldID,
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      entity.BookingStatusPending,
		Note:        req.Note,
	}

	if err := s.bookingRepo.CreateChecked(ctx, b, s.slotCheck(b)); err != nil {
		s.recordRejection(err)
		return nil, err
	}

	metrics.RecordBooking(string(b.Status))
	s.publish(ctx, events.BookingCreated, b, actor)

	s.log.Info("Booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("field_id", b.FieldID.String()),
		zap.String("user_id", b.UserID.String()),
		zap.String("date", b.BookingDate.Format(entity.DateLayout)),
		zap.Stringer("start", b.StartTime),
		zap.Stringer("end", b.EndTime),
		zap.String("total_price", b.TotalPrice.StringFixed(2)),
	)

	resp := response.BookingToResponse(b)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor access.Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	req.Normalize()
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{Scope: access.ScopeBookings(actor)}
	if req.FieldID != "" {
		fieldID, err := uuid.Parse(req.FieldID)
		if err != nil {
			return nil, utils.NewValidationError("field_id", "Must be a valid UUID")
		}
		filter.FieldID = &fieldID
	}
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	if req.Date != "" {
		date, err := entity.ParseDate(req.Date)
		if err != nil {
			return nil, utils.NewValidationError("date", "Must match format "+entity.DateLayout)
		}
		filter.Date = &date
	}

	return s.list(ctx, filter, req.PaginatedRequest)
}

func (s *bookingService) MyBookings(ctx context.Context, actor access.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	req.Normalize()

	filter := repository.BookingFilter{Scope: access.BookingScope{OwnerID: actor.ID}}
	return s.list(ctx, filter, *req)
}

func (s *bookingService) list(ctx context.Context, filter repository.BookingFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.bookingRepo.List(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), page.Page, page.PerPage, total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor access.Actor, id uuid.UUID) (*response.BookingResponse, error) {
	b, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewBooking(actor, b) {
		return nil, booking.ErrForbidden
	}

	resp := response.BookingToResponse(b)
	return &resp, nil
}

func (s *bookingService) RescheduleBooking(ctx context.Context, actor access.Actor, id uuid.UUID, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	date, start, end, err := parseSlot(req.BookingDate, req.StartTime, req.EndTime)
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	current, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := booking.PlanReschedule(actor, current); err != nil {
		return nil, err
	}

	updated := *current
	updated.BookingDate = date
	updated.StartTime = start
	updated.EndTime = end
	updated.UpdatedAt = time.Now()
	if req.Note != nil {
		updated.Note = *req.Note
	}

	stored, err := s.bookingRepo.RescheduleChecked(ctx, &updated, s.slotCheck(&updated))
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	s.publish(ctx, events.BookingRescheduled, stored, actor)

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", stored.ID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.String("date", stored.BookingDate.Format(entity.DateLayout)),
		zap.Stringer("start", stored.StartTime),
		zap.Stringer("end", stored.EndTime),
	)

	resp := response.BookingToResponse(stored)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor access.Actor, id uuid.UUID) (*response.BookingResponse, error) {
	return s.transition(ctx, actor, id, booking.PlanCancel, events.BookingCancelled)
}

func (s *bookingService) ConfirmBooking(ctx context.Context, actor access.Actor, id uuid.UUID) (*response.BookingResponse, error) {
	return s.transition(ctx, actor, id, booking.PlanConfirm, events.BookingConfirmed)
}

// transition plans a status change against the stored booking and applies it
// with a compare-and-swap. When another writer changed the status in between,
// the booking is re-read so the caller gets the error for its current state.
func (s *bookingService) transition(
	ctx context.Context,
	actor access.Actor,
	id uuid.UUID,
	plan func(access.Actor, *entity.Booking) (booking.Transition, error),
	eventType string,
) (*response.BookingResponse, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		current, err := s.findBooking(ctx, id)
		if err != nil {
			return nil, err
		}

		t, err := plan(actor, current)
		if err != nil {
			return nil, err
		}

		updated, err := s.bookingRepo.TransitionStatus(ctx, id, t)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			s.log.Debug("Booking status changed concurrently, retrying",
				zap.String("booking_id", id.String()),
				zap.String("action", t.Action),
			)
			continue
		}

		metrics.RecordBooking(string(updated.Status))
		s.publish(ctx, eventType, updated, actor)

		s.log.Info("Booking status changed",
			zap.String("booking_id", id.String()),
			zap.String("action", t.Action),
			zap.String("from", string(current.Status)),
			zap.String("to", string(updated.Status)),
			zap.String("actor_id", actor.ID.String()),
		)

		resp := response.BookingToResponse(updated)
		return &resp, nil
	}

	return nil, fmt.Errorf("booking %s kept changing: %w", id, booking.ErrInvalidTransition)
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !access.IsAdmin(actor.Role) {
		return booking.ErrForbidden
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", id.String()),
		zap.String("admin_id", actor.ID.String()),
	)
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("booking %s: %w", id, booking.ErrNotFound)
	}
	return b, nil
}

// publish never fails the request; the booking is already committed.
func (s *bookingService) publish(ctx context.Context, eventType string, b *entity.Booking, actor access.Actor) {
	event := events.NewBookingEvent(eventType, b, actor.ID.String(), s.clock.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("booking_id", b.ID.String()),
		)
	}
}

func (s *bookingService) recordRejection(err error) {
	var reason string
	switch {
	case errors.Is(err, booking.ErrInvalidTimeRange):
		reason = "invalid_time_range"
	case errors.Is(err, booking.ErrSlotConflict):
		reason = "slot_conflict"
	case errors.Is(err, booking.ErrFieldUnavailable):
		reason = "field_unavailable"
	case errors.Is(err, booking.ErrPastDate):
		reason = "past_date"
	case errors.Is(err, booking.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, booking.ErrInvalidTransition):
		reason = "invalid_transition"
	default:
		var verr *utils.ValidationError
		if !errors.As(err, &verr) {
			return
		}
		reason = "validation"
	}
	metrics.RecordBookingRejection(reason)
}
