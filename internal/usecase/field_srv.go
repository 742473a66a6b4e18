package usecase

import (
	"context"
	"fmt"
	"time"

	"sport-booking/internal/access"
	"sport-booking/internal/booking"
	"sport-booking/internal/data/entity"
	"sport-booking/internal/data/repository"
	"sport-booking/internal/dto/request"
	"sport-booking/internal/dto/response"
	"sport-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type FieldService interface {
	CreateField(ctx context.Context, actor access.Actor, req *request.CreateFieldRequest) (*response.FieldResponse, error)
	UpdateField(ctx context.Context, actor access.Actor, id uuid.UUID, req *request.UpdateFieldRequest) (*response.FieldResponse, error)
	DeleteField(ctx context.Context, actor access.Actor, id uuid.UUID) error
	GetField(ctx context.Context, id uuid.UUID) (*response.FieldResponse, error)
	ListFields(ctx context.Context, req *request.FieldListRequest) (*response.PaginatedResponse[response.FieldResponse], error)
	// GetAvailability lists the active reservations of a field on one date.
	// An empty date means today in the configured time zone.
	GetAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
}

type fieldService struct {
	fieldRepo   repository.FieldRepository
	bookingRepo repository.BookingRepository
	clock       localClock
	log         *zap.Logger
}

func NewFieldService(
	fieldRepo repository.FieldRepository,
	bookingRepo repository.BookingRepository,
	clock localClock,
	log *zap.Logger,
) FieldService {
	return &fieldService{
		fieldRepo:   fieldRepo,
		bookingRepo: bookingRepo,
		clock:       clock,
		log:         log.With(zap.String("service", "field")),
	}
}

// maxPricePerHour keeps a full day's booking total within NUMERIC(10,2).
var maxPricePerHour = decimal.RequireFromString("999999.99")

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return utils.NewValidationError("price_per_hour", "Must be zero or greater")
	}
	if price.GreaterThan(maxPricePerHour) {
		return utils.NewValidationError("price_per_hour", "Must be at most "+maxPricePerHour.StringFixed(2))
	}
	if !price.Equal(price.Round(2)) {
		return utils.NewValidationError("price_per_hour", "At most 2 decimal places")
	}
	return nil
}

func (s *fieldService) CreateField(ctx context.Context, actor access.Actor, req *request.CreateFieldRequest) (*response.FieldResponse, error) {
	if !access.CanManageField(actor.Role) {
		return nil, booking.ErrForbidden
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	if err := validatePrice(req.PricePerHour); err != nil {
		return nil, err
	}

	status := entity.FieldStatusAvailable
	if req.Status != "" {
		status = entity.FieldStatus(req.Status)
	}

	now := time.Now()
	field := &entity.Field{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		SportType:    entity.SportType(req.SportType),
		Description:  req.Description,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Status:       status,
	}

	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}

	s.log.Info("Field created",
		zap.String("field_id", field.ID.String()),
		zap.String("name", field.Name),
		zap.String("admin_id", actor.ID.String()),
	)

	resp := response.FieldToResponse(field)
	return &resp, nil
}

func (s *fieldService) UpdateField(ctx context.Context, actor access.Actor, id uuid.UUID, req *request.UpdateFieldRequest) (*response.FieldResponse, error) {
	if !access.CanManageField(actor.Role) {
		return nil, booking.ErrForbidden
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	field, err := s.findField(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		field.Name = *req.Name
	}
	if req.SportType != nil {
		field.SportType = entity.SportType(*req.SportType)
	}
	if req.Description != nil {
		field.Description = *req.Description
	}
	if req.Capacity != nil {
		field.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		if err := validatePrice(*req.PricePerHour); err != nil {
			return nil, err
		}
		field.PricePerHour = *req.PricePerHour
	}
	if req.Status != nil {
		field.Status = entity.FieldStatus(*req.Status)
	}
	field.UpdatedAt = time.Now()

	if err := s.fieldRepo.Update(ctx, field); err != nil {
		return nil, fmt.Errorf("update field: %w", err)
	}

	s.log.Info("Field updated",
		zap.String("field_id", field.ID.String()),
		zap.String("status", string(field.Status)),
		zap.String("admin_id", actor.ID.String()),
	)

	resp := response.FieldToResponse(field)
	return &resp, nil
}

// DeleteField removes the field and, through the foreign key, its bookings.
func (s *fieldService) DeleteField(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if !access.CanManageField(actor.Role) {
		return booking.ErrForbidden
	}

	if err := s.fieldRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete field: %w", err)
	}

	s.log.Info("Field deleted",
		zap.String("field_id", id.String()),
		zap.String("admin_id", actor.ID.String()),
	)
	return nil
}

func (s *fieldService) GetField(ctx context.Context, id uuid.UUID) (*response.FieldResponse, error) {
	field, err := s.findField(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.FieldToResponse(field)
	return &resp, nil
}

func (s *fieldService) ListFields(ctx context.Context, req *request.FieldListRequest) (*response.PaginatedResponse[response.FieldResponse], error) {
	req.Normalize()
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	var filter repository.FieldFilter
	if req.SportType != "" {
		sport := entity.SportType(req.SportType)
		filter.SportType = &sport
	}
	if req.Status != "" {
		status := entity.FieldStatus(req.Status)
		filter.Status = &status
	}

	fields, err := s.fieldRepo.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	total, err := s.fieldRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count fields: %w", err)
	}

	data := make([]response.FieldResponse, len(fields))
	for i, f := range fields {
		data[i] = response.FieldToResponse(f)
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *fieldService) GetAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	fieldID, err := uuid.Parse(req.FieldID)
	if err != nil {
		return nil, utils.NewValidationError("field_id", "Must be a valid UUID")
	}

	date := s.clock.Today()
	if req.Date != "" {
		if date, err = entity.ParseDate(req.Date); err != nil {
			return nil, utils.NewValidationError("date", "Must match format "+entity.DateLayout)
		}
	}

	field, err := s.findField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookingRepo.FindActiveByFieldAndDate(ctx, fieldID, date)
	if err != nil {
		return nil, fmt.Errorf("availability for field %s: %w", fieldID, err)
	}

	resp := response.AvailabilityToResponse(field, date, booked)
	return &resp, nil
}

func (s *fieldService) findField(ctx context.Context, id uuid.UUID) (*entity.Field, error) {
	field, err := s.fieldRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find field: %w", err)
	}
	if field == nil {
		return nil, fmt.Errorf("field %s: %w", id, booking.ErrNotFound)
	}
	return field, nil
}
