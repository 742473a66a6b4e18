package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"sport-booking/internal/access"
	"sport-booking/internal/booking"
	"sport-booking/internal/data/entity"
	"sport-booking/internal/data/repository"
	"sport-booking/internal/dto/request"
	"sport-booking/internal/usecase"
	"sport-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Field   *FieldHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Field:   NewFieldHandler(service.Field, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// actorFromRequest reads the caller set by the auth middleware.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (access.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return access.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return access.Actor{ID: userID, Role: entity.UserRole(role)}, true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}
}

// handleServiceError maps domain and auth errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		conflict   *booking.SlotConflictError
		transition *booking.TransitionError
	)

	if verr, ok := utils.AsValidationError(err); ok {
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)
		return
	}

	switch {
	case errors.Is(err, booking.ErrInvalidTimeRange):
		log.Warn(operation+" failed - invalid time range", zap.Error(err))
		utils.ResponseBadRequest(w, booking.ErrInvalidTimeRange.Error(), nil)

	case errors.Is(err, booking.ErrPastDate):
		log.Warn(operation+" failed - past date", zap.Error(err))
		utils.ResponseBadRequest(w, booking.ErrPastDate.Error(), nil)

	case errors.Is(err, booking.ErrFieldUnavailable):
		log.Warn(operation+" failed - field unavailable", zap.Error(err))
		utils.ResponseBadRequest(w, booking.ErrFieldUnavailable.Error(), nil)

	case errors.As(err, &conflict):
		log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseConflict(w, conflict.Error(), map[string]string{
			"start_time": conflict.Start.String(),
			"end_time":   conflict.End.String(),
		})

	case errors.Is(err, booking.ErrSlotConflict):
		log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseConflict(w, booking.ErrSlotConflict.Error(), nil)

	case errors.As(err, &transition):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseConflict(w, transition.Error(), nil)

	case errors.Is(err, booking.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseConflict(w, booking.ErrInvalidTransition.Error(), nil)

	case errors.Is(err, usecase.ErrEmailTaken):
		utils.ResponseConflict(w, "email already registered", nil)

	case errors.Is(err, usecase.ErrUsernameTaken):
		utils.ResponseConflict(w, "username already taken", nil)

	case errors.Is(err, repository.ErrDuplicate):
		log.Warn(operation+" failed - duplicate", zap.Error(err))
		utils.ResponseConflict(w, "resource already exists", nil)

	case errors.Is(err, repository.ErrOutOfRange):
		log.Warn(operation+" failed - value out of range", zap.Error(err))
		utils.ResponseBadRequest(w, "A numeric value is too large", nil)

	case errors.Is(err, booking.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "You are not allowed to perform this action")

	case errors.Is(err, booking.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Resource not found")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, usecase.ErrInvalidCredentials.Error())

	case errors.Is(err, usecase.ErrAccountInactive):
		utils.ResponseForbidden(w, usecase.ErrAccountInactive.Error())

	case errors.Is(err, usecase.ErrInvalidToken):
		utils.ResponseBadRequest(w, usecase.ErrInvalidToken.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
