package adaptor

import (
	"net/http"

	"sport-booking/internal/dto/request"
	"sport-booking/internal/usecase"
	"sport-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FieldHandler struct {
	service usecase.FieldService
	log     *zap.Logger
}

func NewFieldHandler(service usecase.FieldService, log *zap.Logger) *FieldHandler {
	return &FieldHandler{
		service: service,
		log:     log.With(zap.String("handler", "field")),
	}
}

// ListFields handles GET /api/fields?sport_type=&status=&page=&per_page=
func (h *FieldHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.FieldListRequest{
		PaginatedRequest: paginationFromQuery(r),
		SportType:        query.Get("sport_type"),
		Status:           query.Get("status"),
	}

	fields, err := h.service.ListFields(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list fields")
		return
	}

	utils.ResponseSuccess(w, "Fields retrieved successfully", fields)
}

// GetField handles GET /api/fields/{id}
func (h *FieldHandler) GetField(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "field")
	if !ok {
		return
	}

	field, err := h.service.GetField(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get field")
		return
	}

	utils.ResponseSuccess(w, "Field retrieved successfully", field)
}

// GetAvailability handles GET /api/fields/{id}/availability?date=YYYY-MM-DD
func (h *FieldHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	req := request.AvailabilityRequest{
		FieldID: chi.URLParam(r, "id"),
		Date:    r.URL.Query().Get("date"),
	}

	availability, err := h.service.GetAvailability(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "Availability retrieved successfully", availability)
}

// CreateField handles POST /api/admin/fields
func (h *FieldHandler) CreateField(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateFieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	field, err := h.service.CreateField(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create field")
		return
	}

	utils.ResponseCreated(w, "Field created successfully", field)
}

// UpdateField handles PUT /api/admin/fields/{id}
func (h *FieldHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "field")
	if !ok {
		return
	}

	var req request.UpdateFieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	field, err := h.service.UpdateField(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update field")
		return
	}

	utils.ResponseSuccess(w, "Field updated successfully", field)
}

// DeleteField handles DELETE /api/admin/fields/{id}
func (h *FieldHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "field")
	if !ok {
		return
	}

	if err := h.service.DeleteField(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.log, err, "delete field")
		return
	}

	utils.ResponseSuccess(w, "Field deleted successfully", nil)
}
