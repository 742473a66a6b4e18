package response

import (
	"time"

	"sport-booking/internal/data/entity"
)

type FieldResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	SportType    entity.SportType   `json:"sport_type"`
	Description  string             `json:"description,omitempty"`
	Capacity     int                `json:"capacity"`
	PricePerHour string             `json:"price_per_hour"`
	Status       entity.FieldStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type SlotResponse struct {
	Start entity.Clock `json:"start"`
	End   entity.Clock `json:"end"`
}

// AvailabilityResponse lists the slots already taken on one field and date.
type AvailabilityResponse struct {
	FieldID     string             `json:"field_id"`
	FieldName   string             `json:"field_name"`
	Date        string             `json:"date"`
	FieldStatus entity.FieldStatus `json:"field_status"`
	BookedSlots []SlotResponse     `json:"booked_slots"`
}

func FieldToResponse(field *entity.Field) FieldResponse {
	return FieldResponse{
		ID:           field.ID.String(),
		Name:         field.Name,
		SportType:    field.SportType,
		Description:  field.Description,
		Capacity:     field.Capacity,
		PricePerHour: field.PricePerHour.StringFixed(2),
		Status:       field.Status,
		CreatedAt:    field.CreatedAt,
		UpdatedAt:    field.UpdatedAt,
	}
}

func AvailabilityToResponse(field *entity.Field, date time.Time, booked []*entity.Booking) AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(booked))
	for _, b := range booked {
		slots = append(slots, SlotResponse{Start: b.StartTime, End: b.EndTime})
	}

	return AvailabilityResponse{
		FieldID:     field.ID.String(),
		FieldName:   field.Name,
		Date:        date.Format(entity.DateLayout),
		FieldStatus: field.Status,
		BookedSlots: slots,
	}
}
