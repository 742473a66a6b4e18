package response

import (
	"time"

	"sport-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	FieldID     string               `json:"field_id"`
	BookingDate string               `json:"booking_date"`
	StartTime   entity.Clock         `json:"start_time"`
	EndTime     entity.Clock         `json:"end_time"`
	Hours       string               `json:"hours"`
	TotalPrice  string               `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	Note        string               `json:"note,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		FieldID:     b.FieldID.String(),
		BookingDate: b.BookingDate.Format(entity.DateLayout),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Hours:       b.Hours.StringFixed(1),
		TotalPrice:  b.TotalPrice.StringFixed(2),
		Status:      b.Status,
		Note:        b.Note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}
