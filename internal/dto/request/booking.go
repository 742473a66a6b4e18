package request

type CreateBookingRequest struct {
	FieldID     string `json:"field_id" validate:"required,uuid"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Note        string `json:"note" validate:"omitempty,max=500"`
}

// RescheduleBookingRequest moves a booking to another slot on the same field.
type RescheduleBookingRequest struct {
	BookingDate string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type BookingListRequest struct {
	PaginatedRequest
	FieldID string `json:"field_id" validate:"omitempty,uuid"`
	Status  string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
