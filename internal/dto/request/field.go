package request

import "github.com/shopspring/decimal"

type CreateFieldRequest struct {
	Name         string          `json:"name" validate:"required,max=100"`
	SportType    string          `json:"sport_type" validate:"required,oneof=football futsal basketball volleyball badminton tennis"`
	Description  string          `json:"description" validate:"omitempty,max=1000"`
	Capacity     int             `json:"capacity" validate:"required,min=1"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Status       string          `json:"status" validate:"omitempty,oneof=available maintenance"`
}

// UpdateFieldRequest only touches the attributes that are set.
type UpdateFieldRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	SportType    *string          `json:"sport_type,omitempty" validate:"omitempty,oneof=football futsal basketball volleyball badminton tennis"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Capacity     *int             `json:"capacity,omitempty" validate:"omitempty,min=1"`
	PricePerHour *decimal.Decimal `json:"price_per_hour,omitempty"`
	Status       *string          `json:"status,omitempty" validate:"omitempty,oneof=available maintenance"`
}

type FieldListRequest struct {
	PaginatedRequest
	SportType string `json:"sport_type" validate:"omitempty,oneof=football futsal basketball volleyball badminton tennis"`
	Status    string `json:"status" validate:"omitempty,oneof=available maintenance"`
}

type AvailabilityRequest struct {
	FieldID string `json:"field_id" validate:"required,uuid"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
