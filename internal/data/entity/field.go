package entity

import "github.com/shopspring/decimal"

type SportType string

const (
	SportFootball   SportType = "football"
	SportFutsal     SportType = "futsal"
	SportBasketball SportType = "basketball"
	SportVolleyball SportType = "volleyball"
	SportBadminton  SportType = "badminton"
	SportTennis     SportType = "tennis"
)

type FieldStatus string

const (
	FieldStatusAvailable   FieldStatus = "available"
	FieldStatusMaintenance FieldStatus = "maintenance"
)

type Field struct {
	Base
	Name         string          `db:"name"`
	SportType    SportType       `db:"sport_type"`
	Description  string          `db:"description"`
	Capacity     int             `db:"capacity"`
	PricePerHour decimal.Decimal `db:"price_per_hour"`
	Status       FieldStatus     `db:"status"`
}

// Bookable reports whether new reservations may target the field.
func (f *Field) Bookable() bool {
	return f.Status == FieldStatusAvailable
}
