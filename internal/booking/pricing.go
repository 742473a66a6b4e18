package booking

import (
	"time"

	"sport-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(int64(time.Hour / time.Second))

// ComputePrice returns the booked hours, rounded to one place, and the total
// charge for them, rounded to two. Both roundings are half away from zero on
// exact decimals.
func ComputePrice(start, end entity.Clock, hourlyRate decimal.Decimal) (hours, total decimal.Decimal) {
	seconds := decimal.NewFromInt(int64((end.Duration() - start.Duration()) / time.Second))
	hours = seconds.Div(secondsPerHour).Round(1)
	total = hours.Mul(hourlyRate).Round(2)
	return hours, total
}

// Price fills in b's hours and total from the field's rate.
func Price(b *entity.Booking, field *entity.Field) {
	b.Hours, b.TotalPrice = ComputePrice(b.StartTime, b.EndTime, field.PricePerHour)
}
