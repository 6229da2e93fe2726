package booking

import (
	"math"

	"pitchbook/models"
)

// ComputePrice derives the booking price from the venue's hourly rate and
// the slot duration, applying the weekend/holiday multiplier when the date
// qualifies. Price is always server-computed; client-supplied amounts are
// never trusted.
func ComputePrice(futsal *models.Futsal, date string, start, end models.TimeOfDay) float64 {
	hours := float64(start.MinutesUntil(end)) / 60.0
	price := futsal.PricePerHour * hours
	if futsal.WeekendRate > 0 && futsal.PremiumDate(date) {
		price *= futsal.WeekendRate
	}
	return math.Round(price*100) / 100
}
