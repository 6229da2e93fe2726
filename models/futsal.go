package models

import (
	"fmt"
	"time"
)

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// OperatingWindow is the open/close bounds applicable to a given date.
type OperatingWindow struct {
	Open  TimeOfDay `bson:"open" json:"open"`
	Close TimeOfDay `bson:"close" json:"close"`
}

// IsZero reports whether the window has not been configured.
func (w OperatingWindow) IsZero() bool {
	return w.Open == 0 && w.Close == 0
}

// Span returns the full window length in minutes.
func (w OperatingWindow) Span() int {
	return w.Open.MinutesUntil(w.Close)
}

// OperatingHours holds the three venue-configured window profiles.
type OperatingHours struct {
	Weekday OperatingWindow `bson:"weekday" json:"weekday"`
	Weekend OperatingWindow `bson:"weekend" json:"weekend"`
	Holiday OperatingWindow `bson:"holiday" json:"holiday"`
}

// Futsal is a bookable indoor-soccer court venue.
type Futsal struct {
	ID             string         `bson:"id" json:"id"`
	OwnerID        string         `bson:"ownerId" json:"ownerId"`
	Name           string         `bson:"name" json:"name"`
	Description    string         `bson:"description,omitempty" json:"description,omitempty"`
	Address        string         `bson:"address" json:"address"`
	City           string         `bson:"city" json:"city"`
	LocationGeo    GeoPoint       `bson:"locationGeo" json:"locationGeo"`
	Images         []string       `bson:"images,omitempty" json:"images,omitempty"`
	Amenities      []string       `bson:"amenities,omitempty" json:"amenities,omitempty"`
	PricePerHour   float64        `bson:"pricePerHour" json:"pricePerHour"`
	WeekendRate    float64        `bson:"weekendRate,omitempty" json:"weekendRate,omitempty"` // multiplier applied on weekend/holiday dates; 0 means none
	OperatingHours OperatingHours `bson:"operatingHours" json:"operatingHours"`
	Holidays       []string       `bson:"holidays,omitempty" json:"holidays,omitempty"` // "2006-01-02" dates using the holiday profile
	Rating         float64        `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount    int            `bson:"reviewCount,omitempty" json:"reviewCount,omitempty"`
	Status         string         `bson:"status" json:"status"` // "active", "inactive"
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

const dateLayout = "2006-01-02"

// IsHolidayDate reports whether the given date appears in the venue's holiday calendar.
func (f *Futsal) IsHolidayDate(date string) bool {
	for _, h := range f.Holidays {
		if h == date {
			return true
		}
	}
	return false
}

// ResolveWindow selects the operating window for the given date:
// the holiday profile when the date is on the venue's holiday calendar,
// the weekend profile on Saturday/Sunday, the weekday profile otherwise.
func (f *Futsal) ResolveWindow(date string) (OperatingWindow, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return OperatingWindow{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	if f.IsHolidayDate(date) {
		return f.OperatingHours.Holiday, nil
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return f.OperatingHours.Weekend, nil
	default:
		return f.OperatingHours.Weekday, nil
	}
}

// PremiumDate reports whether the weekend/holiday rate multiplier applies to the date.
func (f *Futsal) PremiumDate(date string) bool {
	if f.IsHolidayDate(date) {
		return true
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}
