package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pitchbook/models"
)

func pricedFutsal() *models.Futsal {
	return &models.Futsal{
		PricePerHour: 20,
		WeekendRate:  1.5,
		Holidays:     []string{"2026-12-25"},
	}
}

func TestComputePrice(t *testing.T) {
	f := pricedFutsal()

	// 2026-09-02 is a Wednesday: base rate applies.
	assert.Equal(t, 20.0, ComputePrice(f, "2026-09-02", 600, 660))
	assert.Equal(t, 10.0, ComputePrice(f, "2026-09-02", 600, 630))
	assert.Equal(t, 30.0, ComputePrice(f, "2026-09-02", 600, 690))
	assert.Equal(t, 40.0, ComputePrice(f, "2026-09-02", 600, 720))
}

func TestComputePricePremiumDates(t *testing.T) {
	f := pricedFutsal()

	// Saturday and the holiday calendar both apply the multiplier.
	assert.Equal(t, 30.0, ComputePrice(f, "2026-09-05", 600, 660))
	assert.Equal(t, 30.0, ComputePrice(f, "2026-12-25", 600, 660))

	// No multiplier configured: weekend priced at the base rate.
	f.WeekendRate = 0
	assert.Equal(t, 20.0, ComputePrice(f, "2026-09-05", 600, 660))
}

func TestComputePriceRounding(t *testing.T) {
	f := &models.Futsal{PricePerHour: 19.99, WeekendRate: 1.1}
	got := ComputePrice(f, "2026-09-05", 600, 690) // 1.5h * 19.99 * 1.1
	assert.Equal(t, 32.98, got)
}
