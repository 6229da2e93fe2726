package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchbook/models"
)

func TestAmountInCentsRounds(t *testing.T) {
	cases := []struct {
		price float64
		cents int64
	}{
		{10.00, 1000},
		{19.99, 1999},
		{0.01, 1},
		{32.98, 3298},
		{25.50, 2550},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.cents, amountInCents(tc.price), "price %.2f", tc.price)
	}
}

func TestComputedPriceSurvivesCentConversion(t *testing.T) {
	futsal := &models.Futsal{PricePerHour: 19.99}
	total := ComputePrice(futsal, "2026-09-02", 600, 660)
	require.Equal(t, 19.99, total)
	assert.Equal(t, int64(1999), amountInCents(total))
}

func TestInitiateCheckoutRejectsNonPositiveAmount(t *testing.T) {
	h := NewStripePaymentHandler(nil)
	_, err := h.InitiateCheckout(context.Background(), &models.Booking{ID: "b1"}, "Arena")
	assert.Error(t, err)
}
