package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"pitchbook/config"
	"pitchbook/models"
)

const paymentCurrency = "usd"

// amountInCents converts a price in major units to Stripe's integer
// minor units. Rounding matters: truncation would undercharge prices
// like 19.99 by a cent.
func amountInCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// PaymentHandler initiates the payment for a created booking and returns
// the URL the browser redirects to.
type PaymentHandler interface {
	InitiateCheckout(ctx context.Context, booking *models.Booking, futsalName string) (*models.PaymentIntent, error)
}

// StripePaymentHandler implements PaymentHandler with Stripe Checkout.
type StripePaymentHandler struct {
	logger *zap.Logger
}

func NewStripePaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

// InitiateCheckout creates a Checkout session for the booking amount and
// hands back its hosted payment URL. The booking id rides along as the
// client reference so the payment can be reconciled later.
func (h *StripePaymentHandler) InitiateCheckout(ctx context.Context, booking *models.Booking, futsalName string) (*models.PaymentIntent, error) {
	if booking.TotalPrice <= 0 {
		return nil, fmt.Errorf("invalid payment amount %.2f", booking.TotalPrice)
	}

	description := fmt.Sprintf("%s on %s, %s-%s",
		futsalName, booking.Date, booking.Start.String(), booking.End.String())

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(config.AppConfig.PaymentSuccessURL),
		CancelURL:         stripe.String(config.AppConfig.PaymentCancelURL),
		ClientReferenceID: stripe.String(booking.ID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(paymentCurrency),
					UnitAmount: stripe.Int64(amountInCents(booking.TotalPrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Futsal booking"),
						Description: stripe.String(description),
					},
				},
			},
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if s.URL == "" {
		return nil, fmt.Errorf("checkout session %s returned no payment URL", s.ID)
	}

	h.logger.Info("payment checkout created",
		zap.String("bookingID", booking.ID),
		zap.String("checkoutSession", s.ID),
		zap.Float64("amount", booking.TotalPrice))

	return &models.PaymentIntent{
		BookingID:  booking.ID,
		Amount:     booking.TotalPrice,
		Currency:   paymentCurrency,
		SessionID:  s.ID,
		PaymentURL: s.URL,
		CreatedAt:  time.Now(),
	}, nil
}
