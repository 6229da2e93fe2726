package models

import "time"

// PaymentIntent is the client-facing result of payment initiation:
// the browser performs a full-page redirect to PaymentURL.
type PaymentIntent struct {
	BookingID  string    `json:"bookingId"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	SessionID  string    `json:"sessionId"`
	PaymentURL string    `json:"paymentUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReminderPayload is the asynq task payload for booking reminders.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	UserID     string `json:"userId"`
	FutsalName string `json:"futsalName"`
	Date       string `json:"date"`
	Start      string `json:"start"`
}
