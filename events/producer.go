package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"pitchbook/models"
	"pitchbook/utils"
)

// Booking lifecycle event types published to the analytics stream.
const (
	TypeBookingCreated   = "booking.created"
	TypePaymentInitiated = "booking.payment_initiated"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is the wire payload for booking lifecycle events.
type BookingEvent struct {
	Type       string           `json:"type"`
	BookingID  string           `json:"bookingId"`
	FutsalID   string           `json:"futsalId"`
	UserID     string           `json:"userId"`
	Date       string           `json:"date"`
	Start      models.TimeOfDay `json:"start"`
	End        models.TimeOfDay `json:"end"`
	TotalPrice float64          `json:"totalPrice"`
	Status     string           `json:"status"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// Producer publishes booking events to Kafka. A nil Producer is a no-op,
// so the stream can be disabled by leaving the broker list empty.
type Producer struct {
	topic  string
	writer *kafka.Writer
}

// NewProducer builds a producer for the given comma-separated broker list.
// Returns nil when no brokers are configured.
func NewProducer(brokers, topic string) *Producer {
	if strings.TrimSpace(brokers) == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{topic: topic, writer: writer}
}

// Publish writes one event keyed by booking id. Failures are logged and
// swallowed; the event stream never blocks a booking.
func (p *Producer) Publish(ctx context.Context, event BookingEvent) {
	if p == nil {
		return
	}
	event.OccurredAt = time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		utils.GetLogger().Error("events: failed to marshal booking event", zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.BookingID),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		utils.GetLogger().Error("events: failed to publish booking event",
			zap.String("type", event.Type), zap.String("bookingID", event.BookingID), zap.Error(err))
	}
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}
