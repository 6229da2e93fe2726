package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "pitchbook/database/repository/booking"
	futsalRepo "pitchbook/database/repository/futsal"
	"pitchbook/events"
	"pitchbook/models"
	"pitchbook/services/notification"
	"pitchbook/utils"
)

const (
	sessionPrefix       = "bookingSession:"
	sessionByBookingKey = "bookingSession:byBooking:"
	sessionTTL          = 30 * time.Minute
)

// ReminderScheduler enqueues a reminder task for a confirmed booking.
// Implemented by the asynq-backed scheduler in the cron package.
type ReminderScheduler interface {
	ScheduleBookingReminder(booking *models.Booking, futsalName string) error
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	FutsalRepo  futsalRepo.FutsalRepository
	BookingRepo bookingRepo.BookingRepository
	Cache       *redis.Client
	Payments    PaymentHandler
	Notifier    notification.NotificationService
	Events      *events.Producer
	Reminders   ReminderScheduler
}

// StartSession loads the venue, resolves the operating window for the date,
// seeds the candidate slot with the full span and performs the initial
// booked-slots fetch. A failed fetch leaves the session usable for browsing
// but blocked from submission until a refresh succeeds.
func (s *DefaultSessionService) StartSession(ctx context.Context, userID, futsalID, date string) (*models.BookingSession, error) {
	futsal, err := s.FutsalRepo.GetByID(ctx, futsalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load futsal: %w", err)
	}
	if futsal == nil {
		return nil, ErrFutsalNotFound
	}

	window, err := futsal.ResolveWindow(date)
	if err != nil {
		return nil, err
	}
	if window.IsZero() || !window.Open.Before(window.Close) {
		return nil, ErrWindowUnavailable
	}

	sess := &models.BookingSession{
		ID:            uuid.New().String(),
		UserID:        userID,
		FutsalID:      futsalID,
		Date:          date,
		Window:        window,
		State:         models.SessionStateSlotSelected,
		CreatedAt:     time.Now(),
		LastUpdatedAt: time.Now(),
	}
	sess.ResetToWindow()

	s.fetchInto(ctx, sess)

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *DefaultSessionService) GetSession(ctx context.Context, sessionID, userID string) (*models.BookingSession, error) {
	return s.loadSession(ctx, sessionID, userID)
}

func (s *DefaultSessionService) UpdateStartTime(ctx context.Context, sessionID, userID string, candidate models.TimeOfDay) (*models.BookingSession, ValidationResult, error) {
	sess, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if sess.State != models.SessionStateSlotSelected {
		return nil, ValidationResult{}, ErrSessionNotEditable
	}
	result := ValidateStartTimeChange(sess, candidate)
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, ValidationResult{}, err
	}
	return sess, result, nil
}

func (s *DefaultSessionService) UpdateEndTime(ctx context.Context, sessionID, userID string, candidate models.TimeOfDay) (*models.BookingSession, ValidationResult, error) {
	sess, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if sess.State != models.SessionStateSlotSelected {
		return nil, ValidationResult{}, ErrSessionNotEditable
	}
	result := ValidateEndTimeChange(sess, candidate)
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, ValidationResult{}, err
	}
	return sess, result, nil
}

// RefreshAvailability re-fetches the booked ranges for the session's
// (venue, date) pair under a new fetch revision.
func (s *DefaultSessionService) RefreshAvailability(ctx context.Context, sessionID, userID string) (*models.BookingSession, error) {
	sess, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	s.fetchInto(ctx, sess)
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ConfirmBooking is the submit gate. It re-runs the full validation against
// a fresh booked-slots fetch, performs the authoritative overlap check in
// the database, prices the slot and creates the booking. Any failure drops
// the session back to slotSelected.
func (s *DefaultSessionService) ConfirmBooking(ctx context.Context, sessionID, userID, bookingType string) (*models.Booking, error) {
	sess, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.State != models.SessionStateSlotSelected {
		return nil, fmt.Errorf("session is not ready for confirmation (state %s)", sess.State)
	}

	sess.State = models.SessionStateSubmitting
	s.fetchInto(ctx, sess)

	if err := ValidateSlot(sess); err != nil {
		sess.State = models.SessionStateSlotSelected
		_ = s.saveSession(ctx, sess)
		return nil, err
	}

	futsal, err := s.FutsalRepo.GetByID(ctx, sess.FutsalID)
	if err != nil || futsal == nil {
		sess.State = models.SessionStateSlotSelected
		_ = s.saveSession(ctx, sess)
		return nil, ErrFutsalNotFound
	}

	// The cached list can lag a concurrent confirmation; the database has
	// the last word on conflicts.
	conflict, err := s.BookingRepo.HasOverlap(ctx, sess.FutsalID, sess.Date, sess.Start, sess.End)
	if err != nil {
		sess.State = models.SessionStateSlotSelected
		_ = s.saveSession(ctx, sess)
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict {
		sess.ResetToWindow()
		sess.State = models.SessionStateSlotSelected
		_ = s.saveSession(ctx, sess)
		return nil, ErrSlotUnavailable
	}

	if bookingType == "" {
		bookingType = "regular"
	}
	now := time.Now()
	b := &models.Booking{
		ID:          uuid.New().String(),
		FutsalID:    sess.FutsalID,
		UserID:      userID,
		Date:        sess.Date,
		Start:       sess.Start,
		End:         sess.End,
		BookingType: bookingType,
		TotalPrice:  ComputePrice(futsal, sess.Date, sess.Start, sess.End),
		Status:      models.BookingStatusPendingPayment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.BookingRepo.Insert(ctx, b); err != nil {
		sess.State = models.SessionStateSlotSelected
		_ = s.saveSession(ctx, sess)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	sess.State = models.SessionStateAwaitingConfirmation
	sess.BookingID = b.ID
	if err := s.saveSession(ctx, sess); err != nil {
		utils.GetLogger().Warn("ConfirmBooking: failed to persist session state", zap.Error(err))
	}
	s.Cache.Set(ctx, sessionByBookingKey+b.ID, sess.ID, sessionTTL)

	if s.Notifier != nil {
		_ = s.Notifier.Notify(ctx, userID, "booking_created",
			"Booking created",
			fmt.Sprintf("Your booking at %s on %s (%s-%s) is awaiting payment.",
				futsal.Name, b.Date, b.Start.String(), b.End.String()),
			map[string]any{"bookingId": b.ID, "amount": b.TotalPrice})
	}
	s.Events.Publish(ctx, events.BookingEvent{
		Type: events.TypeBookingCreated, BookingID: b.ID, FutsalID: b.FutsalID,
		UserID: b.UserID, Date: b.Date, Start: b.Start, End: b.End,
		TotalPrice: b.TotalPrice, Status: b.Status,
	})
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleBookingReminder(b, futsal.Name); err != nil {
			utils.GetLogger().Warn("ConfirmBooking: failed to schedule reminder", zap.Error(err))
		}
	}
	return b, nil
}

// InitiatePayment runs step two of the create-then-pay flow. Payment
// failure leaves the booking (and its session, if still cached) awaiting
// confirmation so the user can retry manually.
func (s *DefaultSessionService) InitiatePayment(ctx context.Context, bookingID, userID string) (*models.PaymentIntent, error) {
	b, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if b.Status != models.BookingStatusPendingPayment {
		return nil, ErrNotPayable
	}

	futsalName := ""
	if futsal, err := s.FutsalRepo.GetByID(ctx, b.FutsalID); err == nil && futsal != nil {
		futsalName = futsal.Name
	}

	intent, err := s.Payments.InitiateCheckout(ctx, b, futsalName)
	if err != nil {
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}

	if err := s.BookingRepo.SetPaymentRef(ctx, b.ID, intent.SessionID); err != nil {
		utils.GetLogger().Warn("InitiatePayment: failed to store payment ref", zap.Error(err))
	}
	s.transitionSessionForBooking(ctx, b.ID, models.SessionStatePayingRedirect)

	if s.Notifier != nil {
		_ = s.Notifier.Notify(ctx, userID, "payment_initiated",
			"Payment started",
			fmt.Sprintf("Complete your payment of %.2f to confirm the booking.", b.TotalPrice),
			map[string]any{"bookingId": b.ID})
	}
	s.Events.Publish(ctx, events.BookingEvent{
		Type: events.TypePaymentInitiated, BookingID: b.ID, FutsalID: b.FutsalID,
		UserID: b.UserID, Date: b.Date, Start: b.Start, End: b.End,
		TotalPrice: b.TotalPrice, Status: b.Status,
	})
	return intent, nil
}

// CancelBooking cancels a booking that has not been paid yet, freeing
// its time range for other users.
func (s *DefaultSessionService) CancelBooking(ctx context.Context, bookingID, userID string) error {
	b, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b == nil || b.UserID != userID {
		return ErrBookingNotFound
	}
	if b.Status == models.BookingStatusCancelled {
		return nil
	}
	if err := s.BookingRepo.UpdateStatus(ctx, b.ID, models.BookingStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if s.Notifier != nil {
		_ = s.Notifier.Notify(ctx, userID, "booking_cancelled",
			"Booking cancelled",
			fmt.Sprintf("Your booking on %s (%s-%s) was cancelled.",
				b.Date, b.Start.String(), b.End.String()),
			map[string]any{"bookingId": b.ID})
	}
	s.Events.Publish(ctx, events.BookingEvent{
		Type: events.TypeBookingCancelled, BookingID: b.ID, FutsalID: b.FutsalID,
		UserID: b.UserID, Date: b.Date, Start: b.Start, End: b.End,
		TotalPrice: b.TotalPrice, Status: models.BookingStatusCancelled,
	})
	return nil
}

func (s *DefaultSessionService) CancelSession(ctx context.Context, sessionID, userID string) error {
	sess, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if sess.BookingID != "" {
		s.Cache.Del(ctx, sessionByBookingKey+sess.BookingID)
	}
	return s.Cache.Del(ctx, sessionPrefix+sessionID).Err()
}

// GetBookedSlots serves the public available-slots read for a venue/date.
func (s *DefaultSessionService) GetBookedSlots(ctx context.Context, futsalID, date string) ([]models.BookedSlot, error) {
	return s.BookingRepo.GetBookedSlots(ctx, futsalID, date)
}

func (s *DefaultSessionService) ListUserBookings(ctx context.Context, userID string, limit, offset int64) ([]models.Booking, error) {
	return s.BookingRepo.ListByUser(ctx, userID, limit, offset)
}

// fetchInto issues a booked-slots fetch under a new revision and installs
// the result. Failures mark availability unverified instead of clearing
// the list.
func (s *DefaultSessionService) fetchInto(ctx context.Context, sess *models.BookingSession) {
	sess.FetchRevision++
	revision := sess.FetchRevision
	slots, err := s.BookingRepo.GetBookedSlots(ctx, sess.FutsalID, sess.Date)
	if err != nil {
		utils.GetLogger().Warn("booked-slots fetch failed",
			zap.String("futsalID", sess.FutsalID), zap.String("date", sess.Date), zap.Error(err))
		MarkFetchFailed(sess)
		return
	}
	ApplyBookedSlots(sess, slots, revision)
}

func (s *DefaultSessionService) saveSession(ctx context.Context, sess *models.BookingSession) error {
	sess.LastUpdatedAt = time.Now()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionPrefix+sess.ID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	return nil
}

func (s *DefaultSessionService) loadSession(ctx context.Context, sessionID, userID string) (*models.BookingSession, error) {
	data, err := s.Cache.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var sess models.BookingSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	if sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *DefaultSessionService) transitionSessionForBooking(ctx context.Context, bookingID, state string) {
	sessionID, err := s.Cache.Get(ctx, sessionByBookingKey+bookingID).Result()
	if err != nil {
		return
	}
	data, err := s.Cache.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		return
	}
	var sess models.BookingSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return
	}
	sess.State = state
	_ = s.saveSession(ctx, &sess)
}
