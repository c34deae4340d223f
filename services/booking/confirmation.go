package booking

import (
	"context"
	"fmt"

	"lawdesk/models"
	"lawdesk/services/tasks"
	"lawdesk/utils"

	"go.uber.org/zap"
)

// Confirm marks a paid booking completed. Verify and webhook may race to
// confirm the same booking; the conditional status update lets exactly one of
// them win, and only the winner enqueues the confirmation notification.
// A pending booking whose hold has lapsed is never confirmed: checkout stops
// counting it after HoldTTL, so its slot may already belong to someone else.
func (s *DefaultBookingService) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	heldSince := now.Add(-s.rules.HoldTTL)

	switch {
	case b.Status == models.BookingStatusCompleted:
		return b, nil
	case b.Status == models.BookingStatusPending && !b.CreatedAt.Before(heldSince):
	default:
		if b.Status == models.BookingStatusPending {
			if _, err := s.repo.TransitionStatus(ctx, b.ID, models.BookingStatusPending, models.BookingStatusExpired, now); err != nil {
				logger.Error("Failed to expire lapsed booking", zap.String("bookingId", b.ID), zap.Error(err))
			}
		}
		logger.Error("Payment received for a booking that is no longer held, refund required",
			zap.String("bookingId", b.ID), zap.String("status", b.Status))
		return nil, ErrBookingExpired
	}

	changed, err := s.repo.ConfirmHeld(ctx, b.ID, heldSince, now)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking %s: %w", b.ID, err)
	}

	if changed {
		task, err := tasks.NewBookingConfirmedTask(b.ID)
		if err == nil {
			err = s.enqueuer.Enqueue(ctx, task)
		}
		if err != nil {
			// The booking stands; only the notification is lost.
			logger.Error("Failed to enqueue booking confirmation", zap.String("bookingId", b.ID), zap.Error(err))
		}
		logger.Info("Booking confirmed", zap.String("bookingId", b.ID))
	}

	b, err = s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, ErrBookingExpired
	}
	return b, nil
}
