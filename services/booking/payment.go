package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "lawdesk/database/repository/booking"
	"lawdesk/models"
	"lawdesk/services/payment"
	"lawdesk/utils"

	"go.uber.org/zap"
)

// VerifyPayment is called when the client returns from the hosted checkout.
func (s *DefaultBookingService) VerifyPayment(ctx context.Context, sessionID string) (*models.Booking, error) {
	sess, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			return nil, ErrPaymentSessionNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}

	bookingID, err := s.bookingIDFor(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !sess.Paid {
		return nil, ErrPaymentIncomplete
	}
	return s.Confirm(ctx, bookingID)
}

// HandleWebhook applies a verified payment provider event. Events about
// bookings this service cannot act on are logged and acknowledged so the
// provider stops redelivering them.
func (s *DefaultBookingService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	logger := utils.GetLogger()

	event, err := s.gateway.ParseWebhook(body, signature)
	if err != nil {
		if errors.Is(err, payment.ErrGatewayDisabled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidWebhook, err)
	}

	switch event.Type {
	case models.PaymentEventCompleted, models.PaymentEventAsyncSucceeded:
		if !event.Session.Paid {
			logger.Info("Checkout completed without payment, awaiting async result",
				zap.String("eventId", event.ID), zap.String("sessionId", event.Session.ID))
			return nil
		}
		bookingID, err := s.bookingIDFor(ctx, &event.Session)
		if err == nil {
			_, err = s.Confirm(ctx, bookingID)
		}
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrBookingExpired):
			logger.Warn("Ignoring payment event", zap.String("eventId", event.ID), zap.Error(err))
			return nil
		case err != nil:
			return err
		}

	case models.PaymentEventExpired:
		bookingID, err := s.bookingIDFor(ctx, &event.Session)
		if errors.Is(err, ErrBookingNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		changed, err := s.repo.TransitionStatus(ctx, bookingID, models.BookingStatusPending, models.BookingStatusExpired, s.now())
		if err != nil {
			return fmt.Errorf("failed to expire booking %s: %w", bookingID, err)
		}
		if changed {
			logger.Info("Booking hold released after checkout expiry", zap.String("bookingId", bookingID))
		}

	default:
		logger.Debug("Ignoring payment event", zap.String("eventId", event.ID), zap.String("type", event.Type))
	}
	return nil
}

func (s *DefaultBookingService) bookingIDFor(ctx context.Context, sess *models.CheckoutSession) (string, error) {
	if sess.BookingID != "" {
		return sess.BookingID, nil
	}
	b, err := s.repo.GetByPaymentSession(ctx, sess.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return "", ErrBookingNotFound
		}
		return "", err
	}
	return b.ID, nil
}
