package booking

import (
	"context"
	"errors"
	"fmt"

	"lawdesk/models"
	"lawdesk/services/availability"
	"lawdesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartCheckout validates the request, places a pending hold on the slot and
// opens a hosted checkout for it. All checkouts for one calendar day are
// serialised by a short-lived lock so two clients cannot hold the same slot.
func (s *DefaultBookingService) StartCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	logger := utils.GetLogger()

	sr, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	var booking *models.Booking
	lockKey := sr.day.Format(models.DateFormat)
	err = s.locker.WithSlotLock(ctx, lockKey, func(ctx context.Context) error {
		if err := s.ensureFree(ctx, sr); err != nil {
			return err
		}

		now := s.now()
		booking = &models.Booking{
			ID:                   uuid.NewString(),
			ClientName:           req.ClientName,
			ClientEmail:          req.ClientEmail,
			ClientPhone:          req.ClientPhone,
			PracticeArea:         req.PracticeArea,
			Notes:                req.Notes,
			ConsultationDate:     sr.day,
			ConsultationTime:     req.Time,
			ConsultationDuration: req.Duration,
			Amount:               s.rules.price(req.Duration),
			Currency:             s.rules.Currency,
			Status:               models.BookingStatusPending,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		return s.repo.Create(ctx, booking)
	})
	if err != nil {
		if errors.Is(err, utils.ErrLockNotAcquired) {
			return nil, ErrSlotBusy
		}
		return nil, err
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, models.CheckoutInput{
		BookingID:     booking.ID,
		CustomerEmail: booking.ClientEmail,
		Description: fmt.Sprintf("%s consultation, %s %s (%s)",
			booking.PracticeArea, req.Date, booking.ConsultationTime, booking.ConsultationDuration),
		Amount:        booking.Amount,
		Currency:      booking.Currency,
		ExpiresInSecs: int64(s.rules.HoldTTL.Seconds()),
	})
	if err != nil {
		s.releaseHold(ctx, booking.ID)
		return nil, fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}

	if err := s.repo.SetPaymentSession(ctx, booking.ID, sess.ID); err != nil {
		// The client never sees this checkout URL. If the session is paid
		// anyway, Confirm refuses the cancelled booking and logs it for refund.
		s.releaseHold(ctx, booking.ID)
		return nil, fmt.Errorf("failed to link payment session to booking %s: %w", booking.ID, err)
	}

	logger.Info("Checkout started",
		zap.String("bookingId", booking.ID),
		zap.String("date", req.Date),
		zap.String("time", booking.ConsultationTime),
		zap.String("duration", booking.ConsultationDuration))

	return &models.CheckoutResponse{
		BookingID:   booking.ID,
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// ensureFree fails when any requested slot is confirmed or held by a live checkout.
func (s *DefaultBookingService) ensureFree(ctx context.Context, sr *slotRequest) error {
	taken, err := s.slots.OccupiedSlotsOn(ctx, sr.day)
	if err != nil {
		return err
	}

	from, to := availability.DayWindow(sr.day, s.rules.Location)
	holds, err := s.repo.FindHoldsInRange(ctx, from, to, s.now().Add(-s.rules.HoldTTL))
	if err != nil {
		return fmt.Errorf("%w: %w", availability.ErrUpstreamUnavailable, err)
	}
	for _, h := range holds {
		availability.Occupy(taken, h.ConsultationTime, h.ConsultationDuration)
	}

	for _, slot := range sr.slots {
		if taken.Has(slot) {
			return fmt.Errorf("%w: %s", ErrSlotUnavailable, slot)
		}
	}
	return nil
}

// releaseHold cancels a pending booking whose checkout could not be handed to
// the client, so the slot is not blocked for the rest of the hold.
func (s *DefaultBookingService) releaseHold(ctx context.Context, bookingID string) {
	if _, err := s.repo.TransitionStatus(ctx, bookingID, models.BookingStatusPending, models.BookingStatusCancelled, s.now()); err != nil {
		utils.GetLogger().Error("Failed to release hold after checkout error", zap.String("bookingId", bookingID), zap.Error(err))
	}
}
