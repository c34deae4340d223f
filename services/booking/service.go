package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "lawdesk/database/repository/booking"
	"lawdesk/models"
	"lawdesk/services/payment"
	"lawdesk/services/tasks"
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	repo     bookingRepo.BookingRepository
	slots    Availability
	locker   SlotLocker
	gateway  payment.Gateway
	enqueuer tasks.Enqueuer
	rules    Rules

	openMin  int
	closeMin int
	now      func() time.Time
}

func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	slots Availability,
	locker SlotLocker,
	gateway payment.Gateway,
	enqueuer tasks.Enqueuer,
	rules Rules,
) (*DefaultBookingService, error) {
	if repo == nil || slots == nil || locker == nil || gateway == nil || enqueuer == nil {
		return nil, fmt.Errorf("booking service initialization error: missing dependency")
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}
	openMin, _ := minutesOfDay(rules.Open)
	closeMin, _ := minutesOfDay(rules.Close)
	return &DefaultBookingService{
		repo:     repo,
		slots:    slots,
		locker:   locker,
		gateway:  gateway,
		enqueuer: enqueuer,
		rules:    rules,
		openMin:  openMin,
		closeMin: closeMin,
		now:      time.Now,
	}, nil
}

func (s *DefaultBookingService) Location() *time.Location {
	return s.rules.Location
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ExpireStale releases pending holds whose checkout window has lapsed.
func (s *DefaultBookingService) ExpireStale(ctx context.Context) (int64, error) {
	return s.repo.ExpireStale(ctx, s.now().Add(-s.rules.HoldTTL))
}
