package booking

import (
	"fmt"
	"strings"
	"time"

	"lawdesk/models"
	"lawdesk/services/availability"
)

// slotRequest is a validated checkout request.
type slotRequest struct {
	day   time.Time // midnight in the firm's time zone
	start time.Time
	slots []string
}

func (s *DefaultBookingService) validateRequest(req models.CheckoutRequest) (*slotRequest, error) {
	loc := s.rules.Location

	day, err := time.ParseInLocation(models.DateFormat, strings.TrimSpace(req.Date), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: consultationDate must be YYYY-MM-DD", ErrInvalidBooking)
	}

	hour, minute, err := availability.ParseSlot(req.Time)
	if err != nil || minute%availability.SlotMinutes != 0 {
		return nil, fmt.Errorf("%w: consultationTime must be HH:00 or HH:30", ErrInvalidBooking)
	}

	slots := []string{req.Time}
	switch req.Duration {
	case models.Duration30:
	case models.Duration60:
		next, ok := availability.AdjacentSlot(req.Time)
		if !ok {
			return nil, fmt.Errorf("%w: a 60 minute consultation cannot start at %s", ErrInvalidBooking, req.Time)
		}
		slots = append(slots, next)
	default:
		return nil, fmt.Errorf("%w: consultationDuration must be %s or %s", ErrInvalidBooking, models.Duration30, models.Duration60)
	}

	if !s.rules.WorkingDays[day.Weekday()] {
		return nil, fmt.Errorf("%w: consultations are not offered on %s", ErrInvalidBooking, day.Weekday())
	}

	startMin := hour*60 + minute
	endMin := startMin + len(slots)*availability.SlotMinutes
	if startMin < s.openMin || endMin > s.closeMin {
		return nil, fmt.Errorf("%w: consultations run between %s and %s", ErrInvalidBooking, s.rules.Open, s.rules.Close)
	}

	now := s.now().In(loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	if !start.After(now) {
		return nil, fmt.Errorf("%w: the requested time has already passed", ErrInvalidBooking)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.After(today.AddDate(0, 0, s.rules.HorizonDays)) {
		return nil, fmt.Errorf("%w: bookings open %d days ahead", ErrInvalidBooking, s.rules.HorizonDays)
	}

	return &slotRequest{day: day, start: start, slots: slots}, nil
}
