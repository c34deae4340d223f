package booking

import (
	"fmt"
	"time"

	"lawdesk/config"
	"lawdesk/models"
	"lawdesk/services/availability"
)

// Rules are the firm's calendar and pricing policy.
type Rules struct {
	Location    *time.Location
	Open        string // "HH:MM", first bookable slot
	Close       string // "HH:MM", consultations must end by this time
	WorkingDays map[time.Weekday]bool
	HorizonDays int
	HoldTTL     time.Duration
	Price30     int64
	Price60     int64
	Currency    string
}

func RulesFromConfig(cfg config.Config) (Rules, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Rules{}, err
	}
	days, err := cfg.Weekdays()
	if err != nil {
		return Rules{}, err
	}
	return Rules{
		Location:    loc,
		Open:        cfg.BusinessOpen,
		Close:       cfg.BusinessClose,
		WorkingDays: days,
		HorizonDays: cfg.BookingHorizonDays,
		HoldTTL:     cfg.PendingHoldTTL,
		Price30:     cfg.Price30Min,
		Price60:     cfg.Price60Min,
		Currency:    cfg.StripeCurrency,
	}, nil
}

// minutesOfDay converts "HH:MM" to minutes after midnight.
func minutesOfDay(label string) (int, error) {
	h, m, err := availability.ParseSlot(label)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

func (r Rules) validate() error {
	if r.Location == nil {
		return fmt.Errorf("booking rules: location is required")
	}
	open, err := minutesOfDay(r.Open)
	if err != nil {
		return fmt.Errorf("booking rules: open: %w", err)
	}
	closing, err := minutesOfDay(r.Close)
	if err != nil {
		return fmt.Errorf("booking rules: close: %w", err)
	}
	if closing <= open {
		return fmt.Errorf("booking rules: close %s must be after open %s", r.Close, r.Open)
	}
	if len(r.WorkingDays) == 0 {
		return fmt.Errorf("booking rules: no working days")
	}
	if r.HoldTTL <= 0 {
		return fmt.Errorf("booking rules: hold ttl must be positive")
	}
	return nil
}

func (r Rules) price(duration string) int64 {
	if duration == models.Duration60 {
		return r.Price60
	}
	return r.Price30
}
