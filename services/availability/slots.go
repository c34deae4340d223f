package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"lawdesk/models"
)

// SlotMinutes is the width of one calendar slot.
const SlotMinutes = 30

// SlotSet is a set of "HH:MM" labels.
type SlotSet map[string]struct{}

func (s SlotSet) Add(label string) {
	s[label] = struct{}{}
}

func (s SlotSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Sorted returns the labels in chronological order. Labels are zero-padded so
// lexical order is time order.
func (s SlotSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for label := range s {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// ParseSlot splits a "HH:MM" label into hour and minute.
func ParseSlot(label string) (hour, minute int, err error) {
	parts := strings.Split(label, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid time label %q", label)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", label)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", label)
	}
	return hour, minute, nil
}

func FormatSlot(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// AdjacentSlot returns the slot a 60-minute booking at label also occupies.
// Minute 00 extends into :30 of the same hour and minute 30 into :00 of the
// next hour. A :30 booking in hour 23 has no adjacent slot on the same day and
// off-grid minutes yield nothing.
func AdjacentSlot(label string) (string, bool) {
	hour, minute, err := ParseSlot(label)
	if err != nil {
		return "", false
	}
	switch minute {
	case 0:
		return FormatSlot(hour, 30), true
	case 30:
		if hour >= 23 {
			return "", false
		}
		return FormatSlot(hour+1, 0), true
	default:
		return "", false
	}
}

// Occupy adds every slot a booking of the given time and duration blocks.
func Occupy(set SlotSet, label, duration string) {
	set.Add(label)
	if duration != models.Duration60 {
		return
	}
	if next, ok := AdjacentSlot(label); ok {
		set.Add(next)
	}
}

// DayWindow returns the half-open range [start of day, start of next day) in loc.
func DayWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
