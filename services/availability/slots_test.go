package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdjacentSlot(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"09:00", "09:30", true},
		{"09:30", "10:00", true},
		{"00:00", "00:30", true},
		{"22:30", "23:00", true},
		{"23:00", "23:30", true},
		{"23:30", "", false},
		{"09:15", "", false},
		{"9:00", "", false},
		{"24:00", "", false},
		{"", "", false},
		{"ab:cd", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := AdjacentSlot(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayWindowNormalisesToMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	midday := time.Date(2024, time.June, 10, 12, 45, 0, 0, time.UTC)

	start, end := DayWindow(midday, loc)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.June, 11, 0, 0, 0, 0, loc), end)
}

func TestSlotSetSorted(t *testing.T) {
	set := SlotSet{}
	for _, label := range []string{"14:00", "09:30", "09:00", "09:30"} {
		set.Add(label)
	}
	assert.Equal(t, []string{"09:00", "09:30", "14:00"}, set.Sorted())
	assert.True(t, set.Has("14:00"))
	assert.False(t, set.Has("10:00"))
}
