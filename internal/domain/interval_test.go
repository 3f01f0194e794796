package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", "2026-10-19 "+hhmm)
	return t
}

func TestCapacityInterval_Overlap(t *testing.T) {
	interval := CapacityInterval{StartsAt: at("09:00"), EndsAt: at("09:30")}

	tests := []struct {
		name       string
		start, end time.Time
		want       time.Duration
	}{
		{"window covers interval tail", at("09:10"), at("09:50"), 20 * time.Minute},
		{"window inside interval", at("09:05"), at("09:15"), 10 * time.Minute},
		{"window covers whole interval", at("08:00"), at("10:00"), 30 * time.Minute},
		{"touching at end", at("09:30"), at("10:00"), 0},
		{"disjoint", at("10:00"), at("11:00"), -30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.Overlap(tt.start, tt.end))
		})
	}
}

func TestStationWithLane_IsLaneClosed(t *testing.T) {
	now := at("12:00")
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	assert.False(t, StationWithLane{}.IsLaneClosed(now))
	assert.True(t, StationWithLane{LaneClosedForNewBookingsAt: &past}.IsLaneClosed(now))
	assert.True(t, StationWithLane{LaneClosedForNewBookingsAt: &now}.IsLaneClosed(now))
	assert.False(t, StationWithLane{LaneClosedForNewBookingsAt: &future}.IsLaneClosed(now))
}
