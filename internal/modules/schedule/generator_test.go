package schedule

import (
	"testing"
	"time"

	"courtside/internal/domain"

	"github.com/stretchr/testify/assert"
)

func tennisSport() *domain.Sport {
	return &domain.Sport{ID: 1, Name: "Tennis", PricePerHour: 500, MaxPlayers: 4}
}

func baseConfig() *domain.BookingConfiguration {
	return &domain.BookingConfiguration{
		SportID:      1,
		OpensAt:      "06:00",
		ClosesAt:     "08:00",
		SlotDuration: 60,
		BufferTime:   0,
		IsActive:     true,
	}
}

// 2026-09-07 is a Monday, 2026-09-05 a Saturday.
var (
	monday   = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
)

func TestCandidates_TwoHourWindowHourlySlots(t *testing.T) {
	slots := candidatesForDate(tennisSport(), baseConfig(), monday, nil)

	assert.Len(t, slots, 2)
	assert.Equal(t, "06:00", slots[0].StartTime)
	assert.Equal(t, "07:00", slots[0].EndTime)
	assert.Equal(t, "07:00", slots[1].StartTime)
	assert.Equal(t, "08:00", slots[1].EndTime)
	assert.Equal(t, 500.0, slots[0].Price)
	assert.Equal(t, 4, slots[0].MaxPlayers)
}

func TestCandidates_BufferWidensStep(t *testing.T) {
	cfg := baseConfig()
	cfg.ClosesAt = "09:00"
	cfg.BufferTime = 30

	slots := candidatesForDate(tennisSport(), cfg, monday, nil)

	// 06:00-07:00, 07:30-08:30; the next start 09:00 cannot fit an hour
	assert.Len(t, slots, 2)
	assert.Equal(t, "06:00", slots[0].StartTime)
	assert.Equal(t, "07:30", slots[1].StartTime)
}

func TestCandidates_NoPartialTrailingSlot(t *testing.T) {
	cfg := baseConfig()
	cfg.ClosesAt = "08:30"

	slots := candidatesForDate(tennisSport(), cfg, monday, nil)

	// 08:00-09:00 would pass closing; only two full slots fit
	assert.Len(t, slots, 2)
	assert.Equal(t, "08:00", slots[1].EndTime)
}

func TestCandidates_BreakDropsOverlappingSlotWhole(t *testing.T) {
	cfg := baseConfig()
	cfg.ClosesAt = "10:00"

	breaks := []domain.BreakTime{{
		StartTime:         "07:30",
		EndTime:           "08:30",
		AppliesToWeekdays: true,
		AppliesToWeekends: true,
		IsActive:          true,
	}}

	slots := candidatesForDate(tennisSport(), cfg, monday, breaks)

	// 07:00-08:00 and 08:00-09:00 both overlap the break and are dropped
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []string{"06:00", "09:00"}, starts)
}

func TestCandidates_WeekdayBreakIgnoredOnWeekend(t *testing.T) {
	cfg := baseConfig()

	breaks := []domain.BreakTime{{
		StartTime:         "06:00",
		EndTime:           "07:00",
		AppliesToWeekdays: true,
		AppliesToWeekends: false,
		IsActive:          true,
	}}

	weekdaySlots := candidatesForDate(tennisSport(), cfg, monday, breaks)
	weekendSlots := candidatesForDate(tennisSport(), cfg, saturday, breaks)

	assert.Len(t, weekdaySlots, 1)
	assert.Len(t, weekendSlots, 2)
}

func TestCandidates_WeekendHoursOverride(t *testing.T) {
	cfg := baseConfig()
	cfg.DifferentWeekendHours = true
	cfg.WeekendOpensAt = "09:00"
	cfg.WeekendClosesAt = "11:00"

	slots := candidatesForDate(tennisSport(), cfg, saturday, nil)

	assert.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime)
}

func TestCandidates_WeekendOverrideWithoutTimesSkipsDate(t *testing.T) {
	cfg := baseConfig()
	cfg.DifferentWeekendHours = true
	// weekend times left empty

	slots := candidatesForDate(tennisSport(), cfg, saturday, nil)
	assert.Empty(t, slots)
}

func TestSlotPrice_WeekendMultiplier(t *testing.T) {
	cfg := baseConfig()
	cfg.WeekendPricing = true
	cfg.WeekendPriceMultiplier = 1.5

	slots := candidatesForDate(tennisSport(), cfg, saturday, nil)

	assert.Len(t, slots, 2)
	assert.Equal(t, 750.0, slots[0].Price)
}

func TestSlotPrice_PeakBeatsWeekend(t *testing.T) {
	cfg := baseConfig()
	cfg.WeekendPricing = true
	cfg.WeekendPriceMultiplier = 1.5
	cfg.PeakHourPricing = true
	cfg.PeakStartTime = "06:00"
	cfg.PeakEndTime = "07:00"
	cfg.PeakPriceMultiplier = 2.0

	slots := candidatesForDate(tennisSport(), cfg, saturday, nil)

	assert.Len(t, slots, 2)
	// first slot starts inside the peak window, second is weekend-priced
	assert.Equal(t, 1000.0, slots[0].Price)
	assert.Equal(t, 750.0, slots[1].Price)
}

func TestSlotPrice_HalfHourSlotProRated(t *testing.T) {
	cfg := baseConfig()
	cfg.SlotDuration = 30

	slots := candidatesForDate(tennisSport(), cfg, monday, nil)

	assert.Len(t, slots, 4)
	assert.Equal(t, 250.0, slots[0].Price)
}

func TestCandidates_InactiveConfigProducesNothing(t *testing.T) {
	cfg := baseConfig()
	cfg.IsActive = false

	assert.Empty(t, candidatesForDate(tennisSport(), cfg, monday, nil))
}

func TestManualCandidates_FallbackTimes(t *testing.T) {
	manual := []ManualSlotRequest{
		{StartTime: "10:00", EndTime: "11:00"},
		{StartTime: "11:00", EndTime: "12:30"},
		{StartTime: "13:00", EndTime: "12:00"}, // inverted, ignored
	}

	slots := manualCandidates(tennisSport(), monday, manual)

	assert.Len(t, slots, 2)
	assert.Equal(t, 500.0, slots[0].Price)
	assert.Equal(t, 750.0, slots[1].Price)
}
