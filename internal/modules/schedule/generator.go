package schedule

import (
	"fmt"
	"math"
	"time"

	"courtside/internal/domain"
)

// The generator walks one calendar date at a time and emits candidate slots
// purely from the sport, its configuration and the break windows. Persistence
// concerns (existing slots, blackouts, force-replace) are handled by the
// service around it.

func minutesOf(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func clockOf(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// operatingWindow resolves the opening and closing minutes for the date,
// honoring the weekend override. Returns false when no hours apply.
func operatingWindow(cfg *domain.BookingConfiguration, weekend bool) (opens, closes int, ok bool) {
	opensAt, closesAt := cfg.OpensAt, cfg.ClosesAt
	if weekend && cfg.DifferentWeekendHours {
		opensAt, closesAt = cfg.WeekendOpensAt, cfg.WeekendClosesAt
	}

	opens, okOpen := minutesOf(opensAt)
	closes, okClose := minutesOf(closesAt)
	if !okOpen || !okClose || closes <= opens {
		return 0, 0, false
	}
	return opens, closes, true
}

func overlapsBreak(b domain.BreakTime, startMin, endMin int) bool {
	bStart, ok1 := minutesOf(b.StartTime)
	bEnd, ok2 := minutesOf(b.EndTime)
	if !ok1 || !ok2 {
		return false
	}
	return bStart < endMin && startMin < bEnd
}

// slotPrice snapshots the price for a slot starting at startMin. Peak and
// weekend multipliers never stack; peak wins when both apply.
func slotPrice(sport *domain.Sport, cfg *domain.BookingConfiguration, startMin, durationMin int, weekend bool) float64 {
	multiplier := 1.0

	peak := false
	if cfg != nil && cfg.PeakHourPricing {
		pStart, ok1 := minutesOf(cfg.PeakStartTime)
		pEnd, ok2 := minutesOf(cfg.PeakEndTime)
		if ok1 && ok2 && startMin >= pStart && startMin < pEnd {
			peak = true
			multiplier = cfg.PeakPriceMultiplier
		}
	}
	if !peak && weekend && cfg != nil && cfg.WeekendPricing {
		multiplier = cfg.WeekendPriceMultiplier
	}

	price := sport.PricePerHour * float64(durationMin) / 60.0 * multiplier
	return math.Round(price*100) / 100
}

// candidatesForDate emits every slot the configuration calls for on the
// given date. A candidate overlapping an applicable break is dropped whole;
// a candidate whose end would pass closing time is never emitted.
func candidatesForDate(sport *domain.Sport, cfg *domain.BookingConfiguration, date time.Time, breaks []domain.BreakTime) []domain.TimeSlot {
	if cfg == nil || !cfg.IsActive {
		return nil
	}

	weekend := isWeekend(date)
	opens, closes, ok := operatingWindow(cfg, weekend)
	if !ok {
		return nil
	}

	duration := cfg.SlotDuration
	if duration <= 0 {
		return nil
	}
	step := duration + cfg.BufferTime

	var out []domain.TimeSlot
	for start := opens; start+duration <= closes; start += step {
		end := start + duration

		dropped := false
		for _, b := range breaks {
			if b.AppliesOn(weekend) && overlapsBreak(b, start, end) {
				dropped = true
				break
			}
		}
		if dropped {
			continue
		}

		out = append(out, domain.TimeSlot{
			SportID:    sport.ID,
			Date:       date,
			StartTime:  clockOf(start),
			EndTime:    clockOf(end),
			Price:      slotPrice(sport, cfg, start, duration, weekend),
			MaxPlayers: sport.MaxPlayers,
		})
	}
	return out
}

// manualCandidates builds slots from an explicit time list, the fallback for
// sports without a booking configuration. With no configuration there are no
// multipliers; prices come straight from the hourly rate.
func manualCandidates(sport *domain.Sport, date time.Time, manual []ManualSlotRequest) []domain.TimeSlot {
	var out []domain.TimeSlot
	for _, m := range manual {
		start, ok1 := minutesOf(m.StartTime)
		end, ok2 := minutesOf(m.EndTime)
		if !ok1 || !ok2 || end <= start {
			continue
		}

		price := sport.PricePerHour * float64(end-start) / 60.0

		out = append(out, domain.TimeSlot{
			SportID:    sport.ID,
			Date:       date,
			StartTime:  clockOf(start),
			EndTime:    clockOf(end),
			Price:      math.Round(price*100) / 100,
			MaxPlayers: sport.MaxPlayers,
		})
	}
	return out
}
