package domain

import "time"

type Sport struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	PricePerHour float64   `json:"price_per_hour" validate:"required,gte=0"`
	Description  string    `json:"description,omitempty"`
	Duration     int       `json:"duration"` // default booking duration, minutes
	MaxPlayers   int       `json:"max_players"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Config *BookingConfiguration `json:"config,omitempty"`
}

// SlotDurations are the only slot lengths a configuration may use.
var SlotDurations = []int{30, 60, 120, 240}

// AdvanceBookingWindows are the allowed advance-booking windows, in days.
var AdvanceBookingWindows = []int{1, 3, 7, 15, 30}

type BookingConfiguration struct {
	ID                 int64  `json:"id"`
	SportID            int64  `json:"sport_id" validate:"required"`
	OpensAt            string `json:"opens_at"`  // "15:04"
	ClosesAt           string `json:"closes_at"` // "15:04"
	SlotDuration       int    `json:"slot_duration"`
	AdvanceBookingDays int    `json:"advance_booking_days"`
	MinBookingDuration int    `json:"min_booking_duration"`
	MaxBookingDuration int    `json:"max_booking_duration"`
	BufferTime         int    `json:"buffer_time"` // minutes between slots

	DifferentWeekendHours bool   `json:"different_weekend_timings"`
	WeekendOpensAt        string `json:"weekend_opens_at,omitempty"`
	WeekendClosesAt       string `json:"weekend_closes_at,omitempty"`

	PeakHourPricing        bool    `json:"peak_hour_pricing"`
	PeakStartTime          string  `json:"peak_start_time,omitempty"`
	PeakEndTime            string  `json:"peak_end_time,omitempty"`
	PeakPriceMultiplier    float64 `json:"peak_price_multiplier"`
	WeekendPricing         bool    `json:"weekend_pricing"`
	WeekendPriceMultiplier float64 `json:"weekend_price_multiplier"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BreakTime struct {
	ID                int64     `json:"id"`
	SportID           int64     `json:"sport_id" validate:"required"`
	StartTime         string    `json:"start_time"` // "15:04"
	EndTime           string    `json:"end_time"`   // "15:04"
	Reason            string    `json:"reason,omitempty"`
	AppliesToWeekdays bool      `json:"applies_to_weekdays"`
	AppliesToWeekends bool      `json:"applies_to_weekends"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// AppliesOn reports whether the break excludes slots on the given day type.
func (b BreakTime) AppliesOn(weekend bool) bool {
	if !b.IsActive {
		return false
	}
	if weekend {
		return b.AppliesToWeekends
	}
	return b.AppliesToWeekdays
}

type BlackoutDate struct {
	ID        int64     `json:"id"`
	SportID   int64     `json:"sport_id" validate:"required"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
