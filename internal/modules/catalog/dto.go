package catalog

type CreateSportRequest struct {
	Name         string  `json:"name" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gte=0"`
	Description  string  `json:"description"`
	Duration     int     `json:"duration"`
	MaxPlayers   int     `json:"max_players" binding:"required,gte=1"`
}

type UpdateSportRequest struct {
	Name         string  `json:"name" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gte=0"`
	Description  string  `json:"description"`
	Duration     int     `json:"duration"`
	MaxPlayers   int     `json:"max_players" binding:"required,gte=1"`
	IsActive     *bool   `json:"is_active"`
}

type UpsertConfigRequest struct {
	OpensAt            string `json:"opens_at"`
	ClosesAt           string `json:"closes_at"`
	SlotDuration       int    `json:"slot_duration"`
	AdvanceBookingDays int    `json:"advance_booking_days"`
	MinBookingDuration int    `json:"min_booking_duration"`
	MaxBookingDuration int    `json:"max_booking_duration"`
	BufferTime         int    `json:"buffer_time"`

	DifferentWeekendHours bool   `json:"different_weekend_timings"`
	WeekendOpensAt        string `json:"weekend_opens_at"`
	WeekendClosesAt       string `json:"weekend_closes_at"`

	PeakHourPricing        bool    `json:"peak_hour_pricing"`
	PeakStartTime          string  `json:"peak_start_time"`
	PeakEndTime            string  `json:"peak_end_time"`
	PeakPriceMultiplier    float64 `json:"peak_price_multiplier"`
	WeekendPricing         bool    `json:"weekend_pricing"`
	WeekendPriceMultiplier float64 `json:"weekend_price_multiplier"`

	IsActive *bool `json:"is_active"`
}

type AddBreakRequest struct {
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time" binding:"required"`
	Reason            string `json:"reason"`
	AppliesToWeekdays *bool  `json:"applies_to_weekdays"`
	AppliesToWeekends *bool  `json:"applies_to_weekends"`
}

type AddBlackoutRequest struct {
	Date   string `json:"date" binding:"required"` // "2006-01-02"
	Reason string `json:"reason" binding:"required"`
}
