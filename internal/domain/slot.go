package domain

import "time"

// TimeSlot is a concrete bookable interval for a sport on a specific date.
// Price and max players are snapshotted at generation time and do not follow
// later sport edits. (sport_id, date, start_time) is unique.
type TimeSlot struct {
	ID            int64     `json:"id"`
	SportID       int64     `json:"sport_id"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"` // "15:04"
	EndTime       string    `json:"end_time"`   // "15:04"
	Price         float64   `json:"price"`
	MaxPlayers    int       `json:"max_players"`
	IsBooked      bool      `json:"is_booked"`
	AdminDisabled bool      `json:"admin_disabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Sport *Sport `json:"sport,omitempty"`
}

// SameDate reports whether the slot's calendar date equals t's date. t is
// normalized into the stored date's zone first, so a local server clock
// cannot shift the comparison across midnight.
func (s *TimeSlot) SameDate(t time.Time) bool {
	t = t.In(s.Date.Location())
	return s.Date.Year() == t.Year() && s.Date.YearDay() == t.YearDay()
}
