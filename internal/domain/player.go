package domain

import "time"

// Check-in counter states shared by players and booking organizers.
const (
	CheckStateRegistered = 0
	CheckStateIn         = 1
	CheckStateOut        = 2
)

type CheckAction string

const (
	ActionCheckIn  CheckAction = "IN"
	ActionCheckOut CheckAction = "OUT"
)

// Player is a participant registered under a booking. Created only after the
// booking's payment is verified and while roster capacity remains.
type Player struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"booking_id"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	UserID    *int64 `json:"user_id,omitempty"`

	QRToken      string     `json:"qr_token,omitempty"`
	CheckInCount int        `json:"check_in_count"`
	IsIn         bool       `json:"is_in"`
	LastCheckIn  *time.Time `json:"last_check_in,omitempty"`
	LastCheckOut *time.Time `json:"last_check_out,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Booking *Booking `json:"booking,omitempty"`
}

// CheckInStatus renders the bounded counter as a label.
func CheckInStatus(count int) string {
	switch count {
	case CheckStateRegistered:
		return "registered"
	case CheckStateIn:
		return "checked_in"
	default:
		return "checked_out"
	}
}

// CheckInLog is an append-only audit row, one per player scan.
type CheckInLog struct {
	ID        int64       `json:"id"`
	PlayerID  int64       `json:"player_id"`
	Action    CheckAction `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
}

// OrganizerCheckInLog is an append-only audit row, one per organizer scan.
type OrganizerCheckInLog struct {
	ID        int64       `json:"id"`
	BookingID int64       `json:"booking_id"`
	UserID    int64       `json:"user_id"`
	Action    CheckAction `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
}
