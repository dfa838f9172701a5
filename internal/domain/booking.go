package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking joins one organizer (user) to exactly one slot. Status is never
// stored: it is always derived from the cancellation and payment flags.
type Booking struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	SlotID int64 `json:"slot_id"`

	PaymentVerified bool    `json:"payment_verified"`
	PaymentID       string  `json:"payment_id,omitempty"`
	OrderID         string  `json:"order_id,omitempty"`
	AmountPaid      float64 `json:"amount_paid"`

	IsCancelled        bool   `json:"is_cancelled"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	OrganizerQRToken      string `json:"organizer_qr_token,omitempty"`
	OrganizerIsIn         bool   `json:"organizer_is_in"`
	OrganizerCheckInCount int    `json:"organizer_check_in_count"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Slot *TimeSlot `json:"slot,omitempty"`
	User *User     `json:"user,omitempty"`
}

// Status derives the booking state from its flags. Cancellation wins over
// payment: a cancelled booking stays cancelled.
func (b *Booking) Status() BookingStatus {
	switch {
	case b.IsCancelled:
		return BookingCancelled
	case b.PaymentVerified:
		return BookingConfirmed
	default:
		return BookingPending
	}
}
