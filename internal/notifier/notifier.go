// Package notifier publishes booking lifecycle events for downstream
// delivery workers (email, SMS). Publishing is best-effort: callers fire
// events after their transaction commits and only log failures.
package notifier

import "context"

type PlayerCredentialsEvent struct {
	PlayerID  int64  `json:"player_id"`
	BookingID int64  `json:"booking_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"` // set only for newly created accounts
	QRToken   string `json:"qr_token"`
}

type OrganizerQRIssuedEvent struct {
	BookingID int64  `json:"booking_id"`
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	Sport     string `json:"sport"`
	SlotDate  string `json:"slot_date"`
	QRToken   string `json:"qr_token"`
}

type BookingCancelledEvent struct {
	BookingID int64  `json:"booking_id"`
	UserID    int64  `json:"user_id"`
	Reason    string `json:"reason"`
}

type Notifier interface {
	PlayerCredentials(ctx context.Context, ev PlayerCredentialsEvent) error
	OrganizerQRIssued(ctx context.Context, ev OrganizerQRIssuedEvent) error
	BookingCancelled(ctx context.Context, ev BookingCancelledEvent) error
}

// Noop is used when no AMQP URL is configured, e.g. local development
// and tests.
type Noop struct{}

func (Noop) PlayerCredentials(context.Context, PlayerCredentialsEvent) error { return nil }
func (Noop) OrganizerQRIssued(context.Context, OrganizerQRIssuedEvent) error { return nil }
func (Noop) BookingCancelled(context.Context, BookingCancelledEvent) error   { return nil }
