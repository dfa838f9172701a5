package booking

import (
	"context"
	"time"

	"courtside/internal/domain"
	"courtside/internal/notifier"
	"courtside/internal/pkg/qrtoken"
)

type BookingRepository interface {
	Reserve(ctx context.Context, slotID, userID int64, now time.Time) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	MarkPaymentVerified(ctx context.Context, id int64, paymentID, orderID string, now time.Time) (bool, error)
	SetOrganizerTokenOnce(ctx context.Context, id int64, token string, now time.Time) (bool, error)
	Cancel(ctx context.Context, id int64, reason string, now time.Time) (*domain.Booking, error)
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

type SportRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Sport, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TokenIssuer interface {
	IssueOrganizer(p qrtoken.OrganizerPayload) (string, error)
}

type NotificationSender interface {
	OrganizerQRIssued(ctx context.Context, ev notifier.OrganizerQRIssuedEvent) error
	BookingCancelled(ctx context.Context, ev notifier.BookingCancelledEvent) error
}
