package roster

import (
	"context"

	"courtside/internal/domain"
	"courtside/internal/notifier"
	"courtside/internal/pkg/qrtoken"
)

type PlayerRepository interface {
	CreateBatch(ctx context.Context, bookingID int64, maxAllowed int, players []*domain.Player) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Player, error)
	SetQRToken(ctx context.Context, id int64, token string) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

type SportRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Sport, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	SetQRToken(ctx context.Context, id int64, token string) error
}

type TokenIssuer interface {
	IssuePlayer(p qrtoken.PlayerPayload) (string, error)
	IssueUser(p qrtoken.UserPayload) (string, error)
}

type NotificationSender interface {
	PlayerCredentials(ctx context.Context, ev notifier.PlayerCredentialsEvent) error
}
