package checkin

import (
	"context"
	"time"

	"courtside/internal/domain"
	"courtside/internal/pkg/qrtoken"
)

type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	AdvanceCheckIn(ctx context.Context, playerID int64, from int, at time.Time) (bool, error)
	ListLogs(ctx context.Context, playerID int64) ([]domain.CheckInLog, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	AdvanceOrganizerCheckIn(ctx context.Context, bookingID, userID int64, from int, at time.Time) (bool, error)
	ListOrganizerLogs(ctx context.Context, bookingID int64) ([]domain.OrganizerCheckInLog, error)
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

type TokenVerifier interface {
	VerifyPlayer(token string) (*qrtoken.PlayerPayload, error)
	VerifyOrganizer(token string) (*qrtoken.OrganizerPayload, error)
}
