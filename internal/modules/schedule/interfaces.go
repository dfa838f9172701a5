package schedule

import (
	"context"
	"time"

	"courtside/internal/domain"
)

type SportRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Sport, error)
}

type ConfigRepository interface {
	GetConfigBySport(ctx context.Context, sportID int64) (*domain.BookingConfiguration, error)
	ListBreaks(ctx context.Context, sportID int64) ([]domain.BreakTime, error)
	BlackoutsInRange(ctx context.Context, sportID int64, from, to time.Time) ([]domain.BlackoutDate, error)
}

type SlotRepository interface {
	Create(ctx context.Context, s *domain.TimeSlot) error
	ListRange(ctx context.Context, sportID int64, from, to time.Time) ([]domain.TimeSlot, error)
	ListAvailable(ctx context.Context, sportID int64, today time.Time) ([]domain.TimeSlot, error)
	DeleteIfUnbooked(ctx context.Context, id int64) (bool, error)
	ClearRange(ctx context.Context, sportID int64, from, to time.Time) (int64, error)
	ResetBooked(ctx context.Context) (int64, error)
	SetAdminDisabled(ctx context.Context, id int64, disabled bool) error
}
