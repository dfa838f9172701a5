package catalog

import (
	"context"
	"time"

	"courtside/internal/domain"
)

type SportRepository interface {
	Create(ctx context.Context, s *domain.Sport) error
	Update(ctx context.Context, s *domain.Sport) error
	GetByID(ctx context.Context, id int64) (*domain.Sport, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Sport, error)
}

type ConfigRepository interface {
	UpsertConfig(ctx context.Context, c *domain.BookingConfiguration) error
	GetConfigBySport(ctx context.Context, sportID int64) (*domain.BookingConfiguration, error)
	CreateBreak(ctx context.Context, b *domain.BreakTime) error
	ListBreaks(ctx context.Context, sportID int64) ([]domain.BreakTime, error)
	DeleteBreak(ctx context.Context, id int64) error
	CreateBlackout(ctx context.Context, b *domain.BlackoutDate) error
	ListBlackouts(ctx context.Context, sportID int64) ([]domain.BlackoutDate, error)
	DeleteBlackout(ctx context.Context, id int64) error
	BlackoutsInRange(ctx context.Context, sportID int64, from, to time.Time) ([]domain.BlackoutDate, error)
}
