package catalog

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain"
	"courtside/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	sports  SportRepository
	configs ConfigRepository
}

func NewService(sports SportRepository, configs ConfigRepository) *Service {
	return &Service{sports: sports, configs: configs}
}

func (s *Service) CreateSport(ctx context.Context, req CreateSportRequest) (*domain.Sport, error) {
	if req.Name == "" || req.MaxPlayers < 1 || req.PricePerHour < 0 {
		return nil, ErrValidation
	}

	now := time.Now()
	sport := &domain.Sport{
		Name:         req.Name,
		PricePerHour: req.PricePerHour,
		Description:  req.Description,
		Duration:     req.Duration,
		MaxPlayers:   req.MaxPlayers,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.sports.Create(ctx, sport); err != nil {
		return nil, err
	}
	return sport, nil
}

func (s *Service) UpdateSport(ctx context.Context, id int64, req UpdateSportRequest) (*domain.Sport, error) {
	sport, err := s.sports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sport.Name = req.Name
	sport.PricePerHour = req.PricePerHour
	sport.Description = req.Description
	sport.Duration = req.Duration
	sport.MaxPlayers = req.MaxPlayers
	if req.IsActive != nil {
		sport.IsActive = *req.IsActive
	}
	sport.UpdatedAt = time.Now()

	if err := s.sports.Update(ctx, sport); err != nil {
		return nil, err
	}
	return sport, nil
}

// GetSport returns the sport together with its booking configuration, when
// one has been set up.
func (s *Service) GetSport(ctx context.Context, id int64) (*domain.Sport, error) {
	sport, err := s.sports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cfg, err := s.configs.GetConfigBySport(ctx, id)
	switch {
	case err == nil:
		sport.Config = cfg
	case errors.Is(err, gorm.ErrRecordNotFound):
		// sport has no configuration yet
	default:
		return nil, err
	}
	return sport, nil
}

func (s *Service) ListSports(ctx context.Context, activeOnly bool) ([]domain.Sport, error) {
	return s.sports.List(ctx, activeOnly)
}

func (s *Service) UpsertConfig(ctx context.Context, sportID int64, req UpsertConfigRequest) (*domain.BookingConfiguration, error) {
	if _, err := s.sports.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cfg := &domain.BookingConfiguration{
		SportID:            sportID,
		OpensAt:            req.OpensAt,
		ClosesAt:           req.ClosesAt,
		SlotDuration:       req.SlotDuration,
		AdvanceBookingDays: req.AdvanceBookingDays,
		MinBookingDuration: req.MinBookingDuration,
		MaxBookingDuration: req.MaxBookingDuration,
		BufferTime:         req.BufferTime,

		DifferentWeekendHours: req.DifferentWeekendHours,
		WeekendOpensAt:        req.WeekendOpensAt,
		WeekendClosesAt:       req.WeekendClosesAt,

		PeakHourPricing:        req.PeakHourPricing,
		PeakStartTime:          req.PeakStartTime,
		PeakEndTime:            req.PeakEndTime,
		PeakPriceMultiplier:    req.PeakPriceMultiplier,
		WeekendPricing:         req.WeekendPricing,
		WeekendPriceMultiplier: req.WeekendPriceMultiplier,

		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if err := s.configs.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Service) GetConfig(ctx context.Context, sportID int64) (*domain.BookingConfiguration, error) {
	cfg, err := s.configs.GetConfigBySport(ctx, sportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cfg, nil
}

func (s *Service) AddBreak(ctx context.Context, sportID int64, req AddBreakRequest) (*domain.BreakTime, error) {
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, ErrValidation
	}
	if !end.After(start) {
		return nil, ErrValidation
	}

	b := &domain.BreakTime{
		SportID:           sportID,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Reason:            req.Reason,
		AppliesToWeekdays: true,
		AppliesToWeekends: true,
		IsActive:          true,
		CreatedAt:         time.Now(),
	}
	if req.AppliesToWeekdays != nil {
		b.AppliesToWeekdays = *req.AppliesToWeekdays
	}
	if req.AppliesToWeekends != nil {
		b.AppliesToWeekends = *req.AppliesToWeekends
	}

	if err := s.configs.CreateBreak(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Breaks(ctx context.Context, sportID int64) ([]domain.BreakTime, error) {
	return s.configs.ListBreaks(ctx, sportID)
}

func (s *Service) RemoveBreak(ctx context.Context, id int64) error {
	err := s.configs.DeleteBreak(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) AddBlackout(ctx context.Context, sportID int64, req AddBlackoutRequest) (*domain.BlackoutDate, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}

	b := &domain.BlackoutDate{
		SportID:   sportID,
		Date:      date,
		Reason:    req.Reason,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.configs.CreateBlackout(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateBlackout) {
			return nil, ErrDuplicateBlackout
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) Blackouts(ctx context.Context, sportID int64) ([]domain.BlackoutDate, error) {
	return s.configs.ListBlackouts(ctx, sportID)
}

func (s *Service) RemoveBlackout(ctx context.Context, id int64) error {
	err := s.configs.DeleteBlackout(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func parseClock(v string) (time.Time, error) {
	return time.Parse("15:04", v)
}

func containsInt(vals []int, v int) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

// validateConfig enforces the toggle rules: a weekend-hours or peak-pricing
// toggle requires both of its time fields, and closing must be after opening
// for each configured window.
func validateConfig(c *domain.BookingConfiguration) error {
	opens, err := parseClock(c.OpensAt)
	if err != nil {
		return ErrValidation
	}
	closes, err := parseClock(c.ClosesAt)
	if err != nil {
		return ErrValidation
	}
	if !closes.After(opens) {
		return ErrValidation
	}

	if !containsInt(domain.SlotDurations, c.SlotDuration) {
		return ErrValidation
	}
	if !containsInt(domain.AdvanceBookingWindows, c.AdvanceBookingDays) {
		return ErrValidation
	}
	if c.BufferTime < 0 {
		return ErrValidation
	}

	if c.DifferentWeekendHours {
		wOpens, err := parseClock(c.WeekendOpensAt)
		if err != nil {
			return ErrValidation
		}
		wCloses, err := parseClock(c.WeekendClosesAt)
		if err != nil {
			return ErrValidation
		}
		if !wCloses.After(wOpens) {
			return ErrValidation
		}
	}

	if c.PeakHourPricing {
		pStart, err := parseClock(c.PeakStartTime)
		if err != nil {
			return ErrValidation
		}
		pEnd, err := parseClock(c.PeakEndTime)
		if err != nil {
			return ErrValidation
		}
		if !pEnd.After(pStart) {
			return ErrValidation
		}
		if c.PeakPriceMultiplier <= 0 {
			return ErrValidation
		}
	}

	if c.WeekendPricing && c.WeekendPriceMultiplier <= 0 {
		return ErrValidation
	}

	return nil
}
