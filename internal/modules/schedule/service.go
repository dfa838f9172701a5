package schedule

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain"
	"courtside/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Service struct {
	sports  SportRepository
	configs ConfigRepository
	slots   SlotRepository
}

func NewService(sports SportRepository, configs ConfigRepository, slots SlotRepository) *Service {
	return &Service{sports: sports, configs: configs, slots: slots}
}

func dateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func slotKey(date time.Time, startTime string) string {
	return dateKey(date) + "T" + startTime
}

// Generate materialises the schedule for [from, to]. Re-running over the
// same range is idempotent: existing slots are skipped unless force-replace
// is set, and even then booked slots are left untouched.
func (s *Service) Generate(ctx context.Context, sportID int64, req GenerateRequest) (*GenerateResult, error) {
	from, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrValidation
	}
	to, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrValidation
	}
	if to.Before(from) {
		return nil, ErrValidation
	}

	sport, err := s.sports.GetByID(ctx, sportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cfg, err := s.configs.GetConfigBySport(ctx, sportID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	breaks, err := s.configs.ListBreaks(ctx, sportID)
	if err != nil {
		return nil, err
	}

	blackouts, err := s.configs.BlackoutsInRange(ctx, sportID, from, to)
	if err != nil {
		return nil, err
	}
	blackedOut := make(map[string]bool, len(blackouts))
	for _, b := range blackouts {
		blackedOut[dateKey(b.Date)] = true
	}

	existing, err := s.slots.ListRange(ctx, sportID, from, to)
	if err != nil {
		return nil, err
	}
	existingByKey := make(map[string]domain.TimeSlot, len(existing))
	for _, sl := range existing {
		existingByKey[slotKey(sl.Date, sl.StartTime)] = sl
	}

	result := &GenerateResult{}
	now := time.Now()

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if blackedOut[dateKey(date)] {
			continue
		}

		// the manual list only substitutes for absent operating hours; a
		// configured window that yields nothing (breaks, weekend gap,
		// inactive config) stays empty
		var candidates []domain.TimeSlot
		if cfg != nil {
			candidates = candidatesForDate(sport, cfg, date, breaks)
		} else if len(req.ManualSlots) > 0 {
			candidates = manualCandidates(sport, date, req.ManualSlots)
		}

		for _, cand := range candidates {
			if prev, exists := existingByKey[slotKey(cand.Date, cand.StartTime)]; exists {
				if !req.ForceReplace {
					result.Skipped++
					continue
				}
				removed, err := s.slots.DeleteIfUnbooked(ctx, prev.ID)
				if err != nil {
					return nil, err
				}
				if !removed {
					result.Skipped++
					continue
				}
				result.Replaced++
			}

			cand.CreatedAt = now
			cand.UpdatedAt = now
			slot := cand
			if err := s.slots.Create(ctx, &slot); err != nil {
				if errors.Is(err, repository.ErrDuplicateSlot) {
					result.Skipped++
					continue
				}
				return nil, err
			}
			result.Created++
		}
	}

	logrus.WithFields(logrus.Fields{
		"sport_id": sportID,
		"from":     req.StartDate,
		"to":       req.EndDate,
		"created":  result.Created,
		"skipped":  result.Skipped,
		"replaced": result.Replaced,
	}).Info("slot generation finished")

	return result, nil
}

// Clear removes every slot in the range along with dependent bookings,
// players and check-in history.
func (s *Service) Clear(ctx context.Context, sportID int64, req ClearRequest) (int64, error) {
	from, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return 0, ErrValidation
	}
	to, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return 0, ErrValidation
	}
	if to.Before(from) {
		return 0, ErrValidation
	}

	if _, err := s.sports.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	return s.slots.ClearRange(ctx, sportID, from, to)
}

func (s *Service) ResetBooked(ctx context.Context) (int64, error) {
	return s.slots.ResetBooked(ctx)
}

func (s *Service) AvailableSlots(ctx context.Context, sportID int64) ([]domain.TimeSlot, error) {
	if _, err := s.sports.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.slots.ListAvailable(ctx, sportID, time.Now())
}

func (s *Service) SetSlotDisabled(ctx context.Context, slotID int64, disabled bool) error {
	err := s.slots.SetAdminDisabled(ctx, slotID, disabled)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
