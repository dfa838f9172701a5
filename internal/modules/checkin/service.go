package checkin

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain"
	"courtside/internal/pkg/qrtoken"

	"gorm.io/gorm"
)

type Service struct {
	players  PlayerRepository
	bookings BookingRepository
	slots    SlotRepository
	verifier TokenVerifier

	now func() time.Time
}

func NewService(players PlayerRepository, bookings BookingRepository, slots SlotRepository, verifier TokenVerifier) *Service {
	return &Service{
		players:  players,
		bookings: bookings,
		slots:    slots,
		verifier: verifier,
		now:      time.Now,
	}
}

func mapTokenError(err error) error {
	if errors.Is(err, qrtoken.ErrExpired) {
		return ErrTokenExpired
	}
	return ErrInvalidToken
}

// ScanPlayer drives the player's 3-state machine one step forward. The
// counter advance is a compare-and-set in the repository, so two concurrent
// scans of the same code cannot both move it from the same state.
func (s *Service) ScanPlayer(ctx context.Context, token string) (*ScanResult, error) {
	payload, err := s.verifier.VerifyPlayer(token)
	if err != nil {
		return nil, mapTokenError(err)
	}

	player, err := s.players.GetByID(ctx, payload.PlayerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, player.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	slot, err := s.slots.GetByID(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	now := s.now()
	if !slot.SameDate(now) {
		return nil, ErrWrongDate
	}
	if player.CheckInCount >= domain.CheckStateOut {
		return nil, ErrMaxScansReached
	}

	advanced, err := s.players.AdvanceCheckIn(ctx, player.ID, player.CheckInCount, now)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, ErrConflict
	}

	action := domain.ActionCheckIn
	if player.CheckInCount == domain.CheckStateIn {
		action = domain.ActionCheckOut
	}
	return &ScanResult{
		Action:    action,
		Status:    domain.CheckInStatus(player.CheckInCount + 1),
		PlayerID:  player.ID,
		BookingID: player.BookingID,
		Name:      player.Name,
		Timestamp: now,
	}, nil
}

// ScanOrganizer drives the organizer's state machine. The organizer token
// embeds the slot date, which is cross-checked against the stored slot.
func (s *Service) ScanOrganizer(ctx context.Context, token string) (*ScanResult, error) {
	payload, err := s.verifier.VerifyOrganizer(token)
	if err != nil {
		return nil, mapTokenError(err)
	}

	booking, err := s.bookings.GetByID(ctx, payload.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	slot, err := s.slots.GetByID(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	now := s.now()
	if payload.SlotDate != slot.Date.Format("2006-01-02") {
		return nil, ErrWrongDate
	}
	if !slot.SameDate(now) {
		return nil, ErrWrongDate
	}
	if booking.OrganizerCheckInCount >= domain.CheckStateOut {
		return nil, ErrMaxScansReached
	}

	advanced, err := s.bookings.AdvanceOrganizerCheckIn(ctx, booking.ID, booking.UserID, booking.OrganizerCheckInCount, now)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, ErrConflict
	}

	action := domain.ActionCheckIn
	if booking.OrganizerCheckInCount == domain.CheckStateIn {
		action = domain.ActionCheckOut
	}
	return &ScanResult{
		Action:    action,
		Status:    domain.CheckInStatus(booking.OrganizerCheckInCount + 1),
		BookingID: booking.ID,
		Timestamp: now,
	}, nil
}

func (s *Service) PlayerLogs(ctx context.Context, playerID int64) ([]domain.CheckInLog, error) {
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	return s.players.ListLogs(ctx, playerID)
}

func (s *Service) OrganizerLogs(ctx context.Context, bookingID int64) ([]domain.OrganizerCheckInLog, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	return s.bookings.ListOrganizerLogs(ctx, bookingID)
}
