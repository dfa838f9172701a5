package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"courtside/internal/domain"
	"courtside/internal/notifier"
	"courtside/internal/pkg/qrtoken"
	"courtside/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	players  PlayerRepository
	bookings BookingRepository
	slots    SlotRepository
	sports   SportRepository
	users    UserRepository
	tokens   TokenIssuer
	notifs   NotificationSender

	defaultPassword string
}

func NewService(
	players PlayerRepository,
	bookings BookingRepository,
	slots SlotRepository,
	sports SportRepository,
	users UserRepository,
	tokens TokenIssuer,
	notifs NotificationSender,
	defaultPassword string,
) *Service {
	return &Service{
		players:         players,
		bookings:        bookings,
		slots:           slots,
		sports:          sports,
		users:           users,
		tokens:          tokens,
		notifs:          notifs,
		defaultPassword: defaultPassword,
	}
}

type linkedAccount struct {
	userID   int64
	password string // set only when the account was created by this call
}

// AddPlayers registers the whole batch or nothing. Capacity and duplicate
// checks run inside the repository transaction; account linking happens
// before the insert and QR issuance plus notification after it, so a failed
// batch never holds tokens and a failed notification never rolls players
// back.
func (s *Service) AddPlayers(ctx context.Context, bookingID int64, req AddPlayersRequest, actorID int64, admin bool) ([]domain.Player, error) {
	if len(req.Players) == 0 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != actorID && !admin {
		return nil, ErrForbidden
	}
	if b.IsCancelled {
		return nil, ErrBookingCancelled
	}
	if !b.PaymentVerified {
		return nil, ErrPaymentRequired
	}

	slot, err := s.slots.GetByID(ctx, b.SlotID)
	if err != nil {
		return nil, err
	}
	maxPlayers := slot.MaxPlayers
	if maxPlayers <= 0 {
		sport, err := s.sports.GetByID(ctx, slot.SportID)
		if err != nil {
			return nil, err
		}
		maxPlayers = sport.MaxPlayers
	}

	now := time.Now()

	accounts := make([]linkedAccount, len(req.Players))
	players := make([]*domain.Player, len(req.Players))
	for i, pr := range req.Players {
		acct, err := s.ensureAccount(ctx, pr, now)
		if err != nil {
			return nil, err
		}
		accounts[i] = acct

		userID := acct.userID
		players[i] = &domain.Player{
			BookingID: bookingID,
			Name:      pr.Name,
			Email:     strings.ToLower(strings.TrimSpace(pr.Email)),
			Phone:     pr.Phone,
			UserID:    &userID,
			CreatedAt: now,
		}
	}

	if err := s.players.CreateBatch(ctx, bookingID, maxPlayers, players); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		case errors.Is(err, repository.ErrDuplicatePlayer):
			return nil, ErrDuplicatePlayer
		}
		return nil, err
	}

	// player QR tokens expire at the end of the slot's date
	expiry := slot.Date.AddDate(0, 0, 1)

	out := make([]domain.Player, 0, len(players))
	for i, p := range players {
		token, err := s.tokens.IssuePlayer(qrtoken.PlayerPayload{
			PlayerID:  p.ID,
			BookingID: bookingID,
			IssuedAt:  now,
			ExpiresAt: &expiry,
		})
		if err != nil {
			logrus.WithError(err).WithField("player_id", p.ID).Error("player QR issuance failed")
		} else {
			if err := s.players.SetQRToken(ctx, p.ID, token); err != nil {
				logrus.WithError(err).WithField("player_id", p.ID).Error("storing player QR failed")
			} else {
				p.QRToken = token
			}
		}

		if err := s.notifs.PlayerCredentials(ctx, notifier.PlayerCredentialsEvent{
			PlayerID:  p.ID,
			BookingID: bookingID,
			Name:      p.Name,
			Email:     p.Email,
			Password:  accounts[i].password,
			QRToken:   p.QRToken,
		}); err != nil {
			logrus.WithError(err).WithField("player_id", p.ID).Warn("player credentials notification failed")
		}

		out = append(out, *p)
	}
	return out, nil
}

// ensureAccount looks up the user account for the player's email and creates
// one with the configured default password when none exists.
func (s *Service) ensureAccount(ctx context.Context, pr PlayerRequest, now time.Time) (linkedAccount, error) {
	existing, err := s.users.GetByEmail(ctx, pr.Email)
	if err == nil {
		return linkedAccount{userID: existing.ID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return linkedAccount{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return linkedAccount{}, err
	}

	u := &domain.User{
		Email:        pr.Email,
		PasswordHash: string(hash),
		Name:         pr.Name,
		Phone:        pr.Phone,
		Role:         domain.RolePlayer,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return linkedAccount{}, err
	}

	// the QR payload needs the assigned id, so issuance follows the insert
	if token, err := s.tokens.IssueUser(qrtoken.UserPayload{UserID: u.ID, Email: u.Email, IssuedAt: now}); err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Error("user QR issuance failed")
	} else if err := s.users.SetQRToken(ctx, u.ID, token); err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Error("storing user QR failed")
	}

	return linkedAccount{userID: u.ID, password: s.defaultPassword}, nil
}

func (s *Service) Players(ctx context.Context, bookingID, actorID int64, admin bool) ([]domain.Player, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != actorID && !admin {
		return nil, ErrForbidden
	}
	return s.players.ListByBooking(ctx, bookingID)
}
