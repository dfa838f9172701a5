package booking

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain"
	"courtside/internal/notifier"
	"courtside/internal/pkg/qrtoken"
	"courtside/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	slots    SlotRepository
	sports   SportRepository
	users    UserRepository
	tokens   TokenIssuer
	notifs   NotificationSender
}

func NewService(
	bookings BookingRepository,
	slots SlotRepository,
	sports SportRepository,
	users UserRepository,
	tokens TokenIssuer,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings: bookings,
		slots:    slots,
		sports:   sports,
		users:    users,
		tokens:   tokens,
		notifs:   notifs,
	}
}

// Reserve books the slot for the user. The repository runs the whole check
// and flip in one locked transaction, so under concurrent attempts exactly
// one caller wins and the rest get ErrSlotUnavailable.
func (s *Service) Reserve(ctx context.Context, slotID, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.Reserve(ctx, slotID, userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotUnavailable):
			return nil, ErrSlotUnavailable
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// VerifyPayment marks the booking paid. The flag flip is idempotent; the
// organizer QR token is issued exactly once, on whichever call first finds
// it unset. Gateway callback validation happens upstream of this service.
func (s *Service) VerifyPayment(ctx context.Context, bookingID int64, paymentID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.IsCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	orderID := uuid.NewString()
	if _, err := s.bookings.MarkPaymentVerified(ctx, bookingID, paymentID, orderID, now); err != nil {
		return nil, err
	}

	if err := s.ensureOrganizerToken(ctx, b, now); err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) ensureOrganizerToken(ctx context.Context, b *domain.Booking, now time.Time) error {
	if b.OrganizerQRToken != "" {
		return nil
	}

	slot, err := s.slots.GetByID(ctx, b.SlotID)
	if err != nil {
		return err
	}
	sport, err := s.sports.GetByID(ctx, slot.SportID)
	if err != nil {
		return err
	}

	token, err := s.tokens.IssueOrganizer(qrtoken.OrganizerPayload{
		BookingID: b.ID,
		UserID:    b.UserID,
		SlotDate:  slot.Date.Format("2006-01-02"),
		Sport:     sport.Name,
		IssuedAt:  now,
	})
	if err != nil {
		return err
	}

	stored, err := s.bookings.SetOrganizerTokenOnce(ctx, b.ID, token, now)
	if err != nil {
		return err
	}
	if !stored {
		// another verification call issued the token first
		return nil
	}

	email := ""
	if user, err := s.users.GetByID(ctx, b.UserID); err == nil {
		email = user.Email
	}
	if err := s.notifs.OrganizerQRIssued(ctx, notifier.OrganizerQRIssuedEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		Email:     email,
		Sport:     sport.Name,
		SlotDate:  slot.Date.Format("2006-01-02"),
		QRToken:   token,
	}); err != nil {
		logrus.WithError(err).WithField("booking_id", b.ID).Warn("organizer QR notification failed")
	}
	return nil
}

// Cancel flags the booking cancelled and frees its slot. Players and
// check-in history stay on record.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64, admin bool, reason string) (*domain.Booking, error) {
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

	cancelled, err := s.bookings.Cancel(ctx, bookingID, reason, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCancelled) {
			return nil, ErrAlreadyCancelled
		}
		return nil, err
	}

	if err := s.notifs.BookingCancelled(ctx, notifier.BookingCancelledEvent{
		BookingID: cancelled.ID,
		UserID:    cancelled.UserID,
		Reason:    reason,
	}); err != nil {
		logrus.WithError(err).WithField("booking_id", cancelled.ID).Warn("cancellation notification failed")
	}

	return cancelled, nil
}

func (s *Service) MyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, bookingID, actorID int64, admin bool) (*domain.Booking, error) {
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

	if slot, err := s.slots.GetByID(ctx, b.SlotID); err == nil {
		b.Slot = slot
	}
	return b, nil
}
