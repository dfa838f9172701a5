package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtside/internal/domain"
	"courtside/internal/notifier"
	"courtside/internal/pkg/qrtoken"
	"courtside/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Reserve(ctx context.Context, slotID, userID int64, now time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, slotID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) MarkPaymentVerified(ctx context.Context, id int64, paymentID, orderID string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, paymentID, orderID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) SetOrganizerTokenOnce(ctx context.Context, id int64, token string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, token, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, reason string, now time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, id, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

type MockSportRepository struct {
	mock.Mock
}

func (m *MockSportRepository) GetByID(ctx context.Context, id int64) (*domain.Sport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sport), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssueOrganizer(p qrtoken.OrganizerPayload) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) OrganizerQRIssued(ctx context.Context, ev notifier.OrganizerQRIssuedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockNotificationSender) BookingCancelled(ctx context.Context, ev notifier.BookingCancelledEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type fixture struct {
	bookings *MockBookingRepository
	slots    *MockSlotRepository
	sports   *MockSportRepository
	users    *MockUserRepository
	tokens   *MockTokenIssuer
	notifs   *MockNotificationSender
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings: new(MockBookingRepository),
		slots:    new(MockSlotRepository),
		sports:   new(MockSportRepository),
		users:    new(MockUserRepository),
		tokens:   new(MockTokenIssuer),
		notifs:   new(MockNotificationSender),
	}
	f.service = NewService(f.bookings, f.slots, f.sports, f.users, f.tokens, f.notifs)
	return f
}

func TestReserve_Success(t *testing.T) {
	f := newFixture()

	f.bookings.On("Reserve", mock.Anything, int64(5), int64(42), mock.Anything).Return(&domain.Booking{
		ID:         1,
		UserID:     42,
		SlotID:     5,
		AmountPaid: 500,
	}, nil)

	b, err := f.service.Reserve(context.Background(), 5, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, domain.BookingPending, b.Status())
}

func TestReserve_SlotTaken(t *testing.T) {
	f := newFixture()

	f.bookings.On("Reserve", mock.Anything, int64(5), int64(42), mock.Anything).
		Return(nil, repository.ErrSlotUnavailable)

	_, err := f.service.Reserve(context.Background(), 5, 42)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestVerifyPayment_FirstCallIssuesOrganizerQR(t *testing.T) {
	f := newFixture()

	slotDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	pending := &domain.Booking{ID: 1, UserID: 42, SlotID: 5}

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(pending, nil).Once()
	f.bookings.On("MarkPaymentVerified", mock.Anything, int64(1), "pay-123", mock.Anything, mock.Anything).
		Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate}, nil)
	f.sports.On("GetByID", mock.Anything, int64(2)).Return(&domain.Sport{ID: 2, Name: "Tennis"}, nil)
	f.tokens.On("IssueOrganizer", mock.MatchedBy(func(p qrtoken.OrganizerPayload) bool {
		return p.BookingID == 1 && p.UserID == 42 && p.SlotDate == "2026-09-07" && p.Sport == "Tennis"
	})).Return("org-token", nil)
	f.bookings.On("SetOrganizerTokenOnce", mock.Anything, int64(1), "org-token", mock.Anything).
		Return(true, nil)
	f.users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Email: "jo@example.com"}, nil)
	f.notifs.On("OrganizerQRIssued", mock.Anything, mock.Anything).Return(nil)

	verified := &domain.Booking{ID: 1, UserID: 42, SlotID: 5, PaymentVerified: true, OrganizerQRToken: "org-token"}
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verified, nil).Once()

	b, err := f.service.VerifyPayment(context.Background(), 1, "pay-123")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status())
	f.notifs.AssertExpectations(t)
}

func TestVerifyPayment_RepeatedCallIsIdempotent(t *testing.T) {
	f := newFixture()

	verified := &domain.Booking{ID: 1, UserID: 42, SlotID: 5, PaymentVerified: true, OrganizerQRToken: "org-token"}
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verified, nil)
	f.bookings.On("MarkPaymentVerified", mock.Anything, int64(1), "pay-123", mock.Anything, mock.Anything).
		Return(false, nil)

	b, err := f.service.VerifyPayment(context.Background(), 1, "pay-123")

	assert.NoError(t, err)
	assert.True(t, b.PaymentVerified)
	f.tokens.AssertNotCalled(t, "IssueOrganizer", mock.Anything)
	f.notifs.AssertNotCalled(t, "OrganizerQRIssued", mock.Anything, mock.Anything)
}

func TestVerifyPayment_TokenRaceLostSkipsNotification(t *testing.T) {
	f := newFixture()

	slotDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	pending := &domain.Booking{ID: 1, UserID: 42, SlotID: 5}

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(pending, nil)
	f.bookings.On("MarkPaymentVerified", mock.Anything, int64(1), "pay-123", mock.Anything, mock.Anything).
		Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate}, nil)
	f.sports.On("GetByID", mock.Anything, int64(2)).Return(&domain.Sport{ID: 2, Name: "Tennis"}, nil)
	f.tokens.On("IssueOrganizer", mock.Anything).Return("org-token", nil)
	f.bookings.On("SetOrganizerTokenOnce", mock.Anything, int64(1), "org-token", mock.Anything).
		Return(false, nil)

	_, err := f.service.VerifyPayment(context.Background(), 1, "pay-123")

	assert.NoError(t, err)
	f.notifs.AssertNotCalled(t, "OrganizerQRIssued", mock.Anything, mock.Anything)
}

func TestVerifyPayment_CancelledBooking(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:          1,
		IsCancelled: true,
	}, nil)

	_, err := f.service.VerifyPayment(context.Background(), 1, "pay-123")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_OwnerSucceedsAndNotifies(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42}, nil)
	f.bookings.On("Cancel", mock.Anything, int64(1), "rain", mock.Anything).Return(&domain.Booking{
		ID:          1,
		UserID:      42,
		IsCancelled: true,
	}, nil)
	f.notifs.On("BookingCancelled", mock.Anything, notifier.BookingCancelledEvent{
		BookingID: 1,
		UserID:    42,
		Reason:    "rain",
	}).Return(nil)

	b, err := f.service.Cancel(context.Background(), 1, 42, false, "rain")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status())
	f.notifs.AssertExpectations(t)
}

func TestCancel_NotificationFailureTolerated(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42}, nil)
	f.bookings.On("Cancel", mock.Anything, int64(1), "", mock.Anything).Return(&domain.Booking{
		ID:          1,
		UserID:      42,
		IsCancelled: true,
	}, nil)
	f.notifs.On("BookingCancelled", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	b, err := f.service.Cancel(context.Background(), 1, 42, false, "")

	assert.NoError(t, err)
	assert.True(t, b.IsCancelled)
}

func TestCancel_ForbiddenForStranger(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42}, nil)

	_, err := f.service.Cancel(context.Background(), 1, 99, false, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_AdminMayCancelAnyBooking(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42}, nil)
	f.bookings.On("Cancel", mock.Anything, int64(1), "no-show", mock.Anything).Return(&domain.Booking{
		ID:          1,
		UserID:      42,
		IsCancelled: true,
	}, nil)
	f.notifs.On("BookingCancelled", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Cancel(context.Background(), 1, 7, true, "no-show")
	assert.NoError(t, err)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42}, nil)
	f.bookings.On("Cancel", mock.Anything, int64(1), "", mock.Anything).
		Return(nil, repository.ErrAlreadyCancelled)

	_, err := f.service.Cancel(context.Background(), 1, 42, false, "")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestGet_ForbiddenForStranger(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42}, nil)

	_, err := f.service.Get(context.Background(), 1, 99, false)
	assert.ErrorIs(t, err, ErrForbidden)
}
