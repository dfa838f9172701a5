package roster

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
	"gorm.io/gorm"
)

type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) CreateBatch(ctx context.Context, bookingID int64, maxAllowed int, players []*domain.Player) error {
	args := m.Called(ctx, bookingID, maxAllowed, players)
	if args.Error(0) == nil {
		for i, p := range players {
			p.ID = int64(100 + i) // simulate DB insert
		}
	}
	return args.Error(0)
}

func (m *MockPlayerRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Player, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) SetQRToken(ctx context.Context, id int64, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
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

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 77
	}
	return args.Error(0)
}

func (m *MockUserRepository) SetQRToken(ctx context.Context, id int64, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssuePlayer(p qrtoken.PlayerPayload) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) IssueUser(p qrtoken.UserPayload) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) PlayerCredentials(ctx context.Context, ev notifier.PlayerCredentialsEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type fixture struct {
	players  *MockPlayerRepository
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
		players:  new(MockPlayerRepository),
		bookings: new(MockBookingRepository),
		slots:    new(MockSlotRepository),
		sports:   new(MockSportRepository),
		users:    new(MockUserRepository),
		tokens:   new(MockTokenIssuer),
		notifs:   new(MockNotificationSender),
	}
	f.service = NewService(f.players, f.bookings, f.slots, f.sports, f.users, f.tokens, f.notifs, "changeme")
	return f
}

var slotDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func verifiedBooking() *domain.Booking {
	return &domain.Booking{ID: 1, UserID: 42, SlotID: 5, PaymentVerified: true}
}

func TestAddPlayers_NewAccountGetsCredentials(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate, MaxPlayers: 4}, nil)
	f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.tokens.On("IssueUser", mock.Anything).Return("user-token", nil)
	f.users.On("SetQRToken", mock.Anything, int64(77), "user-token").Return(nil)
	f.players.On("CreateBatch", mock.Anything, int64(1), 4, mock.Anything).Return(nil)
	f.tokens.On("IssuePlayer", mock.MatchedBy(func(p qrtoken.PlayerPayload) bool {
		return p.BookingID == 1 && p.ExpiresAt != nil && p.ExpiresAt.Equal(slotDate.AddDate(0, 0, 1))
	})).Return("player-token", nil)
	f.players.On("SetQRToken", mock.Anything, int64(100), "player-token").Return(nil)
	f.notifs.On("PlayerCredentials", mock.Anything, mock.MatchedBy(func(ev notifier.PlayerCredentialsEvent) bool {
		return ev.Email == "ana@example.com" && ev.Password == "changeme" && ev.QRToken == "player-token"
	})).Return(nil)

	players, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 42, false)

	assert.NoError(t, err)
	assert.Len(t, players, 1)
	assert.Equal(t, "player-token", players[0].QRToken)
	assert.NotNil(t, players[0].UserID)
	assert.Equal(t, int64(77), *players[0].UserID)
	f.notifs.AssertExpectations(t)
}

func TestAddPlayers_NewAccountQRCarriesAssignedID(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate, MaxPlayers: 4}, nil)
	f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	// the payload must carry the id assigned by the insert, not a zero value
	f.tokens.On("IssueUser", mock.MatchedBy(func(p qrtoken.UserPayload) bool {
		return p.UserID == 77 && p.Email == "ana@example.com"
	})).Return("user-token", nil)
	f.users.On("SetQRToken", mock.Anything, int64(77), "user-token").Return(nil)
	f.players.On("CreateBatch", mock.Anything, int64(1), 4, mock.Anything).Return(nil)
	f.tokens.On("IssuePlayer", mock.Anything).Return("player-token", nil)
	f.players.On("SetQRToken", mock.Anything, int64(100), "player-token").Return(nil)
	f.notifs.On("PlayerCredentials", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 42, false)

	assert.NoError(t, err)
	f.tokens.AssertExpectations(t)
	f.users.AssertCalled(t, "SetQRToken", mock.Anything, int64(77), "user-token")
}

func TestAddPlayers_ExistingAccountReused(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate, MaxPlayers: 4}, nil)
	f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: 9, Email: "ana@example.com"}, nil)
	f.players.On("CreateBatch", mock.Anything, int64(1), 4, mock.Anything).Return(nil)
	f.tokens.On("IssuePlayer", mock.Anything).Return("player-token", nil)
	f.players.On("SetQRToken", mock.Anything, int64(100), "player-token").Return(nil)
	// no password in the event for a pre-existing account
	f.notifs.On("PlayerCredentials", mock.Anything, mock.MatchedBy(func(ev notifier.PlayerCredentialsEvent) bool {
		return ev.Password == ""
	})).Return(nil)

	players, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 42, false)

	assert.NoError(t, err)
	assert.Equal(t, int64(9), *players[0].UserID)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddPlayers_PaymentNotVerified(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, UserID: 42, SlotID: 5}, nil)

	_, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 42, false)

	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestAddPlayers_ForbiddenForStranger(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)

	_, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 99, false)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddPlayers_CapacityExceededNothingNotified(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate, MaxPlayers: 2}, nil)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.User{ID: 9}, nil)
	f.players.On("CreateBatch", mock.Anything, int64(1), 2, mock.Anything).
		Return(repository.ErrCapacityExceeded)

	_, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{
			{Name: "Ana", Email: "ana@example.com"},
			{Name: "Bo", Email: "bo@example.com"},
			{Name: "Cy", Email: "cy@example.com"},
		},
	}, 42, false)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	f.notifs.AssertNotCalled(t, "PlayerCredentials", mock.Anything, mock.Anything)
}

func TestAddPlayers_DuplicateEmail(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate, MaxPlayers: 4}, nil)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.User{ID: 9}, nil)
	f.players.On("CreateBatch", mock.Anything, int64(1), 4, mock.Anything).
		Return(repository.ErrDuplicatePlayer)

	_, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 42, false)

	assert.ErrorIs(t, err, ErrDuplicatePlayer)
}

func TestAddPlayers_NotificationFailureDoesNotFailBatch(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate, MaxPlayers: 4}, nil)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.User{ID: 9}, nil)
	f.players.On("CreateBatch", mock.Anything, int64(1), 4, mock.Anything).Return(nil)
	f.tokens.On("IssuePlayer", mock.Anything).Return("player-token", nil)
	f.players.On("SetQRToken", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifs.On("PlayerCredentials", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	players, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 42, false)

	assert.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestAddPlayers_FallsBackToSportCapacity(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(&domain.TimeSlot{ID: 5, SportID: 2, Date: slotDate}, nil)
	f.sports.On("GetByID", mock.Anything, int64(2)).Return(&domain.Sport{ID: 2, MaxPlayers: 6}, nil)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.User{ID: 9}, nil)
	f.players.On("CreateBatch", mock.Anything, int64(1), 6, mock.Anything).Return(nil)
	f.tokens.On("IssuePlayer", mock.Anything).Return("player-token", nil)
	f.players.On("SetQRToken", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifs.On("PlayerCredentials", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.AddPlayers(context.Background(), 1, AddPlayersRequest{
		Players: []PlayerRequest{{Name: "Ana", Email: "ana@example.com"}},
	}, 42, false)

	assert.NoError(t, err)
	f.players.AssertCalled(t, "CreateBatch", mock.Anything, int64(1), 6, mock.Anything)
}

func TestPlayers_AdminMayList(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(verifiedBooking(), nil)
	f.players.On("ListByBooking", mock.Anything, int64(1)).Return([]domain.Player{
		{ID: 100, BookingID: 1, Name: "Ana", CheckInCount: 1},
	}, nil)

	players, err := f.service.Players(context.Background(), 1, 7, true)

	assert.NoError(t, err)
	assert.Len(t, players, 1)
	assert.Equal(t, "checked_in", domain.CheckInStatus(players[0].CheckInCount))
}
