package repository

import (
	"context"
	"strings"
	"time"

	"courtside/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

type playerModel struct {
	ID        int64   `gorm:"column:id;primaryKey"`
	BookingID int64   `gorm:"column:booking_id;index"`
	Name      string  `gorm:"column:name"`
	Email     string  `gorm:"column:email"`
	Phone     *string `gorm:"column:phone"`
	UserID    *int64  `gorm:"column:user_id"`

	QRToken      *string    `gorm:"column:qr_token"`
	CheckInCount int        `gorm:"column:check_in_count"`
	IsIn         bool       `gorm:"column:is_in"`
	LastCheckIn  *time.Time `gorm:"column:last_check_in"`
	LastCheckOut *time.Time `gorm:"column:last_check_out"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (playerModel) TableName() string { return "players" }

type checkInLogModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	PlayerID  int64     `gorm:"column:player_id;index"`
	Action    string    `gorm:"column:action"`
	Timestamp time.Time `gorm:"column:timestamp"`
}

func (checkInLogModel) TableName() string { return "check_in_logs" }

func toDomainPlayer(m playerModel) *domain.Player {
	return &domain.Player{
		ID:        m.ID,
		BookingID: m.BookingID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     strOrEmpty(m.Phone),
		UserID:    m.UserID,

		QRToken:      strOrEmpty(m.QRToken),
		CheckInCount: m.CheckInCount,
		IsIn:         m.IsIn,
		LastCheckIn:  m.LastCheckIn,
		LastCheckOut: m.LastCheckOut,

		CreatedAt: m.CreatedAt,
	}
}

func toPlayerModel(p *domain.Player) playerModel {
	return playerModel{
		ID:        p.ID,
		BookingID: p.BookingID,
		Name:      p.Name,
		Email:     strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:     strOrNil(p.Phone),
		UserID:    p.UserID,

		QRToken:      strOrNil(p.QRToken),
		CheckInCount: p.CheckInCount,
		IsIn:         p.IsIn,
		LastCheckIn:  p.LastCheckIn,
		LastCheckOut: p.LastCheckOut,

		CreatedAt: p.CreatedAt,
	}
}

// CreateBatch inserts all players or none. The capacity and duplicate checks
// run inside the transaction, with the booking row locked, so two concurrent
// batches cannot both pass the same capacity headroom.
func (r *PlayerRepository) CreateBatch(ctx context.Context, bookingID int64, maxAllowed int, players []*domain.Player) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b bookingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, bookingID).Error; err != nil {
			return err
		}

		var current int64
		if err := tx.Model(&playerModel{}).
			Where("booking_id = ?", bookingID).
			Count(&current).Error; err != nil {
			return err
		}
		if int(current)+len(players) > maxAllowed {
			return ErrCapacityExceeded
		}

		seen := make(map[string]bool, len(players))
		for _, p := range players {
			email := strings.ToLower(strings.TrimSpace(p.Email))
			if seen[email] {
				return ErrDuplicatePlayer
			}
			seen[email] = true

			var dup int64
			if err := tx.Model(&playerModel{}).
				Where("booking_id = ? AND email = ?", bookingID, email).
				Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return ErrDuplicatePlayer
			}
		}

		for _, p := range players {
			m := toPlayerModel(p)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			*p = *toDomainPlayer(m)
		}
		return nil
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	var m playerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPlayer(m), nil
}

func (r *PlayerRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Player, error) {
	var rows []playerModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("name").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Player, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPlayer(m))
	}
	return out, nil
}

func (r *PlayerRepository) SetQRToken(ctx context.Context, id int64, token string) error {
	return r.db.WithContext(ctx).Model(&playerModel{}).
		Where("id = ?", id).
		Update("qr_token", token).Error
}

// AdvanceCheckIn performs the compare-and-set counter transition from `from`
// to `from+1`, stamps the matching timestamp, and appends the audit row in
// the same transaction. Returns false without error when a concurrent scan
// won the race.
func (r *PlayerRepository) AdvanceCheckIn(ctx context.Context, playerID int64, from int, at time.Time) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		isIn := from == domain.CheckStateRegistered

		updates := map[string]any{
			"check_in_count": from + 1,
			"is_in":          isIn,
		}
		if isIn {
			updates["last_check_in"] = at
		} else {
			updates["last_check_out"] = at
		}

		res := tx.Model(&playerModel{}).
			Where("id = ? AND check_in_count = ?", playerID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleCounter
		}

		action := domain.ActionCheckIn
		if !isIn {
			action = domain.ActionCheckOut
		}
		return tx.Create(&checkInLogModel{
			PlayerID:  playerID,
			Action:    string(action),
			Timestamp: at,
		}).Error
	})
	if err == ErrStaleCounter {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PlayerRepository) ListLogs(ctx context.Context, playerID int64) ([]domain.CheckInLog, error) {
	var rows []checkInLogModel
	tx := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("timestamp DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CheckInLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.CheckInLog{
			ID:        m.ID,
			PlayerID:  m.PlayerID,
			Action:    domain.CheckAction(m.Action),
			Timestamp: m.Timestamp,
		})
	}
	return out, nil
}
