package repository

import (
	"context"
	"time"

	"courtside/internal/domain"

	"gorm.io/gorm"
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

type timeSlotModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	SportID       int64     `gorm:"column:sport_id;uniqueIndex:idx_slot_sport_date_start"`
	Date          time.Time `gorm:"column:date;uniqueIndex:idx_slot_sport_date_start"`
	StartTime     string    `gorm:"column:start_time;uniqueIndex:idx_slot_sport_date_start"`
	EndTime       string    `gorm:"column:end_time"`
	Price         float64   `gorm:"column:price"`
	MaxPlayers    int       `gorm:"column:max_players"`
	IsBooked      bool      `gorm:"column:is_booked"`
	AdminDisabled bool      `gorm:"column:admin_disabled"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (timeSlotModel) TableName() string { return "time_slots" }

func toDomainSlot(m timeSlotModel) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:            m.ID,
		SportID:       m.SportID,
		Date:          m.Date,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Price:         m.Price,
		MaxPlayers:    m.MaxPlayers,
		IsBooked:      m.IsBooked,
		AdminDisabled: m.AdminDisabled,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toSlotModel(s *domain.TimeSlot) timeSlotModel {
	return timeSlotModel{
		ID:            s.ID,
		SportID:       s.SportID,
		Date:          dateOnly(s.Date),
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Price:         s.Price,
		MaxPlayers:    s.MaxPlayers,
		IsBooked:      s.IsBooked,
		AdminDisabled: s.AdminDisabled,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r *SlotRepository) Create(ctx context.Context, s *domain.TimeSlot) error {
	m := toSlotModel(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	*s = *toDomainSlot(m)
	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	var m timeSlotModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSlot(m), nil
}

// ListRange returns every slot for the sport with date in [from, to],
// regardless of state. The generator uses it to detect already existing
// slots before creating new ones.
func (r *SlotRepository) ListRange(ctx context.Context, sportID int64, from, to time.Time) ([]domain.TimeSlot, error) {
	var rows []timeSlotModel
	tx := r.db.WithContext(ctx).
		Where("sport_id = ? AND date BETWEEN ? AND ?", sportID, dateOnly(from), dateOnly(to)).
		Order("date, start_time").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TimeSlot, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainSlot(m))
	}
	return out, nil
}

// ListAvailable returns bookable slots: not booked, not admin-disabled,
// today or later, and not covered by an active blackout date.
func (r *SlotRepository) ListAvailable(ctx context.Context, sportID int64, today time.Time) ([]domain.TimeSlot, error) {
	var rows []timeSlotModel
	tx := r.db.WithContext(ctx).
		Where("sport_id = ? AND is_booked = ? AND admin_disabled = ? AND date >= ?",
			sportID, false, false, dateOnly(today)).
		Where("NOT EXISTS (SELECT 1 FROM blackout_dates bd WHERE bd.sport_id = time_slots.sport_id AND bd.date = time_slots.date AND bd.is_active = ?)", true).
		Order("date, start_time").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TimeSlot, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainSlot(m))
	}
	return out, nil
}

// DeleteIfUnbooked removes a slot only while nothing references it. Used by
// force-replace regeneration; a booked slot is left alone.
func (r *SlotRepository) DeleteIfUnbooked(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND is_booked = ?", id, false).
		Delete(&timeSlotModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ClearRange deletes all slots for the sport in [from, to] together with
// their bookings, players and check-in logs, in one transaction.
func (r *SlotRepository) ClearRange(ctx context.Context, sportID int64, from, to time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slotIDs []int64
		if err := tx.Model(&timeSlotModel{}).
			Where("sport_id = ? AND date BETWEEN ? AND ?", sportID, dateOnly(from), dateOnly(to)).
			Pluck("id", &slotIDs).Error; err != nil {
			return err
		}
		if len(slotIDs) == 0 {
			return nil
		}

		var bookingIDs []int64
		if err := tx.Model(&bookingModel{}).
			Where("slot_id IN ?", slotIDs).
			Pluck("id", &bookingIDs).Error; err != nil {
			return err
		}

		if len(bookingIDs) > 0 {
			var playerIDs []int64
			if err := tx.Model(&playerModel{}).
				Where("booking_id IN ?", bookingIDs).
				Pluck("id", &playerIDs).Error; err != nil {
				return err
			}
			if len(playerIDs) > 0 {
				if err := tx.Where("player_id IN ?", playerIDs).Delete(&checkInLogModel{}).Error; err != nil {
					return err
				}
				if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&playerModel{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&organizerCheckInLogModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", bookingIDs).Delete(&bookingModel{}).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id IN ?", slotIDs).Delete(&timeSlotModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// ResetBooked flips every booked slot back to available. Maintenance only.
func (r *SlotRepository) ResetBooked(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&timeSlotModel{}).
		Where("is_booked = ?", true).
		Update("is_booked", false)
	return tx.RowsAffected, tx.Error
}

func (r *SlotRepository) SetAdminDisabled(ctx context.Context, id int64, disabled bool) error {
	tx := r.db.WithContext(ctx).Model(&timeSlotModel{}).
		Where("id = ?", id).
		Update("admin_disabled", disabled)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
