package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"courtside/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConfigRepository holds the per-sport booking configuration, break windows
// and blackout dates that feed the slot generator.
type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// dateOnly normalises a timestamp to midnight UTC so calendar dates compare
// and index consistently across drivers.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite reports constraint failures as plain errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type bookingConfigModel struct {
	ID                 int64  `gorm:"column:id;primaryKey"`
	SportID            int64  `gorm:"column:sport_id;uniqueIndex"`
	OpensAt            string `gorm:"column:opens_at"`
	ClosesAt           string `gorm:"column:closes_at"`
	SlotDuration       int    `gorm:"column:slot_duration"`
	AdvanceBookingDays int    `gorm:"column:advance_booking_days"`
	MinBookingDuration int    `gorm:"column:min_booking_duration"`
	MaxBookingDuration int    `gorm:"column:max_booking_duration"`
	BufferTime         int    `gorm:"column:buffer_time"`

	DifferentWeekendHours bool    `gorm:"column:different_weekend_timings"`
	WeekendOpensAt        *string `gorm:"column:weekend_opens_at"`
	WeekendClosesAt       *string `gorm:"column:weekend_closes_at"`

	PeakHourPricing        bool    `gorm:"column:peak_hour_pricing"`
	PeakStartTime          *string `gorm:"column:peak_start_time"`
	PeakEndTime            *string `gorm:"column:peak_end_time"`
	PeakPriceMultiplier    float64 `gorm:"column:peak_price_multiplier"`
	WeekendPricing         bool    `gorm:"column:weekend_pricing"`
	WeekendPriceMultiplier float64 `gorm:"column:weekend_price_multiplier"`

	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingConfigModel) TableName() string { return "booking_configurations" }

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainConfig(m bookingConfigModel) *domain.BookingConfiguration {
	return &domain.BookingConfiguration{
		ID:                 m.ID,
		SportID:            m.SportID,
		OpensAt:            m.OpensAt,
		ClosesAt:           m.ClosesAt,
		SlotDuration:       m.SlotDuration,
		AdvanceBookingDays: m.AdvanceBookingDays,
		MinBookingDuration: m.MinBookingDuration,
		MaxBookingDuration: m.MaxBookingDuration,
		BufferTime:         m.BufferTime,

		DifferentWeekendHours: m.DifferentWeekendHours,
		WeekendOpensAt:        strOrEmpty(m.WeekendOpensAt),
		WeekendClosesAt:       strOrEmpty(m.WeekendClosesAt),

		PeakHourPricing:        m.PeakHourPricing,
		PeakStartTime:          strOrEmpty(m.PeakStartTime),
		PeakEndTime:            strOrEmpty(m.PeakEndTime),
		PeakPriceMultiplier:    m.PeakPriceMultiplier,
		WeekendPricing:         m.WeekendPricing,
		WeekendPriceMultiplier: m.WeekendPriceMultiplier,

		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toConfigModel(c *domain.BookingConfiguration) bookingConfigModel {
	return bookingConfigModel{
		ID:                 c.ID,
		SportID:            c.SportID,
		OpensAt:            c.OpensAt,
		ClosesAt:           c.ClosesAt,
		SlotDuration:       c.SlotDuration,
		AdvanceBookingDays: c.AdvanceBookingDays,
		MinBookingDuration: c.MinBookingDuration,
		MaxBookingDuration: c.MaxBookingDuration,
		BufferTime:         c.BufferTime,

		DifferentWeekendHours: c.DifferentWeekendHours,
		WeekendOpensAt:        strOrNil(c.WeekendOpensAt),
		WeekendClosesAt:       strOrNil(c.WeekendClosesAt),

		PeakHourPricing:        c.PeakHourPricing,
		PeakStartTime:          strOrNil(c.PeakStartTime),
		PeakEndTime:            strOrNil(c.PeakEndTime),
		PeakPriceMultiplier:    c.PeakPriceMultiplier,
		WeekendPricing:         c.WeekendPricing,
		WeekendPriceMultiplier: c.WeekendPriceMultiplier,

		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type breakTimeModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	SportID           int64     `gorm:"column:sport_id;index"`
	StartTime         string    `gorm:"column:start_time"`
	EndTime           string    `gorm:"column:end_time"`
	Reason            *string   `gorm:"column:reason"`
	AppliesToWeekdays bool      `gorm:"column:applies_to_weekdays"`
	AppliesToWeekends bool      `gorm:"column:applies_to_weekends"`
	IsActive          bool      `gorm:"column:is_active"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (breakTimeModel) TableName() string { return "break_times" }

func toDomainBreak(m breakTimeModel) domain.BreakTime {
	return domain.BreakTime{
		ID:                m.ID,
		SportID:           m.SportID,
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		Reason:            strOrEmpty(m.Reason),
		AppliesToWeekdays: m.AppliesToWeekdays,
		AppliesToWeekends: m.AppliesToWeekends,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
	}
}

type blackoutDateModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	SportID   int64     `gorm:"column:sport_id;uniqueIndex:idx_blackout_sport_date"`
	Date      time.Time `gorm:"column:date;uniqueIndex:idx_blackout_sport_date"`
	Reason    string    `gorm:"column:reason"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (blackoutDateModel) TableName() string { return "blackout_dates" }

func toDomainBlackout(m blackoutDateModel) domain.BlackoutDate {
	return domain.BlackoutDate{
		ID:        m.ID,
		SportID:   m.SportID,
		Date:      m.Date,
		Reason:    m.Reason,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ConfigRepository) UpsertConfig(ctx context.Context, c *domain.BookingConfiguration) error {
	m := toConfigModel(c)

	var existing bookingConfigModel
	err := r.db.WithContext(ctx).Where("sport_id = ?", c.SportID).First(&existing).Error
	switch {
	case err == nil:
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			return err
		}
	default:
		return err
	}

	*c = *toDomainConfig(m)
	return nil
}

func (r *ConfigRepository) GetConfigBySport(ctx context.Context, sportID int64) (*domain.BookingConfiguration, error) {
	var m bookingConfigModel
	tx := r.db.WithContext(ctx).Where("sport_id = ?", sportID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainConfig(m), nil
}

func (r *ConfigRepository) CreateBreak(ctx context.Context, b *domain.BreakTime) error {
	m := breakTimeModel{
		SportID:           b.SportID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		Reason:            strOrNil(b.Reason),
		AppliesToWeekdays: b.AppliesToWeekdays,
		AppliesToWeekends: b.AppliesToWeekends,
		IsActive:          b.IsActive,
		CreatedAt:         b.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = toDomainBreak(m)
	return nil
}

func (r *ConfigRepository) ListBreaks(ctx context.Context, sportID int64) ([]domain.BreakTime, error) {
	var rows []breakTimeModel
	tx := r.db.WithContext(ctx).
		Where("sport_id = ?", sportID).
		Order("start_time").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BreakTime, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBreak(m))
	}
	return out, nil
}

func (r *ConfigRepository) DeleteBreak(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&breakTimeModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ConfigRepository) CreateBlackout(ctx context.Context, b *domain.BlackoutDate) error {
	m := blackoutDateModel{
		SportID:   b.SportID,
		Date:      dateOnly(b.Date),
		Reason:    b.Reason,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBlackout
		}
		return err
	}
	*b = toDomainBlackout(m)
	return nil
}

func (r *ConfigRepository) ListBlackouts(ctx context.Context, sportID int64) ([]domain.BlackoutDate, error) {
	var rows []blackoutDateModel
	tx := r.db.WithContext(ctx).
		Where("sport_id = ?", sportID).
		Order("date").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BlackoutDate, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBlackout(m))
	}
	return out, nil
}

// BlackoutsInRange returns active blackout dates for [from, to], keyed use by
// the slot generator.
func (r *ConfigRepository) BlackoutsInRange(ctx context.Context, sportID int64, from, to time.Time) ([]domain.BlackoutDate, error) {
	var rows []blackoutDateModel
	tx := r.db.WithContext(ctx).
		Where("sport_id = ? AND is_active = ? AND date BETWEEN ? AND ?",
			sportID, true, dateOnly(from), dateOnly(to)).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BlackoutDate, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBlackout(m))
	}
	return out, nil
}

func (r *ConfigRepository) DeleteBlackout(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&blackoutDateModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
