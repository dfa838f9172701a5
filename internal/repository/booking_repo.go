package repository

import (
	"context"
	"time"

	"courtside/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID     int64 `gorm:"column:id;primaryKey"`
	UserID int64 `gorm:"column:user_id;index"`
	SlotID int64 `gorm:"column:slot_id;uniqueIndex:idx_booking_slot"`

	PaymentVerified bool    `gorm:"column:payment_verified"`
	PaymentID       *string `gorm:"column:payment_id"`
	OrderID         *string `gorm:"column:order_id"`
	AmountPaid      float64 `gorm:"column:amount_paid"`

	IsCancelled        bool    `gorm:"column:is_cancelled"`
	CancellationReason *string `gorm:"column:cancellation_reason"`

	OrganizerQRToken      *string `gorm:"column:organizer_qr_token"`
	OrganizerIsIn         bool    `gorm:"column:organizer_is_in"`
	OrganizerCheckInCount int     `gorm:"column:organizer_check_in_count"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type organizerCheckInLogModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;index"`
	UserID    int64     `gorm:"column:user_id"`
	Action    string    `gorm:"column:action"`
	Timestamp time.Time `gorm:"column:timestamp"`
}

func (organizerCheckInLogModel) TableName() string { return "organizer_check_in_logs" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:     m.ID,
		UserID: m.UserID,
		SlotID: m.SlotID,

		PaymentVerified: m.PaymentVerified,
		PaymentID:       strOrEmpty(m.PaymentID),
		OrderID:         strOrEmpty(m.OrderID),
		AmountPaid:      m.AmountPaid,

		IsCancelled:        m.IsCancelled,
		CancellationReason: strOrEmpty(m.CancellationReason),

		OrganizerQRToken:      strOrEmpty(m.OrganizerQRToken),
		OrganizerIsIn:         m.OrganizerIsIn,
		OrganizerCheckInCount: m.OrganizerCheckInCount,

		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

// Reserve atomically flips the slot to booked and inserts the booking. The
// slot row is locked for the duration of the transaction so concurrent
// attempts serialize; the guarded update plus the unique slot_id index
// guarantee at most one winner.
func (r *BookingRepository) Reserve(ctx context.Context, slotID, userID int64, now time.Time) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s timeSlotModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, slotID).Error; err != nil {
			return err
		}

		if s.IsBooked || s.AdminDisabled || s.Date.Before(dateOnly(now)) {
			return ErrSlotUnavailable
		}

		var blackouts int64
		if err := tx.Model(&blackoutDateModel{}).
			Where("sport_id = ? AND date = ? AND is_active = ?", s.SportID, s.Date, true).
			Count(&blackouts).Error; err != nil {
			return err
		}
		if blackouts > 0 {
			return ErrSlotUnavailable
		}

		res := tx.Model(&timeSlotModel{}).
			Where("id = ? AND is_booked = ?", slotID, false).
			Updates(map[string]any{"is_booked": true, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotUnavailable
		}

		m = bookingModel{
			UserID:     userID,
			SlotID:     slotID,
			AmountPaid: s.Price,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlotUnavailable
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// MarkPaymentVerified records payment details only while the flag is still
// unset, so repeated gateway callbacks stay idempotent. Returns whether this
// call performed the transition.
func (r *BookingRepository) MarkPaymentVerified(ctx context.Context, id int64, paymentID, orderID string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND payment_verified = ? AND is_cancelled = ?", id, false, false).
		Updates(map[string]any{
			"payment_verified": true,
			"payment_id":       paymentID,
			"order_id":         orderID,
			"updated_at":       now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetOrganizerTokenOnce stores the organizer QR token only if none is set,
// making issuance an exactly-once side effect of payment verification.
func (r *BookingRepository) SetOrganizerTokenOnce(ctx context.Context, id int64, token string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND (organizer_qr_token IS NULL OR organizer_qr_token = '')", id).
		Updates(map[string]any{"organizer_qr_token": token, "updated_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Cancel flags the booking cancelled and releases its slot in one
// transaction. Players and check-in history are kept.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason string, now time.Time) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
			return err
		}
		if m.IsCancelled {
			return ErrAlreadyCancelled
		}

		m.IsCancelled = true
		m.CancellationReason = strOrNil(reason)
		m.CancelledAt = &now
		m.UpdatedAt = now
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		return tx.Model(&timeSlotModel{}).
			Where("id = ?", m.SlotID).
			Updates(map[string]any{"is_booked": false, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// AdvanceOrganizerCheckIn performs the compare-and-set counter transition
// from `from` to `from+1` and appends the audit row in the same transaction.
// Returns false without error when a concurrent scan won the race.
func (r *BookingRepository) AdvanceOrganizerCheckIn(ctx context.Context, bookingID, userID int64, from int, at time.Time) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		isIn := from == domain.CheckStateRegistered
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND organizer_check_in_count = ?", bookingID, from).
			Updates(map[string]any{
				"organizer_check_in_count": from + 1,
				"organizer_is_in":          isIn,
				"updated_at":               at,
			})
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
		return tx.Create(&organizerCheckInLogModel{
			BookingID: bookingID,
			UserID:    userID,
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

func (r *BookingRepository) ListOrganizerLogs(ctx context.Context, bookingID int64) ([]domain.OrganizerCheckInLog, error) {
	var rows []organizerCheckInLogModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("timestamp DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.OrganizerCheckInLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.OrganizerCheckInLog{
			ID:        m.ID,
			BookingID: m.BookingID,
			UserID:    m.UserID,
			Action:    domain.CheckAction(m.Action),
			Timestamp: m.Timestamp,
		})
	}
	return out, nil
}
