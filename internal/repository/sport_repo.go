package repository

import (
	"context"
	"time"

	"courtside/internal/domain"

	"gorm.io/gorm"
)

type SportRepository struct {
	db *gorm.DB
}

func NewSportRepository(db *gorm.DB) *SportRepository {
	return &SportRepository{db: db}
}

type sportModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;uniqueIndex"`
	PricePerHour float64   `gorm:"column:price_per_hour"`
	Description  *string   `gorm:"column:description"`
	Duration     int       `gorm:"column:duration"`
	MaxPlayers   int       `gorm:"column:max_players"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (sportModel) TableName() string { return "sports" }

func toDomainSport(m sportModel) *domain.Sport {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Sport{
		ID:           m.ID,
		Name:         m.Name,
		PricePerHour: m.PricePerHour,
		Description:  desc,
		Duration:     m.Duration,
		MaxPlayers:   m.MaxPlayers,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toSportModel(s *domain.Sport) sportModel {
	var desc *string
	if s.Description != "" {
		v := s.Description
		desc = &v
	}

	return sportModel{
		ID:           s.ID,
		Name:         s.Name,
		PricePerHour: s.PricePerHour,
		Description:  desc,
		Duration:     s.Duration,
		MaxPlayers:   s.MaxPlayers,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (r *SportRepository) Create(ctx context.Context, s *domain.Sport) error {
	m := toSportModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSport(m)
	return nil
}

func (r *SportRepository) Update(ctx context.Context, s *domain.Sport) error {
	m := toSportModel(s)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSport(m)
	return nil
}

func (r *SportRepository) GetByID(ctx context.Context, id int64) (*domain.Sport, error) {
	var m sportModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSport(m), nil
}

func (r *SportRepository) List(ctx context.Context, activeOnly bool) ([]domain.Sport, error) {
	q := r.db.WithContext(ctx).Model(&sportModel{}).Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []sportModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Sport, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainSport(m))
	}
	return out, nil
}
