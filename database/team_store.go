// database/team_store.go - GORM-backed TeamStore
package database

import (
	"errors"
	"time"

	"vasool/models"

	"gorm.io/gorm"
)

type TeamStore struct {
	db *gorm.DB
}

func NewTeamStore(db *gorm.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) Create(team *models.Team) error {
	return s.db.Create(team).Error
}

func (s *TeamStore) GetByID(id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Members").First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) Update(team *models.Team) error {
	// Save with Select("*") so nil NextDue and EndDate are written back
	// as NULL instead of being skipped as zero values.
	return s.db.Model(team).Select("*").Omit("Members", "CreatedAt").Updates(team).Error
}

func (s *TeamStore) FindActiveByCodeAndDay(code int, day string, excludeID uint) (*models.Team, error) {
	query := s.db.Where("team_code = ? AND day = ? AND is_active = ?", code, day, true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var team models.Team
	err := query.First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) ListActiveByDay(day, codePrefix string, offset, limit int) ([]models.Team, int64, error) {
	query := s.db.Model(&models.Team{}).Where("is_active = ? AND day = ?", true, day)
	if codePrefix != "" {
		query = query.Where("CAST(team_code AS TEXT) LIKE ?", codePrefix+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []models.Team
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Preload("CreatedByUser").
		Preload("UpdatedByUser").
		Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (s *TeamStore) AllActiveByDay(day string) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.Where("is_active = ? AND day = ?", true, day).
		Order("team_code ASC").
		Find(&teams).Error
	return teams, err
}

func (s *TeamStore) AllActiveOverlapping(start, end time.Time) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.Where("is_active = ? AND date <= ?", true, end).
		Where("end_date IS NULL OR end_date >= ?", start).
		Find(&teams).Error
	return teams, err
}
