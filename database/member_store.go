// database/member_store.go - GORM-backed MemberStore
package database

import (
	"errors"

	"vasool/models"

	"gorm.io/gorm"
)

type MemberStore struct {
	db *gorm.DB
}

func NewMemberStore(db *gorm.DB) *MemberStore {
	return &MemberStore{db: db}
}

func (s *MemberStore) Create(member *models.Member) error {
	return s.db.Create(member).Error
}

func (s *MemberStore) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	err := s.db.First(&member, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberStore) Update(member *models.Member) error {
	return s.db.Model(member).Select("*").Omit("CreatedAt").Updates(member).Error
}

func (s *MemberStore) Delete(id uint) error {
	return s.db.Delete(&models.Member{}, id).Error
}

func (s *MemberStore) FindByAadhar(aadhar string) (*models.Member, error) {
	var member models.Member
	err := s.db.Where("aadhar_number = ?", aadhar).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberStore) ListByTeam(teamID uint, nameSearch string, offset, limit int) ([]models.Member, int64, error) {
	query := s.db.Model(&models.Member{}).Where("team_id = ?", teamID)
	if nameSearch != "" {
		query = query.Where("name ILIKE ?", "%"+nameSearch+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}
