// database/transaction_store.go - GORM-backed TransactionStore
package database

import (
	"errors"
	"time"

	"vasool/models"

	"gorm.io/gorm"
)

type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Create(tx *models.Transaction) error {
	return s.db.Create(tx).Error
}

func (s *TransactionStore) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionStore) Delete(id uint) error {
	return s.db.Delete(&models.Transaction{}, id).Error
}

func (s *TransactionStore) ListByTeam(teamID uint, offset, limit int) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).Where("team_id = ?", teamID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.Transaction
	err := query.Order("date DESC").
		Offset(offset).Limit(limit).
		Preload("CreatedByUser").
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (s *TransactionStore) MaxWeek(teamID uint) (int, error) {
	var maxWeek *int
	err := s.db.Model(&models.Transaction{}).
		Where("team_id = ?", teamID).
		Select("MAX(week)").
		Scan(&maxWeek).Error
	if err != nil {
		return 0, err
	}
	if maxWeek == nil {
		return 0, nil
	}
	return *maxWeek, nil
}

func (s *TransactionStore) SumCollected(teamID uint) (float64, error) {
	var sum *float64
	err := s.db.Model(&models.Transaction{}).
		Where("team_id = ?", teamID).
		Select("SUM(collected_amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (s *TransactionStore) SumCollectedInRange(teamID uint, start, end time.Time) (float64, error) {
	var sum *float64
	err := s.db.Model(&models.Transaction{}).
		Where("team_id = ? AND date >= ? AND date <= ?", teamID, start, end).
		Select("SUM(collected_amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
