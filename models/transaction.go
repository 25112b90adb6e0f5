// models/transaction.go
package models

import "time"

// Transaction records one collection against a team. Week is the 1-based
// installment index; several transactions may carry the same week, the
// ledger only cares about the highest one recorded.
type Transaction struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TeamID          uint      `json:"team_id" gorm:"not null;index"`
	Team            *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	CollectedAmount float64   `json:"collected_amount" gorm:"not null"`
	Date            time.Time `json:"date" gorm:"not null;index"`
	Week            int       `json:"week" gorm:"not null"`
	ReceiptNumber   string    `json:"receipt_number" gorm:"size:36;uniqueIndex"`
	CreatedByID     uint      `json:"created_by" gorm:"not null"`
	CreatedByUser   *User     `json:"created_by_user,omitempty" gorm:"foreignKey:CreatedByID"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
