// models/member.go
package models

import "time"

// Member belongs to exactly one team. The aadhaar number is unique only
// among members of currently-active teams; a retired team's member can
// re-register elsewhere.
type Member struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TeamID       uint      `json:"team_id" gorm:"not null;index"`
	Team         *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Name         string    `json:"name" gorm:"not null;size:100"`
	Caretaker    string    `json:"caretaker" gorm:"not null;size:100"`
	AadharNumber string    `json:"aadharnumber" gorm:"not null;size:12;index"`
	Photo        *string   `json:"photo"`
	CreatedByID  uint      `json:"created_by" gorm:"not null"`
	UpdatedByID  *uint     `json:"updated_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}
