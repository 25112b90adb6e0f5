// models/team.go
package models

import "time"

// Weekday names accepted for a team's recurrence day.
const (
	DayMonday    = "Monday"
	DayTuesday   = "Tuesday"
	DayWednesday = "Wednesday"
	DayThursday  = "Thursday"
	DayFriday    = "Friday"
	DaySaturday  = "Saturday"
	DaySunday    = "Sunday"
)

// ValidDays lists every accepted recurrence day name.
var ValidDays = []string{
	DaySaturday, DaySunday, DayMonday, DayTuesday,
	DayWednesday, DayThursday, DayFriday,
}

// IsValidDay reports whether name is one of the seven weekday names.
func IsValidDay(name string) bool {
	for _, d := range ValidDays {
		if d == name {
			return true
		}
	}
	return false
}

// Team is a weekly collection group. TeamCode is unique only combined
// with Day among active teams; retired teams keep their code.
type Team struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	TeamCode        int        `json:"team_code" gorm:"not null;index"`
	Address         string     `json:"address" gorm:"not null"`
	Date            time.Time  `json:"date" gorm:"not null"`
	EndDate         *time.Time `json:"end_date"`
	Day             string     `json:"day" gorm:"not null;size:10;index"`
	TotalAmount     float64    `json:"total_amount" gorm:"not null"`
	CollectedAmount float64    `json:"collected_amount" gorm:"default:0"`
	NextDue         *time.Time `json:"next_due"`
	TotalWeek       int        `json:"total_week" gorm:"not null"`
	BalanceWeek     int        `json:"balance_week" gorm:"default:0"`
	IsActive        bool       `json:"is_active" gorm:"default:true;index"`
	Members         []Member   `json:"members,omitempty" gorm:"foreignKey:TeamID"`
	CreatedByID     uint       `json:"created_by" gorm:"not null"`
	CreatedByUser   *User      `json:"created_by_user,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedByID     *uint      `json:"updated_by"`
	UpdatedByUser   *User      `json:"updated_by_user,omitempty" gorm:"foreignKey:UpdatedByID"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
