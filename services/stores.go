// services/stores.go - Persistence collaborator interfaces
//
// Services depend on these instead of *gorm.DB directly so the ledger
// and report logic can be unit tested against in-memory fakes. The GORM
// implementations live in the database package.
package services

import (
	"time"

	"vasool/models"
)

// Clock supplies the current time for date defaults.
type Clock func() time.Time

// TeamStore persists teams. Lookup methods return (nil, nil) when no
// record matches; a non-nil error always means a store failure.
type TeamStore interface {
	Create(team *models.Team) error
	GetByID(id uint) (*models.Team, error)
	Update(team *models.Team) error

	// FindActiveByCodeAndDay returns an active team with the given code
	// and day, skipping excludeID (0 to skip nothing).
	FindActiveByCodeAndDay(code int, day string, excludeID uint) (*models.Team, error)

	// ListActiveByDay pages through active teams collecting on day,
	// newest first, optionally filtered by a team-code prefix.
	ListActiveByDay(day, codePrefix string, offset, limit int) ([]models.Team, int64, error)

	// AllActiveByDay returns every active team collecting on day.
	AllActiveByDay(day string) ([]models.Team, error)

	// AllActiveOverlapping returns active teams whose lifetime overlaps
	// [start, end]: started on or before end and, when closed, ended on
	// or after start.
	AllActiveOverlapping(start, end time.Time) ([]models.Team, error)
}

// MemberStore persists team members.
type MemberStore interface {
	Create(member *models.Member) error
	GetByID(id uint) (*models.Member, error)
	Update(member *models.Member) error
	Delete(id uint) error

	// FindByAadhar returns any member holding the aadhaar number,
	// regardless of team state.
	FindByAadhar(aadhar string) (*models.Member, error)

	// ListByTeam pages through a team's members, newest first,
	// optionally filtered by a name substring.
	ListByTeam(teamID uint, nameSearch string, offset, limit int) ([]models.Member, int64, error)
}

// TransactionStore persists collection transactions.
type TransactionStore interface {
	Create(tx *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	Delete(id uint) error

	// ListByTeam pages through a team's transactions, most recent date
	// first.
	ListByTeam(teamID uint, offset, limit int) ([]models.Transaction, int64, error)

	// MaxWeek returns the highest week recorded for the team, 0 when
	// the team has no transactions.
	MaxWeek(teamID uint) (int, error)

	// SumCollected totals every transaction amount for the team.
	SumCollected(teamID uint) (float64, error)

	// SumCollectedInRange totals the team's transaction amounts with
	// dates inside [start, end].
	SumCollectedInRange(teamID uint, start, end time.Time) (float64, error)
}

// UserStore persists user accounts.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error

	// List pages through users, newest first, optionally filtered by a
	// username substring.
	List(usernameSearch string, offset, limit int) ([]models.User, int64, error)
}
