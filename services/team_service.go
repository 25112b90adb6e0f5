// services/team_service.go - Team ledger business logic
package services

import (
	"time"

	"vasool/models"
	"vasool/schedule"

	"github.com/google/uuid"
)

type TeamService struct {
	teams        TeamStore
	members      MemberStore
	transactions TransactionStore
	now          Clock
}

func NewTeamService(teams TeamStore, members MemberStore, transactions TransactionStore, now Clock) *TeamService {
	if now == nil {
		now = time.Now
	}
	return &TeamService{
		teams:        teams,
		members:      members,
		transactions: transactions,
		now:          now,
	}
}

// TeamInput carries the fields for creating a team.
type TeamInput struct {
	TeamCode    int
	Address     string
	Date        time.Time
	Day         string
	TotalAmount float64
	TotalWeek   int
}

// TeamUpdate carries the optional fields for editing a team. Nil fields
// are left untouched.
type TeamUpdate struct {
	TeamCode    *int
	Address     *string
	Date        *time.Time
	Day         *string
	TotalAmount *float64
	TotalWeek   *int
}

// TransactionResult reports the ledger state after a transaction
// mutation.
type TransactionResult struct {
	Transaction     *models.Transaction `json:"transaction,omitempty"`
	NextDue         *time.Time          `json:"next_due"`
	CollectedAmount float64             `json:"collected_amount"`
	BalanceWeek     int                 `json:"balance_week"`
}

// ================== TEAM OPERATIONS ==================

// CreateTeam registers a new collection team. The first due date is the
// next occurrence of the team's day strictly after the start date.
func (s *TeamService) CreateTeam(in TeamInput, createdBy uint) (*models.Team, error) {
	existing, err := s.teams.FindActiveByCodeAndDay(in.TeamCode, in.Day, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTeamExists
	}

	day, err := schedule.ParseDay(in.Day)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	nextDue := schedule.NextOccurrence(date, day)
	team := &models.Team{
		TeamCode:    in.TeamCode,
		Address:     in.Address,
		Date:        date,
		Day:         in.Day,
		TotalAmount: in.TotalAmount,
		TotalWeek:   in.TotalWeek,
		BalanceWeek: in.TotalWeek,
		NextDue:     &nextDue,
		IsActive:    true,
		CreatedByID: createdBy,
	}

	if err := s.teams.Create(team); err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam returns a team by ID.
func (s *TeamService) GetTeam(id uint) (*models.Team, error) {
	team, err := s.teams.GetByID(id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

// ListTeams pages through active teams collecting on day, newest first,
// optionally filtered by a team-code prefix.
func (s *TeamService) ListTeams(day, codePrefix string, page, pageSize int) ([]models.Team, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.teams.ListActiveByDay(day, codePrefix, offset, limit)
}

// EditTeam applies a partial update and recomputes the ledger fields.
// The floors are checked against amounts re-derived from the raw
// transaction records, not the cached ledger state.
func (s *TeamService) EditTeam(id uint, upd TeamUpdate, updatedBy uint) (*models.Team, error) {
	team, err := s.teams.GetByID(id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	if upd.TeamCode != nil && upd.Day != nil {
		existing, err := s.teams.FindActiveByCodeAndDay(*upd.TeamCode, *upd.Day, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrTeamExists
		}
	}

	collected, err := s.transactions.SumCollected(id)
	if err != nil {
		return nil, err
	}
	maxWeek, err := s.transactions.MaxWeek(id)
	if err != nil {
		return nil, err
	}

	if upd.TotalAmount != nil && *upd.TotalAmount < collected {
		return nil, ErrAmountBelowCollected
	}
	if upd.TotalWeek != nil && *upd.TotalWeek < maxWeek {
		return nil, ErrWeekBelowRecorded
	}

	if upd.TeamCode != nil {
		team.TeamCode = *upd.TeamCode
	}
	if upd.Address != nil {
		team.Address = *upd.Address
	}
	if upd.Date != nil {
		team.Date = *upd.Date
	}
	if upd.Day != nil {
		team.Day = *upd.Day
	}
	if upd.TotalAmount != nil {
		team.TotalAmount = *upd.TotalAmount
	}
	if upd.TotalWeek != nil {
		team.TotalWeek = *upd.TotalWeek
	}
	team.UpdatedByID = &updatedBy

	day, err := schedule.ParseDay(team.Day)
	if err != nil {
		return nil, err
	}

	weeksLeft := team.TotalWeek - maxWeek
	balanceLeft := team.TotalAmount - collected
	if weeksLeft <= 0 || balanceLeft <= 0 {
		team.NextDue = nil
	} else {
		due := schedule.NthOccurrence(team.Date, day, maxWeek+1)
		team.NextDue = &due
	}
	team.BalanceWeek = balanceWeek(team.TotalWeek, maxWeek)

	if err := s.teams.Update(team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeactivateTeam retires a team. Teams are never hard-deleted; retired
// teams drop out of day listings and due-date computation but stay in
// historical reports.
func (s *TeamService) DeactivateTeam(id uint) error {
	team, err := s.teams.GetByID(id)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	team.IsActive = false
	return s.teams.Update(team)
}

// ================== MEMBER OPERATIONS ==================

// MemberInput carries the fields for adding a member.
type MemberInput struct {
	TeamID       uint
	Name         string
	Caretaker    string
	AadharNumber string
	Photo        *string
}

// MemberUpdate carries the optional fields for editing a member.
type MemberUpdate struct {
	Name         *string
	Caretaker    *string
	AadharNumber *string
	Photo        *string
}

// AddMember attaches a member to an active team. The aadhaar number must
// not belong to a member of any other active team.
func (s *TeamService) AddMember(in MemberInput, createdBy uint) (*models.Member, error) {
	team, err := s.teams.GetByID(in.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if !team.IsActive {
		return nil, ErrTeamInactive
	}

	taken, err := s.aadharTaken(in.AadharNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAadharTaken
	}

	member := &models.Member{
		TeamID:       in.TeamID,
		Name:         in.Name,
		Caretaker:    in.Caretaker,
		AadharNumber: in.AadharNumber,
		Photo:        in.Photo,
		CreatedByID:  createdBy,
	}
	if err := s.members.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// EditMember applies a partial update to a member.
func (s *TeamService) EditMember(id uint, upd MemberUpdate, updatedBy uint) (*models.Member, error) {
	member, err := s.members.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	if upd.AadharNumber != nil && *upd.AadharNumber != member.AadharNumber {
		taken, err := s.aadharTaken(*upd.AadharNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrAadharTaken
		}
		member.AadharNumber = *upd.AadharNumber
	}
	if upd.Name != nil {
		member.Name = *upd.Name
	}
	if upd.Caretaker != nil {
		member.Caretaker = *upd.Caretaker
	}
	if upd.Photo != nil {
		member.Photo = upd.Photo
	}
	member.UpdatedByID = &updatedBy

	if err := s.members.Update(member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember removes a member record.
func (s *TeamService) DeleteMember(id uint) error {
	member, err := s.members.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	return s.members.Delete(id)
}

// ListMembers pages through a team's members.
func (s *TeamService) ListMembers(teamID uint, nameSearch string, page, pageSize int) ([]models.Member, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.members.ListByTeam(teamID, nameSearch, offset, limit)
}

// aadharTaken reports whether the aadhaar number is already held by a
// member of an active team. Members of retired teams do not block reuse.
func (s *TeamService) aadharTaken(aadhar string) (bool, error) {
	member, err := s.members.FindByAadhar(aadhar)
	if err != nil {
		return false, err
	}
	if member == nil {
		return false, nil
	}
	team, err := s.teams.GetByID(member.TeamID)
	if err != nil {
		return false, err
	}
	return team != nil && team.IsActive, nil
}

// ================== TRANSACTION OPERATIONS ==================

// AddTransaction records a collection against a team and advances the
// ledger: collected amount, balance weeks and next due date.
func (s *TeamService) AddTransaction(teamID uint, amount float64, week int, date time.Time, createdBy uint) (*TransactionResult, error) {
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if !team.IsActive {
		return nil, ErrTeamInactive
	}

	totalCollected := team.CollectedAmount + amount
	if totalCollected > team.TotalAmount {
		return nil, ErrOverCollection
	}

	if date.IsZero() {
		date = s.now()
	}

	tx := &models.Transaction{
		TeamID:          teamID,
		CollectedAmount: amount,
		Date:            date,
		Week:            week,
		ReceiptNumber:   uuid.New().String(),
		CreatedByID:     createdBy,
	}
	if err := s.transactions.Create(tx); err != nil {
		return nil, err
	}

	team.CollectedAmount = totalCollected
	if err := s.rollForward(team); err != nil {
		return nil, err
	}

	return &TransactionResult{
		Transaction:     tx,
		NextDue:         team.NextDue,
		CollectedAmount: team.CollectedAmount,
		BalanceWeek:     team.BalanceWeek,
	}, nil
}

// RemoveTransaction deletes a transaction and rolls the team's ledger
// back. When the last transaction goes, the next due date resets to the
// first-installment rule.
func (s *TeamService) RemoveTransaction(id uint) (*TransactionResult, error) {
	tx, err := s.transactions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}

	team, err := s.teams.GetByID(tx.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	team.CollectedAmount = team.CollectedAmount - tx.CollectedAmount
	if team.CollectedAmount < 0 {
		team.CollectedAmount = 0
	}
	if err := s.transactions.Delete(id); err != nil {
		return nil, err
	}

	if err := s.rollForward(team); err != nil {
		return nil, err
	}

	return &TransactionResult{
		NextDue:         team.NextDue,
		CollectedAmount: team.CollectedAmount,
		BalanceWeek:     team.BalanceWeek,
	}, nil
}

// ListTransactions pages through a team's transactions, most recent
// first.
func (s *TeamService) ListTransactions(teamID uint, page, pageSize int) ([]models.Transaction, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.transactions.ListByTeam(teamID, offset, limit)
}

// rollForward recomputes NextDue and BalanceWeek from the team's
// recorded transactions and persists the team. Completion means either
// the full amount is in or the highest recorded week has reached the
// schedule length.
func (s *TeamService) rollForward(team *models.Team) error {
	maxWeek, err := s.transactions.MaxWeek(team.ID)
	if err != nil {
		return err
	}

	day, err := schedule.ParseDay(team.Day)
	if err != nil {
		return err
	}

	switch {
	case team.CollectedAmount >= team.TotalAmount || maxWeek >= team.TotalWeek:
		team.NextDue = nil
	case maxWeek > 0:
		due := schedule.NthOccurrence(team.Date, day, maxWeek+1)
		team.NextDue = &due
	default:
		due := schedule.NextOccurrence(team.Date, day)
		team.NextDue = &due
	}
	team.BalanceWeek = balanceWeek(team.TotalWeek, maxWeek)

	return s.teams.Update(team)
}

// balanceWeek is the count of installment weeks not yet accounted for.
// It tracks the highest recorded week, not the number of transactions,
// so payments logged twice against one week leave it untouched.
func balanceWeek(totalWeek, maxWeek int) int {
	if balance := totalWeek - maxWeek; balance > 0 {
		return balance
	}
	return 0
}

func pageBounds(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return (page - 1) * pageSize, pageSize
}
