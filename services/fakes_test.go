package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"vasool/models"
)

// In-memory store fakes. They implement the collaborator interfaces so
// ledger and report behavior can be exercised without a database.

type fakeTeamStore struct {
	nextID uint
	teams  map[uint]*models.Team
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: make(map[uint]*models.Team)}
}

func (f *fakeTeamStore) Create(team *models.Team) error {
	f.nextID++
	team.ID = f.nextID
	team.CreatedAt = time.Now()
	cp := *team
	f.teams[team.ID] = &cp
	return nil
}

func (f *fakeTeamStore) GetByID(id uint) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *team
	return &cp, nil
}

func (f *fakeTeamStore) Update(team *models.Team) error {
	cp := *team
	f.teams[team.ID] = &cp
	return nil
}

func (f *fakeTeamStore) FindActiveByCodeAndDay(code int, day string, excludeID uint) (*models.Team, error) {
	for _, team := range f.teams {
		if team.ID != excludeID && team.IsActive && team.TeamCode == code && team.Day == day {
			cp := *team
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamStore) ListActiveByDay(day, codePrefix string, offset, limit int) ([]models.Team, int64, error) {
	var matched []models.Team
	for _, team := range f.teams {
		if !team.IsActive || team.Day != day {
			continue
		}
		if codePrefix != "" && !strings.HasPrefix(strconv.Itoa(team.TeamCode), codePrefix) {
			continue
		}
		matched = append(matched, *team)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	endIdx := offset + limit
	if endIdx > len(matched) {
		endIdx = len(matched)
	}
	return matched[offset:endIdx], total, nil
}

func (f *fakeTeamStore) AllActiveByDay(day string) ([]models.Team, error) {
	var matched []models.Team
	for _, team := range f.teams {
		if team.IsActive && team.Day == day {
			matched = append(matched, *team)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeTeamStore) AllActiveOverlapping(start, end time.Time) ([]models.Team, error) {
	var matched []models.Team
	for _, team := range f.teams {
		if !team.IsActive || team.Date.After(end) {
			continue
		}
		if team.EndDate != nil && team.EndDate.Before(start) {
			continue
		}
		matched = append(matched, *team)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

type fakeMemberStore struct {
	nextID  uint
	members map[uint]*models.Member
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: make(map[uint]*models.Member)}
}

func (f *fakeMemberStore) Create(member *models.Member) error {
	f.nextID++
	member.ID = f.nextID
	cp := *member
	f.members[member.ID] = &cp
	return nil
}

func (f *fakeMemberStore) GetByID(id uint) (*models.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	cp := *member
	return &cp, nil
}

func (f *fakeMemberStore) Update(member *models.Member) error {
	cp := *member
	f.members[member.ID] = &cp
	return nil
}

func (f *fakeMemberStore) Delete(id uint) error {
	delete(f.members, id)
	return nil
}

func (f *fakeMemberStore) FindByAadhar(aadhar string) (*models.Member, error) {
	for _, member := range f.members {
		if member.AadharNumber == aadhar {
			cp := *member
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberStore) ListByTeam(teamID uint, nameSearch string, offset, limit int) ([]models.Member, int64, error) {
	var matched []models.Member
	for _, member := range f.members {
		if member.TeamID != teamID {
			continue
		}
		if nameSearch != "" && !strings.Contains(strings.ToLower(member.Name), strings.ToLower(nameSearch)) {
			continue
		}
		matched = append(matched, *member)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	endIdx := offset + limit
	if endIdx > len(matched) {
		endIdx = len(matched)
	}
	return matched[offset:endIdx], total, nil
}

type fakeTransactionStore struct {
	nextID       uint
	transactions map[uint]*models.Transaction
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{transactions: make(map[uint]*models.Transaction)}
}

func (f *fakeTransactionStore) Create(tx *models.Transaction) error {
	f.nextID++
	tx.ID = f.nextID
	cp := *tx
	f.transactions[tx.ID] = &cp
	return nil
}

func (f *fakeTransactionStore) GetByID(id uint) (*models.Transaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (f *fakeTransactionStore) Delete(id uint) error {
	delete(f.transactions, id)
	return nil
}

func (f *fakeTransactionStore) ListByTeam(teamID uint, offset, limit int) ([]models.Transaction, int64, error) {
	var matched []models.Transaction
	for _, tx := range f.transactions {
		if tx.TeamID == teamID {
			matched = append(matched, *tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	endIdx := offset + limit
	if endIdx > len(matched) {
		endIdx = len(matched)
	}
	return matched[offset:endIdx], total, nil
}

func (f *fakeTransactionStore) MaxWeek(teamID uint) (int, error) {
	maxWeek := 0
	for _, tx := range f.transactions {
		if tx.TeamID == teamID && tx.Week > maxWeek {
			maxWeek = tx.Week
		}
	}
	return maxWeek, nil
}

func (f *fakeTransactionStore) SumCollected(teamID uint) (float64, error) {
	var sum float64
	for _, tx := range f.transactions {
		if tx.TeamID == teamID {
			sum += tx.CollectedAmount
		}
	}
	return sum, nil
}

func (f *fakeTransactionStore) SumCollectedInRange(teamID uint, start, end time.Time) (float64, error) {
	var sum float64
	for _, tx := range f.transactions {
		if tx.TeamID == teamID && !tx.Date.Before(start) && !tx.Date.After(end) {
			sum += tx.CollectedAmount
		}
	}
	return sum, nil
}

// date is shorthand for a UTC calendar date in tests.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
