package services

import (
	"testing"
	"time"

	"vasool/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTeamService() (*TeamService, *fakeTeamStore, *fakeTransactionStore) {
	teams := newFakeTeamStore()
	members := newFakeMemberStore()
	transactions := newFakeTransactionStore()
	now := func() time.Time { return date(2024, 1, 1) }
	return NewTeamService(teams, members, transactions, now), teams, transactions
}

// mondayTeam creates the reference team from the ledger rules: started
// Monday 2024-01-01, 700 over 7 weekly installments of 100.
func mondayTeam(t *testing.T, svc *TeamService) *models.Team {
	t.Helper()
	team, err := svc.CreateTeam(TeamInput{
		TeamCode:    101,
		Address:     "Ward 4, Main Bazaar",
		Date:        date(2024, 1, 1),
		Day:         models.DayMonday,
		TotalAmount: 700,
		TotalWeek:   7,
	}, 1)
	require.NoError(t, err)
	return team
}

func TestCreateTeam(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	require.NotNil(t, team.NextDue)
	assert.Equal(t, date(2024, 1, 8), *team.NextDue, "first due is a full week out, never the start day itself")
	assert.Equal(t, 7, team.BalanceWeek)
	assert.Equal(t, float64(0), team.CollectedAmount)
	assert.True(t, team.IsActive)
}

func TestCreateTeamDuplicateCodeAndDay(t *testing.T) {
	svc, _, _ := newTestTeamService()
	mondayTeam(t, svc)

	_, err := svc.CreateTeam(TeamInput{
		TeamCode:    101,
		Address:     "Elsewhere",
		Date:        date(2024, 1, 1),
		Day:         models.DayMonday,
		TotalAmount: 1400,
		TotalWeek:   14,
	}, 1)
	assert.ErrorIs(t, err, ErrTeamExists)

	// Same code on a different day is allowed.
	other, err := svc.CreateTeam(TeamInput{
		TeamCode:    101,
		Address:     "Elsewhere",
		Date:        date(2024, 1, 2),
		Day:         models.DayTuesday,
		TotalAmount: 1400,
		TotalWeek:   14,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, 101, other.TeamCode)
}

func TestCreateTeamCodeFreedByRetirement(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	require.NoError(t, svc.DeactivateTeam(team.ID))

	_, err := svc.CreateTeam(TeamInput{
		TeamCode:    101,
		Address:     "New group, old code",
		Date:        date(2024, 6, 3),
		Day:         models.DayMonday,
		TotalAmount: 700,
		TotalWeek:   7,
	}, 1)
	assert.NoError(t, err, "a retired team's code+day combination is reusable")
}

func TestAddTransactionAdvancesLedger(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	res, err := svc.AddTransaction(team.ID, 100, 1, date(2024, 1, 8), 1)
	require.NoError(t, err)

	assert.Equal(t, float64(100), res.CollectedAmount)
	assert.Equal(t, 6, res.BalanceWeek)
	require.NotNil(t, res.NextDue)
	assert.Equal(t, date(2024, 1, 15), *res.NextDue)
	require.NotNil(t, res.Transaction)
	assert.NotEmpty(t, res.Transaction.ReceiptNumber)
}

func TestAddTransactionsToCompletion(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	for week := 1; week <= 7; week++ {
		res, err := svc.AddTransaction(team.ID, 100, week, date(2024, 1, 1+7*week), 1)
		require.NoError(t, err)
		if week < 7 {
			require.NotNil(t, res.NextDue, "week %d", week)
		} else {
			assert.Nil(t, res.NextDue, "fully collected team has no next due")
			assert.Equal(t, float64(700), res.CollectedAmount)
			assert.Equal(t, 0, res.BalanceWeek)
		}
	}
}

func TestAddTransactionOverCollection(t *testing.T) {
	svc, teams, transactions := newTestTeamService()
	team := mondayTeam(t, svc)

	_, err := svc.AddTransaction(team.ID, 700, 7, date(2024, 2, 19), 1)
	require.NoError(t, err)

	_, err = svc.AddTransaction(team.ID, 50, 8, date(2024, 2, 26), 1)
	assert.ErrorIs(t, err, ErrOverCollection)

	// No state change on rejection.
	stored, err := teams.GetByID(team.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(700), stored.CollectedAmount)
	maxWeek, err := transactions.MaxWeek(team.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, maxWeek)
}

func TestAddTransactionScheduleExhausted(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	// One payment against the final week exhausts the schedule even
	// though the amount is nowhere near the target.
	res, err := svc.AddTransaction(team.ID, 100, 7, date(2024, 2, 19), 1)
	require.NoError(t, err)
	assert.Nil(t, res.NextDue)
	assert.Equal(t, 0, res.BalanceWeek)
}

func TestAddTransactionInactiveTeam(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)
	require.NoError(t, svc.DeactivateTeam(team.ID))

	_, err := svc.AddTransaction(team.ID, 100, 1, date(2024, 1, 8), 1)
	assert.ErrorIs(t, err, ErrTeamInactive)
}

func TestAddTransactionUnknownTeam(t *testing.T) {
	svc, _, _ := newTestTeamService()
	_, err := svc.AddTransaction(99, 100, 1, date(2024, 1, 8), 1)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRemoveTransactionRollsBack(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	first, err := svc.AddTransaction(team.ID, 100, 1, date(2024, 1, 8), 1)
	require.NoError(t, err)
	second, err := svc.AddTransaction(team.ID, 100, 2, date(2024, 1, 15), 1)
	require.NoError(t, err)
	require.NotNil(t, second.NextDue)
	assert.Equal(t, date(2024, 1, 22), *second.NextDue)

	res, err := svc.RemoveTransaction(second.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), res.CollectedAmount)
	assert.Equal(t, 6, res.BalanceWeek)
	require.NotNil(t, res.NextDue)
	assert.Equal(t, date(2024, 1, 15), *res.NextDue, "due date falls back to the week after the highest remaining week")

	// Removing the last one resets to the first-installment rule.
	res, err = svc.RemoveTransaction(first.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), res.CollectedAmount)
	assert.Equal(t, 7, res.BalanceWeek)
	require.NotNil(t, res.NextDue)
	assert.Equal(t, date(2024, 1, 8), *res.NextDue)
}

func TestRemoveThenReAddIsIdempotent(t *testing.T) {
	svc, teams, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	_, err := svc.AddTransaction(team.ID, 100, 1, date(2024, 1, 8), 1)
	require.NoError(t, err)
	added, err := svc.AddTransaction(team.ID, 100, 2, date(2024, 1, 15), 1)
	require.NoError(t, err)

	before, err := teams.GetByID(team.ID)
	require.NoError(t, err)

	_, err = svc.RemoveTransaction(added.Transaction.ID)
	require.NoError(t, err)
	_, err = svc.AddTransaction(team.ID, 100, 2, date(2024, 1, 15), 1)
	require.NoError(t, err)

	after, err := teams.GetByID(team.ID)
	require.NoError(t, err)
	assert.Equal(t, before.CollectedAmount, after.CollectedAmount)
	assert.Equal(t, before.BalanceWeek, after.BalanceWeek)
	require.NotNil(t, after.NextDue)
	assert.Equal(t, *before.NextDue, *after.NextDue)
}

func TestRemoveTransactionUnknown(t *testing.T) {
	svc, _, _ := newTestTeamService()
	_, err := svc.RemoveTransaction(42)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestDuplicateWeekKeepsBalance(t *testing.T) {
	// Two payments against the same week move the collected amount but
	// not the completed-week watermark.
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	_, err := svc.AddTransaction(team.ID, 60, 1, date(2024, 1, 8), 1)
	require.NoError(t, err)
	res, err := svc.AddTransaction(team.ID, 40, 1, date(2024, 1, 9), 1)
	require.NoError(t, err)

	assert.Equal(t, float64(100), res.CollectedAmount)
	assert.Equal(t, 6, res.BalanceWeek)
	require.NotNil(t, res.NextDue)
	assert.Equal(t, date(2024, 1, 15), *res.NextDue)
}

func TestEditTeamFloors(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	_, err := svc.AddTransaction(team.ID, 100, 1, date(2024, 1, 8), 1)
	require.NoError(t, err)
	_, err = svc.AddTransaction(team.ID, 100, 2, date(2024, 1, 15), 1)
	require.NoError(t, err)

	lowAmount := float64(150)
	_, err = svc.EditTeam(team.ID, TeamUpdate{TotalAmount: &lowAmount}, 1)
	assert.ErrorIs(t, err, ErrAmountBelowCollected)

	lowWeeks := 1
	_, err = svc.EditTeam(team.ID, TeamUpdate{TotalWeek: &lowWeeks}, 1)
	assert.ErrorIs(t, err, ErrWeekBelowRecorded)
}

func TestEditTeamRecomputesDue(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	_, err := svc.AddTransaction(team.ID, 100, 1, date(2024, 1, 8), 1)
	require.NoError(t, err)

	// Stretching the schedule keeps the due date at week maxWeek+1.
	weeks := 10
	amount := float64(1000)
	updated, err := svc.EditTeam(team.ID, TeamUpdate{TotalWeek: &weeks, TotalAmount: &amount}, 2)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.BalanceWeek)
	require.NotNil(t, updated.NextDue)
	assert.Equal(t, date(2024, 1, 15), *updated.NextDue)
	require.NotNil(t, updated.UpdatedByID)
	assert.Equal(t, uint(2), *updated.UpdatedByID)

	// Shrinking the schedule to the recorded watermark closes it out.
	weeks = 1
	amount = float64(100)
	updated, err = svc.EditTeam(team.ID, TeamUpdate{TotalWeek: &weeks, TotalAmount: &amount}, 2)
	require.NoError(t, err)
	assert.Nil(t, updated.NextDue)
	assert.Equal(t, 0, updated.BalanceWeek)
}

func TestEditTeamDuplicateCodeAndDay(t *testing.T) {
	svc, _, _ := newTestTeamService()
	mondayTeam(t, svc)
	other, err := svc.CreateTeam(TeamInput{
		TeamCode:    202,
		Address:     "Other side",
		Date:        date(2024, 1, 1),
		Day:         models.DayMonday,
		TotalAmount: 700,
		TotalWeek:   7,
	}, 1)
	require.NoError(t, err)

	code := 101
	dayName := models.DayMonday
	_, err = svc.EditTeam(other.ID, TeamUpdate{TeamCode: &code, Day: &dayName}, 1)
	assert.ErrorIs(t, err, ErrTeamExists)
}

func TestEditTeamNotFound(t *testing.T) {
	svc, _, _ := newTestTeamService()
	_, err := svc.EditTeam(7, TeamUpdate{}, 1)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestMemberAadharUniqueness(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	_, err := svc.AddMember(MemberInput{
		TeamID:       team.ID,
		Name:         "Lakshmi",
		Caretaker:    "Ravi",
		AadharNumber: "123456789012",
	}, 1)
	require.NoError(t, err)

	// Same aadhaar while the first team is active: rejected.
	other, err := svc.CreateTeam(TeamInput{
		TeamCode:    202,
		Address:     "Other side",
		Date:        date(2024, 1, 2),
		Day:         models.DayTuesday,
		TotalAmount: 700,
		TotalWeek:   7,
	}, 1)
	require.NoError(t, err)

	_, err = svc.AddMember(MemberInput{
		TeamID:       other.ID,
		Name:         "Lakshmi",
		Caretaker:    "Ravi",
		AadharNumber: "123456789012",
	}, 1)
	assert.ErrorIs(t, err, ErrAadharTaken)

	// Retiring the first team frees the aadhaar for reuse.
	require.NoError(t, svc.DeactivateTeam(team.ID))
	_, err = svc.AddMember(MemberInput{
		TeamID:       other.ID,
		Name:         "Lakshmi",
		Caretaker:    "Ravi",
		AadharNumber: "123456789012",
	}, 1)
	assert.NoError(t, err)
}

func TestAddMemberTeamChecks(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	_, err := svc.AddMember(MemberInput{TeamID: 99, Name: "X", Caretaker: "Y", AadharNumber: "000011112222"}, 1)
	assert.ErrorIs(t, err, ErrTeamNotFound)

	require.NoError(t, svc.DeactivateTeam(team.ID))
	_, err = svc.AddMember(MemberInput{TeamID: team.ID, Name: "X", Caretaker: "Y", AadharNumber: "000011112222"}, 1)
	assert.ErrorIs(t, err, ErrTeamInactive)
}

func TestEditAndDeleteMember(t *testing.T) {
	svc, _, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	member, err := svc.AddMember(MemberInput{
		TeamID:       team.ID,
		Name:         "Lakshmi",
		Caretaker:    "Ravi",
		AadharNumber: "123456789012",
	}, 1)
	require.NoError(t, err)

	name := "Lakshmi Devi"
	edited, err := svc.EditMember(member.ID, MemberUpdate{Name: &name}, 2)
	require.NoError(t, err)
	assert.Equal(t, "Lakshmi Devi", edited.Name)
	assert.Equal(t, "123456789012", edited.AadharNumber)

	require.NoError(t, svc.DeleteMember(member.ID))
	assert.ErrorIs(t, svc.DeleteMember(member.ID), ErrMemberNotFound)

	_, err = svc.EditMember(member.ID, MemberUpdate{}, 2)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCollectedNeverExceedsTotal(t *testing.T) {
	svc, teams, _ := newTestTeamService()
	team := mondayTeam(t, svc)

	amounts := []float64{250, 250, 150, 50}
	for i, a := range amounts {
		_, err := svc.AddTransaction(team.ID, a, i+1, date(2024, 1, 8+7*i), 1)
		require.NoError(t, err)
		stored, err := teams.GetByID(team.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, stored.CollectedAmount, stored.TotalAmount)
		assert.GreaterOrEqual(t, stored.CollectedAmount, float64(0))
	}
}
