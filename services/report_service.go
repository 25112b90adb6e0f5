// services/report_service.go - Collection reporting
//
// Both reports re-derive their figures from the raw team and transaction
// records instead of the ledger's cached fields, so a report can never
// drift from the schedule it claims to describe.
package services

import (
	"time"

	"vasool/models"
	"vasool/schedule"
)

type ReportService struct {
	teams        TeamStore
	transactions TransactionStore
}

func NewReportService(teams TeamStore, transactions TransactionStore) *ReportService {
	return &ReportService{teams: teams, transactions: transactions}
}

// DayBucket aggregates every team collecting on one weekday.
type DayBucket struct {
	Day                 string  `json:"day"`
	TotalAmount         float64 `json:"total_amount"`
	CollectedAmount     float64 `json:"collected_amount"`
	ToBeCollectedAmount float64 `json:"to_be_collected_amount"`
	RemainingAmount     float64 `json:"remaining_amount"`
}

// ReportSummary is the grand total across the returned buckets.
type ReportSummary struct {
	TotalAmount         float64 `json:"total_amount"`
	CollectedAmount     float64 `json:"collected_amount"`
	ToBeCollectedAmount float64 `json:"to_be_collected_amount"`
	RemainingAmount     float64 `json:"remaining_amount"`
}

// RangeReport is the date-range day-of-week report.
type RangeReport struct {
	Report  []DayBucket   `json:"report"`
	Summary ReportSummary `json:"summary"`
}

// TeamDayEntry is one team's line in the single-weekday listing.
type TeamDayEntry struct {
	ID              uint       `json:"id"`
	TeamCode        int        `json:"team_code"`
	Address         string     `json:"address"`
	TotalAmount     float64    `json:"total_amount"`
	CollectedAmount float64    `json:"collected_amount"`
	RemainingAmount float64    `json:"remaining_amount"`
	NextDue         *time.Time `json:"next_due"`
}

// DaySummary totals the single-weekday listing.
type DaySummary struct {
	TotalAmount     float64 `json:"total_amount"`
	CollectedAmount float64 `json:"collected_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// DayReportResult is the single-weekday team listing plus its summary.
type DayReportResult struct {
	Teams   []TeamDayEntry `json:"teams"`
	Summary DaySummary     `json:"summary"`
}

var mondayFirst = []string{
	models.DayMonday, models.DayTuesday, models.DayWednesday,
	models.DayThursday, models.DayFriday, models.DaySaturday,
	models.DaySunday,
}

// RangeReport aggregates expected vs collected amounts per weekday over
// [start, end]. end is widened to the end of its calendar day. A team
// contributes only when at least one of its scheduled installment dates
// falls inside the range; its whole amounts land in the single bucket of
// its recurrence day rather than being split per occurrence.
func (s *ReportService) RangeReport(start, end time.Time) (*RangeReport, error) {
	rangeStart := schedule.Midnight(start)
	rangeEnd := schedule.EndOfDay(end)

	teams, err := s.teams.AllActiveOverlapping(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*DayBucket)
	for i := range teams {
		team := &teams[i]
		dates := schedule.Dates(team.Date, team.TotalWeek)
		if !anyInRange(dates, rangeStart, rangeEnd) {
			continue
		}

		collected, err := s.transactions.SumCollectedInRange(team.ID, rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}

		b, ok := buckets[team.Day]
		if !ok {
			b = &DayBucket{Day: team.Day}
			buckets[team.Day] = b
		}
		b.TotalAmount += team.TotalAmount
		b.CollectedAmount += collected
		b.ToBeCollectedAmount += s.toBeCollected(team, dates, rangeStart, rangeEnd)
	}
	for _, b := range buckets {
		b.RemainingAmount = b.ToBeCollectedAmount - b.CollectedAmount
	}

	report := make([]DayBucket, 0, 7)
	for _, day := range reportDays(rangeStart, rangeEnd) {
		if b, ok := buckets[day]; ok {
			report = append(report, *b)
		} else {
			report = append(report, DayBucket{Day: day})
		}
	}

	var summary ReportSummary
	for _, b := range report {
		summary.TotalAmount += b.TotalAmount
		summary.CollectedAmount += b.CollectedAmount
		summary.ToBeCollectedAmount += b.ToBeCollectedAmount
		summary.RemainingAmount += b.RemainingAmount
	}

	return &RangeReport{Report: report, Summary: summary}, nil
}

// toBeCollected sums one weekly installment for every scheduled date
// that is still unpaid and inside the range. The effective next-unpaid
// date is the stored next due date when present, otherwise a week past
// the start date, snapped forward onto the schedule.
func (s *ReportService) toBeCollected(team *models.Team, dates []time.Time, rangeStart, rangeEnd time.Time) float64 {
	if team.TotalWeek <= 0 {
		return 0
	}

	candidate := team.Date.AddDate(0, 0, 7)
	if team.NextDue != nil {
		candidate = *team.NextDue
	}
	next, ok := schedule.SnapToNext(dates, candidate)
	if !ok {
		return 0
	}

	installment := team.TotalAmount / float64(team.TotalWeek)
	var due float64
	for _, d := range dates {
		if d.Before(next) {
			continue
		}
		if inRange(d, rangeStart, rangeEnd) {
			due += installment
		}
	}
	return due
}

// reportDays decides which weekday rows the report carries and in what
// order. Ranges spanning at most seven calendar days list only the days
// that literally occur, chronologically; longer ranges always list all
// seven, Monday first.
func reportDays(rangeStart, rangeEnd time.Time) []string {
	if schedule.DaysBetween(rangeStart, rangeEnd) > 7 {
		return mondayFirst
	}
	days := make([]string, 0, 7)
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, schedule.DayName(d.Weekday()))
	}
	return days
}

// DayReport lists every active team collecting on the given weekday,
// with amounts re-derived from each team's full transaction history.
func (s *ReportService) DayReport(day string) (*DayReportResult, error) {
	teams, err := s.teams.AllActiveByDay(day)
	if err != nil {
		return nil, err
	}

	entries := make([]TeamDayEntry, 0, len(teams))
	var summary DaySummary
	for i := range teams {
		team := &teams[i]
		collected, err := s.transactions.SumCollected(team.ID)
		if err != nil {
			return nil, err
		}
		entry := TeamDayEntry{
			ID:              team.ID,
			TeamCode:        team.TeamCode,
			Address:         team.Address,
			TotalAmount:     team.TotalAmount,
			CollectedAmount: collected,
			RemainingAmount: team.TotalAmount - collected,
			NextDue:         team.NextDue,
		}
		entries = append(entries, entry)

		summary.TotalAmount += entry.TotalAmount
		summary.CollectedAmount += entry.CollectedAmount
		summary.RemainingAmount += entry.RemainingAmount
	}

	return &DayReportResult{Teams: entries, Summary: summary}, nil
}

func anyInRange(dates []time.Time, start, end time.Time) bool {
	for _, d := range dates {
		if inRange(d, start, end) {
			return true
		}
	}
	return false
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
