// cmd/ledger-check/main.go - Verifies the cached ledger fields on every
// active team against values re-derived from the raw transaction
// records, and optionally rewrites drifted teams.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"vasool/database"
	"vasool/models"
	"vasool/schedule"

	"github.com/joho/godotenv"
)

func main() {
	fix := flag.Bool("fix", false, "rewrite drifted ledger fields")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	defer database.CloseDB()

	db := database.GetDB()
	teamStore := database.NewTeamStore(db)
	txStore := database.NewTransactionStore(db)

	drifted := 0
	for _, day := range models.ValidDays {
		teams, err := teamStore.AllActiveByDay(day)
		if err != nil {
			log.Fatal("Failed to list teams:", err)
		}

		for i := range teams {
			team := &teams[i]

			collected, err := txStore.SumCollected(team.ID)
			if err != nil {
				log.Fatal("Failed to sum transactions:", err)
			}
			maxWeek, err := txStore.MaxWeek(team.ID)
			if err != nil {
				log.Fatal("Failed to read max week:", err)
			}

			wantBalance := team.TotalWeek - maxWeek
			if wantBalance < 0 {
				wantBalance = 0
			}
			wantNextDue := deriveNextDue(team, collected, maxWeek)

			if team.CollectedAmount == collected &&
				team.BalanceWeek == wantBalance &&
				sameDue(team.NextDue, wantNextDue) {
				continue
			}

			drifted++
			fmt.Printf("team %d (%s): collected %.2f->%.2f, balance %d->%d, next due %s->%s\n",
				team.TeamCode, team.Day,
				team.CollectedAmount, collected,
				team.BalanceWeek, wantBalance,
				formatDue(team.NextDue), formatDue(wantNextDue))

			if *fix {
				team.CollectedAmount = collected
				team.BalanceWeek = wantBalance
				team.NextDue = wantNextDue
				if err := teamStore.Update(team); err != nil {
					log.Fatal("Failed to update team:", err)
				}
			}
		}
	}

	if drifted == 0 {
		fmt.Println("All teams consistent")
		return
	}
	if *fix {
		fmt.Printf("%d teams rewritten\n", drifted)
		return
	}
	fmt.Printf("%d teams drifted (run with -fix to rewrite)\n", drifted)
	os.Exit(1)
}

// deriveNextDue recomputes the due date the same way transaction
// mutations roll it forward.
func deriveNextDue(team *models.Team, collected float64, maxWeek int) *time.Time {
	day, err := schedule.ParseDay(team.Day)
	if err != nil {
		return team.NextDue
	}

	switch {
	case collected >= team.TotalAmount || maxWeek >= team.TotalWeek:
		return nil
	case maxWeek > 0:
		due := schedule.NthOccurrence(team.Date, day, maxWeek+1)
		return &due
	default:
		due := schedule.NextOccurrence(team.Date, day)
		return &due
	}
}

func sameDue(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func formatDue(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.Format("2006-01-02")
}
