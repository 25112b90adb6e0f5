// cmd/team-importer/main.go - Bulk-imports teams and members from a
// JSON file through the regular service layer, so schedule and aadhaar
// rules apply to imported data too.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"vasool/database"
	"vasool/services"

	"github.com/joho/godotenv"
)

type importMember struct {
	Name         string  `json:"name"`
	Caretaker    string  `json:"caretaker"`
	AadharNumber string  `json:"aadhar_number"`
	Photo        *string `json:"photo"`
}

type importTeam struct {
	TeamCode    int            `json:"team_code"`
	Address     string         `json:"address"`
	Date        string         `json:"date"`
	Day         string         `json:"day"`
	TotalAmount float64        `json:"total_amount"`
	TotalWeek   int            `json:"total_week"`
	Members     []importMember `json:"members"`
}

func main() {
	var (
		path   = flag.String("file", "./teams.json", "path to the teams JSON file")
		userID = flag.Uint("user", 1, "user ID recorded as creator of imported records")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read import file:", err)
	}

	var teams []importTeam
	if err := json.Unmarshal(data, &teams); err != nil {
		log.Fatal("Failed to parse import file:", err)
	}

	database.InitDB()
	defer database.CloseDB()
	database.RunMigrations()

	db := database.GetDB()
	svc := services.NewTeamService(
		database.NewTeamStore(db),
		database.NewMemberStore(db),
		database.NewTransactionStore(db),
		nil,
	)

	imported, skipped := 0, 0
	for _, t := range teams {
		date, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			fmt.Printf("team %d: bad date %q, skipping\n", t.TeamCode, t.Date)
			skipped++
			continue
		}

		team, err := svc.CreateTeam(services.TeamInput{
			TeamCode:    t.TeamCode,
			Address:     t.Address,
			Date:        date,
			Day:         t.Day,
			TotalAmount: t.TotalAmount,
			TotalWeek:   t.TotalWeek,
		}, *userID)
		if err != nil {
			fmt.Printf("team %d: %v, skipping\n", t.TeamCode, err)
			skipped++
			continue
		}

		for _, m := range t.Members {
			_, err := svc.AddMember(services.MemberInput{
				TeamID:       team.ID,
				Name:         m.Name,
				Caretaker:    m.Caretaker,
				AadharNumber: m.AadharNumber,
				Photo:        m.Photo,
			}, *userID)
			if err != nil {
				fmt.Printf("team %d: member %s: %v\n", t.TeamCode, m.Name, err)
			}
		}

		imported++
	}

	fmt.Printf("\nDone: %d teams imported, %d skipped\n", imported, skipped)
	if skipped > 0 {
		os.Exit(1)
	}
}
