// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"vasool/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Member{},
		&models.Transaction{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("All migrations completed successfully")
}

// createIndexes creates the indexes the query paths rely on
func createIndexes() {
	db := GetDB()

	// Active-team lookups by day and code (duplicate check, day listings)
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_active_day_code ON teams(is_active, day, team_code)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_date ON teams(date)")

	// Member lookups by team and by aadhaar
	db.Exec("CREATE INDEX IF NOT EXISTS idx_members_team ON members(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_members_aadhar ON members(aadhar_number)")

	// Transaction scans per team: max-week and date-range sums
	db.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_team_week ON transactions(team_id, week DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_team_date ON transactions(team_id, date)")
}
