package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a handful of
// user projections, one public lawyer-advice forum, and one organizational
// forum for organization 1. No-op if forums already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM forums").Scan(&count); err != nil {
		return fmt.Errorf("seed check forums: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	users := []struct {
		id                 int64
		first, last, email string
	}{
		{1, "Ana", "Ionescu", "ana@lexforum.local"},
		{2, "Mihai", "Popescu", "mihai@lexforum.local"},
		{3, "Elena", "Radu", "elena@lexforum.local"},
	}
	for _, u := range users {
		_, err := db.Exec(`
			INSERT INTO users (id, first_name, last_name, email)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			u.id, u.first, u.last, u.email,
		)
		if err != nil {
			return fmt.Errorf("seed insert user: %w", err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO forums (name, description, type, organization_id, created_by_user_id)
		VALUES
			('Lawyer Advice', 'Public questions answered by lawyers', 'lawyer_advice', NULL, 1),
			('Team Discussions', 'Internal forum for organization 1', 'organizational', 1, 1)`,
	)
	if err != nil {
		return fmt.Errorf("seed insert forums: %w", err)
	}

	slog.Info("database seeded with development forums")
	return nil
}
