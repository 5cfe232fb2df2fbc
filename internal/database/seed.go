package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a few agent
// directory entries and the editable page blobs the dashboard expects.
// It only inserts when the tables are empty, so calling it repeatedly is
// safe.
func Seed(db *sql.DB) error {
	if err := seedAgents(db); err != nil {
		return err
	}
	if err := seedPages(db); err != nil {
		return err
	}
	return nil
}

func seedAgents(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM agents").Scan(&count); err != nil {
		return fmt.Errorf("seed check agents: %w", err)
	}
	if count > 0 {
		slog.Info("agents already seeded, skipping")
		return nil
	}

	agents := []struct {
		name, description, category, url, pricing string
	}{
		{
			"AutoResearch", "Autonomous literature review assistant for technical topics.",
			"Research", "https://example.com/autoresearch", "freemium",
		},
		{
			"CodePilot Course", "Hands-on course on building coding agents.",
			"Education", "https://example.com/codepilot-course", "paid",
		},
		{
			"SummarizeBot", "Summarizes long-form articles and transcripts.",
			"Productivity", "https://example.com/summarizebot", "free",
		},
	}

	for _, a := range agents {
		_, err := db.Exec(`
			INSERT INTO agents (name, description, category, url, pricing)
			VALUES ($1, $2, $3, $4, $5)
		`, a.name, a.description, a.category, a.url, a.pricing)
		if err != nil {
			return fmt.Errorf("seed insert agent: %w", err)
		}
	}

	slog.Info("database seeded with directory agents", "count", len(agents))
	return nil
}

func seedPages(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM page_contents").Scan(&count); err != nil {
		return fmt.Errorf("seed check pages: %w", err)
	}
	if count > 0 {
		slog.Info("pages already seeded, skipping")
		return nil
	}

	pages := map[string]string{
		"home":  `{"hero_title":"AI Daily Digest","hero_subtitle":"Fresh AI coverage, generated every day."}`,
		"about": `{"body":"AI Daily Digest publishes automatically generated articles across the AI landscape."}`,
	}

	for key, content := range pages {
		_, err := db.Exec(`
			INSERT INTO page_contents (key, content)
			VALUES ($1, $2)
		`, key, content)
		if err != nil {
			return fmt.Errorf("seed insert page: %w", err)
		}
	}

	slog.Info("database seeded with page contents", "count", len(pages))
	return nil
}
