package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Yusuke0018/Phrase-Forge/internal/config"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the configured database and
// bootstraps the schema.
func Connect(cfg config.DatabaseConfig) error {
	var db *sqlx.DB
	var err error

	switch cfg.Type {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	default:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", cfg.Path)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	reviewID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		reviewID = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		// category_id is a weak reference on purpose: deleting a category
		// must not cascade to phrases.
		`CREATE TABLE IF NOT EXISTS phrases (
			id TEXT PRIMARY KEY,
			english TEXT NOT NULL,
			japanese TEXT NOT NULL,
			pronunciation TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			category_id TEXT NOT NULL DEFAULT '',
			next_review_date TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS review_records (
			id %s,
			phrase_id TEXT NOT NULL,
			review_date TIMESTAMP NOT NULL,
			"interval" TEXT NOT NULL,
			difficulty REAL NOT NULL,
			FOREIGN KEY (phrase_id) REFERENCES phrases(id) ON DELETE CASCADE
		)`, reviewID),
		`CREATE INDEX IF NOT EXISTS idx_review_records_phrase ON review_records(phrase_id, review_date)`,
		`CREATE TABLE IF NOT EXISTS user_stats (
			id INTEGER PRIMARY KEY,
			total_phrases INTEGER NOT NULL DEFAULT 0,
			phrases_learned INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			total_reviews INTEGER NOT NULL DEFAULT 0,
			last_review_date TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}

	return nil
}
