package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
)

var db *sql.DB

// GetDB returns the shared database handle.
func GetDB() *sql.DB {
	return db
}

// StartPostgreSQL connects to the database named by POSTGRESQL_URI and
// creates the schema if it does not exist yet.
func StartPostgreSQL() error {
	uri := os.Getenv("POSTGRESQL_URI")
	if uri == "" {
		return errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}

	var err error
	db, err = sql.Open("pgx", uri)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		return fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	log.Println("Connected to PostgreSQL successfully")

	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS task_lists (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE UNIQUE INDEX IF NOT EXISTS task_lists_default_per_user
		ON task_lists (user_id) WHERE is_default;

	CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'TODO',
		priority VARCHAR(20) NOT NULL DEFAULT 'MEDIUM',
		due_date DATE,
		user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		list_id UUID NOT NULL REFERENCES task_lists (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS tasks_user_id_idx ON tasks (user_id);
	CREATE INDEX IF NOT EXISTS tasks_list_id_idx ON tasks (list_id);
	CREATE INDEX IF NOT EXISTS task_lists_user_id_idx ON task_lists (user_id)
	`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	log.Println("Tables created or already exist")
	return nil
}

// ClosePostgreSQL closes the shared handle.
func ClosePostgreSQL() {
	if db != nil {
		if err := db.Close(); err != nil {
			panic(err)
		}
		log.Println("Database connection closed")
	}
}
