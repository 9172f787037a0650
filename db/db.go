package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
)

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			fmt.Printf("failed to close database handle after ping error: %v\n", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
	sr_no  SERIAL PRIMARY KEY,
	name   TEXT    NOT NULL,
	rating INTEGER NOT NULL,
	points NUMERIC(5,1) NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX IF NOT EXISTS players_name_lower_key ON players (lower(name));

CREATE TABLE IF NOT EXISTS matches (
	table_no      SERIAL PRIMARY KEY,
	round         INTEGER NOT NULL,
	player1_sr_no INTEGER NOT NULL REFERENCES players (sr_no) ON DELETE CASCADE,
	player2_sr_no INTEGER REFERENCES players (sr_no) ON DELETE CASCADE,
	result        TEXT NOT NULL DEFAULT 'pending'
);

CREATE INDEX IF NOT EXISTS matches_round_idx ON matches (round);
`

// Bootstrap creates the players and matches tables when they do not exist.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return nil
}
