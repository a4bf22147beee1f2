// Package testfixtures provides an in-memory database with the production
// schema for repository and end-to-end tests. The SQL in the repositories is
// written with ? placeholders and Rebind so the same query text runs against
// both Postgres and this SQLite fixture.
package testfixtures

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE favorites (
	user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	movie_id INTEGER NOT NULL,
	added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, movie_id)
);
`

// NewDB opens a fresh in-memory SQLite database with the schema applied.
// The handle is closed when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a single conn keeps every query on the same in-memory database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		t.Fatalf("pragma foreign_keys: %v", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
