package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// User is an account row. The id is assigned by the store.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

var ErrDuplicateUsername = errors.New("username already exists")

type Repo struct {
	DB *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo {
	return &Repo{DB: db}
}

// CreateUser inserts the account and returns the store-assigned id. A taken
// username is ErrDuplicateUsername, including races past the handler's
// pre-check.
func (r *Repo) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, r.DB.Rebind(`
		INSERT INTO users (username, password_hash)
		VALUES (?, ?)
		RETURNING id
	`), username, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)

	var u User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get by username: %w", err)
	}
	return &u, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &u, nil
}

// DeleteUser removes the account. The favorites edge rows go with it via
// the foreign key cascade; the core never deletes them row by row.
func (r *Repo) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		DELETE FROM users WHERE id = ?
	`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes unique-constraint failures from both the
// production driver (Postgres) and the test driver (SQLite).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	return false
}
