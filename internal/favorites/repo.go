package favorites

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repo stores the (user_id, movie_id) favorite edge. Uniqueness of the pair
// is a store invariant; adding a duplicate is a no-op and removing a pair
// that was never added is a no-op as well.
type Repo struct {
	DB *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Add(ctx context.Context, userID, movieID int64) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO favorites (user_id, movie_id)
		VALUES (?, ?)
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`), userID, movieID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, userID, movieID int64) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		DELETE FROM favorites
		WHERE user_id = ? AND movie_id = ?
	`), userID, movieID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.DB.SelectContext(ctx, &ids, r.DB.Rebind(`
		SELECT movie_id
		FROM favorites
		WHERE user_id = ?
		ORDER BY added_at, movie_id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}
