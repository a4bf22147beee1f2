package feed

import "time"

// FavoriteEvent is broadcast to feed subscribers whenever a favorite edge
// changes.
type FavoriteEvent struct {
	Type    string    `json:"type"` // "favorite.add" or "favorite.remove"
	UserID  int64     `json:"user_id"`
	MovieID int64     `json:"movie_id"`
	At      time.Time `json:"at"`
}
