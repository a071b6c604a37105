package models

import "time"

// WatchedMovie is one entry on a user's watched list, keyed by
// (UserID, ImdbID). The JSON shape matches what the SPA expects: the
// external IMDb identifier is exposed as "id".
type WatchedMovie struct {
	UserID  string    `json:"-"`
	ImdbID  string    `json:"id"`
	Title   string    `json:"title"`
	Year    string    `json:"year,omitempty"`
	Poster  string    `json:"poster,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}
