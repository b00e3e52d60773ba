package core

import "time"

const (
	MemoName    = "MemoBot"
	MemoVersion = "0.1.0"

	// DefaultUserID is the implicit user all facts belong to when no user is given.
	DefaultUserID = "current_user"
)

// Well-known attribute names.
const (
	AttrName          = "name"
	AttrFavoriteColor = "favorite_color"
	AttrHobby         = "hobby"
)

// TranscriptEntry is one completed exchange. Entries are immutable once stored.
type TranscriptEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAttribute is a single declared fact about a user. Several rows may exist
// for the same attribute; the one with the highest ID wins.
type UserAttribute struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Attribute string    `json:"attribute"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
