package models

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PublicProfile is the subset of user fields exposed to other users.
type PublicProfile struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Name     string `db:"name" json:"name"`
}

// Friend status values derived at read time for search results.
const (
	FriendStatusNone            = "NONE"
	FriendStatusFriend          = "FRIEND"
	FriendStatusPendingSent     = "PENDING_SENT"
	FriendStatusPendingReceived = "PENDING_RECEIVED"
)

// SearchResult is a search match annotated with its relationship to the caller.
type SearchResult struct {
	PublicProfile
	FriendStatus string `db:"friendstatus" json:"friendStatus"`
}
