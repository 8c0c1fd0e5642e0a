package models

import "time"

// InboxMessageTypes are the accepted system message categories.
var InboxMessageTypes = []string{"NOTIFICATION", "SUPPORT", "SYSTEM"}

func ValidInboxMessageType(t string) bool {
	for _, v := range InboxMessageTypes {
		if v == t {
			return true
		}
	}
	return false
}

// InboxMessage is a user-scoped system message, unrelated to chat threads.
type InboxMessage struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Content   string    `db:"content" json:"content"`
	Type      string    `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
