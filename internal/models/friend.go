package models

import "time"

const (
	RequestStatusPending  = "PENDING"
	RequestStatusAccepted = "ACCEPTED"
	RequestStatusRejected = "REJECTED"
)

type FriendRequest struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"senderId"`
	ReceiverID int64     `db:"receiver_id" json:"receiverId"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// PendingRequest is an incoming request joined with the sender's profile.
type PendingRequest struct {
	FriendRequest
	Sender PublicProfile `json:"sender"`
}

type Friendship struct {
	ID       int64 `db:"id" json:"id"`
	UserID   int64 `db:"user_id" json:"userId"`
	FriendID int64 `db:"friend_id" json:"friendId"`
}
