package models

import "time"

type ChatMessage struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"senderId"`
	ReceiverID int64     `db:"receiver_id" json:"receiverId"`
	Content    string    `db:"content" json:"content"`
	Kind       string    `db:"kind" json:"kind"`
	InvoiceID  *int64    `db:"invoice_id" json:"invoiceId,omitempty"`
	Read       bool      `db:"read" json:"read"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// ChatMessageWithSender is a message joined with the sender's profile.
type ChatMessageWithSender struct {
	ChatMessage
	Sender PublicProfile `json:"sender"`
}
