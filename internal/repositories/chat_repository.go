package repositories

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"billpay-service/internal/models"
	"billpay-service/internal/observability"
	"billpay-service/internal/payload"
	"billpay-service/internal/rabbitmq"
)

type ChatRepository interface {
	ListConversation(ctx context.Context, userID, friendID int64) ([]models.ChatMessageWithSender, error)
	SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*models.ChatMessageWithSender, error)
}

type chatRepository struct {
	db        *sqlx.DB
	publisher rabbitmq.Publisher
}

func NewChatRepository(db *sqlx.DB, publisher rabbitmq.Publisher) ChatRepository {
	return &chatRepository{db: db, publisher: publisher}
}

// ListConversation returns every message between the two users, oldest
// first, with the sender's profile joined. Messages involving anyone
// else never appear.
func (r *chatRepository) ListConversation(ctx context.Context, userID, friendID int64) ([]models.ChatMessageWithSender, error) {
	rows, err := r.db.QueryxContext(ctx, `
SELECT m.id, m.sender_id, m.receiver_id, m.content, m.kind, m.invoice_id, m.read, m.created_at,
	u.id, u.username, u.name
FROM chat_messages m
JOIN users u ON u.id = m.sender_id
WHERE (m.sender_id=$1 AND m.receiver_id=$2) OR (m.sender_id=$2 AND m.receiver_id=$1)
ORDER BY m.created_at ASC, m.id ASC
`, userID, friendID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessageWithSender{}
	for rows.Next() {
		var msg models.ChatMessageWithSender
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.Kind, &msg.InvoiceID, &msg.Read, &msg.CreatedAt,
			&msg.Sender.ID, &msg.Sender.Username, &msg.Sender.Name,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// SendMessage stores the content verbatim along with its decoded payload
// variant. The decode never rejects a message: unrecognized content is
// stored as plain text.
func (r *chatRepository) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*models.ChatMessageWithSender, error) {
	decoded := payload.Decode(content)

	var msg models.ChatMessageWithSender
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO chat_messages (sender_id, receiver_id, content, kind, invoice_id, read)
VALUES ($1, $2, $3, $4, $5, FALSE)
RETURNING id, sender_id, receiver_id, content, kind, invoice_id, read, created_at
`, senderID, receiverID, content, decoded.Kind, decoded.InvoiceID).StructScan(&msg.ChatMessage)
	if err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &msg.Sender, `
SELECT id, username, name FROM users WHERE id=$1
`, senderID); err != nil {
		return nil, err
	}

	r.logPublish(ctx, "chat.message.sent", map[string]any{
		"message_id":  msg.ID,
		"sender_id":   msg.SenderID,
		"receiver_id": msg.ReceiverID,
		"kind":        msg.Kind,
	})

	return &msg, nil
}

func (r *chatRepository) logPublish(ctx context.Context, eventType string, event any) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, eventType, event); err != nil {
		observability.IncAMQPPublishError()
		log.Printf("warning: failed to publish %s: %v", eventType, err)
	}
}
