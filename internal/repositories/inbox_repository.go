package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"billpay-service/internal/models"
)

type InboxRepository interface {
	Create(ctx context.Context, userID int64, content, messageType string) (*models.InboxMessage, error)
	ListByUser(ctx context.Context, userID int64) ([]models.InboxMessage, error)
}

type inboxRepository struct {
	db *sqlx.DB
}

func NewInboxRepository(db *sqlx.DB) InboxRepository {
	return &inboxRepository{db: db}
}

func (r *inboxRepository) Create(ctx context.Context, userID int64, content, messageType string) (*models.InboxMessage, error) {
	var msg models.InboxMessage
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO messages (user_id, content, type)
VALUES ($1, $2, $3)
RETURNING id, user_id, content, type, created_at
`, userID, content, messageType).StructScan(&msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *inboxRepository) ListByUser(ctx context.Context, userID int64) ([]models.InboxMessage, error) {
	messages := []models.InboxMessage{}
	err := r.db.SelectContext(ctx, &messages, `
SELECT id, user_id, content, type, created_at
FROM messages
WHERE user_id=$1
ORDER BY created_at DESC
`, userID)
	return messages, err
}
