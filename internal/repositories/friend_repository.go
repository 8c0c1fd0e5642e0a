package repositories

import (
	"context"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"

	"billpay-service/internal/models"
	"billpay-service/internal/observability"
	"billpay-service/internal/rabbitmq"
)

var (
	ErrRequestForbidden = errors.New("friend request not allowed")
	ErrDuplicateRequest = errors.New("friend request already exists")
)

type FriendRepository interface {
	CreateRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error)
	GetPendingRequests(ctx context.Context, userID int64) ([]models.PendingRequest, error)
	AcceptRequest(ctx context.Context, requestID, userID int64) error
	RejectRequest(ctx context.Context, requestID, userID int64) error
	ListFriends(ctx context.Context, userID int64) ([]models.PublicProfile, error)
	HasRequest(ctx context.Context, senderID, receiverID int64) (bool, error)
	AreFriends(ctx context.Context, userID, otherID int64) (bool, error)
}

type friendRepository struct {
	db        *sqlx.DB
	publisher rabbitmq.Publisher
}

func NewFriendRepository(db *sqlx.DB, publisher rabbitmq.Publisher) FriendRepository {
	return &friendRepository{db: db, publisher: publisher}
}

// CreateRequest inserts a PENDING request for the ordered
// (sender, receiver) pair. The pair is unique; a reverse-direction
// request does not count as a duplicate.
func (r *friendRepository) CreateRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error) {
	exists, err := r.HasRequest(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	var req models.FriendRequest
	err = r.db.QueryRowxContext(ctx, `
INSERT INTO friend_requests (sender_id, receiver_id, status)
VALUES ($1, $2, 'PENDING')
RETURNING id, sender_id, receiver_id, status, created_at
`, senderID, receiverID).StructScan(&req)
	if err != nil {
		return nil, err
	}

	r.logPublish(ctx, "friend.request.created", map[string]any{
		"request_id":  req.ID,
		"sender_id":   req.SenderID,
		"receiver_id": req.ReceiverID,
		"created_at":  req.CreatedAt,
	})

	return &req, nil
}

func (r *friendRepository) GetPendingRequests(ctx context.Context, userID int64) ([]models.PendingRequest, error) {
	rows, err := r.db.QueryxContext(ctx, `
SELECT fr.id, fr.sender_id, fr.receiver_id, fr.status, fr.created_at,
	u.id AS sender_user_id, u.username AS sender_username, u.name AS sender_name
FROM friend_requests fr
JOIN users u ON u.id = fr.sender_id
WHERE fr.receiver_id=$1 AND fr.status='PENDING'
ORDER BY fr.created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := []models.PendingRequest{}
	for rows.Next() {
		var req models.PendingRequest
		if err := rows.Scan(
			&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt,
			&req.Sender.ID, &req.Sender.Username, &req.Sender.Name,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// AcceptRequest flips the request to ACCEPTED and writes both directed
// friendship edges inside one transaction, so the symmetric relation is
// never observable half-built.
func (r *friendRepository) AcceptRequest(ctx context.Context, requestID, userID int64) error {
	var eventPayload map[string]any
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var req models.FriendRequest
		if err := tx.GetContext(ctx, &req, `
SELECT id, sender_id, receiver_id, status, created_at FROM friend_requests WHERE id=$1
`, requestID); err != nil {
			return err
		}
		if req.ReceiverID != userID {
			return ErrRequestForbidden
		}

		if _, err := tx.ExecContext(ctx, `UPDATE friend_requests SET status='ACCEPTED' WHERE id=$1`, requestID); err != nil {
			return err
		}

		if err := r.insertFriendship(ctx, tx, req.ReceiverID, req.SenderID); err != nil {
			return err
		}
		if err := r.insertFriendship(ctx, tx, req.SenderID, req.ReceiverID); err != nil {
			return err
		}

		eventPayload = map[string]any{
			"request_id": req.ID,
			"user_id":    req.SenderID,
			"friend_id":  req.ReceiverID,
		}
		return nil
	})
	if err != nil {
		return err
	}

	if eventPayload != nil {
		r.logPublish(ctx, "friendship.created", eventPayload)
	}

	return nil
}

func (r *friendRepository) RejectRequest(ctx context.Context, requestID, userID int64) error {
	var receiverID int64
	if err := r.db.GetContext(ctx, &receiverID, `SELECT receiver_id FROM friend_requests WHERE id=$1`, requestID); err != nil {
		return err
	}
	if receiverID != userID {
		return ErrRequestForbidden
	}

	if _, err := r.db.ExecContext(ctx, `
UPDATE friend_requests SET status='REJECTED' WHERE id=$1
`, requestID); err != nil {
		return err
	}

	r.logPublish(ctx, "friend.request.rejected", map[string]any{
		"request_id": requestID,
		"user_id":    userID,
	})
	return nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID int64) ([]models.PublicProfile, error) {
	friends := []models.PublicProfile{}
	err := r.db.SelectContext(ctx, &friends, `
SELECT u.id, u.username, u.name
FROM friendships f
JOIN users u ON u.id = f.friend_id
WHERE f.user_id=$1
ORDER BY u.id
`, userID)
	return friends, err
}

func (r *friendRepository) HasRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
SELECT EXISTS(
SELECT 1 FROM friend_requests WHERE sender_id=$1 AND receiver_id=$2
)
`, senderID, receiverID)
	return exists, err
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
SELECT EXISTS(
SELECT 1 FROM friendships WHERE user_id=$1 AND friend_id=$2
)
`, userID, otherID)
	return exists, err
}

func (r *friendRepository) insertFriendship(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2)
ON CONFLICT (user_id, friend_id) DO NOTHING
`, userID, friendID)
	return err
}

func (r *friendRepository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *friendRepository) logPublish(ctx context.Context, eventType string, payload any) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, eventType, payload); err != nil {
		observability.IncAMQPPublishError()
		log.Printf("warning: failed to publish %s: %v", eventType, err)
	}
}
