package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"billpay-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, name, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id int64) (*models.PublicProfile, error)
	Search(ctx context.Context, callerID int64, query string) ([]models.SearchResult, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, email, passwordHash, name, username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO users (email, password_hash, name, username)
VALUES ($1, $2, $3, $4)
RETURNING id, email, username, name, password_hash, role, created_at
`, email, passwordHash, name, username).StructScan(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
SELECT id, email, username, name, password_hash, role, created_at
FROM users WHERE id=$1
`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
SELECT id, email, username, name, password_hash, role, created_at
FROM users WHERE email=$1
`, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, id int64) (*models.PublicProfile, error) {
	var profile models.PublicProfile
	err := r.db.GetContext(ctx, &profile, `
SELECT id, username, name FROM users WHERE id=$1
`, id)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Search matches username or display name case-insensitively and always
// excludes the caller. friendStatus is derived per row from the
// friendship and pending-request state, not stored anywhere.
func (r *userRepository) Search(ctx context.Context, callerID int64, query string) ([]models.SearchResult, error) {
	results := []models.SearchResult{}
	err := r.db.SelectContext(ctx, &results, `
SELECT u.id, u.username, u.name,
	CASE
		WHEN EXISTS (SELECT 1 FROM friendships f WHERE f.user_id=$1 AND f.friend_id=u.id)
			THEN 'FRIEND'
		WHEN EXISTS (SELECT 1 FROM friend_requests fr WHERE fr.sender_id=$1 AND fr.receiver_id=u.id AND fr.status='PENDING')
			THEN 'PENDING_SENT'
		WHEN EXISTS (SELECT 1 FROM friend_requests fr WHERE fr.sender_id=u.id AND fr.receiver_id=$1 AND fr.status='PENDING')
			THEN 'PENDING_RECEIVED'
		ELSE 'NONE'
	END AS friendstatus
FROM users u
WHERE u.id <> $1
	AND (u.username ILIKE '%' || $2 || '%' OR u.name ILIKE '%' || $2 || '%')
ORDER BY u.username, u.id
`, callerID, query)
	return results, err
}
