package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/w24010/Mapmoments/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hashed, is_guest, profile_photo_key, created_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hashed, is_guest, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHashed,
		u.IsGuest,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// ExistsByEmailOrUsername checks if either identifier is already taken
func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email, username)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// GetByIDs retrieves public summaries for the given user IDs.
func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]model.UserSummary, error) {
	if len(ids) == 0 {
		return []model.UserSummary{}, nil
	}

	query := `
		SELECT id, username, email, profile_photo_key
		FROM users
		WHERE id = ANY($1)
	`

	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	return users, nil
}

// Search matches username or email as a case-insensitive substring,
// excluding the searching user.
func (r *userRepository) Search(ctx context.Context, query, excludeID string, limit int) ([]model.UserSummary, error) {
	searchQuery := `
		SELECT id, username, email, profile_photo_key
		FROM users
		WHERE (username ILIKE $1 OR email ILIKE $1) AND id <> $2
		LIMIT $3
	`

	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, searchQuery, "%"+query+"%", excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

// SetProfilePhoto points the user at a new blob key.
func (r *userRepository) SetProfilePhoto(ctx context.Context, userID, blobKey string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET profile_photo_key = $1 WHERE id = $2`, blobKey, userID)
	if err != nil {
		return fmt.Errorf("failed to set profile photo: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// ExistsByProfilePhotoKey reports whether any user still references the blob.
func (r *userRepository) ExistsByProfilePhotoKey(ctx context.Context, blobKey string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE profile_photo_key = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, blobKey)
	if err != nil {
		return false, fmt.Errorf("failed to check profile photo reference: %w", err)
	}

	return exists, nil
}
