package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// friendRepository stores the friend graph as two relation tables:
// friend_requests(target_id, requester_id) for pending requests and
// friendships(user_id, friend_id) for directed edges. A mutual friendship
// is two edges; the accept saga writes them one at a time.
type friendRepository struct {
	db *sqlx.DB
}

func NewFriendRepository(db *sqlx.DB) FriendRepository {
	return &friendRepository{db: db}
}

// AddRequest is idempotent: re-requesting while pending is a no-op.
func (r *friendRepository) AddRequest(ctx context.Context, targetID, requesterID string) error {
	query := `
		INSERT INTO friend_requests (target_id, requester_id)
		VALUES ($1, $2)
		ON CONFLICT (target_id, requester_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, targetID, requesterID)
	if err != nil {
		return fmt.Errorf("failed to add friend request: %w", err)
	}
	return nil
}

func (r *friendRepository) HasRequest(ctx context.Context, targetID, requesterID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friend_requests WHERE target_id = $1 AND requester_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, targetID, requesterID)
	if err != nil {
		return false, fmt.Errorf("failed to check friend request: %w", err)
	}
	return exists, nil
}

func (r *friendRepository) RemoveRequest(ctx context.Context, targetID, requesterID string) error {
	query := `DELETE FROM friend_requests WHERE target_id = $1 AND requester_id = $2`
	_, err := r.db.ExecContext(ctx, query, targetID, requesterID)
	if err != nil {
		return fmt.Errorf("failed to remove friend request: %w", err)
	}
	return nil
}

// AddFriend writes one directed edge. Idempotent under retries.
func (r *friendRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	query := `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to add friend edge: %w", err)
	}
	return nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, friendID)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

func (r *friendRepository) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT friend_id FROM friendships WHERE user_id = $1`

	var ids []string
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get friend ids: %w", err)
	}
	return ids, nil
}

func (r *friendRepository) RequestIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT requester_id FROM friend_requests WHERE target_id = $1`

	var ids []string
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request ids: %w", err)
	}
	return ids, nil
}
