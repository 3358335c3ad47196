package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/w24010/Mapmoments/internal/model"
)

type pinRepository struct {
	db *sqlx.DB
}

func NewPinRepository(db *sqlx.DB) PinRepository {
	return &pinRepository{db: db}
}

// pinSelect includes like_count so every read carries the current size of
// the likes set.
const pinSelect = `
	SELECT p.id, p.owner_id, p.username, p.title, p.description,
	       p.latitude, p.longitude, p.privacy, p.media_count, p.created_at,
	       (SELECT COUNT(*) FROM pin_likes l WHERE l.pin_id = p.id) AS like_count
	FROM pins p
`

func (r *pinRepository) Create(ctx context.Context, pin *model.Pin) error {
	query := `
		INSERT INTO pins (id, owner_id, username, title, description, latitude, longitude, privacy, media_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		pin.ID,
		pin.OwnerID,
		pin.Username,
		pin.Title,
		pin.Description,
		pin.Latitude,
		pin.Longitude,
		pin.Privacy,
	).Scan(&pin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert pin: %w", err)
	}

	return nil
}

func (r *pinRepository) GetByID(ctx context.Context, id string) (*model.Pin, error) {
	query := pinSelect + `WHERE p.id = $1`

	var pin model.Pin
	err := r.db.GetContext(ctx, &pin, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPinNotFound
		}
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}

	return &pin, nil
}

// ListFeed returns pins visible to the viewer, newest first. Guests are
// sandboxed to their own pins; everyone else gets public pins by others,
// their own pins at any tier, and friends-tier pins owned by a friend.
func (r *pinRepository) ListFeed(ctx context.Context, viewerID string, guest bool) ([]model.Pin, error) {
	var query string
	if guest {
		query = pinSelect + `
			WHERE p.owner_id = $1
			ORDER BY p.created_at DESC
		`
	} else {
		query = pinSelect + `
			WHERE (p.privacy = 'public' AND p.owner_id <> $1)
			   OR p.owner_id = $1
			   OR (p.privacy = 'friends' AND p.owner_id IN
			       (SELECT friend_id FROM friendships WHERE user_id = $1))
			ORDER BY p.created_at DESC
		`
	}

	var pins []model.Pin
	err := r.db.SelectContext(ctx, &pins, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}

	return pins, nil
}

func (r *pinRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Pin, error) {
	query := pinSelect + `WHERE p.owner_id = $1 ORDER BY p.created_at DESC`

	var pins []model.Pin
	err := r.db.SelectContext(ctx, &pins, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins by owner: %w", err)
	}

	return pins, nil
}

func (r *pinRepository) ListPublic(ctx context.Context) ([]model.Pin, error) {
	query := pinSelect + `WHERE p.privacy = 'public' ORDER BY p.created_at DESC`

	var pins []model.Pin
	err := r.db.SelectContext(ctx, &pins, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list public pins: %w", err)
	}

	return pins, nil
}

// SearchPublic matches title or description as a case-insensitive
// substring. Results are hard-restricted to the public tier regardless of
// viewer.
func (r *pinRepository) SearchPublic(ctx context.Context, query string, limit int) ([]model.Pin, error) {
	searchQuery := pinSelect + `
		WHERE p.privacy = 'public'
		  AND (p.title ILIKE $1 OR p.description ILIKE $1)
		ORDER BY p.created_at DESC
		LIMIT $2
	`

	var pins []model.Pin
	err := r.db.SelectContext(ctx, &pins, searchQuery, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search pins: %w", err)
	}

	return pins, nil
}

func (r *pinRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pin: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPinNotFound
	}
	return nil
}

func (r *pinRepository) HasLiked(ctx context.Context, pinID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM pin_likes WHERE pin_id = $1 AND user_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, pinID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// AddLike records membership in the likes set. The composite primary key
// makes duplicate inserts impossible.
func (r *pinRepository) AddLike(ctx context.Context, pinID, userID string) error {
	query := `
		INSERT INTO pin_likes (pin_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (pin_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, pinID, userID)
	if err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (r *pinRepository) RemoveLike(ctx context.Context, pinID, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pin_likes WHERE pin_id = $1 AND user_id = $2`, pinID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (r *pinRepository) CountLikes(ctx context.Context, pinID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pin_likes WHERE pin_id = $1`, pinID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// CheckLikes checks which pins the user has liked in a single query.
func (r *pinRepository) CheckLikes(ctx context.Context, userID string, pinIDs []string) (map[string]bool, error) {
	if len(pinIDs) == 0 {
		return make(map[string]bool), nil
	}

	query := `SELECT pin_id FROM pin_likes WHERE user_id = $1 AND pin_id = ANY($2)`
	var likedIDs []string
	err := r.db.SelectContext(ctx, &likedIDs, query, userID, pq.Array(pinIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check likes: %w", err)
	}

	result := make(map[string]bool)
	for _, id := range pinIDs {
		result[id] = false
	}
	for _, id := range likedIDs {
		result[id] = true
	}

	return result, nil
}

// IncrementMediaCount adjusts the media counter maintained alongside media
// writes.
func (r *pinRepository) IncrementMediaCount(ctx context.Context, pinID string, delta int) error {
	query := `UPDATE pins SET media_count = media_count + $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, delta, pinID)
	if err != nil {
		return fmt.Errorf("failed to update media count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPinNotFound
	}
	return nil
}
