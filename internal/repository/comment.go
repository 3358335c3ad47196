package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/w24010/Mapmoments/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (id, pin_id, user_id, username, text, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.PinID,
		c.UserID,
		c.Username,
		c.Text,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// ListByPins fetches comments for multiple pins in one query, grouped by
// pin and ordered oldest first within each pin.
func (r *commentRepository) ListByPins(ctx context.Context, pinIDs []string) (map[string][]model.Comment, error) {
	if len(pinIDs) == 0 {
		return map[string][]model.Comment{}, nil
	}

	query := `
		SELECT id, pin_id, user_id, username, text, created_at
		FROM comments
		WHERE pin_id = ANY($1)
		ORDER BY pin_id, created_at
	`

	var comments []model.Comment
	err := r.db.SelectContext(ctx, &comments, query, pq.Array(pinIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	result := make(map[string][]model.Comment)
	for _, c := range comments {
		result[c.PinID] = append(result[c.PinID], c)
	}
	return result, nil
}

func (r *commentRepository) Delete(ctx context.Context, pinID, commentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND pin_id = $2`, commentID, pinID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
