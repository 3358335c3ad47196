package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/w24010/Mapmoments/internal/model"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, sender_id, sender_username, recipient_id, recipient_username, content, read, created_at`

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, sender_username, recipient_id, recipient_username, content, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID,
		m.SenderID,
		m.SenderUsername,
		m.RecipientID,
		m.RecipientUsername,
		m.Content,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, peerID string) ([]model.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at
	`

	var messages []model.Message
	err := r.db.SelectContext(ctx, &messages, query, userID, peerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list thread: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) ListByParticipant(ctx context.Context, userID string) ([]model.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC
	`

	var messages []model.Message
	err := r.db.SelectContext(ctx, &messages, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}
