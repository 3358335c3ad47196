package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/w24010/Mapmoments/internal/model"
)

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) MediaRepository {
	return &mediaRepository{db: db}
}

const mediaColumns = `id, pin_id, owner_id, blob_key, media_type, caption, created_at`

func (r *mediaRepository) Create(ctx context.Context, m *model.Media) error {
	query := `
		INSERT INTO media (id, pin_id, owner_id, blob_key, media_type, caption, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID,
		m.PinID,
		m.OwnerID,
		m.BlobKey,
		m.MediaType,
		m.Caption,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert media: %w", err)
	}

	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (*model.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`

	var m model.Media
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	return &m, nil
}

func (r *mediaRepository) ListByPin(ctx context.Context, pinID string) ([]model.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE pin_id = $1 ORDER BY created_at`

	var media []model.Media
	err := r.db.SelectContext(ctx, &media, query, pinID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	return media, nil
}

// ListByPins fetches media rows for multiple pins in one query.
func (r *mediaRepository) ListByPins(ctx context.Context, pinIDs []string) (map[string][]model.Media, error) {
	if len(pinIDs) == 0 {
		return map[string][]model.Media{}, nil
	}

	query := `SELECT ` + mediaColumns + ` FROM media WHERE pin_id = ANY($1) ORDER BY pin_id, created_at`

	var media []model.Media
	err := r.db.SelectContext(ctx, &media, query, pq.Array(pinIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list media by pins: %w", err)
	}

	result := make(map[string][]model.Media)
	for _, m := range media {
		result[m.PinID] = append(result[m.PinID], m)
	}
	return result, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrMediaNotFound
	}
	return nil
}

func (r *mediaRepository) DeleteByPin(ctx context.Context, pinID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE pin_id = $1`, pinID)
	if err != nil {
		return fmt.Errorf("failed to delete media by pin: %w", err)
	}
	return nil
}

func (r *mediaRepository) ExistsByBlobKey(ctx context.Context, blobKey string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM media WHERE blob_key = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, blobKey)
	if err != nil {
		return false, fmt.Errorf("failed to check blob reference: %w", err)
	}
	return exists, nil
}
