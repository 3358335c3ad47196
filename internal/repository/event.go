package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/w24010/Mapmoments/internal/model"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventSelect = `
	SELECT e.id, e.owner_id, e.username, e.title, e.description, e.event_date,
	       e.latitude, e.longitude, e.location_name, e.created_at,
	       (SELECT COUNT(*) FROM event_attendees a WHERE a.event_id = e.id) AS attendee_count
	FROM events e
`

func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `
		INSERT INTO events (id, owner_id, username, title, description, event_date, latitude, longitude, location_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		e.ID,
		e.OwnerID,
		e.Username,
		e.Title,
		e.Description,
		e.EventDate,
		e.Latitude,
		e.Longitude,
		e.LocationName,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := eventSelect + `WHERE e.id = $1`

	var event model.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

// List returns all events ordered by event date. Events carry no privacy
// tier.
func (r *eventRepository) List(ctx context.Context) ([]model.Event, error) {
	query := eventSelect + `ORDER BY e.event_date`

	var events []model.Event
	err := r.db.SelectContext(ctx, &events, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// Search matches title, description or location name case-insensitively.
func (r *eventRepository) Search(ctx context.Context, query string, limit int) ([]model.Event, error) {
	searchQuery := eventSelect + `
		WHERE e.title ILIKE $1 OR e.description ILIKE $1 OR e.location_name ILIKE $1
		ORDER BY e.event_date
		LIMIT $2
	`

	var events []model.Event
	err := r.db.SelectContext(ctx, &events, searchQuery, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) HasAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return exists, nil
}

func (r *eventRepository) AddAttendee(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to add attendee: %w", err)
	}
	return nil
}

func (r *eventRepository) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove attendee: %w", err)
	}
	return nil
}

func (r *eventRepository) CountAttendees(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendees: %w", err)
	}
	return count, nil
}

func (r *eventRepository) CheckAttendance(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error) {
	if len(eventIDs) == 0 {
		return make(map[string]bool), nil
	}

	query := `SELECT event_id FROM event_attendees WHERE user_id = $1 AND event_id = ANY($2)`
	var attending []string
	err := r.db.SelectContext(ctx, &attending, query, userID, pq.Array(eventIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check attendance: %w", err)
	}

	result := make(map[string]bool)
	for _, id := range eventIDs {
		result[id] = false
	}
	for _, id := range attending {
		result[id] = true
	}

	return result, nil
}
