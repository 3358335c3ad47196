package model

import (
	"errors"
	"time"
)

// Event is a dated gathering at a location. Events have no privacy
// tiering: every authenticated user sees every event.
type Event struct {
	ID            string    `db:"id" json:"id"`
	OwnerID       string    `db:"owner_id" json:"owner_id"`
	Username      string    `db:"username" json:"username"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	EventDate     string    `db:"event_date" json:"event_date"` // ISO 8601, sorts chronologically
	Latitude      float64   `db:"latitude" json:"latitude"`
	Longitude     float64   `db:"longitude" json:"longitude"`
	LocationName  string    `db:"location_name" json:"location_name"`
	AttendeeCount int       `db:"attendee_count" json:"attendee_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	Attending bool `db:"-" json:"attending"`
}

// CreateEventRequest is the request body for creating an event.
type CreateEventRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	EventDate    string  `json:"event_date"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"location_name"`
}

// AttendResult reports attendance state after a toggle.
type AttendResult struct {
	Attendees int  `json:"attendees"`
	Attending bool `json:"attending"`
}

const EventSearchLimit = 50

var (
	ErrEventNotFound = errors.New("event not found")
)
