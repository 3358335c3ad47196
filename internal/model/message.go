package model

import (
	"errors"
	"time"
)

// Message is a direct message between friends. Messages are immutable
// once created.
type Message struct {
	ID                string    `db:"id" json:"id"`
	SenderID          string    `db:"sender_id" json:"sender_id"`
	SenderUsername    string    `db:"sender_username" json:"sender_username"`
	RecipientID       string    `db:"recipient_id" json:"recipient_id"`
	RecipientUsername string    `db:"recipient_username" json:"recipient_username"`
	Content           string    `db:"content" json:"content"`
	Read              bool      `db:"read" json:"read"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

var (
	// ErrNotFriends is returned when a messaging operation targets a
	// user outside the sender's friend set
	ErrNotFriends = errors.New("can only message friends")
)
