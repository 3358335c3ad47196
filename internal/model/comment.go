package model

import (
	"errors"
	"time"
)

// Comment is a single comment on a pin. The author's username is
// denormalized at write time.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	PinID     string    `db:"pin_id" json:"-"`
	UserID    string    `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AddCommentRequest is the request body for commenting on a pin.
type AddCommentRequest struct {
	Text string `json:"text"`
}

var (
	ErrCommentNotFound = errors.New("comment not found")
)
