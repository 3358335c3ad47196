package model

import (
	"errors"
	"time"
)

// Privacy tiers controlling who may view a pin.
const (
	PrivacyPublic  = "public"
	PrivacyFriends = "friends"
	PrivacyPrivate = "private"
)

// ValidPrivacy reports whether p is a known privacy tier.
func ValidPrivacy(p string) bool {
	return p == PrivacyPublic || p == PrivacyFriends || p == PrivacyPrivate
}

// Pin is a geo-tagged content post with a privacy tier.
//
// MediaCount is maintained by increment/decrement alongside media writes,
// not recomputed; it can drift if a crash lands between the two writes.
type Pin struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"owner_id"`
	Username    string    `db:"username" json:"username"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Latitude    float64   `db:"latitude" json:"latitude"`
	Longitude   float64   `db:"longitude" json:"longitude"`
	Privacy     string    `db:"privacy" json:"privacy"`
	MediaCount  int       `db:"media_count" json:"media_count"`
	LikeCount   int       `db:"like_count" json:"like_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not columns on pins)
	Comments []Comment `db:"-" json:"comments"`
	Media    []Media   `db:"-" json:"media,omitempty"`
	Liked    bool      `db:"-" json:"liked"`
}

// NearbyPin is a pin annotated with its distance from the query point.
type NearbyPin struct {
	Pin
	Distance float64 `json:"distance"` // km, rounded to 2 decimals
}

// CreatePinRequest is the request body for creating a pin.
type CreatePinRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Privacy     string  `json:"privacy"`
}

// LikeResult reports the like state of a pin after a toggle.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// Discovery limits
const (
	TrendingLimit         = 50
	NearbyLimit           = 50
	PinSearchLimit        = 50
	DefaultNearbyRadiusKm = 10
)

// Pin errors
var (
	ErrPinNotFound     = errors.New("pin not found")
	ErrNotPinOwner     = errors.New("not the owner of this pin")
	ErrPinAccessDenied = errors.New("access to this pin is denied")
	ErrInvalidPrivacy  = errors.New("invalid privacy tier")
)
