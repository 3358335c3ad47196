package model

import (
	"errors"
	"strings"
	"time"
)

// Media types
const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

// Media is the metadata row for one uploaded photo or video. BlobKey
// references the binary in the blob store and must resolve while the row
// exists; the blob itself may outlive the row until the cleanup worker
// confirms nothing else references it.
type Media struct {
	ID        string    `db:"id" json:"id"`
	PinID     string    `db:"pin_id" json:"pin_id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	BlobKey   string    `db:"blob_key" json:"file_id"`
	MediaType string    `db:"media_type" json:"media_type"`
	Caption   *string   `db:"caption" json:"caption,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// FileData carries the self-describing data-URI payload on reads.
	FileData string `db:"-" json:"file_data,omitempty"`
}

// DetectMediaType maps a declared content type onto a media type.
// Returns ErrUnsupportedMediaType for anything that is neither image nor
// video.
func DetectMediaType(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaTypePhoto, nil
	case strings.HasPrefix(contentType, "video/"):
		return MediaTypeVideo, nil
	default:
		return "", ErrUnsupportedMediaType
	}
}

// Media errors
var (
	ErrMediaNotFound        = errors.New("media not found")
	ErrNotMediaOwner        = errors.New("not the owner of this media")
	ErrUnsupportedMediaType = errors.New("unsupported media content type")

	// ErrBlobNotFound is returned by the blob store when a key does not resolve
	ErrBlobNotFound = errors.New("blob not found")
)
