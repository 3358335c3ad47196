package repository

import (
	"context"

	"github.com/w24010/Mapmoments/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.UserSummary, error)
	// Search matches username or email case-insensitively, excluding the
	// searching user.
	Search(ctx context.Context, query, excludeID string, limit int) ([]model.UserSummary, error)
	SetProfilePhoto(ctx context.Context, userID, blobKey string) error
	ExistsByProfilePhotoKey(ctx context.Context, blobKey string) (bool, error)
}

type FriendRepository interface {
	// AddRequest records requesterID in targetID's pending set. Re-adding
	// an already-pending request is a no-op.
	AddRequest(ctx context.Context, targetID, requesterID string) error
	HasRequest(ctx context.Context, targetID, requesterID string) (bool, error)
	RemoveRequest(ctx context.Context, targetID, requesterID string) error
	// AddFriend records a single directed edge; the symmetric relation is
	// two edges written by the accept saga.
	AddFriend(ctx context.Context, userID, friendID string) error
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	FriendIDs(ctx context.Context, userID string) ([]string, error)
	RequestIDs(ctx context.Context, userID string) ([]string, error)
}

type PinRepository interface {
	Create(ctx context.Context, pin *model.Pin) error
	GetByID(ctx context.Context, id string) (*model.Pin, error)
	// ListFeed composes the visibility filter: public pins by others,
	// the viewer's own pins, and friends-tier pins by the viewer's
	// friends. Guests only ever see their own pins here.
	ListFeed(ctx context.Context, viewerID string, guest bool) ([]model.Pin, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Pin, error)
	ListPublic(ctx context.Context) ([]model.Pin, error)
	SearchPublic(ctx context.Context, query string, limit int) ([]model.Pin, error)
	Delete(ctx context.Context, id string) error

	HasLiked(ctx context.Context, pinID, userID string) (bool, error)
	AddLike(ctx context.Context, pinID, userID string) error
	RemoveLike(ctx context.Context, pinID, userID string) error
	CountLikes(ctx context.Context, pinID string) (int, error)
	// CheckLikes returns pin_id -> liked for the given viewer in one query.
	CheckLikes(ctx context.Context, userID string, pinIDs []string) (map[string]bool, error)

	IncrementMediaCount(ctx context.Context, pinID string, delta int) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPins(ctx context.Context, pinIDs []string) (map[string][]model.Comment, error)
	Delete(ctx context.Context, pinID, commentID string) error
}

type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	GetByID(ctx context.Context, id string) (*model.Media, error)
	ListByPin(ctx context.Context, pinID string) ([]model.Media, error)
	ListByPins(ctx context.Context, pinIDs []string) (map[string][]model.Media, error)
	Delete(ctx context.Context, id string) error
	DeleteByPin(ctx context.Context, pinID string) error
	// ExistsByBlobKey reports whether any media row still references the
	// blob; the cleanup worker checks this before deleting.
	ExistsByBlobKey(ctx context.Context, blobKey string) (bool, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Search(ctx context.Context, query string, limit int) ([]model.Event, error)

	HasAttendee(ctx context.Context, eventID, userID string) (bool, error)
	AddAttendee(ctx context.Context, eventID, userID string) error
	RemoveAttendee(ctx context.Context, eventID, userID string) error
	CountAttendees(ctx context.Context, eventID string) (int, error)
	CheckAttendance(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	// ListBetween returns both directions of a thread, oldest first.
	ListBetween(ctx context.Context, userID, peerID string) ([]model.Message, error)
	// ListByParticipant returns every message the user sent or received.
	ListByParticipant(ctx context.Context, userID string) ([]model.Message, error)
}
