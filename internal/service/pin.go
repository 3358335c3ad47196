package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/w24010/Mapmoments/internal/blob"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/queue"
	"github.com/w24010/Mapmoments/internal/repository"
)

// PinService handles business logic for pins, likes and comments.
type PinService struct {
	pinRepo     repository.PinRepository
	commentRepo repository.CommentRepository
	mediaRepo   repository.MediaRepository
	visibility  *VisibilityService
	blobs       blob.Store
	publisher   queue.Publisher
}

func NewPinService(
	pinRepo repository.PinRepository,
	commentRepo repository.CommentRepository,
	mediaRepo repository.MediaRepository,
	visibility *VisibilityService,
	blobs blob.Store,
	publisher queue.Publisher,
) *PinService {
	return &PinService{
		pinRepo:     pinRepo,
		commentRepo: commentRepo,
		mediaRepo:   mediaRepo,
		visibility:  visibility,
		blobs:       blobs,
		publisher:   publisher,
	}
}

// Create creates a new pin owned by the user. Privacy defaults to
// private when omitted.
func (s *PinService) Create(ctx context.Context, user *model.User, req *model.CreatePinRequest) (*model.Pin, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = model.PrivacyPrivate
	}
	if !model.ValidPrivacy(privacy) {
		return nil, model.ErrInvalidPrivacy
	}

	pin := &model.Pin{
		ID:          uuid.NewString(),
		OwnerID:     user.ID,
		Username:    user.Username,
		Title:       req.Title,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Privacy:     privacy,
	}

	if err := s.pinRepo.Create(ctx, pin); err != nil {
		return nil, fmt.Errorf("failed to create pin: %w", err)
	}

	pin.Comments = []model.Comment{}
	pin.Media = []model.Media{}
	return pin, nil
}

// ListFeed returns the pins visible to the viewer, newest first, with
// comments, media and like state attached. Guests see only their own
// pins here, though they can still fetch any public pin directly.
func (s *PinService) ListFeed(ctx context.Context, viewer *model.User) ([]model.Pin, error) {
	pins, err := s.pinRepo.ListFeed(ctx, viewer.ID, viewer.IsGuest)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, pins, viewer); err != nil {
		return nil, err
	}
	return pins, nil
}

// ListByOwner returns a user's own pins, newest first. Viewing another
// user's pin list is not allowed.
func (s *PinService) ListByOwner(ctx context.Context, ownerID string, viewer *model.User) ([]model.Pin, error) {
	if ownerID != viewer.ID {
		return nil, model.ErrPinAccessDenied
	}
	pins, err := s.pinRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, pins, viewer); err != nil {
		return nil, err
	}
	return pins, nil
}

// Search finds public pins matching the query in title or description.
func (s *PinService) Search(ctx context.Context, query string) ([]model.Pin, error) {
	return s.pinRepo.SearchPublic(ctx, query, model.PinSearchLimit)
}

// Get returns a single pin if the viewer may see it. Unlike the feed,
// this applies only the privacy check: guests can fetch any public pin.
func (s *PinService) Get(ctx context.Context, pinID string, viewer *model.User) (*model.Pin, error) {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CanView(ctx, pin, viewer); err != nil {
		return nil, err
	}

	pins := []model.Pin{*pin}
	if err := s.hydrate(ctx, pins, viewer); err != nil {
		return nil, err
	}
	return &pins[0], nil
}

// Delete removes a pin, its media rows and its blobs. Blob removal is
// deferred to the cleanup worker and never fails the delete.
func (s *PinService) Delete(ctx context.Context, pinID string, viewer *model.User) error {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return err
	}
	if pin.OwnerID != viewer.ID {
		return model.ErrNotPinOwner
	}

	media, err := s.mediaRepo.ListByPin(ctx, pinID)
	if err != nil {
		return err
	}

	if err := s.mediaRepo.DeleteByPin(ctx, pinID); err != nil {
		return err
	}
	if err := s.pinRepo.Delete(ctx, pinID); err != nil {
		return err
	}

	if len(media) > 0 {
		keys := make([]string, len(media))
		for i, m := range media {
			keys[i] = m.BlobKey
		}
		if _, err := s.publisher.Publish(ctx, queue.StreamCleanup, queue.NewBlobsOrphanedEvent(keys)); err != nil {
			log.Printf("[PinService] Failed to publish blob cleanup: pin=%s err=%v", pinID, err)
		}
	}

	return nil
}

// ToggleLike flips the viewer's like on a pin and returns the new
// state. Two concurrent toggles can race; the relation table keeps the
// result consistent even if one write is absorbed.
func (s *PinService) ToggleLike(ctx context.Context, pinID string, viewer *model.User) (*model.LikeResult, error) {
	if _, err := s.pinRepo.GetByID(ctx, pinID); err != nil {
		return nil, err
	}

	liked, err := s.pinRepo.HasLiked(ctx, pinID, viewer.ID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.pinRepo.RemoveLike(ctx, pinID, viewer.ID)
	} else {
		err = s.pinRepo.AddLike(ctx, pinID, viewer.ID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.pinRepo.CountLikes(ctx, pinID)
	if err != nil {
		return nil, err
	}

	return &model.LikeResult{Likes: count, Liked: !liked}, nil
}

// AddComment adds a comment to a pin on behalf of the user.
func (s *PinService) AddComment(ctx context.Context, pinID string, user *model.User, req *model.AddCommentRequest) (*model.Comment, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	if _, err := s.pinRepo.GetByID(ctx, pinID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:       uuid.NewString(),
		PinID:    pinID,
		UserID:   user.ID,
		Username: user.Username,
		Text:     req.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the pin's owner may delete
// comments on their pin.
func (s *PinService) DeleteComment(ctx context.Context, pinID, commentID string, viewer *model.User) error {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return err
	}
	if pin.OwnerID != viewer.ID {
		return model.ErrNotPinOwner
	}

	return s.commentRepo.Delete(ctx, pinID, commentID)
}

// hydrate attaches comments, media and like state to pins in place.
// Media bytes are inlined as data URIs; a blob fetch failure drops
// that media item rather than failing the whole listing.
func (s *PinService) hydrate(ctx context.Context, pins []model.Pin, viewer *model.User) error {
	if len(pins) == 0 {
		return nil
	}

	ids := make([]string, len(pins))
	for i, p := range pins {
		ids[i] = p.ID
	}

	comments, err := s.commentRepo.ListByPins(ctx, ids)
	if err != nil {
		return err
	}
	media, err := s.mediaRepo.ListByPins(ctx, ids)
	if err != nil {
		return err
	}
	likes, err := s.pinRepo.CheckLikes(ctx, viewer.ID, ids)
	if err != nil {
		return err
	}

	for i := range pins {
		pin := &pins[i]

		pin.Comments = comments[pin.ID]
		if pin.Comments == nil {
			pin.Comments = []model.Comment{}
		}
		pin.Liked = likes[pin.ID]

		pin.Media = []model.Media{}
		for _, m := range media[pin.ID] {
			data, contentType, err := s.blobs.Fetch(ctx, m.BlobKey)
			if err != nil {
				log.Printf("[PinService] Failed to embed media: pin=%s media=%s err=%v", pin.ID, m.ID, err)
				continue
			}
			m.FileData = dataURI(contentType, data)
			pin.Media = append(pin.Media, m)
		}
	}

	return nil
}
