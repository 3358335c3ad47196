package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/w24010/Mapmoments/internal/blob"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/queue"
	"github.com/w24010/Mapmoments/internal/repository"
)

// MediaService handles media uploads and retrieval for pins.
type MediaService struct {
	mediaRepo repository.MediaRepository
	pinRepo   repository.PinRepository
	blobs     blob.Store
	publisher queue.Publisher
}

func NewMediaService(
	mediaRepo repository.MediaRepository,
	pinRepo repository.PinRepository,
	blobs blob.Store,
	publisher queue.Publisher,
) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		pinRepo:   pinRepo,
		blobs:     blobs,
		publisher: publisher,
	}
}

// Upload stores a photo or video for a pin. Only the pin's owner may
// attach media. The pin's media count is bumped separately from the
// row insert, so the two can drift if the update fails; that is
// logged, not surfaced.
func (s *MediaService) Upload(ctx context.Context, pinID string, user *model.User, data []byte, contentType string, caption *string) (*model.Media, error) {
	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return nil, err
	}
	if pin.OwnerID != user.ID {
		return nil, model.ErrNotPinOwner
	}

	mediaType, err := model.DetectMediaType(contentType)
	if err != nil {
		return nil, err
	}

	key, err := s.blobs.Upload(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store media blob: %w", err)
	}

	media := &model.Media{
		ID:        uuid.NewString(),
		PinID:     pinID,
		OwnerID:   user.ID,
		BlobKey:   key,
		MediaType: mediaType,
		Caption:   caption,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	if err := s.pinRepo.IncrementMediaCount(ctx, pinID, 1); err != nil {
		log.Printf("[MediaService] Failed to bump media count: pin=%s err=%v", pinID, err)
	}

	return media, nil
}

// List returns a pin's media with blob bytes inlined as data URIs.
// Items whose blob cannot be fetched are dropped from the result.
func (s *MediaService) List(ctx context.Context, pinID string) ([]model.Media, error) {
	media, err := s.mediaRepo.ListByPin(ctx, pinID)
	if err != nil {
		return nil, err
	}

	result := make([]model.Media, 0, len(media))
	for _, m := range media {
		data, contentType, err := s.blobs.Fetch(ctx, m.BlobKey)
		if err != nil {
			log.Printf("[MediaService] Failed to read media blob: media=%s err=%v", m.ID, err)
			continue
		}
		m.FileData = dataURI(contentType, data)
		result = append(result, m)
	}

	return result, nil
}

// Delete removes a media item. Only the uploader may delete it. The
// blob itself is handed to the cleanup worker.
func (s *MediaService) Delete(ctx context.Context, mediaID string, user *model.User) error {
	media, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if media.OwnerID != user.ID {
		return model.ErrNotMediaOwner
	}

	if err := s.mediaRepo.Delete(ctx, mediaID); err != nil {
		return err
	}

	if _, err := s.publisher.Publish(ctx, queue.StreamCleanup, queue.NewBlobsOrphanedEvent([]string{media.BlobKey})); err != nil {
		log.Printf("[MediaService] Failed to publish blob cleanup: media=%s err=%v", mediaID, err)
	}

	if err := s.pinRepo.IncrementMediaCount(ctx, media.PinID, -1); err != nil {
		log.Printf("[MediaService] Failed to drop media count: pin=%s err=%v", media.PinID, err)
	}

	return nil
}

// dataURI inlines blob bytes for JSON transport, matching the
// "data:<type>;base64,<bytes>" scheme browsers accept directly.
func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
