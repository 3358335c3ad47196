package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/w24010/Mapmoments/internal/queue"
)

// BlobReferenceChecker reports whether a blob key is still referenced
// by stored rows. This abstracts the repository layer so workers don't
// depend on the DB directly.
type BlobReferenceChecker interface {
	// MediaExistsByBlobKey reports whether any media row uses the key.
	MediaExistsByBlobKey(ctx context.Context, blobKey string) (bool, error)

	// ProfilePhotoExistsByBlobKey reports whether any user's profile
	// photo uses the key.
	ProfilePhotoExistsByBlobKey(ctx context.Context, blobKey string) (bool, error)
}

// BlobDeleter removes a blob from storage.
type BlobDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Handler processes cleanup events from the queue.
//
// Blobs are content-addressed, so the same key can back several media
// rows or profile photos. A key from a cleanup event is only deleted
// after confirming nothing references it anymore.
type Handler struct {
	refs  BlobReferenceChecker
	blobs BlobDeleter
}

// NewHandler creates a new cleanup event handler.
func NewHandler(refs BlobReferenceChecker, blobs BlobDeleter) *Handler {
	return &Handler{
		refs:  refs,
		blobs: blobs,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.CleanupEvent) error {
	switch event.Type {
	case queue.EventBlobsOrphaned:
		return h.handleBlobsOrphaned(ctx, event)
	default:
		log.Printf("[Handler] Unknown event type: %s", event.Type)
		return nil
	}
}

func (h *Handler) handleBlobsOrphaned(ctx context.Context, event queue.CleanupEvent) error {
	for _, key := range event.BlobKeys {
		referenced, err := h.isReferenced(ctx, key)
		if err != nil {
			// Leave the blob in place; a later event can retry.
			log.Printf("[Handler] Reference check failed: key=%s err=%v", key, err)
			continue
		}
		if referenced {
			log.Printf("[Handler] Blob still referenced, skipping: key=%s", key)
			continue
		}

		if err := h.blobs.Delete(ctx, key); err != nil {
			log.Printf("[Handler] Blob delete failed: key=%s err=%v", key, err)
			continue
		}
		log.Printf("[Handler] Blob deleted: key=%s", key)
	}
	return nil
}

func (h *Handler) isReferenced(ctx context.Context, key string) (bool, error) {
	inMedia, err := h.refs.MediaExistsByBlobKey(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check media references: %w", err)
	}
	if inMedia {
		return true, nil
	}

	inProfiles, err := h.refs.ProfilePhotoExistsByBlobKey(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check profile photo references: %w", err)
	}
	return inProfiles, nil
}
