package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/queue"
)

func newPinService(pins *mockPinRepository, comments *mockCommentRepository, media *mockMediaRepository, friends *mockFriendRepository, blobs *mockBlobStore, publisher *mockPublisher) *PinService {
	if pins == nil {
		pins = &mockPinRepository{}
	}
	if comments == nil {
		comments = &mockCommentRepository{}
	}
	if media == nil {
		media = &mockMediaRepository{}
	}
	if friends == nil {
		friends = &mockFriendRepository{}
	}
	if blobs == nil {
		blobs = &mockBlobStore{}
	}
	if publisher == nil {
		publisher = &mockPublisher{}
	}
	return NewPinService(pins, comments, media, NewVisibilityService(friends), blobs, publisher)
}

func TestPinService_Create_DefaultsToPrivate(t *testing.T) {
	svc := newPinService(nil, nil, nil, nil, nil, nil)
	user := &model.User{ID: "user-1", Username: "mapper"}

	pin, err := svc.Create(context.Background(), user, &model.CreatePinRequest{
		Title:    "Sunset spot",
		Latitude: 37.7749, Longitude: -122.4194,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pin.Privacy != model.PrivacyPrivate {
		t.Errorf("privacy = %q, want %q when omitted", pin.Privacy, model.PrivacyPrivate)
	}
	if pin.OwnerID != user.ID || pin.Username != user.Username {
		t.Error("pin must carry the owner's id and username")
	}
	if pin.ID == "" {
		t.Error("expected generated pin ID")
	}
}

func TestPinService_Create_InvalidPrivacy(t *testing.T) {
	svc := newPinService(nil, nil, nil, nil, nil, nil)
	user := &model.User{ID: "user-1", Username: "mapper"}

	_, err := svc.Create(context.Background(), user, &model.CreatePinRequest{
		Title:   "Sunset spot",
		Privacy: "everyone",
	})
	if !errors.Is(err, model.ErrInvalidPrivacy) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidPrivacy)
	}
}

func TestPinService_ListFeed_GuestFlagPassedThrough(t *testing.T) {
	var gotViewer string
	var gotGuest bool
	pins := &mockPinRepository{
		listFeedFn: func(ctx context.Context, viewerID string, guest bool) ([]model.Pin, error) {
			gotViewer, gotGuest = viewerID, guest
			return []model.Pin{}, nil
		},
	}
	svc := newPinService(pins, nil, nil, nil, nil, nil)

	guest := &model.User{ID: "guest-1", IsGuest: true}
	if _, err := svc.ListFeed(context.Background(), guest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotViewer != "guest-1" || !gotGuest {
		t.Errorf("feed queried with viewer=%q guest=%t, want guest-1/true", gotViewer, gotGuest)
	}
}

func TestPinService_ListFeed_Hydration(t *testing.T) {
	pins := &mockPinRepository{
		listFeedFn: func(ctx context.Context, viewerID string, guest bool) ([]model.Pin, error) {
			return []model.Pin{{ID: "pin-1", OwnerID: "other"}}, nil
		},
		checkLikesFn: func(ctx context.Context, userID string, pinIDs []string) (map[string]bool, error) {
			return map[string]bool{"pin-1": true}, nil
		},
	}
	comments := &mockCommentRepository{
		listByPinsFn: func(ctx context.Context, pinIDs []string) (map[string][]model.Comment, error) {
			return map[string][]model.Comment{
				"pin-1": {{ID: "c1", PinID: "pin-1", Text: "nice"}},
			}, nil
		},
	}
	media := &mockMediaRepository{
		listByPinsFn: func(ctx context.Context, pinIDs []string) (map[string][]model.Media, error) {
			return map[string][]model.Media{
				"pin-1": {
					{ID: "m1", PinID: "pin-1", BlobKey: "good"},
					{ID: "m2", PinID: "pin-1", BlobKey: "broken"},
				},
			}, nil
		},
	}
	blobs := &mockBlobStore{
		fetchFn: func(ctx context.Context, key string) ([]byte, string, error) {
			if key == "broken" {
				return nil, "", model.ErrBlobNotFound
			}
			return []byte("bytes"), "image/jpeg", nil
		},
	}
	svc := newPinService(pins, comments, media, nil, blobs, nil)

	feed, err := svc.ListFeed(context.Background(), &model.User{ID: "viewer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("expected 1 pin, got %d", len(feed))
	}

	pin := feed[0]
	if len(pin.Comments) != 1 || pin.Comments[0].Text != "nice" {
		t.Errorf("comments not attached: %v", pin.Comments)
	}
	if !pin.Liked {
		t.Error("liked flag not attached")
	}
	// The broken blob is dropped, not fatal
	if len(pin.Media) != 1 || pin.Media[0].ID != "m1" {
		t.Errorf("expected only the readable media item, got %v", pin.Media)
	}
	if !strings.HasPrefix(pin.Media[0].FileData, "data:image/jpeg;base64,") {
		t.Errorf("media bytes not inlined as data URI: %q", pin.Media[0].FileData)
	}
}

func TestPinService_ListByOwner_SelfOnly(t *testing.T) {
	svc := newPinService(nil, nil, nil, nil, nil, nil)
	viewer := &model.User{ID: "viewer"}

	if _, err := svc.ListByOwner(context.Background(), "someone-else", viewer); !errors.Is(err, model.ErrPinAccessDenied) {
		t.Errorf("error = %v, want %v", err, model.ErrPinAccessDenied)
	}
	if _, err := svc.ListByOwner(context.Background(), "viewer", viewer); err != nil {
		t.Errorf("own listing should succeed, got %v", err)
	}
}

func TestPinService_Get_Visibility(t *testing.T) {
	pins := &mockPinRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Pin, error) {
			switch id {
			case "private-pin":
				return &model.Pin{ID: id, OwnerID: "owner", Privacy: model.PrivacyPrivate}, nil
			case "public-pin":
				return &model.Pin{ID: id, OwnerID: "owner", Privacy: model.PrivacyPublic}, nil
			}
			return nil, model.ErrPinNotFound
		},
	}
	svc := newPinService(pins, nil, nil, nil, nil, nil)
	stranger := &model.User{ID: "stranger"}
	guest := &model.User{ID: "guest", IsGuest: true}

	if _, err := svc.Get(context.Background(), "private-pin", stranger); !errors.Is(err, model.ErrPinAccessDenied) {
		t.Errorf("private pin error = %v, want %v", err, model.ErrPinAccessDenied)
	}
	// Guests are sandboxed in the feed but can still fetch public pins
	if _, err := svc.Get(context.Background(), "public-pin", guest); err != nil {
		t.Errorf("guest fetch of public pin should succeed, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing", stranger); !errors.Is(err, model.ErrPinNotFound) {
		t.Errorf("missing pin error = %v, want %v", err, model.ErrPinNotFound)
	}
}

func TestPinService_Delete_Cascade(t *testing.T) {
	pins := &mockPinRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Pin, error) {
			return &model.Pin{ID: id, OwnerID: "owner"}, nil
		},
	}
	media := &mockMediaRepository{
		listByPinFn: func(ctx context.Context, pinID string) ([]model.Media, error) {
			return []model.Media{
				{ID: "m1", PinID: pinID, BlobKey: "key-1"},
				{ID: "m2", PinID: pinID, BlobKey: "key-2"},
			}, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newPinService(pins, nil, media, nil, nil, publisher)

	owner := &model.User{ID: "owner"}
	if err := svc.Delete(context.Background(), "pin-1", owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(media.deleteByPinCalls) != 1 || media.deleteByPinCalls[0] != "pin-1" {
		t.Errorf("media rows not deleted for pin: %v", media.deleteByPinCalls)
	}
	if len(pins.deleteCalls) != 1 || pins.deleteCalls[0] != "pin-1" {
		t.Errorf("pin row not deleted: %v", pins.deleteCalls)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 cleanup event, got %d", len(publisher.published))
	}
	keys := publisher.published[0].BlobKeys
	if len(keys) != 2 || keys[0] != "key-1" || keys[1] != "key-2" {
		t.Errorf("cleanup keys = %v, want [key-1 key-2]", keys)
	}
}

func TestPinService_Delete_NotOwner(t *testing.T) {
	pins := &mockPinRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Pin, error) {
			return &model.Pin{ID: id, OwnerID: "owner"}, nil
		},
	}
	svc := newPinService(pins, nil, nil, nil, nil, nil)

	err := svc.Delete(context.Background(), "pin-1", &model.User{ID: "stranger"})
	if !errors.Is(err, model.ErrNotPinOwner) {
		t.Errorf("error = %v, want %v", err, model.ErrNotPinOwner)
	}
	if len(pins.deleteCalls) != 0 {
		t.Error("pin must not be deleted by a non-owner")
	}
}

func TestPinService_Delete_PublishFailureDoesNotAbort(t *testing.T) {
	pins := &mockPinRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Pin, error) {
			return &model.Pin{ID: id, OwnerID: "owner"}, nil
		},
	}
	media := &mockMediaRepository{
		listByPinFn: func(ctx context.Context, pinID string) ([]model.Media, error) {
			return []model.Media{{ID: "m1", BlobKey: "key-1"}}, nil
		},
	}
	publisher := &mockPublisher{
		publishFn: func(ctx context.Context, stream string, event queue.CleanupEvent) (string, error) {
			return "", errors.New("redis down")
		},
	}
	svc := newPinService(pins, nil, media, nil, nil, publisher)

	if err := svc.Delete(context.Background(), "pin-1", &model.User{ID: "owner"}); err != nil {
		t.Errorf("blob cleanup failure must not abort the delete, got %v", err)
	}
}

func TestPinService_ToggleLike_Idempotence(t *testing.T) {
	// Stateful mock: toggling twice restores the original state.
	liked := map[string]bool{}
	pins := &mockPinRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Pin, error) {
			return &model.Pin{ID: id, OwnerID: "owner", Privacy: model.PrivacyPublic}, nil
		},
		hasLikedFn: func(ctx context.Context, pinID, userID string) (bool, error) {
			return liked[userID], nil
		},
		addLikeFn: func(ctx context.Context, pinID, userID string) error {
			liked[userID] = true
			return nil
		},
		removeLikeFn: func(ctx context.Context, pinID, userID string) error {
			delete(liked, userID)
			return nil
		},
		countLikesFn: func(ctx context.Context, pinID string) (int, error) {
			return len(liked), nil
		},
	}
	svc := newPinService(pins, nil, nil, nil, nil, nil)
	viewer := &model.User{ID: "viewer"}

	first, err := svc.ToggleLike(context.Background(), "pin-1", viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Liked || first.Likes != 1 {
		t.Errorf("first toggle = %+v, want liked with count 1", first)
	}

	second, err := svc.ToggleLike(context.Background(), "pin-1", viewer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Liked || second.Likes != 0 {
		t.Errorf("second toggle = %+v, want unliked with count 0", second)
	}
}

func TestPinService_AddComment(t *testing.T) {
	pins := &mockPinRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Pin, error) {
			return &model.Pin{ID: id, OwnerID: "owner"}, nil
		},
	}
	svc := newPinService(pins, nil, nil, nil, nil, nil)
	user := &model.User{ID: "user-1", Username: "mapper"}

	comment, err := svc.AddComment(context.Background(), "pin-1", user, &model.AddCommentRequest{Text: "great view"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.UserID != user.ID || comment.Username != user.Username {
		t.Error("comment must carry the author's id and username")
	}
	if comment.PinID != "pin-1" {
		t.Errorf("comment pin = %q, want pin-1", comment.PinID)
	}

	if _, err := svc.AddComment(context.Background(), "pin-1", user, &model.AddCommentRequest{Text: "  "}); err == nil {
		t.Error("expected validation error for blank comment")
	}
}

func TestPinService_DeleteComment_PinOwnerOnly(t *testing.T) {
	pins := &mockPinRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Pin, error) {
			return &model.Pin{ID: id, OwnerID: "owner"}, nil
		},
	}
	deleted := false
	comments := &mockCommentRepository{
		deleteFn: func(ctx context.Context, pinID, commentID string) error {
			deleted = true
			return nil
		},
	}
	svc := newPinService(pins, comments, nil, nil, nil, nil)

	err := svc.DeleteComment(context.Background(), "pin-1", "c1", &model.User{ID: "commenter"})
	if !errors.Is(err, model.ErrNotPinOwner) {
		t.Errorf("error = %v, want %v", err, model.ErrNotPinOwner)
	}
	if deleted {
		t.Error("comment must not be deleted by a non-owner of the pin")
	}

	if err := svc.DeleteComment(context.Background(), "pin-1", "c1", &model.User{ID: "owner"}); err != nil {
		t.Errorf("pin owner delete should succeed, got %v", err)
	}
	if !deleted {
		t.Error("expected comment deletion by the pin owner")
	}
}
