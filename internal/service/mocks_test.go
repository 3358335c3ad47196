package service

import (
	"context"

	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/queue"
)

// Function-field mocks: each test overrides just the calls it cares
// about; everything else falls back to an empty-success default.

// ---------------------------------------------------------------------------
// UserRepository
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	createFn                  func(ctx context.Context, user *model.User) error
	getByIDFn                 func(ctx context.Context, id string) (*model.User, error)
	getByEmailFn              func(ctx context.Context, email string) (*model.User, error)
	existsByEmailOrUsernameFn func(ctx context.Context, email, username string) (bool, error)
	getByIDsFn                func(ctx context.Context, ids []string) ([]model.UserSummary, error)
	searchFn                  func(ctx context.Context, query, excludeID string, limit int) ([]model.UserSummary, error)
	setProfilePhotoFn         func(ctx context.Context, userID, blobKey string) error

	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	if m.existsByEmailOrUsernameFn != nil {
		return m.existsByEmailOrUsernameFn(ctx, email, username)
	}
	return false, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]model.UserSummary, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return []model.UserSummary{}, nil
}

func (m *mockUserRepository) Search(ctx context.Context, query, excludeID string, limit int) ([]model.UserSummary, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, excludeID, limit)
	}
	return []model.UserSummary{}, nil
}

func (m *mockUserRepository) SetProfilePhoto(ctx context.Context, userID, blobKey string) error {
	if m.setProfilePhotoFn != nil {
		return m.setProfilePhotoFn(ctx, userID, blobKey)
	}
	return nil
}

func (m *mockUserRepository) ExistsByProfilePhotoKey(ctx context.Context, blobKey string) (bool, error) {
	return false, nil
}

// ---------------------------------------------------------------------------
// FriendRepository
// ---------------------------------------------------------------------------

type mockFriendRepository struct {
	addRequestFn    func(ctx context.Context, targetID, requesterID string) error
	hasRequestFn    func(ctx context.Context, targetID, requesterID string) (bool, error)
	removeRequestFn func(ctx context.Context, targetID, requesterID string) error
	addFriendFn     func(ctx context.Context, userID, friendID string) error
	areFriendsFn    func(ctx context.Context, userID, friendID string) (bool, error)
	friendIDsFn     func(ctx context.Context, userID string) ([]string, error)
	requestIDsFn    func(ctx context.Context, userID string) ([]string, error)

	addFriendCalls [][2]string
}

func (m *mockFriendRepository) AddRequest(ctx context.Context, targetID, requesterID string) error {
	if m.addRequestFn != nil {
		return m.addRequestFn(ctx, targetID, requesterID)
	}
	return nil
}

func (m *mockFriendRepository) HasRequest(ctx context.Context, targetID, requesterID string) (bool, error) {
	if m.hasRequestFn != nil {
		return m.hasRequestFn(ctx, targetID, requesterID)
	}
	return false, nil
}

func (m *mockFriendRepository) RemoveRequest(ctx context.Context, targetID, requesterID string) error {
	if m.removeRequestFn != nil {
		return m.removeRequestFn(ctx, targetID, requesterID)
	}
	return nil
}

func (m *mockFriendRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	m.addFriendCalls = append(m.addFriendCalls, [2]string{userID, friendID})
	if m.addFriendFn != nil {
		return m.addFriendFn(ctx, userID, friendID)
	}
	return nil
}

func (m *mockFriendRepository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	if m.areFriendsFn != nil {
		return m.areFriendsFn(ctx, userID, friendID)
	}
	return false, nil
}

func (m *mockFriendRepository) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	if m.friendIDsFn != nil {
		return m.friendIDsFn(ctx, userID)
	}
	return []string{}, nil
}

func (m *mockFriendRepository) RequestIDs(ctx context.Context, userID string) ([]string, error) {
	if m.requestIDsFn != nil {
		return m.requestIDsFn(ctx, userID)
	}
	return []string{}, nil
}

// ---------------------------------------------------------------------------
// PinRepository
// ---------------------------------------------------------------------------

type mockPinRepository struct {
	createFn              func(ctx context.Context, pin *model.Pin) error
	getByIDFn             func(ctx context.Context, id string) (*model.Pin, error)
	listFeedFn            func(ctx context.Context, viewerID string, guest bool) ([]model.Pin, error)
	listByOwnerFn         func(ctx context.Context, ownerID string) ([]model.Pin, error)
	listPublicFn          func(ctx context.Context) ([]model.Pin, error)
	searchPublicFn        func(ctx context.Context, query string, limit int) ([]model.Pin, error)
	deleteFn              func(ctx context.Context, id string) error
	hasLikedFn            func(ctx context.Context, pinID, userID string) (bool, error)
	addLikeFn             func(ctx context.Context, pinID, userID string) error
	removeLikeFn          func(ctx context.Context, pinID, userID string) error
	countLikesFn          func(ctx context.Context, pinID string) (int, error)
	checkLikesFn          func(ctx context.Context, userID string, pinIDs []string) (map[string]bool, error)
	incrementMediaCountFn func(ctx context.Context, pinID string, delta int) error

	deleteCalls []string
}

func (m *mockPinRepository) Create(ctx context.Context, pin *model.Pin) error {
	if m.createFn != nil {
		return m.createFn(ctx, pin)
	}
	return nil
}

func (m *mockPinRepository) GetByID(ctx context.Context, id string) (*model.Pin, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPinNotFound
}

func (m *mockPinRepository) ListFeed(ctx context.Context, viewerID string, guest bool) ([]model.Pin, error) {
	if m.listFeedFn != nil {
		return m.listFeedFn(ctx, viewerID, guest)
	}
	return []model.Pin{}, nil
}

func (m *mockPinRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Pin, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return []model.Pin{}, nil
}

func (m *mockPinRepository) ListPublic(ctx context.Context) ([]model.Pin, error) {
	if m.listPublicFn != nil {
		return m.listPublicFn(ctx)
	}
	return []model.Pin{}, nil
}

func (m *mockPinRepository) SearchPublic(ctx context.Context, query string, limit int) ([]model.Pin, error) {
	if m.searchPublicFn != nil {
		return m.searchPublicFn(ctx, query, limit)
	}
	return []model.Pin{}, nil
}

func (m *mockPinRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPinRepository) HasLiked(ctx context.Context, pinID, userID string) (bool, error) {
	if m.hasLikedFn != nil {
		return m.hasLikedFn(ctx, pinID, userID)
	}
	return false, nil
}

func (m *mockPinRepository) AddLike(ctx context.Context, pinID, userID string) error {
	if m.addLikeFn != nil {
		return m.addLikeFn(ctx, pinID, userID)
	}
	return nil
}

func (m *mockPinRepository) RemoveLike(ctx context.Context, pinID, userID string) error {
	if m.removeLikeFn != nil {
		return m.removeLikeFn(ctx, pinID, userID)
	}
	return nil
}

func (m *mockPinRepository) CountLikes(ctx context.Context, pinID string) (int, error) {
	if m.countLikesFn != nil {
		return m.countLikesFn(ctx, pinID)
	}
	return 0, nil
}

func (m *mockPinRepository) CheckLikes(ctx context.Context, userID string, pinIDs []string) (map[string]bool, error) {
	if m.checkLikesFn != nil {
		return m.checkLikesFn(ctx, userID, pinIDs)
	}
	result := make(map[string]bool)
	for _, id := range pinIDs {
		result[id] = false
	}
	return result, nil
}

func (m *mockPinRepository) IncrementMediaCount(ctx context.Context, pinID string, delta int) error {
	if m.incrementMediaCountFn != nil {
		return m.incrementMediaCountFn(ctx, pinID, delta)
	}
	return nil
}

// ---------------------------------------------------------------------------
// CommentRepository
// ---------------------------------------------------------------------------

type mockCommentRepository struct {
	createFn     func(ctx context.Context, comment *model.Comment) error
	listByPinsFn func(ctx context.Context, pinIDs []string) (map[string][]model.Comment, error)
	deleteFn     func(ctx context.Context, pinID, commentID string) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) ListByPins(ctx context.Context, pinIDs []string) (map[string][]model.Comment, error) {
	if m.listByPinsFn != nil {
		return m.listByPinsFn(ctx, pinIDs)
	}
	return map[string][]model.Comment{}, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, pinID, commentID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, pinID, commentID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// MediaRepository
// ---------------------------------------------------------------------------

type mockMediaRepository struct {
	createFn      func(ctx context.Context, media *model.Media) error
	getByIDFn     func(ctx context.Context, id string) (*model.Media, error)
	listByPinFn   func(ctx context.Context, pinID string) ([]model.Media, error)
	listByPinsFn  func(ctx context.Context, pinIDs []string) (map[string][]model.Media, error)
	deleteFn      func(ctx context.Context, id string) error
	deleteByPinFn func(ctx context.Context, pinID string) error

	deleteByPinCalls []string
}

func (m *mockMediaRepository) Create(ctx context.Context, media *model.Media) error {
	if m.createFn != nil {
		return m.createFn(ctx, media)
	}
	return nil
}

func (m *mockMediaRepository) GetByID(ctx context.Context, id string) (*model.Media, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrMediaNotFound
}

func (m *mockMediaRepository) ListByPin(ctx context.Context, pinID string) ([]model.Media, error) {
	if m.listByPinFn != nil {
		return m.listByPinFn(ctx, pinID)
	}
	return []model.Media{}, nil
}

func (m *mockMediaRepository) ListByPins(ctx context.Context, pinIDs []string) (map[string][]model.Media, error) {
	if m.listByPinsFn != nil {
		return m.listByPinsFn(ctx, pinIDs)
	}
	return map[string][]model.Media{}, nil
}

func (m *mockMediaRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockMediaRepository) DeleteByPin(ctx context.Context, pinID string) error {
	m.deleteByPinCalls = append(m.deleteByPinCalls, pinID)
	if m.deleteByPinFn != nil {
		return m.deleteByPinFn(ctx, pinID)
	}
	return nil
}

func (m *mockMediaRepository) ExistsByBlobKey(ctx context.Context, blobKey string) (bool, error) {
	return false, nil
}

// ---------------------------------------------------------------------------
// EventRepository
// ---------------------------------------------------------------------------

type mockEventRepository struct {
	createFn          func(ctx context.Context, event *model.Event) error
	getByIDFn         func(ctx context.Context, id string) (*model.Event, error)
	listFn            func(ctx context.Context) ([]model.Event, error)
	searchFn          func(ctx context.Context, query string, limit int) ([]model.Event, error)
	hasAttendeeFn     func(ctx context.Context, eventID, userID string) (bool, error)
	addAttendeeFn     func(ctx context.Context, eventID, userID string) error
	removeAttendeeFn  func(ctx context.Context, eventID, userID string) error
	countAttendeesFn  func(ctx context.Context, eventID string) (int, error)
	checkAttendanceFn func(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *model.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrEventNotFound
}

func (m *mockEventRepository) List(ctx context.Context) ([]model.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Event{}, nil
}

func (m *mockEventRepository) Search(ctx context.Context, query string, limit int) ([]model.Event, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return []model.Event{}, nil
}

func (m *mockEventRepository) HasAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	if m.hasAttendeeFn != nil {
		return m.hasAttendeeFn(ctx, eventID, userID)
	}
	return false, nil
}

func (m *mockEventRepository) AddAttendee(ctx context.Context, eventID, userID string) error {
	if m.addAttendeeFn != nil {
		return m.addAttendeeFn(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventRepository) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	if m.removeAttendeeFn != nil {
		return m.removeAttendeeFn(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventRepository) CountAttendees(ctx context.Context, eventID string) (int, error) {
	if m.countAttendeesFn != nil {
		return m.countAttendeesFn(ctx, eventID)
	}
	return 0, nil
}

func (m *mockEventRepository) CheckAttendance(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error) {
	if m.checkAttendanceFn != nil {
		return m.checkAttendanceFn(ctx, userID, eventIDs)
	}
	result := make(map[string]bool)
	for _, id := range eventIDs {
		result[id] = false
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// MessageRepository
// ---------------------------------------------------------------------------

type mockMessageRepository struct {
	createFn            func(ctx context.Context, message *model.Message) error
	listBetweenFn       func(ctx context.Context, userID, peerID string) ([]model.Message, error)
	listByParticipantFn func(ctx context.Context, userID string) ([]model.Message, error)
}

func (m *mockMessageRepository) Create(ctx context.Context, message *model.Message) error {
	if m.createFn != nil {
		return m.createFn(ctx, message)
	}
	return nil
}

func (m *mockMessageRepository) ListBetween(ctx context.Context, userID, peerID string) ([]model.Message, error) {
	if m.listBetweenFn != nil {
		return m.listBetweenFn(ctx, userID, peerID)
	}
	return []model.Message{}, nil
}

func (m *mockMessageRepository) ListByParticipant(ctx context.Context, userID string) ([]model.Message, error) {
	if m.listByParticipantFn != nil {
		return m.listByParticipantFn(ctx, userID)
	}
	return []model.Message{}, nil
}

// ---------------------------------------------------------------------------
// Blob store
// ---------------------------------------------------------------------------

type mockBlobStore struct {
	uploadFn func(ctx context.Context, data []byte, contentType string) (string, error)
	fetchFn  func(ctx context.Context, key string) ([]byte, string, error)
	deleteFn func(ctx context.Context, key string) error

	uploads []string
}

func (m *mockBlobStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if m.uploadFn != nil {
		key, err := m.uploadFn(ctx, data, contentType)
		if err == nil {
			m.uploads = append(m.uploads, key)
		}
		return key, err
	}
	m.uploads = append(m.uploads, "blob-key")
	return "blob-key", nil
}

func (m *mockBlobStore) Fetch(ctx context.Context, key string) ([]byte, string, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, key)
	}
	return []byte("blob-bytes"), "image/jpeg", nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Queue publisher
// ---------------------------------------------------------------------------

type mockPublisher struct {
	publishFn func(ctx context.Context, stream string, event queue.CleanupEvent) (string, error)

	published []queue.CleanupEvent
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.CleanupEvent) (string, error) {
	m.published = append(m.published, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, stream, event)
	}
	return "1-0", nil
}
