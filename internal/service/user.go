package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/w24010/Mapmoments/internal/blob"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/queue"
	"github.com/w24010/Mapmoments/internal/repository"
)

// UserService handles business logic for user accounts and profile photos.
type UserService struct {
	repo      repository.UserRepository
	blobs     blob.Store
	publisher queue.Publisher
}

func NewUserService(repo repository.UserRepository, blobs blob.Store, publisher queue.Publisher) *UserService {
	return &UserService{
		repo:      repo,
		blobs:     blobs,
		publisher: publisher,
	}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, model.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		PasswordHashed: string(hashedPassword),
		IsGuest:        false,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with email and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Don't reveal whether the email exists or not
		return nil, model.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GuestLogin creates a throwaway guest account. Guests browse public
// content but keep their own pins sandboxed in the feed.
func (s *UserService) GuestLogin(ctx context.Context) (*model.User, error) {
	id := uuid.NewString()
	name := "Guest_" + id[:8]

	// Guests never log in with a password; store a hash of a random
	// value so the column is still populated.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             id,
		Username:       name,
		Email:          name + "@guest.local",
		PasswordHashed: string(hashedPassword),
		IsGuest:        true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create guest user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Search finds users by username or email, excluding the searcher.
func (s *UserService) Search(ctx context.Context, query, viewerID string) ([]model.UserSummary, error) {
	return s.repo.Search(ctx, query, viewerID, model.UserSearchLimit)
}

// UploadProfilePhoto normalizes the image to a square JPEG, stores it
// and updates the user's profile photo key. The previous photo's blob
// is handed to the cleanup worker.
func (s *UserService) UploadProfilePhoto(ctx context.Context, user *model.User, data []byte, contentType string) (string, error) {
	if !model.IsImageContentType(contentType) {
		return "", model.ErrUnsupportedMediaType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	normalized := imaging.Fill(img, model.ProfilePhotoSize, model.ProfilePhotoSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, normalized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	key, err := s.blobs.Upload(ctx, buf.Bytes(), model.ContentTypeJPEG)
	if err != nil {
		return "", fmt.Errorf("failed to store profile photo: %w", err)
	}

	if err := s.repo.SetProfilePhoto(ctx, user.ID, key); err != nil {
		return "", err
	}

	if old := user.ProfilePhotoKey; old != nil && *old != key {
		// Cleanup is best-effort; an unreferenced blob only wastes space.
		if _, err := s.publisher.Publish(ctx, queue.StreamCleanup, queue.NewBlobsOrphanedEvent([]string{*old})); err != nil {
			log.Printf("[UserService] Failed to publish cleanup for old profile photo: user=%s err=%v", user.ID, err)
		}
	}

	return key, nil
}

// GetProfilePhoto returns the photo bytes and content type for a user.
func (s *UserService) GetProfilePhoto(ctx context.Context, userID string) ([]byte, string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user.ProfilePhotoKey == nil {
		return nil, "", model.ErrProfilePhotoNotFound
	}

	data, contentType, err := s.blobs.Fetch(ctx, *user.ProfilePhotoKey)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
