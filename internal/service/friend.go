package service

import (
	"context"
	"fmt"
	"log"

	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/repository"
)

// FriendService handles the friend request lifecycle: request, accept,
// and listing. There is no reject, cancel or unfriend operation.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// Request records a pending friend request from the requester to the
// target. Duplicate requests are absorbed silently.
func (s *FriendService) Request(ctx context.Context, requesterID, targetID string) error {
	if requesterID == targetID {
		return model.ErrSelfFriendRequest
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	friends, err := s.friendRepo.AreFriends(ctx, requesterID, targetID)
	if err != nil {
		return fmt.Errorf("failed to check friendship: %w", err)
	}
	if friends {
		return model.ErrAlreadyFriends
	}

	return s.friendRepo.AddRequest(ctx, targetID, requesterID)
}

// Accept converts a pending request into a friendship. The friendship
// is stored as two directed edges; they are written one after the
// other, so a crash between the writes leaves a one-sided edge. The
// second write is retried on the next accept of the same pair because
// edge inserts are idempotent.
func (s *FriendService) Accept(ctx context.Context, accepterID, requesterID string) error {
	pending, err := s.friendRepo.HasRequest(ctx, accepterID, requesterID)
	if err != nil {
		return fmt.Errorf("failed to check request: %w", err)
	}
	if !pending {
		return model.ErrNoPendingRequest
	}

	if err := s.friendRepo.AddFriend(ctx, accepterID, requesterID); err != nil {
		return err
	}
	if err := s.friendRepo.RemoveRequest(ctx, accepterID, requesterID); err != nil {
		// The forward edge already exists; a stale request row only
		// re-surfaces in the pending list.
		log.Printf("[FriendService] Failed to remove accepted request: accepter=%s requester=%s err=%v",
			accepterID, requesterID, err)
	}
	if err := s.friendRepo.AddFriend(ctx, requesterID, accepterID); err != nil {
		log.Printf("[FriendService] Reverse edge write failed, friendship one-sided: accepter=%s requester=%s err=%v",
			accepterID, requesterID, err)
		return err
	}

	return nil
}

// ListFriends returns summaries of the user's friends.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]model.UserSummary, error) {
	ids, err := s.friendRepo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.UserSummary{}, nil
	}
	return s.userRepo.GetByIDs(ctx, ids)
}

// ListRequests returns summaries of users with pending requests to the
// given user.
func (s *FriendService) ListRequests(ctx context.Context, userID string) ([]model.UserSummary, error) {
	ids, err := s.friendRepo.RequestIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.UserSummary{}, nil
	}
	return s.userRepo.GetByIDs(ctx, ids)
}
