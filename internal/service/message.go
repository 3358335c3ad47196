package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/repository"
)

// MessageService handles friend-only direct messages and conversation
// aggregation.
type MessageService struct {
	messageRepo repository.MessageRepository
	friendRepo  repository.FriendRepository
	userRepo    repository.UserRepository
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		friendRepo:  friendRepo,
		userRepo:    userRepo,
	}
}

// Send delivers a message to a friend. Messaging non-friends is not
// allowed.
func (s *MessageService) Send(ctx context.Context, sender *model.User, req *model.SendMessageRequest) (*model.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	friends, err := s.friendRepo.AreFriends(ctx, sender.ID, req.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !friends {
		return nil, model.ErrNotFriends
	}

	recipient, err := s.userRepo.GetByID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		ID:                uuid.NewString(),
		SenderID:          sender.ID,
		SenderUsername:    sender.Username,
		RecipientID:       recipient.ID,
		RecipientUsername: recipient.Username,
		Content:           req.Content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// Thread returns the full conversation with a friend, oldest first.
func (s *MessageService) Thread(ctx context.Context, user *model.User, peerID string) ([]model.Message, error) {
	friends, err := s.friendRepo.AreFriends(ctx, user.ID, peerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !friends {
		return nil, model.ErrNotFriends
	}

	return s.messageRepo.ListBetween(ctx, user.ID, peerID)
}

// Conversations returns the latest message per peer, newest
// conversation first. A peer appears exactly once no matter which
// direction the last message went.
func (s *MessageService) Conversations(ctx context.Context, user *model.User) ([]model.Message, error) {
	messages, err := s.messageRepo.ListByParticipant(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	conversations := []model.Message{}
	for _, m := range messages {
		peer := m.SenderID
		if peer == user.ID {
			peer = m.RecipientID
		}
		if seen[peer] {
			continue
		}
		seen[peer] = true
		conversations = append(conversations, m)
	}

	return conversations, nil
}
