package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/w24010/Mapmoments/internal/model"
)

func TestMessageService_Send(t *testing.T) {
	sender := &model.User{ID: "alice", Username: "alice"}

	tests := []struct {
		name       string
		req        *model.SendMessageRequest
		areFriends bool
		recipient  *model.User
		wantErr    error
	}{
		{
			name:       "message to friend",
			req:        &model.SendMessageRequest{RecipientID: "bob", Content: "hey"},
			areFriends: true,
			recipient:  &model.User{ID: "bob", Username: "bob"},
		},
		{
			name:       "non-friend rejected",
			req:        &model.SendMessageRequest{RecipientID: "carol", Content: "hey"},
			areFriends: false,
			wantErr:    model.ErrNotFriends,
		},
		{
			name:       "recipient gone",
			req:        &model.SendMessageRequest{RecipientID: "ghost", Content: "hey"},
			areFriends: true,
			recipient:  nil,
			wantErr:    model.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			friendRepo := &mockFriendRepository{
				areFriendsFn: func(ctx context.Context, userID, friendID string) (bool, error) {
					return tt.areFriends, nil
				},
			}
			userRepo := &mockUserRepository{
				getByIDFn: func(ctx context.Context, id string) (*model.User, error) {
					if tt.recipient == nil {
						return nil, model.ErrUserNotFound
					}
					return tt.recipient, nil
				},
			}
			svc := NewMessageService(&mockMessageRepository{}, friendRepo, userRepo)

			message, err := svc.Send(context.Background(), sender, tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if message.SenderUsername != "alice" || message.RecipientUsername != "bob" {
				t.Errorf("usernames not denormalized onto message: %+v", message)
			}
		})
	}
}

func TestMessageService_Send_BlankContent(t *testing.T) {
	svc := NewMessageService(&mockMessageRepository{}, &mockFriendRepository{}, &mockUserRepository{})

	_, err := svc.Send(context.Background(), &model.User{ID: "alice"}, &model.SendMessageRequest{
		RecipientID: "bob",
		Content:     "   ",
	})
	if err == nil {
		t.Error("expected validation error for blank content")
	}
}

func TestMessageService_Thread_FriendsOnly(t *testing.T) {
	friendRepo := &mockFriendRepository{
		areFriendsFn: func(ctx context.Context, userID, friendID string) (bool, error) {
			return friendID == "bob", nil
		},
	}
	messageRepo := &mockMessageRepository{
		listBetweenFn: func(ctx context.Context, userID, peerID string) ([]model.Message, error) {
			return []model.Message{{ID: "m1", SenderID: userID, RecipientID: peerID}}, nil
		},
	}
	svc := NewMessageService(messageRepo, friendRepo, &mockUserRepository{})
	alice := &model.User{ID: "alice"}

	if _, err := svc.Thread(context.Background(), alice, "carol"); !errors.Is(err, model.ErrNotFriends) {
		t.Errorf("error = %v, want %v", err, model.ErrNotFriends)
	}

	thread, err := svc.Thread(context.Background(), alice, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thread) != 1 {
		t.Errorf("expected 1 message, got %d", len(thread))
	}
}

func TestMessageService_Conversations_LatestPerPeer(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	_ = t3

	// A→B at t1, B→A at t2, B→C at t3. For A's view the repo returns
	// A's messages newest first.
	messageRepo := &mockMessageRepository{
		listByParticipantFn: func(ctx context.Context, userID string) ([]model.Message, error) {
			return []model.Message{
				{ID: "m2", SenderID: "bob", RecipientID: "alice", Content: "hi back", CreatedAt: t2},
				{ID: "m1", SenderID: "alice", RecipientID: "bob", Content: "hi", CreatedAt: t1},
			}, nil
		},
	}
	svc := NewMessageService(messageRepo, &mockFriendRepository{}, &mockUserRepository{})

	conversations, err := svc.Conversations(context.Background(), &model.User{ID: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly one record for peer B (the t2 message), none for C.
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(conversations))
	}
	if conversations[0].ID != "m2" {
		t.Errorf("conversation message = %s, want the latest (m2)", conversations[0].ID)
	}
}

func TestMessageService_Conversations_PeerResolution(t *testing.T) {
	// The peer is whichever side of the message isn't the viewer,
	// regardless of direction.
	now := time.Now()
	messageRepo := &mockMessageRepository{
		listByParticipantFn: func(ctx context.Context, userID string) ([]model.Message, error) {
			return []model.Message{
				{ID: "m3", SenderID: "alice", RecipientID: "carol", CreatedAt: now},
				{ID: "m2", SenderID: "bob", RecipientID: "alice", CreatedAt: now.Add(-time.Minute)},
				{ID: "m1", SenderID: "alice", RecipientID: "bob", CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	svc := NewMessageService(messageRepo, &mockFriendRepository{}, &mockUserRepository{})

	conversations, err := svc.Conversations(context.Background(), &model.User{ID: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(conversations))
	}
	if conversations[0].ID != "m3" || conversations[1].ID != "m2" {
		t.Errorf("conversations = [%s %s], want [m3 m2]", conversations[0].ID, conversations[1].ID)
	}
}
