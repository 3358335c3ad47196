package service

import (
	"context"
	"fmt"

	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/repository"
)

// VisibilityService decides whether a viewer may see a pin.
//
// Rules, in priority order:
//   - the owner always sees their own pin
//   - private pins are owner-only
//   - friends pins require an accepted friendship with the owner
//   - public pins are visible to everyone, guests included
type VisibilityService struct {
	friendRepo repository.FriendRepository
}

func NewVisibilityService(friendRepo repository.FriendRepository) *VisibilityService {
	return &VisibilityService{friendRepo: friendRepo}
}

// CanView returns nil if the viewer may see the pin, or
// model.ErrPinAccessDenied if not.
func (s *VisibilityService) CanView(ctx context.Context, pin *model.Pin, viewer *model.User) error {
	if pin.OwnerID == viewer.ID {
		return nil
	}

	switch pin.Privacy {
	case model.PrivacyPublic:
		return nil
	case model.PrivacyFriends:
		friends, err := s.friendRepo.AreFriends(ctx, pin.OwnerID, viewer.ID)
		if err != nil {
			return fmt.Errorf("failed to check friendship: %w", err)
		}
		if !friends {
			return model.ErrPinAccessDenied
		}
		return nil
	default:
		// Private, or any unknown tier, stays owner-only.
		return model.ErrPinAccessDenied
	}
}
