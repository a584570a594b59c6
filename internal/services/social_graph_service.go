package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/pkg/pagination"
)

// EventPublisher publishes activity events for downstream consumers.
// *rabbitmq.Client satisfies it; services treat a nil publisher as "no
// messaging configured" and event delivery is always best-effort.
type EventPublisher interface {
	Publish(event string, body []byte) error
}

// SocialGraphService manages follow/unfollow edges and their derived
// counts and listings.
type SocialGraphService struct {
	relRepo  repositories.RelationshipRepository
	userRepo repositories.UserRepository
	mqClient EventPublisher
	pageSize int
}

// NewSocialGraphService creates a new SocialGraphService. pageSize is the
// deployment-time page size used by the listing operations.
func NewSocialGraphService(relRepo repositories.RelationshipRepository, userRepo repositories.UserRepository, mqClient EventPublisher, pageSize int) *SocialGraphService {
	return &SocialGraphService{
		relRepo:  relRepo,
		userRepo: userRepo,
		mqClient: mqClient,
		pageSize: pageSize,
	}
}

// Follow creates the follow edge from followerID to followedID. Following
// yourself fails with ErrSelfFollow; following a user you already follow is
// a successful no-op. Uniqueness under concurrent calls is enforced by the
// store's unique index, so a lost race is also treated as a no-op.
func (s *SocialGraphService) Follow(followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}
	if _, err := s.userRepo.GetByID(followerID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(followedID); err != nil {
		return err
	}

	exists, err := s.relRepo.Exists(followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to check existing relationship: %w", err)
	}
	if exists {
		return nil
	}

	rel := &models.Relationship{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	if err := s.relRepo.Create(rel); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// A concurrent follow won the race; the edge is in place.
			return nil
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	s.publish("user.followed", map[string]interface{}{
		"follower_id": followerID,
		"followed_id": followedID,
	})
	return nil
}

// Unfollow removes the follow edge if present. Unfollowing a user you do
// not follow is a successful no-op, not an error.
func (s *SocialGraphService) Unfollow(followerID, followedID string) error {
	removed, err := s.relRepo.Delete(followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if removed {
		s.publish("user.unfollowed", map[string]interface{}{
			"follower_id": followerID,
			"followed_id": followedID,
		})
	}
	return nil
}

// IsFollowing reports whether followerID follows followedID.
func (s *SocialGraphService) IsFollowing(followerID, followedID string) (bool, error) {
	return s.relRepo.Exists(followerID, followedID)
}

// FollowingCount returns how many users userID follows, computed by a live
// aggregation query so it is always consistent with the current edge set.
func (s *SocialGraphService) FollowingCount(userID string) (int64, error) {
	return s.relRepo.CountFollowing(userID)
}

// FollowerCount returns how many users follow userID.
func (s *SocialGraphService) FollowerCount(userID string) (int64, error) {
	return s.relRepo.CountFollowers(userID)
}

// ListFollowing returns one page of the users that userID follows, most
// recently followed first.
func (s *SocialGraphService) ListFollowing(userID string, page int) (pagination.Page[models.User], error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return pagination.Page[models.User]{}, err
	}
	users, err := s.relRepo.GetFollowing(userID)
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return pagination.Paginate(users, page, s.pageSize)
}

// ListFollowers returns one page of the users that follow userID, most
// recent follower first.
func (s *SocialGraphService) ListFollowers(userID string, page int) (pagination.Page[models.User], error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return pagination.Page[models.User]{}, err
	}
	users, err := s.relRepo.GetFollowers(userID)
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return pagination.Paginate(users, page, s.pageSize)
}

// publish sends an activity event without failing the calling operation.
func (s *SocialGraphService) publish(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.mqClient.Publish(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
