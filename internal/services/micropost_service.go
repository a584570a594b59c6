package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/pkg/pagination"
)

// MaxContentLength is the longest micropost content accepted.
const MaxContentLength = 140

// MicropostService handles business logic related to microposts.
type MicropostService struct {
	userRepo repositories.UserRepository
	postRepo repositories.MicropostRepository
	mqClient EventPublisher
	pageSize int
}

// NewMicropostService creates a new MicropostService.
func NewMicropostService(userRepo repositories.UserRepository, postRepo repositories.MicropostRepository, mqClient EventPublisher, pageSize int) *MicropostService {
	return &MicropostService{
		userRepo: userRepo,
		postRepo: postRepo,
		mqClient: mqClient,
		pageSize: pageSize,
	}
}

// CreateMicropost creates a micropost owned by userID. Content must be
// non-blank and at most MaxContentLength characters regardless of what the
// transport layer validated.
func (s *MicropostService) CreateMicropost(userID, content string) (*models.Micropost, error) {
	if strings.TrimSpace(content) == "" || len([]rune(content)) > MaxContentLength {
		return nil, ErrInvalidContent
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	post := &models.Micropost{
		UserID:  userID,
		Content: content,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create micropost: %w", err)
	}

	if s.mqClient != nil {
		body, err := json.Marshal(map[string]interface{}{
			"micropost_id": post.ID,
			"user_id":      post.UserID,
		})
		if err != nil {
			log.Printf("Failed to marshal micropost.created event: %v", err)
		} else if err := s.mqClient.Publish("micropost.created", body); err != nil {
			log.Printf("Warning: Failed to publish micropost.created event for %s: %v", post.ID, err)
		}
	}

	return post, nil
}

// DeleteMicropost deletes a micropost. Only its owner may delete it; anyone
// else gets ErrForbidden.
func (s *MicropostService) DeleteMicropost(micropostID, requesterID string) error {
	post, err := s.postRepo.GetByID(micropostID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return fmt.Errorf("micropost %s belongs to another user: %w", micropostID, ErrForbidden)
	}
	return s.postRepo.Delete(micropostID)
}

// ListByUser returns one page of a user's own microposts, newest first.
func (s *MicropostService) ListByUser(userID string, page int) (pagination.Page[models.Micropost], error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return pagination.Page[models.Micropost]{}, err
	}
	posts, err := s.postRepo.GetByUser(userID)
	if err != nil {
		return pagination.Page[models.Micropost]{}, err
	}
	return pagination.Paginate(posts, page, s.pageSize)
}
