package repositories

import (
	"errors"
	"fmt"
	"time"

	"microblog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMicropostRepository is a GORM implementation of MicropostRepository.
type GORMMicropostRepository struct {
	db *gorm.DB
}

// NewGORMMicropostRepository creates a new instance of GORMMicropostRepository.
func NewGORMMicropostRepository(db *gorm.DB) *GORMMicropostRepository {
	return &GORMMicropostRepository{
		db: db,
	}
}

// Create creates a new micropost in the database.
func (r *GORMMicropostRepository) Create(post *models.Micropost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create micropost: %w", err)
	}
	return nil
}

// GetByID retrieves a single micropost by its ID from the database.
func (r *GORMMicropostRepository) GetByID(id string) (*models.Micropost, error) {
	var post models.Micropost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("micropost with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get micropost by ID %s: %w", id, err)
	}
	return &post, nil
}

// GetByUser retrieves a user's microposts, newest first.
func (r *GORMMicropostRepository) GetByUser(userID string) ([]models.Micropost, error) {
	var posts []models.Micropost
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get microposts for user %s: %w", userID, err)
	}
	return posts, nil
}

// GetByAuthors retrieves the microposts of every author in authorIDs,
// newest first. An empty author set yields an empty result.
func (r *GORMMicropostRepository) GetByAuthors(authorIDs []string) ([]models.Micropost, error) {
	if len(authorIDs) == 0 {
		return []models.Micropost{}, nil
	}
	var posts []models.Micropost
	if err := r.db.Where("user_id IN ?", authorIDs).Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get microposts by authors: %w", err)
	}
	return posts, nil
}

// CountByUser counts a user's microposts with a live aggregation query.
func (r *GORMMicropostRepository) CountByUser(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Micropost{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count microposts for user %s: %w", userID, err)
	}
	return count, nil
}

// Delete deletes a micropost by its ID from the database.
func (r *GORMMicropostRepository) Delete(id string) error {
	res := r.db.Delete(&models.Micropost{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete micropost: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("micropost with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
