package repositories

import (
	"errors"
	"fmt"
	"time"

	"microblog/internal/models"

	"gorm.io/gorm"
)

// GORMRelationshipRepository is a GORM implementation of RelationshipRepository.
// Pair uniqueness is enforced by the composite unique index on the
// relationships table, not by any locking here.
type GORMRelationshipRepository struct {
	db *gorm.DB
}

// NewGORMRelationshipRepository creates a new instance of GORMRelationshipRepository.
func NewGORMRelationshipRepository(db *gorm.DB) *GORMRelationshipRepository {
	return &GORMRelationshipRepository{
		db: db,
	}
}

// Create inserts a follow edge. A uniqueness violation is reported as
// ErrDuplicate so callers can distinguish a lost race from a real failure.
func (r *GORMRelationshipRepository) Create(rel *models.Relationship) error {
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}
	if err := r.db.Create(rel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("relationship %s -> %s: %w", rel.FollowerID, rel.FollowedID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

// Delete removes the edge if present and reports whether a row was removed.
// Deleting an absent edge is not an error.
func (r *GORMRelationshipRepository) Delete(followerID, followedID string) (bool, error) {
	res := r.db.Delete(&models.Relationship{}, "follower_id = ? AND followed_id = ?", followerID, followedID)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete relationship: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the follow edge is present.
func (r *GORMRelationshipRepository) Exists(followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Relationship{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check relationship existence: %w", err)
	}
	return count > 0, nil
}

// CountFollowing counts the users that userID follows. Counts are live
// aggregation queries, never cached counters.
func (r *GORMRelationshipRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Relationship{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count following for user %s: %w", userID, err)
	}
	return count, nil
}

// CountFollowers counts the users that follow userID.
func (r *GORMRelationshipRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Relationship{}).Where("followed_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count followers for user %s: %w", userID, err)
	}
	return count, nil
}

// GetFollowing retrieves the users that userID follows, most recently
// followed first.
func (r *GORMRelationshipRepository) GetFollowing(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN relationships ON relationships.followed_id = users.id").
		Where("relationships.follower_id = ?", userID).
		Order("relationships.created_at desc, relationships.id desc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get following for user %s: %w", userID, err)
	}
	return users, nil
}

// GetFollowers retrieves the users that follow userID, most recent
// follower first.
func (r *GORMRelationshipRepository) GetFollowers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN relationships ON relationships.follower_id = users.id").
		Where("relationships.followed_id = ?", userID).
		Order("relationships.created_at desc, relationships.id desc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get followers for user %s: %w", userID, err)
	}
	return users, nil
}

// FollowingIDs retrieves just the IDs of the users that userID follows,
// used by the feed to bound its author set.
func (r *GORMRelationshipRepository) FollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Relationship{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get following IDs for user %s: %w", userID, err)
	}
	return ids, nil
}
