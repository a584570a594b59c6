package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"microblog/internal/models"
)

// MockRelationshipRepository is an in-memory implementation of
// RelationshipRepository. It resolves followed/follower users through the
// given UserRepository, standing in for the SQL join of the GORM version.
type MockRelationshipRepository struct {
	users  UserRepository
	edges  []models.Relationship
	nextID uint
	mu     sync.RWMutex
}

// NewMockRelationshipRepository creates a new instance of MockRelationshipRepository.
func NewMockRelationshipRepository(users UserRepository) *MockRelationshipRepository {
	return &MockRelationshipRepository{
		users:  users,
		nextID: 1,
	}
}

// Create adds a follow edge, enforcing pair uniqueness like the database
// index does.
func (r *MockRelationshipRepository) Create(rel *models.Relationship) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.edges {
		if e.FollowerID == rel.FollowerID && e.FollowedID == rel.FollowedID {
			return fmt.Errorf("relationship %s -> %s: %w", rel.FollowerID, rel.FollowedID, ErrDuplicate)
		}
	}
	rel.ID = r.nextID
	r.nextID++
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}
	r.edges = append(r.edges, *rel)
	return nil
}

// Delete removes the edge if present and reports whether it was removed.
func (r *MockRelationshipRepository) Delete(followerID, followedID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.edges {
		if e.FollowerID == followerID && e.FollowedID == followedID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Exists reports whether the follow edge is present.
func (r *MockRelationshipRepository) Exists(followerID, followedID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.edges {
		if e.FollowerID == followerID && e.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

// CountFollowing counts the users that userID follows.
func (r *MockRelationshipRepository) CountFollowing(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, e := range r.edges {
		if e.FollowerID == userID {
			count++
		}
	}
	return count, nil
}

// CountFollowers counts the users that follow userID.
func (r *MockRelationshipRepository) CountFollowers(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, e := range r.edges {
		if e.FollowedID == userID {
			count++
		}
	}
	return count, nil
}

// GetFollowing returns the users that userID follows, most recently
// followed first.
func (r *MockRelationshipRepository) GetFollowing(userID string) ([]models.User, error) {
	return r.resolve(func(e models.Relationship) (bool, string) {
		return e.FollowerID == userID, e.FollowedID
	})
}

// GetFollowers returns the users that follow userID, most recent follower
// first.
func (r *MockRelationshipRepository) GetFollowers(userID string) ([]models.User, error) {
	return r.resolve(func(e models.Relationship) (bool, string) {
		return e.FollowedID == userID, e.FollowerID
	})
}

// FollowingIDs returns the IDs of the users that userID follows.
func (r *MockRelationshipRepository) FollowingIDs(userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for _, e := range r.edges {
		if e.FollowerID == userID {
			ids = append(ids, e.FollowedID)
		}
	}
	return ids, nil
}

// resolve collects the edges selected by match, orders them newest first and
// loads the user on the far end of each.
func (r *MockRelationshipRepository) resolve(match func(models.Relationship) (bool, string)) ([]models.User, error) {
	r.mu.RLock()
	selected := make([]models.Relationship, 0)
	for _, e := range r.edges {
		if ok, _ := match(e); ok {
			selected = append(selected, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(selected, func(i, j int) bool {
		if !selected[i].CreatedAt.Equal(selected[j].CreatedAt) {
			return selected[i].CreatedAt.After(selected[j].CreatedAt)
		}
		return selected[i].ID > selected[j].ID
	})

	users := make([]models.User, 0, len(selected))
	for _, e := range selected {
		_, otherID := match(e)
		user, err := r.users.GetByID(otherID)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}
