package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"microblog/internal/models"

	"github.com/google/uuid"
)

// MockMicropostRepository is an in-memory implementation of MicropostRepository.
type MockMicropostRepository struct {
	posts map[string]models.Micropost
	mu    sync.RWMutex
}

// NewMockMicropostRepository creates a new instance of MockMicropostRepository.
func NewMockMicropostRepository() *MockMicropostRepository {
	return &MockMicropostRepository{
		posts: make(map[string]models.Micropost),
	}
}

// Create adds a new micropost.
func (r *MockMicropostRepository) Create(post *models.Micropost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.posts[post.ID] = *post
	return nil
}

// GetByID returns a micropost by its ID.
func (r *MockMicropostRepository) GetByID(id string) (*models.Micropost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("micropost with ID %s: %w", id, ErrNotFound)
	}
	return &post, nil
}

// GetByUser returns a user's microposts, newest first.
func (r *MockMicropostRepository) GetByUser(userID string) ([]models.Micropost, error) {
	return r.GetByAuthors([]string{userID})
}

// GetByAuthors returns the microposts of every author in authorIDs, ordered
// by creation time descending with ID descending as tie-break.
func (r *MockMicropostRepository) GetByAuthors(authorIDs []string) ([]models.Micropost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}

	postList := make([]models.Micropost, 0)
	for _, p := range r.posts {
		if authors[p.UserID] {
			postList = append(postList, p)
		}
	}
	sort.Slice(postList, func(i, j int) bool {
		if !postList[i].CreatedAt.Equal(postList[j].CreatedAt) {
			return postList[i].CreatedAt.After(postList[j].CreatedAt)
		}
		return postList[i].ID > postList[j].ID
	})
	return postList, nil
}

// CountByUser counts a user's microposts.
func (r *MockMicropostRepository) CountByUser(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.posts {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

// Delete removes a micropost by its ID.
func (r *MockMicropostRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("micropost with ID %s: %w", id, ErrNotFound)
	}
	delete(r.posts, id)
	return nil
}
