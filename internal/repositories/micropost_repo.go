package repositories

import "microblog/internal/models"

// MicropostRepository defines the interface for micropost data access.
// Listing methods return rows ordered newest first: creation timestamp
// descending with the micropost ID descending as a stable tie-break.
type MicropostRepository interface {
	Create(post *models.Micropost) error
	GetByID(id string) (*models.Micropost, error)
	GetByUser(userID string) ([]models.Micropost, error)
	GetByAuthors(authorIDs []string) ([]models.Micropost, error)
	CountByUser(userID string) (int64, error)
	Delete(id string) error
}
