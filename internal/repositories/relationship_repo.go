package repositories

import "microblog/internal/models"

// RelationshipRepository defines the interface for follow-edge data access.
// The (follower, followed) pair is unique; Create returns ErrDuplicate when
// the edge already exists so the service layer can treat a racing follow as
// a no-op. Listing methods order by edge creation time descending with the
// edge ID descending as a stable tie-break.
type RelationshipRepository interface {
	Create(rel *models.Relationship) error
	Delete(followerID, followedID string) (bool, error)
	Exists(followerID, followedID string) (bool, error)
	CountFollowing(userID string) (int64, error)
	CountFollowers(userID string) (int64, error)
	GetFollowing(userID string) ([]models.User, error)
	GetFollowers(userID string) ([]models.User, error)
	FollowingIDs(userID string) ([]string, error)
}
