package services

import (
	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/pkg/pagination"
)

// FeedService composes the home feed for a user: their own microposts plus
// the microposts of everyone they follow, newest first. It only reads;
// nothing here mutates state.
type FeedService struct {
	userRepo repositories.UserRepository
	postRepo repositories.MicropostRepository
	relRepo  repositories.RelationshipRepository
	pageSize int
}

// NewFeedService creates a new FeedService.
func NewFeedService(userRepo repositories.UserRepository, postRepo repositories.MicropostRepository, relRepo repositories.RelationshipRepository, pageSize int) *FeedService {
	return &FeedService{
		userRepo: userRepo,
		postRepo: postRepo,
		relRepo:  relRepo,
		pageSize: pageSize,
	}
}

// HomeFeed returns one page of the user's feed, ordered by creation time
// descending with micropost ID descending as tie-break. A user following
// nobody sees only their own posts; a user with no posts sees only the
// posts of those they follow.
func (s *FeedService) HomeFeed(userID string, page int) (pagination.Page[models.Micropost], error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return pagination.Page[models.Micropost]{}, err
	}

	authorIDs, err := s.relRepo.FollowingIDs(userID)
	if err != nil {
		return pagination.Page[models.Micropost]{}, err
	}
	authorIDs = append(authorIDs, userID)

	posts, err := s.postRepo.GetByAuthors(authorIDs)
	if err != nil {
		return pagination.Page[models.Micropost]{}, err
	}
	return pagination.Paginate(posts, page, s.pageSize)
}
