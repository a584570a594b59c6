package services

import (
	"errors"
	"fmt"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/pkg/pagination"

	"golang.org/x/crypto/bcrypt"
)

// Profile is a user together with the live counts shown on their page.
type Profile struct {
	User           models.User `json:"user"`
	MicropostCount int64       `json:"micropost_count"`
	FollowerCount  int64       `json:"follower_count"`
	FollowingCount int64       `json:"following_count"`
}

// UserService handles business logic around user profiles and accounts.
type UserService struct {
	userRepo repositories.UserRepository
	postRepo repositories.MicropostRepository
	relRepo  repositories.RelationshipRepository
	pageSize int
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, postRepo repositories.MicropostRepository, relRepo repositories.RelationshipRepository, pageSize int) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		relRepo:  relRepo,
		pageSize: pageSize,
	}
}

// GetProfile returns a user with their micropost, follower and following
// counts. Counts are computed at read time, never cached.
func (s *UserService) GetProfile(id string) (*Profile, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	postCount, err := s.postRepo.CountByUser(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count microposts: %w", err)
	}
	followerCount, err := s.relRepo.CountFollowers(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	followingCount, err := s.relRepo.CountFollowing(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	user.Password = "" // Never expose the hash
	return &Profile{
		User:           *user,
		MicropostCount: postCount,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

// ListUsers returns one page of all users, ordered by name.
func (s *UserService) ListUsers(page int) (pagination.Page[models.User], error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return pagination.Paginate(users, page, s.pageSize)
}

// ProfileUpdate carries the editable account fields. Empty fields are left
// unchanged.
type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfile edits a user's name, email or password. Users may only edit
// themselves; a changed email is normalized, and a changed password is
// re-hashed before storage.
func (s *UserService) UpdateProfile(id, requesterID string, upd ProfileUpdate) (*models.User, error) {
	if id != requesterID {
		return nil, fmt.Errorf("user %s cannot edit user %s: %w", requesterID, id, ErrForbidden)
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != "" && upd.Name != user.Name {
		if existing, err := s.userRepo.GetByName(upd.Name); err == nil && existing != nil {
			return nil, fmt.Errorf("name '%s': %w", upd.Name, ErrNameTaken)
		}
		user.Name = upd.Name
	}
	if upd.Email != "" {
		email := NormalizeEmail(upd.Email)
		if email != user.Email {
			if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
				return nil, fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
			}
			user.Email = email
		}
	}
	if upd.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		// An edit racing this one can still hit a unique index.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("profile edit race: %w", ErrEmailTaken)
		}
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// DeleteUser removes an account and, through the repository's explicit
// cascade, its microposts and follow edges. Users may delete themselves;
// admins may delete anyone.
func (s *UserService) DeleteUser(id, requesterID string) error {
	if id != requesterID {
		requester, err := s.userRepo.GetByID(requesterID)
		if err != nil {
			return err
		}
		if !requester.Admin {
			return fmt.Errorf("user %s cannot delete user %s: %w", requesterID, id, ErrForbidden)
		}
	}
	return s.userRepo.Delete(id)
}
