package services_test

import (
	"fmt"
	"testing"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event string, body []byte) error {
	args := m.Called(event, body)
	return args.Error(0)
}

// newSocialGraphFixture wires a SocialGraphService over the in-memory
// repositories with the given users pre-created.
func newSocialGraphFixture(t *testing.T, pageSize int, names ...string) (*services.SocialGraphService, []string) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	ids := make([]string, 0, len(names))
	for _, name := range names {
		user := &models.User{
			Name:     name,
			Email:    name + "@example.com",
			Password: "irrelevant",
		}
		assert.NoError(t, userRepo.Create(user))
		ids = append(ids, user.ID)
	}

	relRepo := repositories.NewMockRelationshipRepository(userRepo)
	return services.NewSocialGraphService(relRepo, userRepo, nil, pageSize), ids
}

func TestSocialGraphService_SelfFollow(t *testing.T) {
	svc, ids := newSocialGraphFixture(t, 25, "alice")

	err := svc.Follow(ids[0], ids[0])
	assert.ErrorIs(t, err, services.ErrSelfFollow)

	count, err := svc.FollowingCount(ids[0])
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestSocialGraphService_FollowIsIdempotent(t *testing.T) {
	svc, ids := newSocialGraphFixture(t, 25, "alice", "bob")
	alice, bob := ids[0], ids[1]

	assert.NoError(t, svc.Follow(alice, bob))
	assert.NoError(t, svc.Follow(alice, bob)) // second follow is a no-op

	following, err := svc.IsFollowing(alice, bob)
	assert.NoError(t, err)
	assert.True(t, following)

	followingCount, err := svc.FollowingCount(alice)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), followingCount)

	followerCount, err := svc.FollowerCount(bob)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), followerCount)
}

func TestSocialGraphService_FollowUnfollowRoundTrip(t *testing.T) {
	svc, ids := newSocialGraphFixture(t, 25, "alice", "bob")
	alice, bob := ids[0], ids[1]

	followingBefore, err := svc.FollowingCount(alice)
	assert.NoError(t, err)
	followersBefore, err := svc.FollowerCount(bob)
	assert.NoError(t, err)

	assert.NoError(t, svc.Follow(alice, bob))
	assert.NoError(t, svc.Unfollow(alice, bob))

	following, err := svc.IsFollowing(alice, bob)
	assert.NoError(t, err)
	assert.False(t, following)

	followingAfter, err := svc.FollowingCount(alice)
	assert.NoError(t, err)
	assert.Equal(t, followingBefore, followingAfter)

	followersAfter, err := svc.FollowerCount(bob)
	assert.NoError(t, err)
	assert.Equal(t, followersBefore, followersAfter)
}

func TestSocialGraphService_UnfollowAbsentEdgeIsNoop(t *testing.T) {
	svc, ids := newSocialGraphFixture(t, 25, "alice", "bob")
	alice, bob := ids[0], ids[1]

	assert.NoError(t, svc.Unfollow(alice, bob))

	count, err := svc.FollowerCount(bob)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestSocialGraphService_FollowUnknownUser(t *testing.T) {
	svc, ids := newSocialGraphFixture(t, 25, "alice")

	err := svc.Follow(ids[0], "no-such-user")
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = svc.Follow("no-such-user", ids[0])
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSocialGraphService_ListFollowersPagination(t *testing.T) {
	// 30 followers at page size 25: a full first page, then five stragglers.
	names := []string{"target"}
	for i := 0; i < 30; i++ {
		names = append(names, fmt.Sprintf("follower-%02d", i))
	}
	svc, ids := newSocialGraphFixture(t, 25, names...)
	target := ids[0]

	for _, followerID := range ids[1:] {
		assert.NoError(t, svc.Follow(followerID, target))
	}

	page, err := svc.ListFollowers(target, 1)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 25)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 30, page.TotalItems)

	page, err = svc.ListFollowers(target, 2)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 5)

	// Beyond the last page: empty, not an error.
	page, err = svc.ListFollowers(target, 3)
	assert.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalPages)

	_, err = svc.ListFollowers(target, 0)
	assert.ErrorIs(t, err, services.ErrInvalidPage)
}

func TestSocialGraphService_ListingIsStable(t *testing.T) {
	svc, ids := newSocialGraphFixture(t, 25, "alice", "bob", "carol")
	alice := ids[0]

	assert.NoError(t, svc.Follow(alice, ids[1]))
	assert.NoError(t, svc.Follow(alice, ids[2]))

	first, err := svc.ListFollowing(alice, 1)
	assert.NoError(t, err)
	second, err := svc.ListFollowing(alice, 1)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first.Items, 2)
}

func TestSocialGraphService_PublishesFollowEventOnce(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "bob", Email: "bob@example.com", Password: "x"}
	assert.NoError(t, userRepo.Create(alice))
	assert.NoError(t, userRepo.Create(bob))
	relRepo := repositories.NewMockRelationshipRepository(userRepo)

	mockMQ := new(MockEventPublisher)
	mockMQ.On("Publish", "user.followed", mock.Anything).Return(nil).Once()
	mockMQ.On("Publish", "user.unfollowed", mock.Anything).Return(nil).Once()

	svc := services.NewSocialGraphService(relRepo, userRepo, mockMQ, 25)

	assert.NoError(t, svc.Follow(alice.ID, bob.ID))
	assert.NoError(t, svc.Follow(alice.ID, bob.ID)) // no second event
	assert.NoError(t, svc.Unfollow(alice.ID, bob.ID))
	assert.NoError(t, svc.Unfollow(alice.ID, bob.ID)) // no event for a no-op

	mockMQ.AssertExpectations(t)
}

// staleExistsRelationshipRepo simulates a follow racing another: the
// existence check misses the edge a concurrent request just inserted, so
// the service's insert runs into the store's uniqueness constraint.
type staleExistsRelationshipRepo struct {
	repositories.RelationshipRepository
}

func (r staleExistsRelationshipRepo) Exists(followerID, followedID string) (bool, error) {
	return false, nil
}

func TestSocialGraphService_FollowLostRaceIsNoop(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "bob", Email: "bob@example.com", Password: "x"}
	assert.NoError(t, userRepo.Create(alice))
	assert.NoError(t, userRepo.Create(bob))

	relRepo := repositories.NewMockRelationshipRepository(userRepo)
	// The concurrent winner's edge is already in the store.
	assert.NoError(t, relRepo.Create(&models.Relationship{FollowerID: alice.ID, FollowedID: bob.ID}))

	mockMQ := new(MockEventPublisher)
	svc := services.NewSocialGraphService(staleExistsRelationshipRepo{relRepo}, userRepo, mockMQ, 25)

	// The loser sees a duplicate-key failure from the insert and treats
	// it as success; no second edge, no second event.
	assert.NoError(t, svc.Follow(alice.ID, bob.ID))

	count, err := relRepo.CountFollowing(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	mockMQ.AssertExpectations(t)
}

func TestSocialGraphService_PublishFailureDoesNotFailFollow(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "bob", Email: "bob@example.com", Password: "x"}
	assert.NoError(t, userRepo.Create(alice))
	assert.NoError(t, userRepo.Create(bob))
	relRepo := repositories.NewMockRelationshipRepository(userRepo)

	mockMQ := new(MockEventPublisher)
	mockMQ.On("Publish", "user.followed", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	svc := services.NewSocialGraphService(relRepo, userRepo, mockMQ, 25)

	assert.NoError(t, svc.Follow(alice.ID, bob.ID))

	following, err := svc.IsFollowing(alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.True(t, following)
	mockMQ.AssertExpectations(t)
}
