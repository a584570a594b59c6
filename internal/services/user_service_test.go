package services_test

import (
	"fmt"
	"testing"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/internal/services"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newUserServiceFixture(t *testing.T, pageSize int) (*services.UserService, *repositories.MockUserRepository, *repositories.MockMicropostRepository, *repositories.MockRelationshipRepository) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	postRepo := repositories.NewMockMicropostRepository()
	relRepo := repositories.NewMockRelationshipRepository(userRepo)
	return services.NewUserService(userRepo, postRepo, relRepo, pageSize), userRepo, postRepo, relRepo
}

func TestUserService_GetProfile(t *testing.T) {
	svc, userRepo, postRepo, relRepo := newUserServiceFixture(t, 30)

	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	bob := &models.User{Name: "bob", Email: "bob@example.com", Password: "hash"}
	assert.NoError(t, userRepo.Create(alice))
	assert.NoError(t, userRepo.Create(bob))

	assert.NoError(t, postRepo.Create(&models.Micropost{UserID: alice.ID, Content: "one"}))
	assert.NoError(t, postRepo.Create(&models.Micropost{UserID: alice.ID, Content: "two"}))
	assert.NoError(t, relRepo.Create(&models.Relationship{FollowerID: bob.ID, FollowedID: alice.ID}))
	assert.NoError(t, relRepo.Create(&models.Relationship{FollowerID: alice.ID, FollowedID: bob.ID}))

	profile, err := svc.GetProfile(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Name)
	assert.Empty(t, profile.User.Password)
	assert.Equal(t, int64(2), profile.MicropostCount)
	assert.Equal(t, int64(1), profile.FollowerCount)
	assert.Equal(t, int64(1), profile.FollowingCount)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	svc, _, _, _ := newUserServiceFixture(t, 30)

	_, err := svc.GetProfile("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUserService_ListUsersPagination(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceFixture(t, 25)

	for i := 0; i < 30; i++ {
		user := &models.User{
			Name:     fmt.Sprintf("user-%02d", i),
			Email:    fmt.Sprintf("user-%02d@example.com", i),
			Password: "hash",
		}
		assert.NoError(t, userRepo.Create(user))
	}

	page, err := svc.ListUsers(1)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 25)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "user-00", page.Items[0].Name)
	assert.Empty(t, page.Items[0].Password)

	page, err = svc.ListUsers(2)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, "user-29", page.Items[4].Name)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceFixture(t, 30)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: string(hashed)}
	assert.NoError(t, userRepo.Create(alice))

	updated, err := svc.UpdateProfile(alice.ID, alice.ID, services.ProfileUpdate{
		Name:  "alice-renamed",
		Email: "Alice-New@Example.COM",
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice-renamed", updated.Name)
	// Email comes out normalized and the returned user carries no hash.
	assert.Equal(t, "alice-new@example.com", updated.Email)
	assert.Empty(t, updated.Password)

	stored, err := userRepo.GetByID(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice-new@example.com", stored.Email)
	// Untouched fields survive the edit.
	assert.Equal(t, string(hashed), stored.Password)
}

func TestUserService_UpdateProfile_ChangesPassword(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceFixture(t, 30)

	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "old-hash"}
	assert.NoError(t, userRepo.Create(alice))

	_, err := svc.UpdateProfile(alice.ID, alice.ID, services.ProfileUpdate{Password: "new-password"})
	assert.NoError(t, err)

	stored, err := userRepo.GetByID(alice.ID)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-password")))
}

func TestUserService_UpdateProfile_SelfOnly(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceFixture(t, 30)

	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	assert.NoError(t, userRepo.Create(alice))

	_, err := svc.UpdateProfile(alice.ID, "somebody-else", services.ProfileUpdate{Name: "hijacked"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	stored, err := userRepo.GetByID(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", stored.Name)
}

func TestUserService_UpdateProfile_TakenNameAndEmail(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceFixture(t, 30)

	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	bob := &models.User{Name: "bob", Email: "bob@example.com", Password: "hash"}
	assert.NoError(t, userRepo.Create(alice))
	assert.NoError(t, userRepo.Create(bob))

	_, err := svc.UpdateProfile(alice.ID, alice.ID, services.ProfileUpdate{Name: "bob"})
	assert.ErrorIs(t, err, services.ErrNameTaken)

	_, err = svc.UpdateProfile(alice.ID, alice.ID, services.ProfileUpdate{Email: "Bob@example.com"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserService_DeleteUser_AdminMayDeleteOthers(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceFixture(t, 30)

	admin := &models.User{Name: "admin", Email: "admin@example.com", Password: "hash", Admin: true}
	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	assert.NoError(t, userRepo.Create(admin))
	assert.NoError(t, userRepo.Create(alice))

	assert.NoError(t, svc.DeleteUser(alice.ID, admin.ID))

	_, err := userRepo.GetByID(alice.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUserService_DeleteUser_SelfOnly(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceFixture(t, 30)

	alice := &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	assert.NoError(t, userRepo.Create(alice))

	err := svc.DeleteUser(alice.ID, "somebody-else")
	assert.ErrorIs(t, err, services.ErrForbidden)

	assert.NoError(t, svc.DeleteUser(alice.ID, alice.ID))

	_, err = userRepo.GetByID(alice.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
