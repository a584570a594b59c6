package handlers

import (
	"fmt"
	"log"

	"microblog/internal/middleware"
	"microblog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles and the social graph.
type UserHandler struct {
	userService   *services.UserService
	socialService *services.SocialGraphService
	postService   *services.MicropostService
	validate      *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, socialService *services.SocialGraphService, postService *services.MicropostService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		socialService: socialService,
		postService:   postService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
	userRoutes.Post("/:id/follow", h.HandleFollow)
	userRoutes.Delete("/:id/follow", h.HandleUnfollow)
	userRoutes.Get("/:id/followers", h.HandleListFollowers)
	userRoutes.Get("/:id/following", h.HandleListFollowing)
	userRoutes.Get("/:id/microposts", h.HandleListMicroposts)
}

// HandleListUsers retrieves one page of all users.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	page, err := h.userService.ListUsers(c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return errorJSON(c, "Could not retrieve users", err)
	}
	return c.JSON(page)
}

// HandleGetUser retrieves a user profile with its live counts.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.Params("id"))
	if err != nil {
		log.Printf("Error getting user %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not retrieve user", err)
	}

	// Tell the viewer whether they already follow this user.
	following, err := h.socialService.IsFollowing(currentUserID(c), profile.User.ID)
	if err != nil {
		log.Printf("Error checking follow state for %s: %v", profile.User.ID, err)
		return errorJSON(c, "Could not retrieve user", err)
	}

	return c.JSON(fiber.Map{
		"profile":   profile,
		"following": following,
	})
}

// UpdateUserRequest represents the request body for profile edits. Omitted
// fields are left unchanged.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,min=3,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// HandleUpdateUser edits the authenticated user's own profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user, err := h.userService.UpdateProfile(c.Params("id"), currentUserID(c), services.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not update user", err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser deletes an account, cascading to its microposts and
// follow edges. Permitted for the account owner and for admins.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Params("id"), currentUserID(c)); err != nil {
		log.Printf("Error deleting user %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// HandleFollow makes the authenticated user follow the target user.
// Following an already-followed user succeeds without effect.
func (h *UserHandler) HandleFollow(c *fiber.Ctx) error {
	if err := h.socialService.Follow(currentUserID(c), c.Params("id")); err != nil {
		log.Printf("Error following user %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not follow user", err)
	}
	return c.JSON(fiber.Map{
		"message": "Followed successfully",
	})
}

// HandleUnfollow makes the authenticated user unfollow the target user.
// Unfollowing a user that is not followed succeeds without effect.
func (h *UserHandler) HandleUnfollow(c *fiber.Ctx) error {
	if err := h.socialService.Unfollow(currentUserID(c), c.Params("id")); err != nil {
		log.Printf("Error unfollowing user %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not unfollow user", err)
	}
	return c.JSON(fiber.Map{
		"message": "Unfollowed successfully",
	})
}

// HandleListFollowers retrieves one page of the target user's followers.
func (h *UserHandler) HandleListFollowers(c *fiber.Ctx) error {
	page, err := h.socialService.ListFollowers(c.Params("id"), c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing followers of %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not retrieve followers", err)
	}
	return c.JSON(page)
}

// HandleListFollowing retrieves one page of the users the target user follows.
func (h *UserHandler) HandleListFollowing(c *fiber.Ctx) error {
	page, err := h.socialService.ListFollowing(c.Params("id"), c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing following of %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not retrieve following", err)
	}
	return c.JSON(page)
}

// HandleListMicroposts retrieves one page of the target user's microposts.
func (h *UserHandler) HandleListMicroposts(c *fiber.Ctx) error {
	page, err := h.postService.ListByUser(c.Params("id"), c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing microposts of %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not retrieve microposts", err)
	}
	return c.JSON(page)
}

// currentUserID returns the authenticated user's ID stored by the JWT
// middleware.
func currentUserID(c *fiber.Ctx) string {
	user, _ := c.Locals(middleware.CurrentUserKey).(middleware.CurrentUser)
	return user.ID
}
