package handlers

import (
	"log"

	"microblog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MicropostHandler handles HTTP requests for microposts and the home feed.
type MicropostHandler struct {
	postService *services.MicropostService
	feedService *services.FeedService
}

// NewMicropostHandler creates a new MicropostHandler.
func NewMicropostHandler(postService *services.MicropostService, feedService *services.FeedService) *MicropostHandler {
	return &MicropostHandler{
		postService: postService,
		feedService: feedService,
	}
}

// RegisterRoutes registers the micropost and feed routes with the Fiber app.
func (h *MicropostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/microposts")
	postRoutes.Post("/", h.HandleCreateMicropost)
	postRoutes.Delete("/:id", h.HandleDeleteMicropost)

	router.Get("/feed", h.HandleHomeFeed)
}

// CreateMicropostRequest represents the request body for posting.
type CreateMicropostRequest struct {
	Content string `json:"content"`
}

// HandleCreateMicropost creates a micropost owned by the authenticated user.
func (h *MicropostHandler) HandleCreateMicropost(c *fiber.Ctx) error {
	var req CreateMicropostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing micropost request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	post, err := h.postService.CreateMicropost(currentUserID(c), req.Content)
	if err != nil {
		log.Printf("Error creating micropost: %v", err)
		return errorJSON(c, "Could not create micropost", err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleDeleteMicropost deletes a micropost; only its owner may do so.
func (h *MicropostHandler) HandleDeleteMicropost(c *fiber.Ctx) error {
	if err := h.postService.DeleteMicropost(c.Params("id"), currentUserID(c)); err != nil {
		log.Printf("Error deleting micropost %s: %v", c.Params("id"), err)
		return errorJSON(c, "Could not delete micropost", err)
	}
	return c.JSON(fiber.Map{
		"message": "Micropost deleted successfully",
	})
}

// HandleHomeFeed retrieves one page of the authenticated user's home feed.
func (h *MicropostHandler) HandleHomeFeed(c *fiber.Ctx) error {
	page, err := h.feedService.HomeFeed(currentUserID(c), c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error composing feed: %v", err)
		return errorJSON(c, "Could not retrieve feed", err)
	}
	return c.JSON(page)
}
