package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/repository"
)

// PostController serves the public feed.
type PostController struct {
	postRepo repository.PostRepository
}

func NewPostController(postRepo repository.PostRepository) *PostController {
	return &PostController{postRepo: postRepo}
}

// HandleGetPosts returns published posts, pinned first then newest first,
// paginated via page/per_page.
func (pc *PostController) HandleGetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	posts, total, err := pc.postRepo.GetPublished(limit, offset)
	if err != nil {
		return internalError(c, "Error al cargar las publicaciones")
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"total": total,
	})
}
