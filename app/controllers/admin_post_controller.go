package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
)

// AdminPostController manages feed posts from the admin CMS.
type AdminPostController struct {
	postRepo repository.PostRepository
}

func NewAdminPostController(postRepo repository.PostRepository) *AdminPostController {
	return &AdminPostController{postRepo: postRepo}
}

func (apc *AdminPostController) HandleListPosts(c *fiber.Ctx) error {
	posts, err := apc.postRepo.GetAll()
	if err != nil {
		return internalError(c, "Error al cargar las publicaciones")
	}
	return c.JSON(fiber.Map{"posts": posts})
}

type createPostRequest struct {
	Title     string          `json:"title"`
	Subtitle  string          `json:"subtitle"`
	Kind      string          `json:"kind"`
	Body      json.RawMessage `json:"body"`
	Pinned    bool            `json:"pinned"`
	Published *bool           `json:"published"`
}

func (apc *AdminPostController) HandleCreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	post := &models.Post{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Kind:      req.Kind,
		Pinned:    req.Pinned,
		Published: req.Published == nil || *req.Published,
	}
	if len(req.Body) > 0 {
		post.Body = datatypes.JSON(req.Body)
	}

	if err := post.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}

	if err := apc.postRepo.Create(post); err != nil {
		return internalError(c, "Error al crear la publicación")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": post})
}

type updatePostRequest struct {
	Title     *string         `json:"title"`
	Subtitle  *string         `json:"subtitle"`
	Kind      *string         `json:"kind"`
	Body      json.RawMessage `json:"body"`
	Pinned    *bool           `json:"pinned"`
	Published *bool           `json:"published"`
}

func (apc *AdminPostController) HandleUpdatePost(c *fiber.Ctx) error {
	post, err := apc.postRepo.GetByID(c.Params("id"))
	if err != nil {
		return handleRepoError(c, err, "Publicación no encontrada")
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Subtitle != nil {
		post.Subtitle = *req.Subtitle
	}
	if req.Kind != nil {
		post.Kind = *req.Kind
	}
	if req.Pinned != nil {
		post.Pinned = *req.Pinned
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if len(req.Body) > 0 {
		post.Body = datatypes.JSON(req.Body)
	}

	if err := post.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}

	if err := apc.postRepo.Update(post); err != nil {
		return internalError(c, "Error al actualizar la publicación")
	}
	return c.JSON(fiber.Map{"ok": true, "data": post})
}

func (apc *AdminPostController) HandleDeletePost(c *fiber.Ctx) error {
	if err := apc.postRepo.Delete(c.Params("id")); err != nil {
		return internalError(c, "Error al eliminar la publicación")
	}
	return c.JSON(fiber.Map{"ok": true})
}
