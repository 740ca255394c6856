package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
)

// AdminPageController manages the dynamic pages from the admin CMS.
type AdminPageController struct {
	pageRepo repository.PageRepository
}

func NewAdminPageController(pageRepo repository.PageRepository) *AdminPageController {
	return &AdminPageController{pageRepo: pageRepo}
}

// HandleListPages returns every page, including hidden ones.
func (apc *AdminPageController) HandleListPages(c *fiber.Ctx) error {
	pages, err := apc.pageRepo.GetAll()
	if err != nil {
		return internalError(c, "Error al cargar las páginas")
	}
	return c.JSON(fiber.Map{"pages": pages})
}

type createPageRequest struct {
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Type     string          `json:"type"`
	Icon     string          `json:"icon"`
	Visible  *bool           `json:"visible"`
	Position *int            `json:"position"`
	Config   json.RawMessage `json:"config"`
	Blocks   json.RawMessage `json:"blocks"`
}

// HandleCreatePage creates a page; slug and position collisions map to 409.
func (apc *AdminPageController) HandleCreatePage(c *fiber.Ctx) error {
	var req createPageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if req.Title == "" || req.Slug == "" || req.Type == "" || req.Icon == "" || req.Position == nil {
		return badRequest(c, "Faltan campos requeridos")
	}

	exists, err := apc.pageRepo.SlugExists(req.Slug)
	if err != nil {
		return internalError(c, "Error al crear la página")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "Ya existe una página con ese slug")
	}

	page := &models.Page{
		Title:    req.Title,
		Slug:     req.Slug,
		Type:     req.Type,
		Icon:     req.Icon,
		Visible:  req.Visible == nil || *req.Visible,
		Position: *req.Position,
	}
	if len(req.Config) > 0 {
		page.Config = datatypes.JSON(req.Config)
	}
	if len(req.Blocks) > 0 {
		page.Blocks = datatypes.JSON(req.Blocks)
	}

	if err := page.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}

	if err := apc.pageRepo.Create(page); err != nil {
		if isDuplicateError(err) {
			return jsonError(c, fiber.StatusConflict, "conflict", "Ya existe una página con ese orden")
		}
		return internalError(c, "Error al crear la página")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": page})
}

type updatePageRequest struct {
	Title    *string         `json:"title"`
	Slug     *string         `json:"slug"`
	Type     *string         `json:"type"`
	Icon     *string         `json:"icon"`
	Visible  *bool           `json:"visible"`
	Position *int            `json:"position"`
	Config   json.RawMessage `json:"config"`
	Blocks   json.RawMessage `json:"blocks"`
}

// HandleUpdatePage applies a partial update to a page.
func (apc *AdminPageController) HandleUpdatePage(c *fiber.Ctx) error {
	page, err := apc.pageRepo.GetByID(c.Params("id"))
	if err != nil {
		return handleRepoError(c, err, "Página no encontrada")
	}

	var req updatePageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Slug != nil {
		page.Slug = *req.Slug
	}
	if req.Type != nil {
		page.Type = *req.Type
	}
	if req.Icon != nil {
		page.Icon = *req.Icon
	}
	if req.Visible != nil {
		page.Visible = *req.Visible
	}
	if req.Position != nil {
		page.Position = *req.Position
	}
	if len(req.Config) > 0 {
		page.Config = datatypes.JSON(req.Config)
	}
	if len(req.Blocks) > 0 {
		page.Blocks = datatypes.JSON(req.Blocks)
	}

	if err := page.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}

	if err := apc.pageRepo.Update(page); err != nil {
		if isDuplicateError(err) {
			return jsonError(c, fiber.StatusConflict, "conflict", "Ya existe una página con ese slug u orden")
		}
		return internalError(c, "Error al actualizar la página")
	}

	return c.JSON(fiber.Map{"ok": true, "data": page})
}

// HandleDeletePage removes a page from the navigation.
func (apc *AdminPageController) HandleDeletePage(c *fiber.Ctx) error {
	if err := apc.pageRepo.Delete(c.Params("id")); err != nil {
		return internalError(c, "Error al eliminar la página")
	}
	return c.JSON(fiber.Map{"ok": true})
}
