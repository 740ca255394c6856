package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
)

// PageController serves individual pages to the public frontend.
type PageController struct {
	pageRepo repository.PageRepository
}

func NewPageController(pageRepo repository.PageRepository) *PageController {
	return &PageController{pageRepo: pageRepo}
}

// HandleGetPage returns a visible page by slug. Module pages (FEED,
// PROGRAMA, ENTRADAS, STANDS) carry their type and config so the frontend
// dispatches to the built-in view; CUSTOM pages additionally carry their
// content blocks.
func (pc *PageController) HandleGetPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return badRequest(c, "slug requerido")
	}

	page, err := pc.pageRepo.GetBySlug(slug)
	if err != nil {
		return handleRepoError(c, err, "Página no encontrada")
	}

	resp := fiber.Map{
		"id":     page.ID,
		"title":  page.Title,
		"slug":   page.Slug,
		"type":   page.Type,
		"icon":   page.Icon,
		"config": page.Config,
	}
	if page.Type == models.PageTypeCustom {
		resp["blocks"] = page.Blocks
	}

	return c.JSON(resp)
}
