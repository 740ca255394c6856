package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
)

// MenuController serves the dynamic bottom navigation of the app.
type MenuController struct {
	pageRepo repository.PageRepository
}

func NewMenuController(pageRepo repository.PageRepository) *MenuController {
	return &MenuController{pageRepo: pageRepo}
}

// HandleGetMenu returns the visible pages, ordered by position, projected
// into menu items.
func (mc *MenuController) HandleGetMenu(c *fiber.Ctx) error {
	pages, err := mc.pageRepo.GetVisible()
	if err != nil {
		return internalError(c, "Error al cargar el menú")
	}

	items := make([]models.MenuItem, 0, len(pages))
	for _, page := range pages {
		items = append(items, page.MenuItem())
	}

	return c.JSON(items)
}
