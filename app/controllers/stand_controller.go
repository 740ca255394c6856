package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/repository"
)

// StandController serves the public stands listing.
type StandController struct {
	standRepo repository.StandRepository
}

func NewStandController(standRepo repository.StandRepository) *StandController {
	return &StandController{standRepo: standRepo}
}

// HandleGetStands returns stands ordered by name; ?type= filters by kind.
func (sc *StandController) HandleGetStands(c *fiber.Ctx) error {
	stands, err := sc.standRepo.GetAll(c.Query("type"))
	if err != nil {
		return internalError(c, "Error al cargar los stands")
	}
	return c.JSON(fiber.Map{"stands": stands})
}
