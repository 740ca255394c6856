package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
)

// AdminStandController manages exhibitor stands from the admin CMS.
type AdminStandController struct {
	standRepo repository.StandRepository
}

func NewAdminStandController(standRepo repository.StandRepository) *AdminStandController {
	return &AdminStandController{standRepo: standRepo}
}

func (asc *AdminStandController) HandleListStands(c *fiber.Ctx) error {
	stands, err := asc.standRepo.GetAll(c.Query("type"))
	if err != nil {
		return internalError(c, "Error al cargar los stands")
	}
	return c.JSON(fiber.Map{"stands": stands})
}

type standRequest struct {
	Name        *string         `json:"name"`
	Type        *string         `json:"type"`
	Description *string         `json:"description"`
	LogoURL     *string         `json:"logo_url"`
	Links       json.RawMessage `json:"links"`
}

func (r standRequest) apply(s *models.Stand) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Type != nil {
		s.Type = *r.Type
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.LogoURL != nil {
		s.LogoURL = *r.LogoURL
	}
	if len(r.Links) > 0 {
		s.Links = datatypes.JSON(r.Links)
	}
}

func (asc *AdminStandController) HandleCreateStand(c *fiber.Ctx) error {
	var req standRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	stand := &models.Stand{}
	req.apply(stand)

	if err := stand.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}
	if err := asc.standRepo.Create(stand); err != nil {
		return internalError(c, "Error al crear el stand")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": stand})
}

func (asc *AdminStandController) HandleUpdateStand(c *fiber.Ctx) error {
	stand, err := asc.standRepo.GetByID(c.Params("id"))
	if err != nil {
		return handleRepoError(c, err, "Stand no encontrado")
	}

	var req standRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	req.apply(stand)

	if err := stand.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}
	if err := asc.standRepo.Update(stand); err != nil {
		return internalError(c, "Error al actualizar el stand")
	}
	return c.JSON(fiber.Map{"ok": true, "data": stand})
}

func (asc *AdminStandController) HandleDeleteStand(c *fiber.Ctx) error {
	if err := asc.standRepo.Delete(c.Params("id")); err != nil {
		return internalError(c, "Error al eliminar el stand")
	}
	return c.JSON(fiber.Map{"ok": true})
}
