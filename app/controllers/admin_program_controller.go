package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
)

// AdminProgramController manages days, tracks, rooms and sessions from the
// admin CMS.
type AdminProgramController struct {
	programRepo repository.ProgramRepository
}

func NewAdminProgramController(programRepo repository.ProgramRepository) *AdminProgramController {
	return &AdminProgramController{programRepo: programRepo}
}

// ---- days ----

type dayRequest struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Position *int   `json:"position"`
}

func (apc *AdminProgramController) HandleCreateDay(c *fiber.Ctx) error {
	var req dayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return badRequest(c, "fecha inválida, formato esperado YYYY-MM-DD")
	}

	day := &models.EventDay{Date: date}
	if req.Position != nil {
		day.Position = *req.Position
	}
	if err := apc.programRepo.CreateDay(day); err != nil {
		return internalError(c, "Error al crear el día")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": day})
}

func (apc *AdminProgramController) HandleUpdateDay(c *fiber.Ctx) error {
	day, err := apc.programRepo.GetDayByID(c.Params("id"))
	if err != nil {
		return handleRepoError(c, err, "Día no encontrado")
	}

	var req dayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return badRequest(c, "fecha inválida, formato esperado YYYY-MM-DD")
		}
		day.Date = date
	}
	if req.Position != nil {
		day.Position = *req.Position
	}

	if err := apc.programRepo.UpdateDay(day); err != nil {
		return internalError(c, "Error al actualizar el día")
	}
	return c.JSON(fiber.Map{"ok": true, "data": day})
}

func (apc *AdminProgramController) HandleDeleteDay(c *fiber.Ctx) error {
	if err := apc.programRepo.DeleteDay(c.Params("id")); err != nil {
		return internalError(c, "Error al eliminar el día")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ---- tracks ----

type trackRequest struct {
	Name string `json:"name"`
}

func (apc *AdminProgramController) HandleCreateTrack(c *fiber.Ctx) error {
	var req trackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if req.Name == "" {
		return badRequest(c, "nombre requerido")
	}

	track := &models.Track{Name: req.Name}
	if err := apc.programRepo.CreateTrack(track); err != nil {
		return internalError(c, "Error al crear el track")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": track})
}

func (apc *AdminProgramController) HandleDeleteTrack(c *fiber.Ctx) error {
	if err := apc.programRepo.DeleteTrack(c.Params("id")); err != nil {
		return internalError(c, "Error al eliminar el track")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ---- rooms ----

type roomRequest struct {
	Name  string  `json:"name"`
	DayID *string `json:"day_id"`
}

func (apc *AdminProgramController) HandleCreateRoom(c *fiber.Ctx) error {
	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if req.Name == "" {
		return badRequest(c, "nombre requerido")
	}

	room := &models.Room{Name: req.Name, DayID: req.DayID}
	if err := apc.programRepo.CreateRoom(room); err != nil {
		return internalError(c, "Error al crear la sala")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": room})
}

func (apc *AdminProgramController) HandleDeleteRoom(c *fiber.Ctx) error {
	if err := apc.programRepo.DeleteRoom(c.Params("id")); err != nil {
		return internalError(c, "Error al eliminar la sala")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ---- sessions ----

type sessionRequest struct {
	Title        *string         `json:"title"`
	Abstract     *string         `json:"abstract"`
	DayID        *string         `json:"day_id"`
	TrackID      *string         `json:"track_id"`
	RoomID       *string         `json:"room_id"`
	StartsAt     *time.Time      `json:"starts_at"`
	EndsAt       *time.Time      `json:"ends_at"`
	IsPlenary    *bool           `json:"is_plenary"`
	MaterialsURL *string         `json:"materials_url"`
	Speaker      json.RawMessage `json:"speaker"`
}

func (r sessionRequest) apply(s *models.Session) {
	if r.Title != nil {
		s.Title = *r.Title
	}
	if r.Abstract != nil {
		s.Abstract = *r.Abstract
	}
	if r.DayID != nil {
		s.DayID = r.DayID
	}
	if r.TrackID != nil {
		s.TrackID = r.TrackID
	}
	if r.RoomID != nil {
		s.RoomID = r.RoomID
	}
	if r.StartsAt != nil {
		s.StartsAt = *r.StartsAt
	}
	if r.EndsAt != nil {
		s.EndsAt = *r.EndsAt
	}
	if r.IsPlenary != nil {
		s.IsPlenary = *r.IsPlenary
	}
	if r.MaterialsURL != nil {
		s.MaterialsURL = *r.MaterialsURL
	}
	if len(r.Speaker) > 0 {
		s.Speaker = datatypes.JSON(r.Speaker)
	}
}

func (apc *AdminProgramController) HandleCreateSession(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	session := &models.Session{}
	req.apply(session)

	if err := session.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}
	if err := apc.programRepo.CreateSession(session); err != nil {
		return internalError(c, "Error al crear la sesión")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": session})
}

func (apc *AdminProgramController) HandleUpdateSession(c *fiber.Ctx) error {
	session, err := apc.programRepo.GetSessionByID(c.Params("id"))
	if err != nil {
		return handleRepoError(c, err, "Sesión no encontrada")
	}

	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	req.apply(session)

	if err := session.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}
	if err := apc.programRepo.UpdateSession(session); err != nil {
		return internalError(c, "Error al actualizar la sesión")
	}
	return c.JSON(fiber.Map{"ok": true, "data": session})
}

func (apc *AdminProgramController) HandleDeleteSession(c *fiber.Ctx) error {
	if err := apc.programRepo.DeleteSession(c.Params("id")); err != nil {
		return internalError(c, "Error al eliminar la sesión")
	}
	return c.JSON(fiber.Map{"ok": true})
}
