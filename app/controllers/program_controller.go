package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/repository"
)

// ProgramController serves the public event program.
type ProgramController struct {
	programRepo repository.ProgramRepository
}

func NewProgramController(programRepo repository.ProgramRepository) *ProgramController {
	return &ProgramController{programRepo: programRepo}
}

// HandleGetProgram returns the program: days (with rooms), tracks, and the
// sessions ordered by start time. An optional ?day=<id> filters sessions.
func (pc *ProgramController) HandleGetProgram(c *fiber.Ctx) error {
	dayID := c.Query("day")

	days, err := pc.programRepo.GetDays()
	if err != nil {
		return internalError(c, "Error al cargar el programa")
	}

	tracks, err := pc.programRepo.GetTracks()
	if err != nil {
		return internalError(c, "Error al cargar el programa")
	}

	sessions, err := pc.programRepo.GetSessions(dayID)
	if err != nil {
		return internalError(c, "Error al cargar el programa")
	}

	return c.JSON(fiber.Map{
		"days":     days,
		"tracks":   tracks,
		"sessions": sessions,
	})
}
