package controllers

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
	"github.com/ferialink/FeriaLink/internal/pkg/fint"
)

// AdminTicketController exposes the local ticket snapshots and lets an
// editor trigger a resync for one attendee.
type AdminTicketController struct {
	ticketRepo repository.TicketRepository
	fintClient *fint.Client
}

func NewAdminTicketController(ticketRepo repository.TicketRepository, fintClient *fint.Client) *AdminTicketController {
	return &AdminTicketController{ticketRepo: ticketRepo, fintClient: fintClient}
}

// HandleListTickets returns paginated snapshots.
func (atc *AdminTicketController) HandleListTickets(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	tickets, total, err := atc.ticketRepo.GetAll(limit, offset)
	if err != nil {
		return internalError(c, "Error al cargar las entradas")
	}
	return c.JSON(fiber.Map{"tickets": tickets, "total": total})
}

type syncTicketsRequest struct {
	Email string `json:"email"`
}

// HandleSyncTickets fetches an attendee's tickets from Fint, bypassing the
// response cache, and refreshes the local snapshots.
func (atc *AdminTicketController) HandleSyncTickets(c *fiber.Ctx) error {
	var req syncTicketsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return badRequest(c, "Email es requerido")
	}

	tickets, err := atc.fintClient.FetchAllUserTickets(c.UserContext(), email, fint.FetchOptions{BypassCache: true})
	if err != nil {
		log.Printf("ticket sync failed for %s: %v", email, err)
		return jsonError(c, fiber.StatusBadGateway, "upstream_error", "No pudimos cargar las entradas desde Fint")
	}

	synced := 0
	for _, t := range tickets {
		raw, err := json.Marshal(t)
		if err != nil {
			raw = nil
		}
		snapshot := models.TicketFromFint(t, raw)
		if err := atc.ticketRepo.Upsert(&snapshot); err != nil {
			log.Printf("failed to upsert ticket %s: %v", t.ID, err)
			continue
		}
		synced++
	}

	return c.JSON(fiber.Map{"ok": true, "synced": synced, "fetched": len(tickets)})
}
