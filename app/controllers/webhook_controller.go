package controllers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
	"github.com/ferialink/FeriaLink/internal/pkg/env"
	"github.com/ferialink/FeriaLink/internal/pkg/fint"
)

// WebhookController ingests ticket events pushed by Fint and keeps the
// local snapshot table fresh.
type WebhookController struct {
	ticketRepo repository.TicketRepository
}

func NewWebhookController(ticketRepo repository.TicketRepository) *WebhookController {
	return &WebhookController{ticketRepo: ticketRepo}
}

type fintWebhookEvent struct {
	Event string              `json:"event"`
	Data  fint.ExternalTicket `json:"data"`
}

// HandleFintWebhook verifies the HMAC signature of the raw body and upserts
// the ticket snapshot carried by the event.
func (wc *WebhookController) HandleFintWebhook(c *fiber.Ctx) error {
	secret := env.GetEnv("FINT_WEBHOOK_SECRET", "")
	if secret == "" {
		log.Print("fint webhook: FINT_WEBHOOK_SECRET not configured")
		return internalError(c, "webhook not configured")
	}

	body := c.Body()
	if !fint.VerifyWebhookSignature(body, c.Get("X-Fint-Signature"), secret) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid signature")
	}

	var event fintWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return badRequest(c, "invalid payload")
	}
	if event.Data.ID == 0 {
		return badRequest(c, "missing ticket data")
	}

	raw, err := json.Marshal(event.Data)
	if err != nil {
		return internalError(c, err.Error())
	}

	snapshot := models.TicketFromFint(fint.MapExternalTicket(event.Data), raw)
	if err := wc.ticketRepo.Upsert(&snapshot); err != nil {
		log.Printf("fint webhook: upsert failed for ticket %s: %v", snapshot.ExternalID, err)
		return internalError(c, "failed to store ticket")
	}

	return c.JSON(fiber.Map{"ok": true})
}
