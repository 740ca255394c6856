package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/internal/pkg/fint"
	"github.com/ferialink/FeriaLink/internal/pkg/usercontext"
)

// TicketController serves the authenticated user's tickets, fetched live
// from the Fint API. Nothing on this path reads the local snapshot table.
type TicketController struct {
	fintClient *fint.Client
}

func NewTicketController(fintClient *fint.Client) *TicketController {
	return &TicketController{fintClient: fintClient}
}

// HandleGetTickets returns every ticket on which the session user is buyer
// or attendee. ?refresh=1 bypasses the response cache.
func (tc *TicketController) HandleGetTickets(c *fiber.Ctx) error {
	email := usercontext.GetUserEmail(c)
	if email == "" {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	opts := fint.FetchOptions{BypassCache: c.Query("refresh") == "1"}
	tickets, err := tc.fintClient.FetchAllUserTickets(c.Context(), email, opts)
	if err != nil {
		log.Printf("ticket fetch failed for %s: %v", email, err)
		return jsonError(c, fiber.StatusBadGateway, "upstream_error", "No pudimos cargar tus entradas, intenta de nuevo")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tickets": tickets,
		"count":   len(tickets),
	})
}

type updateTicketRequest struct {
	FirstName            *string                    `json:"firstName"`
	LastName             *string                    `json:"lastName"`
	Email                *string                    `json:"email"`
	Document             *string                    `json:"document"`
	Status               *string                    `json:"status"`
	CustomFieldResponses []fint.CustomFieldResponse `json:"customFieldResponses"`
}

func (r updateTicketRequest) empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.Document == nil && r.Status == nil && len(r.CustomFieldResponses) == 0
}

// HandleUpdateTicket forwards a partial attendee update to Fint. The
// upstream status code of a failed mutation is passed through so the
// frontend can distinguish not-found from validation errors.
func (tc *TicketController) HandleUpdateTicket(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return badRequest(c, "referencia requerida")
	}

	var req updateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if req.empty() {
		return badRequest(c, "Debes enviar al menos un campo")
	}

	raw, err := tc.fintClient.UpdateTicketByReference(c.Context(), reference, fint.UpdateTicketInput{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Document:             req.Document,
		Status:               req.Status,
		CustomFieldResponses: req.CustomFieldResponses,
	})
	if err != nil {
		var apiErr *fint.APIError
		if errors.As(err, &apiErr) {
			return jsonError(c, apiErr.StatusCode, "upstream_error", apiErr.Message)
		}
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  raw,
	})
}
