package controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
	"github.com/ferialink/FeriaLink/internal/pkg/mail"
)

// NewsletterController handles public newsletter opt-ins.
type NewsletterController struct {
	newsletterRepo repository.NewsletterRepository
}

func NewNewsletterController(newsletterRepo repository.NewsletterRepository) *NewsletterController {
	return &NewsletterController{newsletterRepo: newsletterRepo}
}

type newsletterRequest struct {
	Email         string `json:"email"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// HandleSubscribe registers a newsletter subscription and sends the welcome
// email best-effort.
func (nc *NewsletterController) HandleSubscribe(c *fiber.Ctx) error {
	var req newsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	if !req.TermsAccepted {
		return badRequest(c, "Debes aceptar los términos y condiciones")
	}

	sub := &models.NewsletterSubscription{
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		TermsAccepted: req.TermsAccepted,
	}
	if err := sub.Validate(); err != nil {
		return badRequest(c, validationMessage(err))
	}

	exists, err := nc.newsletterRepo.EmailExists(sub.Email)
	if err != nil {
		return internalError(c, "Error al procesar la suscripción")
	}
	if exists {
		return jsonError(c, fiber.StatusConflict, "conflict", "Este email ya está suscrito")
	}

	if err := nc.newsletterRepo.Create(sub); err != nil {
		if isDuplicateError(err) {
			return jsonError(c, fiber.StatusConflict, "conflict", "Este email ya está suscrito")
		}
		return internalError(c, "Error al procesar la suscripción")
	}

	go func(email string) {
		if err := mail.SendNewsletterWelcome(email); err != nil {
			log.Printf("newsletter welcome mail failed for %s: %v", email, err)
		}
	}(sub.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}
