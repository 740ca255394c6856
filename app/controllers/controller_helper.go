package controllers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusBadRequest, "bad_request", message)
}

func notFound(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusNotFound, "not_found", message)
}

func internalError(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", message)
}

// handleRepoError maps common repository failures to HTTP responses.
func handleRepoError(c *fiber.Ctx, err error, notFoundMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c, notFoundMessage)
	}
	return internalError(c, err.Error())
}

// isDuplicateError reports whether the error is a unique constraint
// violation (requires TranslateError on the gorm config).
func isDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// validationMessage flattens the first validator failure into a short
// human-readable message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "campo inválido: " + verrs[0].Field()
	}
	return err.Error()
}

// parsePagination reads page/per_page query params with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	perPage, err := strconv.Atoi(c.Query("per_page", ""))
	if err != nil || perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	page, err := strconv.Atoi(c.Query("page", ""))
	if err != nil || page <= 0 {
		page = 1
	}

	return perPage, (page - 1) * perPage
}
