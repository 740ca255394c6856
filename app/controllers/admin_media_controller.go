package controllers

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/internal/pkg/storage"
)

const maxUploadBytes = 10 * 1024 * 1024

// AdminMediaController handles editor image uploads (stand logos, post
// media).
type AdminMediaController struct {
	media *storage.MediaStore
}

func NewAdminMediaController(media *storage.MediaStore) *AdminMediaController {
	return &AdminMediaController{media: media}
}

// HandleUpload stores a multipart image and returns its public URLs.
func (amc *AdminMediaController) HandleUpload(c *fiber.Ctx) error {
	if amc.media == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "media_disabled", "La carga de imágenes no está configurada")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Falta el archivo 'file'")
	}
	if fileHeader.Size > maxUploadBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "too_large", "El archivo supera los 10 MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := storage.AllowedMediaType(contentType); !ok {
		return badRequest(c, "Tipo de archivo no soportado")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "No se pudo leer el archivo")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return internalError(c, "No se pudo leer el archivo")
	}

	result, err := amc.media.UploadImage(c.UserContext(), data, contentType)
	if err != nil {
		log.Printf("media upload failed: %v", err)
		return internalError(c, "No se pudo subir el archivo")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "data": result})
}
