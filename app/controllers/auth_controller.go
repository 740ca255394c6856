package controllers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ferialink/FeriaLink/app/models"
	"github.com/ferialink/FeriaLink/app/repository"
	"github.com/ferialink/FeriaLink/internal/pkg/session"
	"github.com/ferialink/FeriaLink/internal/pkg/usercontext"
)

// AuthController handles session login, logout and the OAuth flow.
type AuthController struct {
	userRepo repository.UserRepository
}

func NewAuthController(userRepo repository.UserRepository) *AuthController {
	return &AuthController{userRepo: userRepo}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates an email/password user (editors and admins;
// attendees normally come in through OAuth).
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return badRequest(c, "Email y contraseña son requeridos")
	}

	user, err := ac.userRepo.GetByEmail(email)
	if err != nil || !user.CheckPassword(req.Password) {
		// Same response for unknown user and wrong password.
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Credenciales inválidas")
	}
	if user.Status != models.STATUS_ACTIVE {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Cuenta deshabilitada")
	}

	if err := ac.startSession(c, user); err != nil {
		return internalError(c, "No se pudo iniciar la sesión")
	}

	return c.JSON(fiber.Map{"ok": true, "user": user})
}

// HandleLogout destroys the session.
func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	if err := session.Destroy(c); err != nil {
		return internalError(c, "No se pudo cerrar la sesión")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleMe returns the session user.
func (ac *AuthController) HandleMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}
	return c.JSON(fiber.Map{"user": userCtx})
}

// HandleOAuthBegin redirects to the provider's consent screen.
func (ac *AuthController) HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow, links or creates the
// user, and issues the app session.
func (ac *AuthController) HandleOAuthCallback(c *fiber.Ctx) error {
	gothUser, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "oauth_failed", err.Error())
	}

	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}
	if name == "" {
		name = gothUser.Email
	}

	user, err := ac.userRepo.FindOrCreateByProvider(
		gothUser.Provider, gothUser.UserID, strings.ToLower(gothUser.Email), name, gothUser.AvatarURL)
	if err != nil {
		log.Printf("oauth link failed for %s/%s: %v", gothUser.Provider, gothUser.UserID, err)
		return internalError(c, "No se pudo completar el inicio de sesión")
	}

	if err := ac.startSession(c, user); err != nil {
		return internalError(c, "No se pudo iniciar la sesión")
	}

	// Back to the PWA; it reads /auth/me from there.
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (ac *AuthController) startSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUserEmail, user.Email)
	sess.Set(usercontext.KeyUserName, user.Name)
	sess.Set(usercontext.KeyUserRole, user.Role)
	if err := sess.Save(); err != nil {
		return err
	}

	if err := ac.userRepo.TouchLastLogin(user.ID, time.Now()); err != nil {
		log.Printf("failed to update last login for %s: %v", user.ID, err)
	}
	return nil
}
