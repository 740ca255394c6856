package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/internal/pkg/session"
	"github.com/ferialink/FeriaLink/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request. Anonymous requests get a zero context and continue.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth uses its own fiber session store on OAuth routes; skip our app
	// session there to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") && c.Path() != "/auth/me" && c.Path() != "/auth/logout" {
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	userID, _ := sess.Get(usercontext.KeyUserID).(string)
	if userID == "" {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	email, _ := sess.Get(usercontext.KeyUserEmail).(string)
	name, _ := sess.Get(usercontext.KeyUserName).(string)
	role, _ := sess.Get(usercontext.KeyUserRole).(string)

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     userID,
		Name:       name,
		Email:      email,
		Role:       role,
		IsLoggedIn: true,
	})

	return c.Next()
}
