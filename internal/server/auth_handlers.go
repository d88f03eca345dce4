// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"time"

	"github.com/theandrewmo/warbler/internal/auth"
	"github.com/theandrewmo/warbler/internal/middleware"
	"github.com/theandrewmo/warbler/internal/models"
	"github.com/theandrewmo/warbler/internal/observability"
	"github.com/theandrewmo/warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Signup(c.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	observability.SignupsTotal.Inc()

	// New accounts are logged in immediately, matching the signup flow
	// of the web client.
	if err := s.openSession(c, user.ID, user.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewAuthenticationError())
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()

	if err := s.openSession(c, user.ID, user.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// Logout handles POST /api/auth/logout. Logging out twice is harmless.
func (s *Server) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(auth.SessionCookie); sid != "" && s.sessions != nil {
		if err := s.sessions.Destroy(c.Context(), sid); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to destroy session")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// openSession creates a server-side session, sets the session cookie, and
// attaches a bearer token for API clients to the response locals.
func (s *Server) openSession(c *fiber.Ctx, userID uint, username string) error {
	ttl := time.Duration(s.config.SessionTTLHours) * time.Hour

	if s.sessions != nil {
		sid, err := s.sessions.Create(c.Context(), userID)
		if err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:     auth.SessionCookie,
			Value:    sid,
			HTTPOnly: true,
			Secure:   s.config.Env == "production" || s.config.Env == "prod",
			SameSite: fiber.CookieSameSiteLaxMode,
			// Session cookie: no Expires, it dies with the browser session.
		})
	}

	token, err := auth.GenerateToken(s.config.SessionSecret, userID, username, ttl)
	if err != nil {
		return err
	}
	c.Locals("token", token)
	c.Set("X-Auth-Token", token)
	return nil
}
