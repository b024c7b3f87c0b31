package sessionControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/api"
	"github.com/junaidrashid-git/storefront/logger"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/session"
	"github.com/junaidrashid-git/storefront/storefront"
)

const msgBackendDown = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."

var log = logger.New("session")

// Authenticator is the backend's auth API.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (api.LoginResult, error)
	Register(ctx context.Context, username, password string) error
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Username        string `json:"username" binding:"required,min=6"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// POST /auth/login
func Login(authn Authenticator, sessions *session.Manager, pages *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		res, err := authn.Login(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			backendFailure(c, "login", err)
			return
		}

		visitorID := middleware.VisitorID(c)
		s := session.Session{Token: res.Token, Username: res.Username}
		if err := sessions.Save(c.Request.Context(), visitorID, s); err != nil {
			log.Error("failed to save session", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		pages.Reset(visitorID)

		log.Success("visitor %s logged in as %s", visitorID, s.Username)
		c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully", "username": s.Username})
	}
}

// POST /auth/register
func Register(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := authn.Register(c.Request.Context(), input.Username, input.Password); err != nil {
			backendFailure(c, "register", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully"})
	}
}

// POST /auth/logout
// Clears all of the visitor's local storage and sends the browser back to a fresh products page.
func Logout(sessions *session.Manager, pages *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID := middleware.VisitorID(c)
		if err := sessions.Clear(c.Request.Context(), visitorID); err != nil {
			log.Error("failed to clear local storage", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
		pages.Reset(visitorID)
		c.Redirect(http.StatusSeeOther, "/products")
	}
}

// GET /session
func GetSession(c *gin.Context) {
	s := session.FromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"loggedIn": s.Authenticated(), "username": s.Username})
}

// backendFailure relays the backend's own message for 4xx answers.
func backendFailure(c *gin.Context, op string, err error) {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
		msg := statusErr.Message
		if msg == "" {
			msg = statusErr.Status()
		}
		c.JSON(statusErr.StatusCode, gin.H{"error": msg})
		return
	}
	log.Error(op+" failed", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": msgBackendDown})
}
