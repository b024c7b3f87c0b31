package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/auth"
	"github.com/junaidrashid-git/storefront/logger"
	"github.com/junaidrashid-git/storefront/session"
)

const (
	VisitorCookie = "storefront_visitor"
	visitorIDKey  = "visitor_id"
)

var log = logger.New("middleware")

// Visitor identifies the browser by its signed cookie (minting one when missing or invalid)
// and puts the visitor's session on the request context.
func Visitor(issuer *auth.Issuer, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var visitorID string
		if cookie, err := c.Cookie(VisitorCookie); err == nil {
			if id, err := issuer.Parse(cookie); err == nil {
				visitorID = id
			}
		}

		if visitorID == "" {
			id, token, err := issuer.Issue()
			if err != nil {
				log.Error("failed to issue visitor token", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
				c.Abort()
				return
			}
			visitorID = id
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, token, int(issuer.TTL().Seconds()), "/", "", false, true)
		}

		s, err := sessions.Load(c.Request.Context(), visitorID)
		if err != nil {
			log.Error("failed to load session", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			c.Abort()
			return
		}

		c.Set(visitorIDKey, visitorID)
		c.Request = c.Request.WithContext(session.WithContext(c.Request.Context(), s))
		c.Next()
	}
}

// VisitorID is set by Visitor.
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}

// RequireSession rejects anonymous visitors.
func RequireSession(c *gin.Context) {
	if !session.FromContext(c.Request.Context()).Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login to view your cart"})
		c.Abort()
		return
	}
	c.Next()
}
