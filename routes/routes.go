package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/auth"
	sessionControllers "github.com/junaidrashid-git/storefront/controllers/session"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/session"
	"github.com/junaidrashid-git/storefront/storefront"
)

// Backend is everything the storefront needs from the REST API.
type Backend interface {
	storefront.Backend
	sessionControllers.Authenticator
}

type Dependencies struct {
	Backend        Backend
	Pages          *storefront.Registry
	Sessions       *session.Manager
	Issuer         *auth.Issuer
	SearchDelay    time.Duration
	AllowedOrigins []string
}

// SetupRoutes is the single entry-point that wires up every route group behind the visitor middleware.
func SetupRoutes(r *gin.Engine, deps Dependencies) {
	r.Use(middleware.Visitor(deps.Issuer, deps.Sessions))

	SetupProductRoutes(r, deps)
	SetupCartRoutes(r, deps)
	SetupAuthRoutes(r, deps)
	SetupSearchRoutes(r, deps)
}
