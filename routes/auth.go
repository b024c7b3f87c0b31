package routes

import (
	"github.com/gin-gonic/gin"
	sessionControllers "github.com/junaidrashid-git/storefront/controllers/session"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Dependencies) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", sessionControllers.Login(deps.Backend, deps.Sessions, deps.Pages))
		authGroup.POST("/register", sessionControllers.Register(deps.Backend))
		authGroup.POST("/logout", sessionControllers.Logout(deps.Sessions, deps.Pages))
	}

	r.GET("/session", sessionControllers.GetSession)
}
