package routes

import (
	"github.com/gin-gonic/gin"
	searchControllers "github.com/junaidrashid-git/storefront/controllers/search"
)

func SetupSearchRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/ws/search", searchControllers.SearchWebSocketHandler(deps.Pages, deps.SearchDelay, deps.AllowedOrigins))
}
