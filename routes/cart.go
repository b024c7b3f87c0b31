package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/storefront/controllers/cart"
	"github.com/junaidrashid-git/storefront/middleware"
)

// SetupCartRoutes registers the cart panel endpoints. Add and update answer anonymous
// visitors with a warning notice instead of a 401, as the page does.
func SetupCartRoutes(r *gin.Engine, deps Dependencies) {
	cart := r.Group("/cart")
	{
		cart.GET("", middleware.RequireSession, cartControllers.GetUserCart(deps.Pages))
		cart.POST("", cartControllers.AddCartItem(deps.Pages))
		cart.PUT("/:product_id", cartControllers.UpdateCartItem(deps.Pages))
	}
}
