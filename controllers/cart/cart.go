package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/storefront"
)

type AddCartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"omitempty,min=1"`
}

type UpdateQuantityInput struct {
	Action string `json:"action" binding:"required,oneof=increment decrement"`
}

// GET /cart
func GetUserCart(pages *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := pages.Page(middleware.VisitorID(c))
		page.Mount(ctx)
		c.JSON(http.StatusOK, page.Cart())
	}
}

// POST /cart
// Refusals (not logged in, already in cart) and backend failures come back as notices in the view.
func AddCartItem(pages *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Qty == 0 {
			input.Qty = 1
		}

		ctx := c.Request.Context()
		page := pages.Page(middleware.VisitorID(c))
		page.Mount(ctx)
		page.AddToCart(ctx, input.ProductID, input.Qty)
		c.JSON(http.StatusOK, page.View(ctx))
	}
}

// PUT /cart/:product_id
func UpdateCartItem(pages *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		delta := 1
		if input.Action == "decrement" {
			delta = -1
		}

		ctx := c.Request.Context()
		page := pages.Page(middleware.VisitorID(c))
		page.Mount(ctx)
		page.ChangeQuantity(ctx, c.Param("product_id"), delta)
		c.JSON(http.StatusOK, page.View(ctx))
	}
}
