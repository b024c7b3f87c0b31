package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/storefront"
)

// GET /products
// Navigating to the products page remounts it: one catalog fetch plus the cart when logged in.
func GetProducts(pages *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := pages.Reload(middleware.VisitorID(c))
		page.Mount(ctx)
		c.JSON(http.StatusOK, page.View(ctx))
	}
}

// GET /products/search?value=<text>
// Runs the search right away; the debounced variant lives on the search websocket.
func SearchProducts(pages *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := pages.Page(middleware.VisitorID(c))
		page.Mount(ctx)
		page.Search(ctx, c.Query("value"))
		c.JSON(http.StatusOK, page.View(ctx))
	}
}
