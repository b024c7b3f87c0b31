package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/storefront/controllers/product"
)

func SetupProductRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/", productcontroller.GetProducts(deps.Pages))

	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(deps.Pages))
		products.GET("/search", productcontroller.SearchProducts(deps.Pages))
		products.GET("/export", productcontroller.ExportProductsToExcel(deps.Backend))
	}
}
