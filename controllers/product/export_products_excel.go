package productcontroller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/logger"
	"github.com/junaidrashid-git/storefront/models"
	"github.com/tealeg/xlsx"
)

var log = logger.New("products")

// Catalog is where the export reads products from.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// GET /products/export
func ExportProductsToExcel(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Products(c.Request.Context())
		if err != nil {
			log.Error("catalog fetch for export failed", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
			return
		}

		file, err := productsWorkbook(products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Error("failed to write Excel file", err)
		}
	}
}

func productsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "Name", "Category", "Cost", "Rating", "Image"} {
		headerRow.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetFloat(p.Cost)
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetString(p.ImageURL)
	}
	return file, nil
}
