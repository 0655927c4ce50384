package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Price", "Brand", "Warranty", "Description",
			"Image", "Quantity", "Type", "TimesAddedToCart", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Brand)
			row.AddCell().SetValue(p.Warranty)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Image)
			row.AddCell().SetValue(p.Quantity)
			row.AddCell().SetValue(p.Type)
			row.AddCell().SetValue(p.TimesAddedToCart)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
