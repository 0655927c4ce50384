package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ImportProductsFromExcel bulk-creates or updates products from an
// uploaded workbook. Column order mirrors the export: ID, Name, Price,
// Brand, Warranty, Description, Image, Quantity, Type. A present ID
// updates that product; an empty ID inserts a new one.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			price, priceErr := strconv.ParseFloat(get(2), 64)
			brand := get(3)
			warranty := get(4)
			description := get(5)
			image := get(6)
			quantity, _ := strconv.Atoi(get(7))
			productType := get(8)

			if name == "" || priceErr != nil {
				skippedCount++
				continue
			}

			if idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.First(&existing, id).Error; err == nil {
						existing.Name = name
						existing.Price = price
						existing.Brand = brand
						existing.Warranty = warranty
						existing.Description = description
						existing.Image = image
						existing.Quantity = quantity
						existing.Type = productType
						if err := db.Save(&existing).Error; err == nil {
							updatedCount++
						} else {
							skippedCount++
						}
						continue
					}
				}
			}

			product := models.Product{
				Name:        name,
				Price:       price,
				Brand:       brand,
				Warranty:    warranty,
				Description: description,
				Image:       image,
				Quantity:    quantity,
				Type:        productType,
			}
			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
