package reportControllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportReportsCSV downloads the daily series as CSV.
// GET /admin/reports/export/csv?days=N
func ExportReportsCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		stats, err := DailyStats(db, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate reports"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=reports.csv")
		c.Header("Content-Type", "text/csv")

		writer := csv.NewWriter(c.Writer)
		if err := writer.Write([]string{"date", "visits", "orders"}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
			return
		}
		for _, s := range stats {
			record := []string{s.Date, strconv.Itoa(s.Visits), strconv.Itoa(s.Purchases)}
			if err := writer.Write(record); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
				return
			}
		}
		writer.Flush()
	}
}

// ExportReportsExcel downloads the daily series as a workbook.
// GET /admin/reports/export/excel?days=N
func ExportReportsExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		stats, err := DailyStats(db, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate reports"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Reports")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range []string{"Date", "Visits", "Orders", "AvgRating"} {
			headerRow.AddCell().SetValue(h)
		}
		for _, s := range stats {
			row := sheet.AddRow()
			row.AddCell().SetValue(s.Date)
			row.AddCell().SetValue(s.Visits)
			row.AddCell().SetValue(s.Purchases)
			row.AddCell().SetValue(s.AvgRating)
		}

		c.Header("Content-Disposition", "attachment; filename=reports.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

// ExportReportsPDF downloads the daily series as a simple PDF listing.
// GET /admin/reports/export/pdf?days=N
func ExportReportsPDF(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		stats, err := DailyStats(db, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate reports"})
			return
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Sales and Activity Report")
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 8, "Date", "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, "Visits", "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, "Orders", "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, "Avg rating", "1", 1, "", false, 0, "")

		pdf.SetFont("Arial", "", 11)
		for _, s := range stats {
			pdf.CellFormat(45, 8, s.Date, "1", 0, "", false, 0, "")
			pdf.CellFormat(35, 8, strconv.Itoa(s.Visits), "1", 0, "", false, 0, "")
			pdf.CellFormat(35, 8, strconv.Itoa(s.Purchases), "1", 0, "", false, 0, "")
			pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", s.AvgRating), "1", 1, "", false, 0, "")
		}

		c.Header("Content-Disposition", "attachment; filename=reports.pdf")
		c.Header("Content-Type", "application/pdf")

		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write PDF file"})
			return
		}
	}
}
