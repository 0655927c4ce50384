package reportControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

const dayFormat = "2006-01-02"

// DailyStat is one calendar day of aggregated activity.
type DailyStat struct {
	Date      string  `json:"date"`
	Visits    int     `json:"visits"`
	Purchases int     `json:"purchases"`
	AvgRating float64 `json:"avg_rating"`
}

// DailyStats recomputes the last `days` days from raw log and order
// rows. Every day in range appears exactly once, zero-valued when
// nothing happened, oldest first.
func DailyStats(db *gorm.DB, days int) ([]DailyStat, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	var views []models.BrowsingHistory
	if err := db.Select("created_at").
		Where("action = ? AND created_at >= ?", models.ActionProductView, start).
		Find(&views).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := db.Select("created_at").
		Where("created_at >= ?", start).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := db.Select("created_at, rating").
		Where("created_at >= ?", start).
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	visitsByDay := make(map[string]int)
	for _, v := range views {
		visitsByDay[v.CreatedAt.Local().Format(dayFormat)]++
	}
	ordersByDay := make(map[string]int)
	for _, o := range orders {
		ordersByDay[o.CreatedAt.Local().Format(dayFormat)]++
	}
	ratingSumByDay := make(map[string]int)
	ratingCountByDay := make(map[string]int)
	for _, r := range reviews {
		day := r.CreatedAt.Local().Format(dayFormat)
		ratingSumByDay[day] += r.Rating
		ratingCountByDay[day]++
	}

	stats := make([]DailyStat, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(dayFormat)
		stat := DailyStat{
			Date:      day,
			Visits:    visitsByDay[day],
			Purchases: ordersByDay[day],
		}
		if n := ratingCountByDay[day]; n > 0 {
			stat.AvgRating = float64(ratingSumByDay[day]) / float64(n)
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// ReportsDataJSON feeds the dashboard charts.
// GET /admin/reports/data?days=N
func ReportsDataJSON(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		stats, err := DailyStats(db, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate reports"})
			return
		}

		labels := make([]string, len(stats))
		visits := make([]int, len(stats))
		purchases := make([]int, len(stats))
		avgRatings := make([]float64, len(stats))
		for i, s := range stats {
			labels[i] = s.Date
			visits[i] = s.Visits
			purchases[i] = s.Purchases
			avgRatings[i] = s.AvgRating
		}

		c.JSON(http.StatusOK, gin.H{
			"labels":      labels,
			"visits":      visits,
			"purchases":   purchases,
			"avg_ratings": avgRatings,
		})
	}
}

// ProductCount is a top-N row: a product and how often it was viewed
// or bought.
type ProductCount struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Total     int    `json:"total"`
}

// TopProductsJSON lists the most viewed and most purchased products.
// GET /admin/reports/top-products?n=K&days=N
func TopProductsJSON(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, _ := strconv.Atoi(c.DefaultQuery("n", "5"))
		if n <= 0 {
			n = 5
		}
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		if days <= 0 {
			days = 7
		}
		start := time.Now().AddDate(0, 0, -days)

		var topViewed []ProductCount
		if err := db.Table("browsing_histories").
			Select("products.id AS product_id, products.name AS name, COUNT(*) AS total").
			Joins("JOIN products ON products.id = browsing_histories.product_id").
			Where("browsing_histories.action = ? AND browsing_histories.created_at >= ?",
				models.ActionProductView, start).
			Group("products.id, products.name").
			Order("total DESC").
			Limit(n).
			Scan(&topViewed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate views"})
			return
		}

		var topBought []ProductCount
		if err := db.Table("product_orders").
			Select("products.id AS product_id, products.name AS name, SUM(product_orders.quantity) AS total").
			Joins("JOIN orders ON orders.id = product_orders.order_id").
			Joins("JOIN products ON products.id = product_orders.product_id").
			Where("orders.created_at >= ?", start).
			Group("products.id, products.name").
			Order("total DESC").
			Limit(n).
			Scan(&topBought).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate purchases"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"top_viewed": topViewed,
			"top_bought": topBought,
		})
	}
}

// RatingStat is one product's review aggregate.
type RatingStat struct {
	Name         string  `json:"name"`
	AvgRating    float64 `json:"avg_rating"`
	ReviewsCount int     `json:"reviews_count"`
}

// RatingStatsJSON returns per-product rating aggregates for the most
// reviewed products.
// GET /admin/reports/ratings?top=K
func RatingStatsJSON(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		top, _ := strconv.Atoi(c.DefaultQuery("top", "10"))
		if top <= 0 {
			top = 10
		}

		var stats []RatingStat
		if err := db.Table("reviews").
			Select("products.name AS name, AVG(reviews.rating) AS avg_rating, COUNT(*) AS reviews_count").
			Joins("JOIN products ON products.id = reviews.product_id").
			Group("products.id, products.name").
			Order("reviews_count DESC").
			Limit(top).
			Scan(&stats).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate ratings"})
			return
		}
		if stats == nil {
			stats = []RatingStat{}
		}

		c.JSON(http.StatusOK, gin.H{"rating_stats": stats})
	}
}

// BrowsingHistoryList shows the most recent interaction log rows.
// GET /admin/browsing-history?limit=K
func BrowsingHistoryList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 || limit > 500 {
			limit = 50
		}

		var entries []models.BrowsingHistory
		if err := db.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch browsing history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"history": entries})
	}
}
