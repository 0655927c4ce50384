package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jennlope/Buy4U/models"
	"gorm.io/gorm"
)

const sessionKeyName = "session_key"

// searchKeys are the query parameters treated as search input when
// logging catalog requests.
var searchKeys = []string{"q", "query", "name", "brand", "type", "min_price", "max_price", "category"}

// EnsureSessionKey guarantees every visitor has a stable session key so
// anonymous interaction logs can be correlated.
func EnsureSessionKey(c *gin.Context) string {
	session := sessions.Default(c)
	if key, ok := session.Get(sessionKeyName).(string); ok && key != "" {
		return key
	}
	key := uuid.NewString()
	session.Set(sessionKeyName, key)
	_ = session.Save()
	return key
}

// TrackInteractions records product views and searches on the catalog
// routes, mirroring what the storefront pages report. Log writes are
// best effort: a failed insert never fails the request.
func TrackInteractions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/shop") {
			c.Next()
			return
		}

		sessionKey := EnsureSessionKey(c)
		var userID *uint
		if id, ok := CurrentUserID(c); ok {
			userID = &id
		}

		// Product detail views
		if idParam := c.Param("id"); idParam != "" && strings.Contains(path, "/shop/product/") {
			var productID *uint
			if id64, err := strconv.ParseUint(idParam, 10, 64); err == nil {
				id := uint(id64)
				productID = &id
			}
			db.Create(&models.BrowsingHistory{
				UserID:     userID,
				SessionKey: sessionKey,
				Action:     models.ActionProductView,
				ProductID:  productID,
				Path:       path,
			})
			db.Create(&models.Event{
				UserID:     userID,
				SessionKey: sessionKey,
				EventType:  models.EventTypeView,
				ProductID:  productID,
				Path:       path,
				Metadata:   fmt.Sprintf(`{"method":%q}`, c.Request.Method),
			})
		}

		// Searches and filters, empty values omitted
		var pairs []string
		for _, key := range searchKeys {
			if v := c.Query(key); v != "" {
				pairs = append(pairs, key+"="+v)
			}
		}
		if len(pairs) > 0 {
			query := strings.Join(pairs, "&")
			if len(query) > 255 {
				query = query[:255]
			}
			db.Create(&models.BrowsingHistory{
				UserID:     userID,
				SessionKey: sessionKey,
				Action:     models.ActionSearch,
				Query:      query,
				Path:       path,
			})
		}

		// Explicit click beacons
		if c.Query("clicked") == "1" {
			db.Create(&models.Event{
				UserID:     userID,
				SessionKey: sessionKey,
				EventType:  models.EventTypeClick,
				Path:       path,
				Metadata:   fmt.Sprintf(`{"method":%q}`, c.Request.Method),
			})
		}

		c.Next()
	}
}
