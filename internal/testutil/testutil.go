// Package testutil wires an in-memory copy of the full HTTP stack for
// handler tests: sqlite-backed GORM, session middleware, and the real
// route table.
package testutil

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jennlope/Buy4U/auth"
	"github.com/jennlope/Buy4U/models"
	"github.com/jennlope/Buy4U/routes"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewServer returns a fresh database and a router with the production
// route table mounted on it.
func NewServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_API_KEY", "test-api-key")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.ProductOrder{},
		&models.Review{},
		&models.BrowsingHistory{},
		&models.Event{},
	))

	gob.Register(map[string]int{})
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("buy4u_session", store))
	routes.SetupRoutes(r, db)
	return db, r
}

// Client drives the router while carrying session cookies and an
// optional bearer token between requests, like a browser would.
type Client struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
	Token   string
	APIKey  string
}

func NewClient(t *testing.T, router *gin.Engine) *Client {
	return &Client{t: t, router: router}
}

// Do performs a request. A non-nil body is sent as JSON.
func (c *Client) Do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", c.Token)
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-KEY", c.APIKey)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		c.setCookie(ck)
	}
	return w
}

func (c *Client) setCookie(ck *http.Cookie) {
	for i, existing := range c.cookies {
		if existing.Name == ck.Name {
			c.cookies[i] = ck
			return
		}
	}
	c.cookies = append(c.cookies, ck)
}

// JSON decodes a recorder body into a map.
func JSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

// CreateUser inserts a user with password "pass1234" and returns it
// with a signed token.
func CreateUser(t *testing.T, db *gorm.DB, username string, staff bool) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: string(hash), IsStaff: staff}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.IssueToken(user)
	require.NoError(t, err)
	return user, token
}

// CreateProduct inserts a catalog product.
func CreateProduct(t *testing.T, db *gorm.DB, name string, price float64, quantity int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Brand: "BrandA", Quantity: quantity, Type: "electronics"}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// CreatePurchase records a completed order of one product so review
// guards see the user as a buyer.
func CreatePurchase(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) models.Order {
	t.Helper()
	order := models.Order{
		UserID:   &userID,
		OrderRef: uuid.NewString(),
		Status:   models.OrderStatusDelivered,
		Items: []models.ProductOrder{
			{ProductID: productID, Quantity: quantity},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
