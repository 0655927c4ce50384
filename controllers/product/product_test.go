package productcontroller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/jennlope/Buy4U/internal/testutil"
	"github.com/jennlope/Buy4U/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopListAndFilters(t *testing.T) {
	db, router := testutil.NewServer(t)
	testutil.CreateProduct(t, db, "Laptop Gamer", 5000000, 10)
	testutil.CreateProduct(t, db, "Mouse", 80000, 20)

	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodGet, "/shop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload := testutil.JSON(t, w)
	assert.Len(t, payload["products"], 2)

	// Price range keeps the mouse, drops the laptop
	w = client.Do(http.MethodGet, "/shop?min_price=100000&max_price=1000000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Mouse")
	assert.NotContains(t, body, "Laptop Gamer")

	// Name substring match
	w = client.Do(http.MethodGet, "/shop?name=laptop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Laptop Gamer")

	// Malformed price filter
	w = client.Do(http.MethodGet, "/shop?min_price=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShopSearchIsLogged(t *testing.T) {
	db, router := testutil.NewServer(t)
	testutil.CreateProduct(t, db, "Phone X", 1000, 10)

	client := testutil.NewClient(t, router)
	w := client.Do(http.MethodGet, "/shop?name=Phone&min_price=&max_price=", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Only non-empty filter pairs are recorded
	var entry models.BrowsingHistory
	require.NoError(t, db.Where("action = ?", models.ActionSearch).First(&entry).Error)
	assert.Contains(t, entry.Query, "name=Phone")
	assert.NotContains(t, entry.Query, "min_price")
	assert.NotEmpty(t, entry.SessionKey)
}

func TestProductViewIsLogged(t *testing.T) {
	db, router := testutil.NewServer(t)
	product := testutil.CreateProduct(t, db, "Phone X", 1000, 10)

	client := testutil.NewClient(t, router)
	w := client.Do(http.MethodGet, fmt.Sprintf("/shop/product/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history models.BrowsingHistory
	require.NoError(t, db.Where("action = ?", models.ActionProductView).First(&history).Error)
	require.NotNil(t, history.ProductID)
	assert.Equal(t, product.ID, *history.ProductID)

	var event models.Event
	require.NoError(t, db.Where("event_type = ?", models.EventTypeView).First(&event).Error)
	require.NotNil(t, event.ProductID)
	assert.Equal(t, product.ID, *event.ProductID)
}

func TestProductDetailAggregatesReviews(t *testing.T) {
	db, router := testutil.NewServer(t)
	product := testutil.CreateProduct(t, db, "Phone X", 1000, 10)
	alice, _ := testutil.CreateUser(t, db, "alice", false)
	bob, _ := testutil.CreateUser(t, db, "bob", false)
	require.NoError(t, db.Create(&models.Review{ProductID: product.ID, UserID: alice.ID, Rating: 5, Text: "Great!"}).Error)
	require.NoError(t, db.Create(&models.Review{ProductID: product.ID, UserID: bob.ID, Rating: 3, Text: "Ok", UsefulCount: 7}).Error)

	client := testutil.NewClient(t, router)
	w := client.Do(http.MethodGet, fmt.Sprintf("/shop/product/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload := testutil.JSON(t, w)

	assert.EqualValues(t, 2, payload["reviews_count"])
	assert.InDelta(t, 4.0, payload["avg_rating"].(float64), 0.001)

	// rating sort puts the 5-star review first
	w = client.Do(http.MethodGet, fmt.Sprintf("/shop/product/%d?sort=rating", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload = testutil.JSON(t, w)
	reviews := payload["reviews"].([]interface{})
	require.Len(t, reviews, 2)
	assert.EqualValues(t, 5, reviews[0].(map[string]interface{})["rating"])

	// useful sort puts the most-voted review first
	w = client.Do(http.MethodGet, fmt.Sprintf("/shop/product/%d?sort=useful", product.ID), nil)
	payload = testutil.JSON(t, w)
	reviews = payload["reviews"].([]interface{})
	assert.EqualValues(t, 7, reviews[0].(map[string]interface{})["useful_count"])
}

func TestProductDetailNotFound(t *testing.T) {
	_, router := testutil.NewServer(t)
	client := testutil.NewClient(t, router)
	w := client.Do(http.MethodGet, "/shop/product/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInStockAPIExcludesSoldOut(t *testing.T) {
	db, router := testutil.NewServer(t)
	testutil.CreateProduct(t, db, "Available", 10, 5)
	testutil.CreateProduct(t, db, "Gone", 10, 0)

	client := testutil.NewClient(t, router)
	w := client.Do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Available", products[0].Name)
}

func TestAdminProductCRUD(t *testing.T) {
	db, router := testutil.NewServer(t)
	client := testutil.NewClient(t, router)

	// API key required
	w := client.Do(http.MethodPost, "/admin/products", map[string]interface{}{
		"name": "Keyboard", "price": 120.0, "quantity": 15,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	client.APIKey = "test-api-key"

	w = client.Do(http.MethodPost, "/admin/products", map[string]interface{}{
		"name": "Keyboard", "price": 120.0, "quantity": 15, "brand": "BrandK", "type": "accessories",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, db.First(&product).Error)
	assert.Equal(t, "Keyboard", product.Name)

	// Partial update keeps untouched fields
	w = client.Do(http.MethodPut, fmt.Sprintf("/admin/products/%d", product.ID),
		map[string]interface{}{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, 3, product.Quantity)
	assert.Equal(t, "Keyboard", product.Name)
	assert.Equal(t, 120.0, product.Price)

	// Validation
	w = client.Do(http.MethodPost, "/admin/products", map[string]interface{}{"name": "Free stuff"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Delete, then the detail route misses
	w = client.Do(http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = client.Do(http.MethodGet, fmt.Sprintf("/shop/product/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = client.Do(http.MethodDelete, "/admin/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
