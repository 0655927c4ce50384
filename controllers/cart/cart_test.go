package cartControllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jennlope/Buy4U/internal/testutil"
	"github.com/jennlope/Buy4U/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartRequiresAuth(t *testing.T) {
	db, router := testutil.NewServer(t)
	product := testutil.CreateProduct(t, db, "Phone X", 1000, 10)

	client := testutil.NewClient(t, router)
	w := client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d", product.ID), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToCartAccumulates(t *testing.T) {
	db, router := testutil.NewServer(t)
	_, token := testutil.CreateUser(t, db, "buyer", false)
	product := testutil.CreateProduct(t, db, "Phone X", 1000, 10)

	client := testutil.NewClient(t, router)
	client.Token = token

	w := client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d?quantity=2", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload := testutil.JSON(t, w)
	assert.EqualValues(t, 3, payload["quantity"])

	w = client.Do(http.MethodGet, "/user/cart/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := testutil.JSON(t, w)
	items := cart["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.EqualValues(t, 3, line["quantity"])
	assert.EqualValues(t, 3000, line["subtotal"])
	assert.EqualValues(t, 3000, cart["total"])

	// Popularity counter incremented once per add request
	var fresh models.Product
	require.NoError(t, db.First(&fresh, product.ID).Error)
	assert.Equal(t, 2, fresh.TimesAddedToCart)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db, router := testutil.NewServer(t)
	_, token := testutil.CreateUser(t, db, "buyer", false)

	client := testutil.NewClient(t, router)
	client.Token = token

	w := client.Do(http.MethodPost, "/user/cart/add/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCartOutOfStock(t *testing.T) {
	db, router := testutil.NewServer(t)
	_, token := testutil.CreateUser(t, db, "buyer", false)
	product := testutil.CreateProduct(t, db, "Sold Out", 50, 0)

	client := testutil.NewClient(t, router)
	client.Token = token

	w := client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d", product.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = client.Do(http.MethodGet, "/user/cart/", nil)
	cart := testutil.JSON(t, w)
	assert.Empty(t, cart["items"])
}

func TestUpdateCartQuantityReplaces(t *testing.T) {
	db, router := testutil.NewServer(t)
	_, token := testutil.CreateUser(t, db, "buyer", false)
	product := testutil.CreateProduct(t, db, "Mouse", 80, 20)

	client := testutil.NewClient(t, router)
	client.Token = token

	client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d", product.ID), nil)

	w := client.Do(http.MethodPost, fmt.Sprintf("/user/cart/update/%d", product.ID),
		map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	w = client.Do(http.MethodGet, "/user/cart/", nil)
	cart := testutil.JSON(t, w)
	items := cart["items"].([]interface{})
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].(map[string]interface{})["quantity"])
}

func TestUpdateCartQuantityZeroRemovesLine(t *testing.T) {
	db, router := testutil.NewServer(t)
	_, token := testutil.CreateUser(t, db, "buyer", false)
	product := testutil.CreateProduct(t, db, "Mouse", 80, 20)

	client := testutil.NewClient(t, router)
	client.Token = token

	client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d", product.ID), nil)

	w := client.Do(http.MethodPost, fmt.Sprintf("/user/cart/update/%d", product.ID),
		map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	w = client.Do(http.MethodGet, "/user/cart/", nil)
	cart := testutil.JSON(t, w)
	assert.Empty(t, cart["items"])
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	db, router := testutil.NewServer(t)
	_, token := testutil.CreateUser(t, db, "buyer", false)
	product := testutil.CreateProduct(t, db, "Mouse", 80, 20)

	client := testutil.NewClient(t, router)
	client.Token = token

	client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d", product.ID), nil)

	w := client.Do(http.MethodPost, fmt.Sprintf("/user/cart/remove/%d", product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Removing an absent line is a no-op, not an error
	w = client.Do(http.MethodPost, fmt.Sprintf("/user/cart/remove/%d", product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = client.Do(http.MethodGet, "/user/cart/", nil)
	cart := testutil.JSON(t, w)
	assert.Empty(t, cart["items"])
}

func TestGetCartSkipsDeletedProducts(t *testing.T) {
	db, router := testutil.NewServer(t)
	_, token := testutil.CreateUser(t, db, "buyer", false)
	product := testutil.CreateProduct(t, db, "Ghost", 10, 5)

	client := testutil.NewClient(t, router)
	client.Token = token

	client.Do(http.MethodPost, fmt.Sprintf("/user/cart/add/%d", product.ID), nil)
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	w := client.Do(http.MethodGet, "/user/cart/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := testutil.JSON(t, w)
	assert.Empty(t, cart["items"])
	assert.EqualValues(t, 0, cart["total"])
}
