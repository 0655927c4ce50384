package auth_test

import (
	"net/http"
	"testing"

	"github.com/jennlope/Buy4U/internal/testutil"
	"github.com/jennlope/Buy4U/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUser(t *testing.T) {
	db, router := testutil.NewServer(t)
	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodPost, "/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	payload := testutil.JSON(t, w)
	assert.Equal(t, "alice", payload["username"])

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "pass1234", user.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db, router := testutil.NewServer(t)
	testutil.CreateUser(t, db, "alice", false)
	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodPost, "/auth/register", map[string]interface{}{
		"username": "alice",
		"password": "pass1234",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	_, router := testutil.NewServer(t)
	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodPost, "/auth/register", map[string]interface{}{
		"username": "alice",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db, router := testutil.NewServer(t)
	testutil.CreateUser(t, db, "alice", false)
	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Username OR password is incorrect")
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	_, router := testutil.NewServer(t)
	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "nobody",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Username OR password is incorrect")
}

func TestLoginIssuesWorkingToken(t *testing.T) {
	db, router := testutil.NewServer(t)
	testutil.CreateUser(t, db, "alice", false)
	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, w.Code)
	payload := testutil.JSON(t, w)
	token, ok := payload["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	client.Token = token
	w = client.Do(http.MethodGet, "/user/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := testutil.JSON(t, w)
	assert.Equal(t, "alice", profile["username"])
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	_, router := testutil.NewServer(t)
	client := testutil.NewClient(t, router)

	w := client.Do(http.MethodGet, "/user/", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
