package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/admin"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/auth"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func setupTestRouter(db *gorm.DB, tokens *auth.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r, auth.Middleware(tokens, db))
	adminHandler := admin.NewHandler(db)
	adminHandler.RegisterRoutes(r.Group("/admin"))
	return r
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func doAuthed(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	resp := postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "Joe", user.UserName)
	assert.NotNil(t, user.Links)
	assert.Empty(t, user.Links)

	// The password never appears in the response.
	assert.NotContains(t, resp.Body.String(), "password")
	assert.NotContains(t, resp.Body.String(), "sleepy")
}

func TestRegisterDuplicateUserName(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	resp := postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy2"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Username already registered")
}

// Mirrors the end-to-end flow: Joe registers, a duplicate registration
// fails, Don registers and is visible through the admin surface.
func TestRegisterAndAdminReadBack(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	resp := postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy"})
	require.Equal(t, http.StatusOK, resp.Code)
	var joe models.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &joe))
	assert.Equal(t, uint(1), joe.ID)
	assert.Empty(t, joe.Links)

	resp = postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy2"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = postJSON(router, "/register", RegisterRequest{UserName: "Don", Password: "hairy"})
	require.Equal(t, http.StatusOK, resp.Code)
	var don models.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &don))

	req, _ := http.NewRequest(http.MethodGet, "/admin/users/2", nil)
	adminResp := httptest.NewRecorder()
	router.ServeHTTP(adminResp, req)
	require.Equal(t, http.StatusOK, adminResp.Code, adminResp.Body.String())

	var fetched models.User
	require.NoError(t, json.Unmarshal(adminResp.Body.Bytes(), &fetched))
	assert.Equal(t, don.ID, fetched.ID)
	assert.Equal(t, "Don", fetched.UserName)
	assert.NotNil(t, fetched.Links)
	assert.Empty(t, fetched.Links)
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	resp := postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy"})
	require.Equal(t, http.StatusOK, resp.Code)

	token, err := tokens.GenerateToken(1)
	require.NoError(t, err)

	resp = doAuthed(router, http.MethodGet, "/users/me", token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	assert.Equal(t, "Joe", user.UserName)
	assert.NotNil(t, user.Links)
}

func TestMeWithoutToken(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), auth.CredentialsMessage)
}

func TestUpdateCredentials(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	resp := postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy"})
	require.Equal(t, http.StatusOK, resp.Code)

	update := UpdateRequest{
		OldUserName: "Joe",
		OldPassword: "sleepy",
		UserName:    "Joseph",
		Password:    "wideawake",
	}
	jsonBody, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPatch, "/users/me/update", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	patchResp := httptest.NewRecorder()
	router.ServeHTTP(patchResp, req)

	require.Equal(t, http.StatusOK, patchResp.Code, patchResp.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(patchResp.Body.Bytes(), &user))
	assert.Equal(t, "Joseph", user.UserName)

	// Old credentials no longer authenticate, the new ones do.
	_, err := auth.Authenticate(db, "Joe", "sleepy")
	assert.Error(t, err)
	_, err = auth.Authenticate(db, "Joseph", "wideawake")
	assert.NoError(t, err)
}

func TestUpdateCredentialsWrongOldPassword(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	resp := postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy"})
	require.Equal(t, http.StatusOK, resp.Code)

	update := UpdateRequest{
		OldUserName: "Joe",
		OldPassword: "wrong",
		UserName:    "Joseph",
		Password:    "wideawake",
	}
	jsonBody, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPatch, "/users/me/update", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	patchResp := httptest.NewRecorder()
	router.ServeHTTP(patchResp, req)

	assert.Equal(t, http.StatusUnauthorized, patchResp.Code)
	assert.Contains(t, patchResp.Body.String(), auth.CredentialsMessage)
}

func TestDeleteSelfCascadesLinks(t *testing.T) {
	db := setupTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute)
	router := setupTestRouter(db, tokens)

	resp := postJSON(router, "/register", RegisterRequest{UserName: "Joe", Password: "sleepy"})
	require.Equal(t, http.StatusOK, resp.Code)

	for _, short := range []string{"http://short/a", "http://short/b"} {
		link := models.Link{LongVersion: "https://example.com", ShortVersion: short, OwnerID: 1}
		require.NoError(t, db.Create(&link).Error)
	}

	token, err := tokens.GenerateToken(1)
	require.NoError(t, err)

	deleteResp := doAuthed(router, http.MethodDelete, "/users/me/delete", token)
	require.Equal(t, http.StatusOK, deleteResp.Code, deleteResp.Body.String())
	assert.Contains(t, deleteResp.Body.String(), "user deleted")

	var userCount, linkCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Link{}).Where("owner_id = ?", 1).Count(&linkCount)
	assert.Zero(t, userCount)
	assert.Zero(t, linkCount)
}
