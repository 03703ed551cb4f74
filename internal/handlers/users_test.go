package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neeva-app/neeva-backend/db"
	"github.com/neeva-app/neeva-backend/internal/middleware"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/neeva-app/neeva-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupUsersRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.UserPreference{}))
	db.DB = gdb

	user := &models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x"}
	require.NoError(t, gdb.Create(user).Error)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	})
	router.GET("/api/users/preferences", GetPreferences)
	router.PUT("/api/users/preferences", UpdatePreferences)

	return router
}

func putPreferences(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/users/preferences", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getPreferences(t *testing.T, router *gin.Engine) PreferencesResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/users/preferences", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreferencesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetPreferences_NoRowReturnsDefaults(t *testing.T) {
	router := setupUsersRouter(t)

	resp := getPreferences(t, router)
	assert.Equal(t, "auto", resp.Theme)
	assert.Equal(t, "en", resp.Language)
}

func TestUpdatePreferences_FirstPutFillsDefaults(t *testing.T) {
	router := setupUsersRouter(t)

	rec := putPreferences(t, router, gin.H{
		"notifications": gin.H{"daily_reminder": true},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreferencesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "auto", resp.Theme)
	assert.Equal(t, "en", resp.Language)

	// The reply matches what a later read returns.
	assert.Equal(t, resp, getPreferences(t, router))
}

func TestUpdatePreferences_PartialPutKeepsStoredValues(t *testing.T) {
	router := setupUsersRouter(t)

	rec := putPreferences(t, router, gin.H{"theme": "dark", "language": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = putPreferences(t, router, gin.H{
		"privacy_settings": gin.H{"share_mood": false},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := getPreferences(t, router)
	assert.Equal(t, "dark", resp.Theme)
	assert.Equal(t, "hi", resp.Language)
	assert.NotEmpty(t, resp.PrivacySettings)
}
