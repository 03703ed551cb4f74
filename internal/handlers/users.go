package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neeva-app/neeva-backend/db"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/neeva-app/neeva-backend/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var dbUser models.User

	if err := db.DB.First(&dbUser, currentUser.ID).Error; err != nil {
		lg.Error("failed to fetch user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(dbUser)})
}

// CompleteOnboarding stores the open-ended onboarding answers and marks
// the user onboarded. Unknown keys are stored untouched; only the chat
// personalization layer interprets them.
func CompleteOnboarding(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var data map[string]interface{}

	if err := ctx.ShouldBindJSON(&data); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid onboarding data"})
		return
	}

	updates := map[string]interface{}{
		"onboarding_data":      datatypes.JSON(raw),
		"onboarding_completed": true,
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", currentUser.ID).Updates(updates).Error; err != nil {
		lg.Error("failed to save onboarding data", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var dbUser models.User

	if err := db.DB.First(&dbUser, currentUser.ID).Error; err != nil {
		lg.Error("failed to refresh user data", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(dbUser)})
}

type PreferencesRequest struct {
	Notifications   map[string]interface{} `json:"notifications"`
	Theme           string                 `json:"theme"`
	Language        string                 `json:"language"`
	PrivacySettings map[string]interface{} `json:"privacy_settings"`
}

type PreferencesResponse struct {
	Notifications   datatypes.JSON `json:"notifications,omitempty"`
	Theme           string         `json:"theme"`
	Language        string         `json:"language"`
	PrivacySettings datatypes.JSON `json:"privacy_settings,omitempty"`
}

func GetPreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var pref models.UserPreference

	if err := db.DB.Where("user_id = ?", currentUser.ID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, PreferencesResponse{Theme: "auto", Language: "en"})
			return
		}
		lg.Error("failed to fetch preferences", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, preferencesResponse(pref))
}

// UpdatePreferences upserts the user's settings row. Missing fields keep
// their stored values.
func UpdatePreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PreferencesRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pref models.UserPreference

	err = db.DB.Where("user_id = ?", currentUser.ID).First(&pref).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		lg.Error("failed to fetch preferences", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	pref.UserID = currentUser.ID
	if req.Theme != "" {
		pref.Theme = req.Theme
	}
	if req.Language != "" {
		pref.Language = req.Language
	}

	// Fill the column defaults up front so the response matches what a
	// later read returns.
	if pref.Theme == "" {
		pref.Theme = "auto"
	}
	if pref.Language == "" {
		pref.Language = "en"
	}
	if req.Notifications != nil {
		raw, err := json.Marshal(req.Notifications)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification settings"})
			return
		}
		pref.Notifications = datatypes.JSON(raw)
	}
	if req.PrivacySettings != nil {
		raw, err := json.Marshal(req.PrivacySettings)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid privacy settings"})
			return
		}
		pref.PrivacySettings = datatypes.JSON(raw)
	}

	if err := db.DB.Save(&pref).Error; err != nil {
		lg.Error("failed to save preferences", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, preferencesResponse(pref))
}

func preferencesResponse(pref models.UserPreference) PreferencesResponse {
	return PreferencesResponse{
		Notifications:   pref.Notifications,
		Theme:           pref.Theme,
		Language:        pref.Language,
		PrivacySettings: pref.PrivacySettings,
	}
}
