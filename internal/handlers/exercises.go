package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeva-app/neeva-backend/db"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/neeva-app/neeva-backend/internal/utils"
)

type CompleteExerciseRequest struct {
	ExerciseID string `json:"exercise_id" binding:"required"`
	Duration   int    `json:"duration_completed" binding:"required,min=1"` // Seconds
}

type ExerciseResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	ExerciseID  string    `json:"exercise_id"`
	Duration    int       `json:"duration_completed"`
	CompletedAt time.Time `json:"completed_at"`
}

type ExerciseStatsResponse struct {
	TotalMinutes      int   `json:"total_minutes"`
	SessionsCompleted int64 `json:"sessions_completed"`
}

func CompleteExercise(ctx *gin.Context) {
	var req CompleteExerciseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	exercise := models.ExerciseCompletion{
		UserID:     userID,
		ExerciseID: req.ExerciseID,
		Duration:   req.Duration,
	}

	if err := db.DB.Create(&exercise).Error; err != nil {
		lg.Error("failed to record exercise completion", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, exerciseResponse(exercise))
}

func GetExerciseHistory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	skip := queryInt(ctx, "skip", 0)
	limit := queryInt(ctx, "limit", 50)

	var exercises []models.ExerciseCompletion

	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&exercises).Error; err != nil {
		lg.Error("failed to list exercise history", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]ExerciseResponse, 0, len(exercises))
	for _, exercise := range exercises {
		responses = append(responses, exerciseResponse(exercise))
	}

	ctx.JSON(http.StatusOK, responses)
}

func GetExerciseStats(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var totalSeconds int64

	row := db.DB.Model(&models.ExerciseCompletion{}).Where("user_id = ?", userID).Select("COALESCE(SUM(duration), 0)").Row()
	if err := row.Scan(&totalSeconds); err != nil {
		lg.Error("failed to sum exercise durations", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var sessions int64

	if err := db.DB.Model(&models.ExerciseCompletion{}).Where("user_id = ?", userID).Count(&sessions).Error; err != nil {
		lg.Error("failed to count exercise sessions", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, ExerciseStatsResponse{
		TotalMinutes:      int(totalSeconds / 60),
		SessionsCompleted: sessions,
	})
}

func exerciseResponse(exercise models.ExerciseCompletion) ExerciseResponse {
	return ExerciseResponse{
		ID:          exercise.ID,
		UserID:      exercise.UserID,
		ExerciseID:  exercise.ExerciseID,
		Duration:    exercise.Duration,
		CompletedAt: exercise.CreatedAt,
	}
}
