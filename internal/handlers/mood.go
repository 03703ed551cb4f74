package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeva-app/neeva-backend/db"
	"github.com/neeva-app/neeva-backend/internal/ai"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/neeva-app/neeva-backend/internal/utils"
)

type CreateMoodLogRequest struct {
	MoodLevel int    `json:"mood_level" binding:"required,min=1,max=5"`
	Notes     string `json:"notes"`
}

type MoodLogResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	MoodLevel int       `json:"mood_level"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type MoodStatsResponse struct {
	TotalEntries     int64         `json:"total_entries"`
	AverageMood      float64       `json:"average_mood"`
	WeeklyTrend      []float64     `json:"weekly_trend"`
	MoodDistribution map[int]int64 `json:"mood_distribution"`
}

func CreateMoodLog(ctx *gin.Context) {
	var req CreateMoodLogRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	moodLog := models.MoodLog{
		UserID:    userID,
		MoodLevel: req.MoodLevel,
		Notes:     req.Notes,
	}

	if err := db.DB.Create(&moodLog).Error; err != nil {
		lg.Error("failed to create mood log", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, moodLogResponse(moodLog))
}

func ListMoodLogs(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	skip := queryInt(ctx, "skip", 0)
	limit := queryInt(ctx, "limit", 100)

	var logs []models.MoodLog

	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&logs).Error; err != nil {
		lg.Error("failed to list mood logs", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]MoodLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, moodLogResponse(log))
	}

	ctx.JSON(http.StatusOK, responses)
}

func GetMoodStats(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var totalEntries int64

	if err := db.DB.Model(&models.MoodLog{}).Where("user_id = ?", userID).Count(&totalEntries).Error; err != nil {
		lg.Error("failed to count mood logs", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var averageMood float64

	row := db.DB.Model(&models.MoodLog{}).Where("user_id = ?", userID).Select("COALESCE(AVG(mood_level), 0)").Row()
	if err := row.Scan(&averageMood); err != nil {
		lg.Error("failed to average mood logs", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	var counts []struct {
		MoodLevel int
		Count     int64
	}

	if err := db.DB.Model(&models.MoodLog{}).Select("mood_level, COUNT(*) as count").Where("user_id = ?", userID).Group("mood_level").Scan(&counts).Error; err != nil {
		lg.Error("failed to build mood distribution", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for _, c := range counts {
		if _, ok := distribution[c.MoodLevel]; ok {
			distribution[c.MoodLevel] = c.Count
		}
	}

	weekAgo := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)

	var weeklyLogs []models.MoodLog

	if err := db.DB.Where("user_id = ? AND created_at >= ?", userID, weekAgo).Find(&weeklyLogs).Error; err != nil {
		lg.Error("failed to fetch weekly mood logs", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, MoodStatsResponse{
		TotalEntries:     totalEntries,
		AverageMood:      math.Round(averageMood*10) / 10,
		WeeklyTrend:      weeklyTrend(weeklyLogs, weekAgo),
		MoodDistribution: distribution,
	})
}

// weeklyTrend buckets the last seven days into daily averages, zero
// for days without entries.
func weeklyTrend(logs []models.MoodLog, weekStart time.Time) []float64 {
	sums := make([]float64, 7)
	counts := make([]int, 7)

	for _, log := range logs {
		day := int(log.CreatedAt.Sub(weekStart).Hours() / 24)
		if day < 0 || day > 6 {
			continue
		}
		sums[day] += float64(log.MoodLevel)
		counts[day]++
	}

	trend := make([]float64, 7)
	for i := range trend {
		if counts[i] > 0 {
			trend[i] = math.Round(sums[i]/float64(counts[i])*10) / 10
		}
	}
	return trend
}

func moodLogResponse(log models.MoodLog) MoodLogResponse {
	return MoodLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		MoodLevel: log.MoodLevel,
		Notes:     log.Notes,
		CreatedAt: log.CreatedAt,
	}
}

// InsightsHandler serves model-generated summaries over a user's
// recent mood logs.
type InsightsHandler struct {
	gateway *ai.Gateway
}

func NewInsightsHandler(gateway *ai.Gateway) *InsightsHandler {
	return &InsightsHandler{gateway: gateway}
}

func (h *InsightsHandler) GetMoodInsight(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var logs []models.MoodLog

	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(7).Find(&logs).Error; err != nil {
		lg.Error("failed to fetch mood logs for insight", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	insight := h.gateway.SummarizeMoodTrend(ctx.Request.Context(), logs)

	ctx.JSON(http.StatusOK, gin.H{"insight": insight})
}
