package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeva-app/neeva-backend/db"
	"github.com/neeva-app/neeva-backend/internal/chat"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/neeva-app/neeva-backend/internal/utils"
)

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatMessageResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHandler struct {
	svc *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// SendMessage records the user turn, asks the companion for a reply and
// records it. A provider outage still produces a (fallback) reply; only
// a storage failure turns into a 500.
func (h *ChatHandler) SendMessage(ctx *gin.Context) {
	var req ChatRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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

	reply, err := h.svc.Send(ctx.Request.Context(), &dbUser, req.Message)

	if err != nil {
		var storageErr *chat.StorageError
		if errors.As(err, &storageErr) && reply != nil {
			// The reply was generated but not durably saved. Hand the
			// text over anyway so the client can display it.
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Reply could not be saved",
				"content": reply.Content,
			})
			return
		}
		lg.Error("chat request failed", "user_id", currentUser.ID, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, chatMessageResponse(*reply))
}

// GetHistory returns the user's turns newest-first, paginated with
// skip/limit query parameters.
func (h *ChatHandler) GetHistory(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	skip := queryInt(ctx, "skip", 0)
	limit := queryInt(ctx, "limit", 50)

	turns, err := h.svc.History(ctx.Request.Context(), currentUser.ID, skip, limit)

	if err != nil {
		lg.Error("failed to fetch chat history", "user_id", currentUser.ID, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]ChatMessageResponse, 0, len(turns))
	for _, turn := range turns {
		responses = append(responses, chatMessageResponse(turn))
	}

	ctx.JSON(http.StatusOK, responses)
}

func chatMessageResponse(msg models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func queryInt(ctx *gin.Context, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
