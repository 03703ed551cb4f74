package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeva-app/neeva-backend/db"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/neeva-app/neeva-backend/internal/utils"
)

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreatePostRequest struct {
	GroupID     uint   `json:"group_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type GroupResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type PostResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	GroupID      uint      `json:"group_id"`
	Content      string    `json:"content"`
	IsAnonymous  bool      `json:"is_anonymous"`
	LikesCount   int       `json:"likes_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func ListGroups(ctx *gin.Context) {
	skip := queryInt(ctx, "skip", 0)
	limit := queryInt(ctx, "limit", 100)

	var groups []models.CommunityGroup

	if err := db.DB.Order("created_at ASC, id ASC").Offset(skip).Limit(limit).Find(&groups).Error; err != nil {
		lg.Error("failed to list community groups", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, groupResponse(group))
	}

	ctx.JSON(http.StatusOK, responses)
}

func CreateGroup(ctx *gin.Context) {
	var req CreateGroupRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := utils.GetCurrentUserID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	group := models.CommunityGroup{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := db.DB.Create(&group).Error; err != nil {
		lg.Error("failed to create community group", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, groupResponse(group))
}

func ListPosts(ctx *gin.Context) {
	skip := queryInt(ctx, "skip", 0)
	limit := queryInt(ctx, "limit", 50)

	query := db.DB.Model(&models.CommunityPost{})

	if groupID := queryInt(ctx, "group_id", 0); groupID > 0 {
		query = query.Where("group_id = ?", groupID)
	}

	var posts []models.CommunityPost

	if err := query.Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&posts).Error; err != nil {
		lg.Error("failed to list community posts", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postResponse(post))
	}

	ctx.JSON(http.StatusOK, responses)
}

func CreatePost(ctx *gin.Context) {
	var req CreatePostRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var group models.CommunityGroup

	if err := db.DB.First(&group, req.GroupID).Error; err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		return
	}

	post := models.CommunityPost{
		UserID:      userID,
		GroupID:     req.GroupID,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		lg.Error("failed to create community post", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, postResponse(post))
}

func groupResponse(group models.CommunityGroup) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		MemberCount: group.MemberCount,
		CreatedAt:   group.CreatedAt,
	}
}

func postResponse(post models.CommunityPost) PostResponse {
	return PostResponse{
		ID:           post.ID,
		UserID:       post.UserID,
		GroupID:      post.GroupID,
		Content:      post.Content,
		IsAnonymous:  post.IsAnonymous,
		LikesCount:   post.LikesCount,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
	}
}
