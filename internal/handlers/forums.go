package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

type CommunityResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreatedByID uint   `json:"created_by_id"`
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type PostResponse struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	IsQuestion bool              `json:"is_question"`
	CreatedAt  time.Time         `json:"created_at"`
	Author     types.UserSummary `json:"author"`
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

type ReplyResponse struct {
	ID        uint              `json:"id"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	Author    types.UserSummary `json:"author"`
}

func CreateCommunity(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role != types.RoleResearcher {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only researchers can create communities"})
		return
	}

	var req CreateCommunityRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	community := models.ForumCommunity{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		CreatedByID: currentUser.ID,
	}

	if err := db.DB.Create(&community).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create community"})
		return
	}

	ctx.JSON(http.StatusCreated, CommunityResponse{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		Category:    community.Category,
		CreatedByID: community.CreatedByID,
	})
}

func ListCommunities(ctx *gin.Context) {
	var communities []models.ForumCommunity

	if err := db.DB.Order("id").Find(&communities).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve communities"})
		return
	}

	response := make([]CommunityResponse, 0, len(communities))

	for _, community := range communities {
		response = append(response, CommunityResponse{
			ID:          community.ID,
			Name:        community.Name,
			Description: community.Description,
			Category:    community.Category,
			CreatedByID: community.CreatedByID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// CreatePost marks the post as a question when the author is a patient. The
// flag is computed once here and never recomputed, even if the author's role
// changes later.
func CreatePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	communityID, err := utils.GetParamID(ctx, "community_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreatePostRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var community models.ForumCommunity

	if err := db.DB.First(&community, communityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve community"})
		}
		return
	}

	post := models.ForumPost{
		CommunityID: community.ID,
		AuthorID:    currentUser.ID,
		Title:       req.Title,
		Content:     req.Content,
		IsQuestion:  currentUser.Role == types.RolePatient,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"post_id": post.ID, "is_question": post.IsQuestion})
}

func ListPosts(ctx *gin.Context) {
	communityID, err := utils.GetParamID(ctx, "community_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var posts []models.ForumPost

	if err := db.DB.Preload("Author").Where("community_id = ?", communityID).Order("id").Find(&posts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	response := make([]PostResponse, 0, len(posts))

	for _, post := range posts {
		response = append(response, PostResponse{
			ID:         post.ID,
			Title:      post.Title,
			Content:    post.Content,
			IsQuestion: post.IsQuestion,
			CreatedAt:  post.CreatedAt,
			Author: types.UserSummary{
				ID:          post.Author.ID,
				Name:        post.Author.Name,
				Role:        post.Author.Role,
				Institution: post.Author.Institution,
			},
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateReply enforces the question gate: only researchers may answer patient
// questions.
func CreateReply(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := utils.GetParamID(ctx, "post_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateReplyRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var post models.ForumPost

	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		}
		return
	}

	if post.IsQuestion && currentUser.Role != types.RoleResearcher {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only researchers can reply to patient questions"})
		return
	}

	reply := models.ForumReply{
		PostID:   post.ID,
		AuthorID: currentUser.ID,
		Content:  req.Content,
	}

	if err := db.DB.Create(&reply).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"reply_id": reply.ID})
}

func ListReplies(ctx *gin.Context) {
	postID, err := utils.GetParamID(ctx, "post_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var replies []models.ForumReply

	if err := db.DB.Preload("Author").Where("post_id = ?", postID).Order("id").Find(&replies).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve replies"})
		return
	}

	response := make([]ReplyResponse, 0, len(replies))

	for _, reply := range replies {
		response = append(response, ReplyResponse{
			ID:        reply.ID,
			Content:   reply.Content,
			CreatedAt: reply.CreatedAt,
			Author: types.UserSummary{
				ID:          reply.Author.ID,
				Name:        reply.Author.Name,
				Role:        reply.Author.Role,
				Institution: reply.Author.Institution,
			},
		})
	}

	ctx.JSON(http.StatusOK, response)
}
