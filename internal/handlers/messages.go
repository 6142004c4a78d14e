package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SendMessageRequest struct {
	ToUserID uint   `json:"to_user_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID         uint      `json:"id"`
	FromUserID uint      `json:"from_user_id"`
	ToUserID   uint      `json:"to_user_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func toMessageResponse(message models.Message) MessageResponse {
	return MessageResponse{
		ID:         message.ID,
		FromUserID: message.FromUserID,
		ToUserID:   message.ToUserID,
		Content:    message.Content,
		Read:       message.Read,
		CreatedAt:  message.CreatedAt,
	}
}

func SendMessage(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SendMessageRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.ToUserID == currentUser.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a message to yourself"})
		return
	}

	var recipient models.User

	if err := db.DB.First(&recipient, req.ToUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	message := models.Message{
		FromUserID: currentUser.ID,
		ToUserID:   recipient.ID,
		Content:    req.Content,
	}

	if err := db.DB.Create(&message).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	response := toMessageResponse(message)

	NotifyUser(recipient.ID, gin.H{
		"type":    "message",
		"message": response,
	})

	ctx.JSON(http.StatusCreated, response)
}

// GetConversation returns both directions of the thread with another user in
// insertion order.
func GetConversation(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	otherID, err := utils.GetParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var messages []models.Message

	err = db.DB.Where(
		"(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
		currentUser.ID, otherID, otherID, currentUser.ID,
	).Order("id").Find(&messages).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	response := make([]MessageResponse, 0, len(messages))

	for _, message := range messages {
		response = append(response, toMessageResponse(message))
	}

	ctx.JSON(http.StatusOK, response)
}

// MarkMessageRead is recipient-only.
func MarkMessageRead(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID, err := utils.GetParamID(ctx, "message_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var message models.Message

	if err := db.DB.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
		}
		return
	}

	if message.ToUserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the recipient can mark a message as read"})
		return
	}

	if err := db.DB.Model(&message).Update("read", true).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

func GetUnreadCount(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var count int64

	if err := db.DB.Model(&models.Message{}).Where("to_user_id = ? AND read = ?", currentUser.ID, false).Count(&count).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count messages"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unread": count})
}
