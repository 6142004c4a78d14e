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

type SendConnectionRequest struct {
	ToUserID uint   `json:"to_user_id" binding:"required"`
	Message  string `json:"message"`
}

type RespondConnectionRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type ConnectionResponse struct {
	ID        uint              `json:"id"`
	Status    string            `json:"status"`
	Message   string            `json:"message,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	FromUser  types.UserSummary `json:"from_user"`
}

func SendConnection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SendConnectionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.ToUserID == currentUser.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a connection request to yourself"})
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

	request := models.ConnectionRequest{
		FromUserID: currentUser.ID,
		ToUserID:   recipient.ID,
		Status:     types.ConnectionPending,
		Message:    req.Message,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send connection request"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"request_id": request.ID})
}

// ListConnections returns the caller's incoming pending requests with sender
// summaries.
func ListConnections(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var requests []models.ConnectionRequest

	if err := db.DB.Preload("FromUser").Where("to_user_id = ? AND status = ?", currentUser.ID, types.ConnectionPending).Order("id").Find(&requests).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve connection requests"})
		return
	}

	response := make([]ConnectionResponse, 0, len(requests))

	for _, request := range requests {
		response = append(response, ConnectionResponse{
			ID:        request.ID,
			Status:    request.Status,
			Message:   request.Message,
			CreatedAt: request.CreatedAt,
			FromUser: types.UserSummary{
				ID:          request.FromUser.ID,
				Name:        request.FromUser.Name,
				Role:        request.FromUser.Role,
				Institution: request.FromUser.Institution,
			},
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// RespondConnection is recipient-only and single-shot: once a request is
// accepted or rejected, a second response is a conflict rather than a silent
// overwrite.
func RespondConnection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requestID, err := utils.GetParamID(ctx, "request_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req RespondConnectionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var request models.ConnectionRequest

	if err := db.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Connection request not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve connection request"})
		}
		return
	}

	if request.ToUserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the recipient can respond to this request"})
		return
	}

	if request.Status != types.ConnectionPending {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Connection request has already been responded to"})
		return
	}

	status := types.ConnectionRejected
	if *req.Accept {
		status = types.ConnectionAccepted
	}

	if err := db.DB.Model(&request).Update("status", status).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update connection request"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": status})
}
