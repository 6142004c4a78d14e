package handlers

import (
	"errors"
	"net/http"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole lets a user pick patient or researcher during onboarding.
// Admin is not self-assignable.
func UpdateRole(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateRoleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Role != types.RolePatient && req.Role != types.RoleResearcher {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role must be patient or researcher"})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", currentUser.ID).Update("role", req.Role).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

// GetUser returns the public profile of any user.
func GetUser(ctx *gin.Context) {
	userID, err := utils.GetParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.UserSummary{
		ID:          user.ID,
		Name:        user.Name,
		Role:        user.Role,
		Institution: user.Institution,
	})
}
