package handlers

import (
	"errors"
	"net/http"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UpdatePatientProfileRequest struct {
	MedicalConditions []string        `json:"medical_conditions"`
	Location          *types.Location `json:"location"`
}

// UpdatePatientProfile writes the patient-only columns. Researcher columns are
// never touched here, so a role switch cannot leave stale cross-role data
// reachable through this endpoint.
func UpdatePatientProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role != types.RolePatient {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only patients can update a patient profile"})
		return
	}

	var req UpdatePatientProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.MedicalConditions != nil {
		updates["medical_conditions"] = pq.StringArray(req.MedicalConditions)
	}

	if req.Location != nil {
		updates["location"] = datatypes.NewJSONType(*req.Location)
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", currentUser.ID).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// FollowExpert is an idempotent toggle: re-following returns the existing
// relationship instead of creating a duplicate.
func FollowExpert(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	expertID, err := utils.GetParamID(ctx, "researcher_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.FollowRelationship

	err = db.DB.Where("follower_id = ? AND following_id = ?", currentUser.ID, expertID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusOK, gin.H{"follow_id": existing.ID})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check follow relationship"})
		return
	}

	relationship := models.FollowRelationship{
		FollowerID:  currentUser.ID,
		FollowingID: expertID,
	}

	if err := db.DB.Create(&relationship).Error; err != nil {
		if isUniqueViolation(err) {
			if lookupErr := db.DB.Where("follower_id = ? AND following_id = ?", currentUser.ID, expertID).First(&existing).Error; lookupErr == nil {
				ctx.JSON(http.StatusOK, gin.H{"follow_id": existing.ID})
				return
			}
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow expert"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"follow_id": relationship.ID})
}

// UnfollowExpert silently succeeds when no relationship exists.
func UnfollowExpert(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	expertID, err := utils.GetParamID(ctx, "researcher_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var relationship models.FollowRelationship

	err = db.DB.Where("follower_id = ? AND following_id = ?", currentUser.ID, expertID).First(&relationship).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Status(http.StatusNoContent)
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check follow relationship"})
		}
		return
	}

	if err := db.DB.Delete(&relationship).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow expert"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
