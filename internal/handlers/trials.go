package handlers

import (
	"errors"
	"net/http"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/matching"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTrialRequest struct {
	Title               string         `json:"title" binding:"required"`
	Description         string         `json:"description" binding:"required"`
	AISummary           string         `json:"ai_summary"`
	EligibilityCriteria string         `json:"eligibility_criteria" binding:"required"`
	Phase               string         `json:"phase" binding:"required"`
	Status              string         `json:"status" binding:"required"`
	Location            types.Location `json:"location" binding:"required"`
	ContactEmail        string         `json:"contact_email" binding:"required,email"`
	Conditions          []string       `json:"conditions" binding:"required"`
	StartDate           string         `json:"start_date"`
	EndDate             string         `json:"end_date"`
}

type UpdateTrialRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AISummary   *string `json:"ai_summary"`
	Status      *string `json:"status"`
}

type TrialResponse struct {
	ID                  uint           `json:"id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	AISummary           string         `json:"ai_summary,omitempty"`
	EligibilityCriteria string         `json:"eligibility_criteria"`
	Phase               string         `json:"phase"`
	Status              string         `json:"status"`
	Location            types.Location `json:"location"`
	ContactEmail        string         `json:"contact_email"`
	Conditions          []string       `json:"conditions"`
	CreatedByID         *uint          `json:"created_by_id,omitempty"`
	ExternalID          string         `json:"external_id,omitempty"`
	StartDate           string         `json:"start_date,omitempty"`
	EndDate             string         `json:"end_date,omitempty"`
}

func toTrialResponse(trial models.ClinicalTrial) TrialResponse {
	return TrialResponse{
		ID:                  trial.ID,
		Title:               trial.Title,
		Description:         trial.Description,
		AISummary:           trial.AISummary,
		EligibilityCriteria: trial.EligibilityCriteria,
		Phase:               trial.Phase,
		Status:              trial.Status,
		Location:            trial.Location.Data(),
		ContactEmail:        trial.ContactEmail,
		Conditions:          trial.Conditions,
		CreatedByID:         trial.CreatedByID,
		ExternalID:          trial.ExternalID,
		StartDate:           trial.StartDate,
		EndDate:             trial.EndDate,
	}
}

func CreateTrial(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role != types.RoleResearcher {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only researchers can create clinical trials"})
		return
	}

	var req CreateTrialRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.IsValidTrialPhase(req.Phase) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trial phase"})
		return
	}

	if !types.IsValidTrialStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recruitment status"})
		return
	}

	creatorID := currentUser.ID

	trial := models.ClinicalTrial{
		Title:               req.Title,
		Description:         req.Description,
		AISummary:           req.AISummary,
		EligibilityCriteria: req.EligibilityCriteria,
		Phase:               req.Phase,
		Status:              req.Status,
		Location:            datatypes.NewJSONType(req.Location),
		ContactEmail:        req.ContactEmail,
		Conditions:          pq.StringArray(req.Conditions),
		CreatedByID:         &creatorID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
	}

	if err := db.DB.Create(&trial).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create clinical trial"})
		return
	}

	ctx.JSON(http.StatusCreated, toTrialResponse(trial))
}

// ListTrials supports an indexed status filter and an in-memory substring
// filter on conditions.
func ListTrials(ctx *gin.Context) {
	query := db.DB.Order("id")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var trials []models.ClinicalTrial

	if err := query.Find(&trials).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clinical trials"})
		return
	}

	condition := ctx.Query("condition")

	response := make([]TrialResponse, 0, len(trials))

	for _, trial := range trials {
		if condition != "" && !matching.MatchesTerm(trial.Conditions, condition) {
			continue
		}

		response = append(response, toTrialResponse(trial))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetTrial(ctx *gin.Context) {
	trialID, err := utils.GetParamID(ctx, "trial_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var trial models.ClinicalTrial

	if err := db.DB.First(&trial, trialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trial not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trial"})
		}
		return
	}

	ctx.JSON(http.StatusOK, toTrialResponse(trial))
}

// GetRecommendedTrials pairs the caller's medical conditions against trial
// conditions, in insertion order, capped at the matcher limit.
func GetRecommendedTrials(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	response := make([]TrialResponse, 0, matching.Limit)

	if len(user.MedicalConditions) == 0 {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var trials []models.ClinicalTrial

	if err := db.DB.Order("id").Find(&trials).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clinical trials"})
		return
	}

	for _, trial := range trials {
		if !matching.Overlaps(user.MedicalConditions, trial.Conditions) {
			continue
		}

		response = append(response, toTrialResponse(trial))

		if len(response) == matching.Limit {
			break
		}
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTrial is creator-only. Imported trials have no creator and cannot be
// edited through the API.
func UpdateTrial(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	trialID, err := utils.GetParamID(ctx, "trial_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var trial models.ClinicalTrial

	if err := db.DB.First(&trial, trialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trial not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trial"})
		}
		return
	}

	if trial.CreatedByID == nil || *trial.CreatedByID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the trial creator can update it"})
		return
	}

	var req UpdateTrialRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if req.AISummary != nil {
		updates["ai_summary"] = *req.AISummary
	}

	if req.Status != nil {
		if !types.IsValidTrialStatus(*req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recruitment status"})
			return
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&trial).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trial"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Trial updated successfully"})
}
