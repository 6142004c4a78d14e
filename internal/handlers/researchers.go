package handlers

import (
	"net/http"
	"strings"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/matching"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type UpdateResearcherProfileRequest struct {
	Specialties          []string `json:"specialties"`
	ResearchInterests    []string `json:"research_interests"`
	AvailableForMeetings *bool    `json:"available_for_meetings"`
	OrcidID              *string  `json:"orcid_id"`
	ResearchGateID       *string  `json:"research_gate_id"`
	Bio                  *string  `json:"bio"`
	Institution          *string  `json:"institution"`
}

type ResearcherResponse struct {
	ID                   uint     `json:"id"`
	Name                 string   `json:"name"`
	Specialties          []string `json:"specialties"`
	ResearchInterests    []string `json:"research_interests"`
	AvailableForMeetings bool     `json:"available_for_meetings"`
	OrcidID              string   `json:"orcid_id,omitempty"`
	ResearchGateID       string   `json:"research_gate_id,omitempty"`
	Bio                  string   `json:"bio,omitempty"`
	Institution          string   `json:"institution,omitempty"`
}

func toResearcherResponse(user models.User) ResearcherResponse {
	return ResearcherResponse{
		ID:                   user.ID,
		Name:                 user.Name,
		Specialties:          user.Specialties,
		ResearchInterests:    user.ResearchInterests,
		AvailableForMeetings: user.AvailableForMeetings,
		OrcidID:              user.OrcidID,
		ResearchGateID:       user.ResearchGateID,
		Bio:                  user.Bio,
		Institution:          user.Institution,
	}
}

func UpdateResearcherProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role != types.RoleResearcher {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only researchers can update a researcher profile"})
		return
	}

	var req UpdateResearcherProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Specialties != nil {
		updates["specialties"] = pq.StringArray(req.Specialties)
	}

	if req.ResearchInterests != nil {
		updates["research_interests"] = pq.StringArray(req.ResearchInterests)
	}

	if req.AvailableForMeetings != nil {
		updates["available_for_meetings"] = *req.AvailableForMeetings
	}

	if req.OrcidID != nil {
		updates["orcid_id"] = *req.OrcidID
	}

	if req.ResearchGateID != nil {
		updates["research_gate_id"] = *req.ResearchGateID
	}

	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if req.Institution != nil {
		updates["institution"] = *req.Institution
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

// SearchCollaborators lists researchers, optionally narrowed by a search term
// matched against name, specialties and research interests. Filtering happens
// in memory over the role-indexed set, which is small.
func SearchCollaborators(ctx *gin.Context) {
	var researchers []models.User

	if err := db.DB.Where("role = ?", types.RoleResearcher).Order("id").Find(&researchers).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve researchers"})
		return
	}

	term := strings.TrimSpace(ctx.Query("q"))

	response := make([]ResearcherResponse, 0, len(researchers))

	for _, researcher := range researchers {
		if term != "" {
			nameMatch := strings.Contains(strings.ToLower(researcher.Name), strings.ToLower(term))

			if !nameMatch && !matching.MatchesTerm(researcher.Specialties, term) && !matching.MatchesTerm(researcher.ResearchInterests, term) {
				continue
			}
		}

		response = append(response, toResearcherResponse(researcher))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetRecommendedExperts pairs the caller's medical conditions against
// researcher specialties.
func GetRecommendedExperts(ctx *gin.Context) {
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

	response := make([]ResearcherResponse, 0, matching.Limit)

	if len(user.MedicalConditions) == 0 {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var researchers []models.User

	if err := db.DB.Where("role = ?", types.RoleResearcher).Order("id").Find(&researchers).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve researchers"})
		return
	}

	for _, researcher := range researchers {
		if !matching.Overlaps(user.MedicalConditions, researcher.Specialties) {
			continue
		}

		response = append(response, toResearcherResponse(researcher))

		if len(response) == matching.Limit {
			break
		}
	}

	ctx.JSON(http.StatusOK, response)
}
