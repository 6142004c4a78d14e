package handlers

import (
	"net/http"
	"strconv"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/matching"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type CreatePublicationRequest struct {
	Title           string   `json:"title" binding:"required"`
	Authors         []string `json:"authors" binding:"required"`
	Abstract        string   `json:"abstract" binding:"required"`
	AISummary       string   `json:"ai_summary"`
	PublicationDate string   `json:"publication_date" binding:"required"`
	Journal         string   `json:"journal"`
	DOI             string   `json:"doi"`
	PubmedID        string   `json:"pubmed_id"`
	Keywords        []string `json:"keywords"`
}

type PublicationResponse struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Abstract        string   `json:"abstract"`
	AISummary       string   `json:"ai_summary,omitempty"`
	PublicationDate string   `json:"publication_date"`
	Journal         string   `json:"journal,omitempty"`
	DOI             string   `json:"doi,omitempty"`
	PubmedID        string   `json:"pubmed_id,omitempty"`
	Keywords        []string `json:"keywords"`
	ResearcherID    *uint    `json:"researcher_id,omitempty"`
}

func toPublicationResponse(pub models.Publication) PublicationResponse {
	return PublicationResponse{
		ID:              pub.ID,
		Title:           pub.Title,
		Authors:         pub.Authors,
		Abstract:        pub.Abstract,
		AISummary:       pub.AISummary,
		PublicationDate: pub.PublicationDate,
		Journal:         pub.Journal,
		DOI:             pub.DOI,
		PubmedID:        pub.PubmedID,
		Keywords:        pub.Keywords,
		ResearcherID:    pub.ResearcherID,
	}
}

func CreatePublication(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePublicationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	researcherID := currentUser.ID

	publication := models.Publication{
		Title:           req.Title,
		Authors:         pq.StringArray(req.Authors),
		Abstract:        req.Abstract,
		AISummary:       req.AISummary,
		PublicationDate: req.PublicationDate,
		Journal:         req.Journal,
		DOI:             req.DOI,
		PubmedID:        req.PubmedID,
		Keywords:        pq.StringArray(req.Keywords),
		ResearcherID:    &researcherID,
	}

	if err := db.DB.Create(&publication).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create publication"})
		return
	}

	ctx.JSON(http.StatusCreated, toPublicationResponse(publication))
}

func ListPublications(ctx *gin.Context) {
	query := db.DB.Order("id")

	if researcherParam := ctx.Query("researcher_id"); researcherParam != "" {
		researcherID, err := strconv.ParseUint(researcherParam, 10, 64)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid researcher_id"})
			return
		}

		query = query.Where("researcher_id = ?", uint(researcherID))
	}

	var publications []models.Publication

	if err := query.Find(&publications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve publications"})
		return
	}

	response := make([]PublicationResponse, 0, len(publications))

	for _, publication := range publications {
		response = append(response, toPublicationResponse(publication))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetRecommendedPublications pairs the caller's medical conditions against
// publication keywords.
func GetRecommendedPublications(ctx *gin.Context) {
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

	response := make([]PublicationResponse, 0, matching.Limit)

	if len(user.MedicalConditions) == 0 {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var publications []models.Publication

	if err := db.DB.Order("id").Find(&publications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve publications"})
		return
	}

	for _, publication := range publications {
		if !matching.Overlaps(user.MedicalConditions, publication.Keywords) {
			continue
		}

		response = append(response, toPublicationResponse(publication))

		if len(response) == matching.Limit {
			break
		}
	}

	ctx.JSON(http.StatusOK, response)
}
