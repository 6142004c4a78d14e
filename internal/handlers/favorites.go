package handlers

import (
	"errors"
	"net/http"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a Postgres duplicate-key error,
// which the idempotent toggles map back to the existing record.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type FavoriteRequest struct {
	ItemType string `json:"item_type" binding:"required"`
	ItemID   string `json:"item_id" binding:"required"`
}

type FavoriteResponse struct {
	ID       uint   `json:"id"`
	ItemType string `json:"item_type"`
	ItemID   string `json:"item_id"`
}

// AddFavorite is idempotent: adding an item twice returns the same stored id
// and keeps exactly one record. A compound unique index on
// (user_id, item_type, item_id) backs up the check-then-insert.
func AddFavorite(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req FavoriteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.IsValidItemType(req.ItemType) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Item type must be trial, expert or publication"})
		return
	}

	var existing models.Favorite

	err = db.DB.Where("user_id = ? AND item_type = ? AND item_id = ?", currentUser.ID, req.ItemType, req.ItemID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusOK, gin.H{"favorite_id": existing.ID})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check favorites"})
		return
	}

	favorite := models.Favorite{
		UserID:   currentUser.ID,
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
	}

	if err := db.DB.Create(&favorite).Error; err != nil {
		// A concurrent add can slip between the check and the insert; the
		// unique index rejects it, so hand back the record that won.
		if isUniqueViolation(err) {
			if lookupErr := db.DB.Where("user_id = ? AND item_type = ? AND item_id = ?", currentUser.ID, req.ItemType, req.ItemID).First(&existing).Error; lookupErr == nil {
				ctx.JSON(http.StatusOK, gin.H{"favorite_id": existing.ID})
				return
			}
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"favorite_id": favorite.ID})
}

// RemoveFavorite silently succeeds when the favorite does not exist.
func RemoveFavorite(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req FavoriteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var favorite models.Favorite

	err = db.DB.Where("user_id = ? AND item_type = ? AND item_id = ?", currentUser.ID, req.ItemType, req.ItemID).First(&favorite).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Status(http.StatusNoContent)
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check favorites"})
		}
		return
	}

	if err := db.DB.Delete(&favorite).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListFavorites(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("user_id = ?", currentUser.ID).Order("id")

	if itemType := ctx.Query("item_type"); itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}

	var favorites []models.Favorite

	if err := query.Find(&favorites).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorites"})
		return
	}

	response := make([]FavoriteResponse, 0, len(favorites))

	for _, favorite := range favorites {
		response = append(response, FavoriteResponse{
			ID:       favorite.ID,
			ItemType: favorite.ItemType,
			ItemID:   favorite.ItemID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
