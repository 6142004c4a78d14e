package db

import (
	"github.com/curalink-dev/curalink/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.ClinicalTrial{},
		&models.Publication{},
		&models.ForumCommunity{},
		&models.ForumPost{},
		&models.ForumReply{},
		&models.Favorite{},
		&models.FollowRelationship{},
		&models.ConnectionRequest{},
		&models.Message{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
