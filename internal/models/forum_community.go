package models

import "gorm.io/gorm"

type ForumCommunity struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	Category    string `gorm:"not null;index"`
	CreatedByID uint   `gorm:"not null;index"`

	// Relationships
	CreatedBy User        `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Posts     []ForumPost `gorm:"foreignKey:CommunityID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
