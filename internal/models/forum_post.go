package models

import "gorm.io/gorm"

type ForumPost struct {
	gorm.Model

	CommunityID uint   `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"not null"`

	// Set once at creation from the author's role. Patient posts are
	// questions and only researchers may reply to them.
	IsQuestion bool `gorm:"not null;default:false"`

	// Relationships
	Community ForumCommunity `gorm:"foreignKey:CommunityID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author    User           `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Replies   []ForumReply   `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
