package models

import "gorm.io/gorm"

type ForumReply struct {
	gorm.Model

	PostID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null;index"`
	Content  string `gorm:"not null"`

	// Relationships
	Post   ForumPost `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
