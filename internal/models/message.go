package models

type Message struct {
	BaseModel

	FromUserID uint   `gorm:"not null;index"`
	ToUserID   uint   `gorm:"not null;index"`
	Content    string `gorm:"not null"`
	Read       bool   `gorm:"not null;default:false"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ToUser   User `gorm:"foreignKey:ToUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
