package models

type ConnectionRequest struct {
	BaseModel

	FromUserID uint   `gorm:"not null;index"`
	ToUserID   uint   `gorm:"not null;index"`
	Status     string `gorm:"not null;index"` // "pending", "accepted", "rejected"
	Message    string

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ToUser   User `gorm:"foreignKey:ToUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
