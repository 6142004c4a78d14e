package models

type Favorite struct {
	BaseModel

	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_item"`
	ItemType string `gorm:"not null;uniqueIndex:idx_user_item"` // "trial", "expert", "publication"
	ItemID   string `gorm:"not null;uniqueIndex:idx_user_item"` // opaque reference, not a foreign key

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
