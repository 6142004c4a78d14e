package models

import "time"

// BaseModel is used by relationship tables that are hard-deleted so their
// compound unique indexes keep working after a remove/re-add cycle.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
