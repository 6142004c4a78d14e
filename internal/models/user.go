package models

import (
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Image        string
	Role         string `gorm:"index"` // "admin", "patient", "researcher" or unset

	// Patient-specific fields
	MedicalConditions pq.StringArray                     `gorm:"type:text[]"`
	Location          datatypes.JSONType[types.Location] `gorm:"type:jsonb"`

	// Researcher-specific fields
	Specialties          pq.StringArray `gorm:"type:text[]"`
	ResearchInterests    pq.StringArray `gorm:"type:text[]"`
	AvailableForMeetings bool           `gorm:"default:false"`
	OrcidID              string
	ResearchGateID       string
	Bio                  string
	Institution          string

	// Relationships
	ClinicalTrials     []ClinicalTrial     `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Publications       []Publication       `gorm:"foreignKey:ResearcherID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Favorites          []Favorite          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ConnectionRequests []ConnectionRequest `gorm:"foreignKey:ToUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
