package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Publication struct {
	gorm.Model

	Title           string         `gorm:"not null"`
	Authors         pq.StringArray `gorm:"type:text[];not null"`
	Abstract        string         `gorm:"not null"`
	AISummary       string
	PublicationDate string `gorm:"not null"`
	Journal         string
	DOI             string
	PubmedID        string
	Keywords        pq.StringArray `gorm:"type:text[]"`
	ResearcherID    *uint          `gorm:"index"`

	// Relationships
	Researcher *User `gorm:"foreignKey:ResearcherID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
