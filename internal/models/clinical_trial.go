package models

import (
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClinicalTrial struct {
	gorm.Model

	Title               string `gorm:"not null"`
	Description         string `gorm:"not null"`
	AISummary           string
	EligibilityCriteria string
	Phase               string                             `gorm:"not null"` // "phase_1".."phase_4", "not_applicable"
	Status              string                             `gorm:"not null;index"`
	Location            datatypes.JSONType[types.Location] `gorm:"type:jsonb"`
	ContactEmail        string
	Conditions          pq.StringArray `gorm:"type:text[]"`
	CreatedByID         *uint          `gorm:"index"` // nil for trials imported from an external registry
	ExternalID          string         `gorm:"uniqueIndex:idx_clinical_trials_external_id,where:external_id <> ''"`
	StartDate           string
	EndDate             string

	// Relationships
	CreatedBy *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
