package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/curalink-dev/curalink/db"
	"github.com/curalink-dev/curalink/internal/models"
	"github.com/curalink-dev/curalink/internal/types"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClinicalTrials.gov v2 API payloads, reduced to the fields we store.

type studiesResponse struct {
	Studies []study `json:"studies"`
}

type study struct {
	ProtocolSection protocolSection `json:"protocolSection"`
}

type protocolSection struct {
	Identification identificationModule    `json:"identificationModule"`
	Status         statusModule            `json:"statusModule"`
	Description    descriptionModule       `json:"descriptionModule"`
	Conditions     conditionsModule        `json:"conditionsModule"`
	Design         designModule            `json:"designModule"`
	Eligibility    eligibilityModule       `json:"eligibilityModule"`
	ContactsLocs   contactsLocationsModule `json:"contactsLocationsModule"`
}

type identificationModule struct {
	NCTID      string `json:"nctId"`
	BriefTitle string `json:"briefTitle"`
}

type statusModule struct {
	OverallStatus  string     `json:"overallStatus"`
	StartDate      dateStruct `json:"startDateStruct"`
	CompletionDate dateStruct `json:"completionDateStruct"`
}

type dateStruct struct {
	Date string `json:"date"`
}

type descriptionModule struct {
	BriefSummary string `json:"briefSummary"`
}

type conditionsModule struct {
	Conditions []string `json:"conditions"`
}

type designModule struct {
	Phases []string `json:"phases"`
}

type eligibilityModule struct {
	EligibilityCriteria string `json:"eligibilityCriteria"`
}

type contactsLocationsModule struct {
	CentralContacts []centralContact `json:"centralContacts"`
	Locations       []studyLocation  `json:"locations"`
}

type centralContact struct {
	Email string `json:"email"`
}

type studyLocation struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

const (
	registryBaseURL = "https://clinicaltrials.gov/api/v2/studies"
	syncPageSize    = 50
	syncTimeout     = 30 * time.Second
)

// SyncTrials imports studies for each configured condition and upserts them by
// registry ID. Imported trials have no creator and stay read-only in the API.
func SyncTrials(conditions []string) error {
	client := &http.Client{Timeout: syncTimeout}

	for _, condition := range conditions {
		condition = strings.TrimSpace(condition)

		if condition == "" {
			continue
		}

		if err := syncCondition(client, condition); err != nil {
			return fmt.Errorf("sync %q: %w", condition, err)
		}
	}

	return nil
}

func syncCondition(client *http.Client, condition string) error {
	endpoint := fmt.Sprintf("%s?query.cond=%s&pageSize=%d", registryBaseURL, url.QueryEscape(condition), syncPageSize)

	resp, err := client.Get(endpoint)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status from registry: " + resp.Status)
	}

	var payload studiesResponse

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}

	imported := 0

	for _, s := range payload.Studies {
		if s.ProtocolSection.Identification.NCTID == "" {
			continue
		}

		if err := upsertStudy(s); err != nil {
			log.Printf("Failed to upsert study %s: %v", s.ProtocolSection.Identification.NCTID, err)
			continue
		}

		imported++
	}

	log.Printf("Trial sync for %q processed %d studies", condition, imported)
	return nil
}

func upsertStudy(s study) error {
	section := s.ProtocolSection

	trial := models.ClinicalTrial{
		Title:               section.Identification.BriefTitle,
		Description:         section.Description.BriefSummary,
		EligibilityCriteria: section.Eligibility.EligibilityCriteria,
		Phase:               mapPhase(section.Design.Phases),
		Status:              mapStatus(section.Status.OverallStatus),
		Location:            datatypes.NewJSONType(firstLocation(section.ContactsLocs.Locations)),
		ContactEmail:        firstContactEmail(section.ContactsLocs.CentralContacts),
		Conditions:          pq.StringArray(section.Conditions.Conditions),
		ExternalID:          section.Identification.NCTID,
		StartDate:           section.Status.StartDate.Date,
		EndDate:             section.Status.CompletionDate.Date,
	}

	var existing models.ClinicalTrial

	err := db.DB.Where("external_id = ?", trial.ExternalID).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.DB.Create(&trial).Error
	}

	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"title":                trial.Title,
		"description":          trial.Description,
		"eligibility_criteria": trial.EligibilityCriteria,
		"phase":                trial.Phase,
		"status":               trial.Status,
		"location":             trial.Location,
		"contact_email":        trial.ContactEmail,
		"conditions":           trial.Conditions,
		"start_date":           trial.StartDate,
		"end_date":             trial.EndDate,
	}

	return db.DB.Model(&existing).Updates(updates).Error
}

func mapStatus(overall string) string {
	switch overall {
	case "RECRUITING", "ENROLLING_BY_INVITATION":
		return types.StatusRecruiting
	case "COMPLETED":
		return types.StatusCompleted
	case "SUSPENDED", "TERMINATED", "WITHDRAWN":
		return types.StatusSuspended
	default:
		return types.StatusNotRecruiting
	}
}

func mapPhase(phases []string) string {
	for _, phase := range phases {
		switch phase {
		case "PHASE1", "EARLY_PHASE1":
			return types.Phase1
		case "PHASE2":
			return types.Phase2
		case "PHASE3":
			return types.Phase3
		case "PHASE4":
			return types.Phase4
		}
	}
	return types.PhaseNotApplicable
}

func firstContactEmail(contacts []centralContact) string {
	for _, contact := range contacts {
		if contact.Email != "" {
			return contact.Email
		}
	}
	return ""
}

func firstLocation(locations []studyLocation) types.Location {
	for _, location := range locations {
		if location.City != "" || location.Country != "" {
			return types.Location{City: location.City, Country: location.Country}
		}
	}
	return types.Location{}
}
