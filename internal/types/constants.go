package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// User roles
const (
	RoleAdmin      = "admin"
	RolePatient    = "patient"
	RoleResearcher = "researcher"
)

// Clinical trial recruitment statuses
const (
	StatusRecruiting    = "recruiting"
	StatusNotRecruiting = "not_recruiting"
	StatusCompleted     = "completed"
	StatusSuspended     = "suspended"
)

// Clinical trial phases
const (
	Phase1             = "phase_1"
	Phase2             = "phase_2"
	Phase3             = "phase_3"
	Phase4             = "phase_4"
	PhaseNotApplicable = "not_applicable"
)

// Favorite item types
const (
	ItemTypeTrial       = "trial"
	ItemTypeExpert      = "expert"
	ItemTypePublication = "publication"
)

// Connection request statuses
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

func IsValidTrialStatus(status string) bool {
	switch status {
	case StatusRecruiting, StatusNotRecruiting, StatusCompleted, StatusSuspended:
		return true
	}
	return false
}

func IsValidTrialPhase(phase string) bool {
	switch phase {
	case Phase1, Phase2, Phase3, Phase4, PhaseNotApplicable:
		return true
	}
	return false
}

func IsValidItemType(itemType string) bool {
	switch itemType {
	case ItemTypeTrial, ItemTypeExpert, ItemTypePublication:
		return true
	}
	return false
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
