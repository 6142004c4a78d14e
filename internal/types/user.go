package types

// Location is stored as a jsonb column on users and clinical trials.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role,omitempty"`
}

// UserSummary is the author/sender shape embedded in forum and connection
// responses.
type UserSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Institution string `json:"institution,omitempty"`
}
