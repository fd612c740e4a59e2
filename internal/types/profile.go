// Package types provides type definitions for the data exchanged between the
// jobpilot dashboard and the backend API.
package types

// Profile is the candidate profile as the backend stores it. The email is the
// identity key: re-saving a profile with the same email overwrites it.
type Profile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           *string  `json:"phone,omitempty"`
	ResumeText      *string  `json:"resume_text,omitempty"`
	Titles          []string `json:"titles"`
	Locations       []string `json:"locations"`
	Remote          bool     `json:"remote"`
	IncludeKeywords []string `json:"include_keywords"`
	ExcludeKeywords []string `json:"exclude_keywords"`
}

// ProfileForm is the raw profile input as the user typed it. List fields hold
// comma-separated free text.
type ProfileForm struct {
	Name            string
	Email           string
	Phone           string
	ResumeText      string
	Titles          string
	Locations       string
	Remote          bool
	IncludeKeywords string
	ExcludeKeywords string
}

// NewProfileForm returns an empty form with the dashboard defaults applied.
func NewProfileForm() ProfileForm {
	return ProfileForm{Remote: true}
}
