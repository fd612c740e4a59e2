package types

import (
	"github.com/go-playground/validator/v10"
)

// ApplicationStatus is the backend's label for where an application stands.
// The set of values is owned by the backend and treated as opaque here.
type ApplicationStatus string

// Labels the backend is known to emit. Other values are passed through as-is.
const (
	StatusQueued    ApplicationStatus = "queued"
	StatusGenerated ApplicationStatus = "generated"
	StatusSubmitted ApplicationStatus = "submitted"
)

// Application is a tracked application as reported by the backend. Status and
// CoverLetter are populated server-side.
type Application struct {
	JobTitle       string            `json:"job_title"`
	Company        *string           `json:"company,omitempty"`
	JobURL         string            `json:"job_url"`
	ApplicantEmail string            `json:"applicant_email"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"cover_letter"`
}

// ApplicationRequest is the payload that asks the backend to queue an
// application and generate its cover letter.
type ApplicationRequest struct {
	JobTitle       string  `json:"job_title"`
	Company        *string `json:"company,omitempty"`
	JobURL         string  `json:"job_url"`
	ApplicantEmail string  `json:"applicant_email" validate:"required"`
}

// NewApplicationRequest builds the queue payload for a listing on behalf of
// applicantEmail.
func NewApplicationRequest(listing JobListing, applicantEmail string) ApplicationRequest {
	return ApplicationRequest{
		JobTitle:       listing.Title,
		Company:        listing.Company,
		JobURL:         listing.URL,
		ApplicantEmail: applicantEmail,
	}
}

// Validate validates the ApplicationRequest using the validator.
func (r *ApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
