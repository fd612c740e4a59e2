//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request ApplicationRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: ApplicationRequest{
				JobTitle:       "Backend Engineer",
				JobURL:         "https://x.co/jobs/1",
				ApplicantEmail: "ana@example.com",
			},
		},
		{
			name: "missing applicant email",
			request: ApplicationRequest{
				JobTitle: "Backend Engineer",
				JobURL:   "https://x.co/jobs/1",
			},
			wantErr: true,
		},
		{
			name:    "empty title and url are accepted",
			request: ApplicationRequest{ApplicantEmail: "ana@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "required")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewApplicationRequest(t *testing.T) {
	company := "X Corp"
	listing := JobListing{Title: "Backend Engineer", URL: "https://x.co/jobs/1", Company: &company}

	req := NewApplicationRequest(listing, "ana@example.com")

	assert.Equal(t, "Backend Engineer", req.JobTitle)
	assert.Equal(t, "https://x.co/jobs/1", req.JobURL)
	assert.Equal(t, "ana@example.com", req.ApplicantEmail)
	require.NotNil(t, req.Company)
	assert.Equal(t, "X Corp", *req.Company)
}

func TestApplicationRequest_OmitsAbsentCompany(t *testing.T) {
	req := NewApplicationRequest(JobListing{Title: "SRE", URL: "https://y.io/sre"}, "ana@example.com")

	data, err := json.Marshal(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"job_title":"SRE","job_url":"https://y.io/sre","applicant_email":"ana@example.com"}`, string(data))
}

func TestProfile_JSONShape(t *testing.T) {
	p := Profile{
		Name:            "Ana Lee",
		Email:           "ana@example.com",
		Titles:          []string{"Backend Engineer", "SRE"},
		Locations:       []string{},
		Remote:          true,
		IncludeKeywords: []string{},
		ExcludeKeywords: []string{},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "phone")
	assert.NotContains(t, raw, "resume_text")
	assert.Equal(t, []any{}, raw["locations"])
	assert.Equal(t, true, raw["remote"])
}

func TestJobListing_CompanyName(t *testing.T) {
	company := "Acme"
	assert.Equal(t, "Acme", JobListing{Company: &company}.CompanyName())
	assert.Equal(t, "", JobListing{}.CompanyName())
}

func TestNewProfileForm_DefaultsRemote(t *testing.T) {
	assert.True(t, NewProfileForm().Remote)
}
