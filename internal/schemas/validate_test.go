package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_JobListings(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "two listings", body: `[{"title":"Backend Engineer","url":"https://x.co/jobs/1","snippet":"Go"},{"title":"SRE","url":"https://y.io/sre"}]`},
		{name: "empty array", body: `[]`},
		{name: "null body", body: `null`},
		{name: "null snippet and company", body: `[{"title":"SRE","url":"https://y.io/sre","snippet":null,"company":null}]`},
		{name: "missing url", body: `[{"title":"SRE"}]`, wantErr: true},
		{name: "empty url", body: `[{"title":"SRE","url":""}]`, wantErr: true},
		{name: "object instead of array", body: `{"results":[]}`, wantErr: true},
		{name: "not json", body: `<html>oops</html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(JobListings, []byte(tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, JobListings, ve.Schema)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidate_Applications(t *testing.T) {
	valid := `[{"job_title":"Backend Engineer","company":"X Corp","job_url":"https://x.co/jobs/1","applicant_email":"ana@example.com","status":"queued","cover_letter":"Dear X"}]`
	assert.NoError(t, Validate(Applications, []byte(valid)))

	missingStatus := `[{"job_title":"Backend Engineer","job_url":"https://x.co/jobs/1","applicant_email":"ana@example.com"}]`
	err := Validate(Applications, []byte(missingStatus))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "applications validation failed")
	assert.Contains(t, ve.Error(), "status")
}

func TestValidate_RequestBodies(t *testing.T) {
	profile := `{"name":"Ana Lee","email":"ana@example.com","titles":["SRE"],"locations":[],"remote":true,"include_keywords":[],"exclude_keywords":[]}`
	assert.NoError(t, Validate(Profile, []byte(profile)))

	nullTitles := `{"name":"Ana Lee","email":"ana@example.com","titles":null,"locations":[],"remote":true,"include_keywords":[],"exclude_keywords":[]}`
	assert.Error(t, Validate(Profile, []byte(nullTitles)))

	request := `{"job_title":"SRE","job_url":"https://y.io/sre","applicant_email":"ana@example.com"}`
	assert.NoError(t, Validate(ApplicationRequest, []byte(request)))

	noEmail := `{"job_title":"SRE","job_url":"https://y.io/sre","applicant_email":""}`
	assert.Error(t, Validate(ApplicationRequest, []byte(noEmail)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate(Name("missing"), []byte(`{}`))
	require.Error(t, err)

	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "json/missing.schema.json")
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{
		Schema: JobListings,
		Errors: []FieldError{
			{Field: "0.url", Message: "url is required"},
			{Field: "1.title", Message: "Invalid type"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "1. 0.url: url is required")
	assert.Contains(t, msg, "2. 1.title: Invalid type")
}
