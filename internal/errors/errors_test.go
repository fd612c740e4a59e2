package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "with cause",
			err:      Transport(OpSaveProfile, "request failed", assert.AnError),
			expected: "save_profile: TRANSPORT: request failed: " + assert.AnError.Error(),
		},
		{
			name:     "without cause",
			err:      Backend(OpSearchJobs, 502, "unexpected status 502", nil),
			expected: "search_jobs: BACKEND: unexpected status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.NotEmpty(t, tt.err.StackTrace())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	err := Transport(OpListApplications, "request failed", assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBackend_StatusCode(t *testing.T) {
	err := Backend(OpQueueApplication, 500, "unexpected status 500", nil)
	assert.Equal(t, 500, err.StatusCode)
	assert.Equal(t, ErrTypeBackend, err.Type)
}

func TestTypeOf_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("refresh: %w", Backend(OpListApplications, 503, "unexpected status 503", nil))

	assert.Equal(t, ErrTypeBackend, TypeOf(wrapped))
	assert.True(t, IsType(wrapped, ErrTypeBackend))
	assert.Equal(t, ErrorType(""), TypeOf(assert.AnError))

	de, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, OpListApplications, de.Op)
}

func TestOperationPredicates(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		saveFailed     bool
		queueFailed    bool
		missingProfile bool
		superseded     bool
	}{
		{name: "save transport", err: Transport(OpSaveProfile, "x", assert.AnError), saveFailed: true},
		{name: "save backend", err: Backend(OpSaveProfile, 500, "x", nil), saveFailed: true},
		{name: "queue backend", err: Backend(OpQueueApplication, 400, "x", nil), queueFailed: true},
		{name: "queue transport", err: Transport(OpQueueApplication, "x", nil), queueFailed: true},
		{name: "missing profile", err: MissingProfile(nil), missingProfile: true},
		{name: "superseded save", err: Superseded(OpSaveProfile), superseded: true},
		{name: "plain error", err: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.saveFailed, IsSaveFailed(tt.err))
			assert.Equal(t, tt.queueFailed, IsQueueFailed(tt.err))
			assert.Equal(t, tt.missingProfile, IsMissingProfile(tt.err))
			assert.Equal(t, tt.superseded, IsSuperseded(tt.err))
		})
	}
}

func TestIsMissingProfile_OtherValidationErrors(t *testing.T) {
	assert.False(t, IsMissingProfile(Validation(OpQueueApplication, "no listing picked", nil)))
	assert.True(t, IsMissingProfile(fmt.Errorf("queue: %w", MissingProfile(assert.AnError))))
}
