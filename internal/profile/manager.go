// Package profile captures the candidate profile, submits it to the backend
// and establishes the active email for the session.
package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/backend"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// Manager saves profiles. It is the only writer of the session's active email.
type Manager struct {
	backend backend.Client
	emails  session.EmailWriter
	logger  *zap.Logger
}

// NewManager creates a profile manager that owns the write side of the
// session's active email.
func NewManager(client backend.Client, emails session.EmailWriter, logger *zap.Logger) *Manager {
	return &Manager{
		backend: client,
		emails:  emails,
		logger:  logger.Named("profile"),
	}
}

// Save normalizes the form and submits it. On success it returns the
// submitted email and makes it the active email, unless a newer save was
// issued while this one was in flight; that case yields a superseded error.
// No validation of name or email happens client-side.
func (m *Manager) Save(ctx context.Context, form types.ProfileForm) (string, error) {
	profile := Normalize(form)
	tag := m.emails.BeginSave()

	log := m.logger.With(zap.String("email", profile.Email), zap.Uint64("tag", uint64(tag)))
	log.Debug("saving profile",
		zap.Int("titles", len(profile.Titles)),
		zap.Int("locations", len(profile.Locations)))

	err := m.backend.SaveProfile(ctx, profile)

	if !m.emails.IsLatestSave(tag) {
		log.Info("discarding superseded profile save", zap.NamedError("outcome", err))
		return profile.Email, errors.Superseded(errors.OpSaveProfile)
	}
	if err != nil {
		log.Warn("profile save failed", zap.Error(err))
		return "", err
	}

	applied, changed := m.emails.CommitSave(tag, profile.Email)
	switch {
	case !applied:
		log.Info("discarding superseded profile save")
		return profile.Email, errors.Superseded(errors.OpSaveProfile)
	case changed:
		log.Info("active profile changed")
	default:
		log.Info("profile saved")
	}
	return profile.Email, nil
}

// Normalize turns raw form input into the profile sent to the backend. List
// fields are split on commas, trimmed, and stripped of empty entries in their
// original order. Blank optional fields are omitted.
func Normalize(form types.ProfileForm) types.Profile {
	return types.Profile{
		Name:            form.Name,
		Email:           form.Email,
		Phone:           optional(form.Phone),
		ResumeText:      optional(form.ResumeText),
		Titles:          SplitList(form.Titles),
		Locations:       SplitList(form.Locations),
		Remote:          form.Remote,
		IncludeKeywords: SplitList(form.IncludeKeywords),
		ExcludeKeywords: SplitList(form.ExcludeKeywords),
	}
}

// SplitList splits comma-separated text into trimmed, non-empty items. The
// result is never nil.
func SplitList(text string) []string {
	items := []string{}
	for _, part := range strings.Split(text, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
