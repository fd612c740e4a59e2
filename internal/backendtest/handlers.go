package backendtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/jobpilot/internal/schemas"
	"github.com/jonathan/jobpilot/internal/types"
)

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := schemas.Validate(schemas.Profile, body); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var profile types.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	s.mu.Lock()
	s.profiles[profile.Email] = profile
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, map[string]any{"ok": true, "email": profile.Email})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	s.mu.Lock()
	fn := s.searchFn
	listings := s.listings
	s.mu.Unlock()

	if fn != nil {
		listings = fn(query)
	}
	if listings == nil {
		listings = []types.JobListing{}
	}
	s.jsonResponse(w, http.StatusOK, listings)
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := schemas.Validate(schemas.ApplicationRequest, body); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req types.ApplicationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	app := types.Application{
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobURL:         req.JobURL,
		ApplicantEmail: req.ApplicantEmail,
		Status:         types.StatusQueued,
		CoverLetter:    coverLetter(req),
	}

	s.mu.Lock()
	s.apps = append(s.apps, app)
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	s.mu.Lock()
	apps := make([]types.Application, 0, len(s.apps))
	for _, app := range s.apps {
		if email == "" || app.ApplicantEmail == email {
			apps = append(apps, app)
		}
	}
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, apps)
}

func coverLetter(req types.ApplicationRequest) string {
	team := "Hiring"
	if req.Company != nil && *req.Company != "" {
		team = *req.Company
	}
	return fmt.Sprintf("Dear %s team,\n\nI am excited to apply for the %s role.\n\nBest regards,\n%s",
		team, req.JobTitle, req.ApplicantEmail)
}
