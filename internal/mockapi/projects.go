package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"myfuture/pkg/types"
)

func (s *Service) handleListProjects(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"projects": s.store.PublicProjects(),
	})
}

func (s *Service) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	project, err := s.store.Project(id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "project not found")
		return
	}

	// Public callers get the ledger-free view.
	s.respondJSON(w, http.StatusOK, map[string]any{"project": project.Project})
}

func (s *Service) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var input types.ProjectWithContributions
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if input.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	// The server owns identifier assignment.
	input.ID = ""

	project, err := s.store.CreateProject(input)
	if err != nil {
		if errors.Is(err, types.ErrInvalidContributor) {
			s.respondError(w, http.StatusBadRequest, "contribution ledger keys must be uuids")
			return
		}
		s.logger.WithError(err).Error("failed to create project")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{"project": project.Project})
}

func (s *Service) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input types.ProjectWithContributions
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	project, err := s.store.UpdateProject(id, input)
	if err != nil {
		if errors.Is(err, types.ErrProjectNotFound) {
			s.respondError(w, http.StatusNotFound, "project not found")
			return
		}
		if errors.Is(err, types.ErrInvalidContributor) {
			s.respondError(w, http.StatusBadRequest, "contribution ledger keys must be uuids")
			return
		}
		s.logger.WithError(err).Error("failed to update project")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"project": project.Project})
}
