package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

// ListProjects handles GET /projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	projects, err := h.Service.ListProjects(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(projects), projects)
}

// GetProject handles GET /projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "id", "project")
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.Service.GetProject(r.Context(), p, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, project)
}

// CreateProject handles POST /projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	project, err := h.Service.CreateProject(r.Context(), p, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, project)
}

// UpdateProject handles PUT /projects/{id}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "id", "project")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	project, err := h.Service.UpdateProject(r.Context(), p, projectID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{id}. Deletes the project's tasks
// first, then the project itself.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "id", "project")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteProject(r.Context(), p, projectID); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}

// ProjectTasks handles GET /projects/{projectId}/tasks.
func (h *ProjectHandler) ProjectTasks(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "projectId", "project")
	if err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.Service.ProjectTasks(r.Context(), p, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(tasks), tasks)
}

// UserProjects handles GET /users/{userId}/projects.
func (h *ProjectHandler) UserProjects(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userId", "user")
	if err != nil {
		writeError(w, err)
		return
	}

	projects, err := h.Service.ProjectsForUser(r.Context(), p, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(projects), projects)
}
