package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/services"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.Service.ListTasks(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(tasks), tasks)
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.Service.GetTask(r.Context(), p, taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, task)
}

// CreateTask handles POST /projects/{projectId}/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	task, err := h.Service.CreateTask(r.Context(), p, projectID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	task, err := h.Service.UpdateTask(r.Context(), p, taskID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteTask(r.Context(), p, taskID); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}

// UpdateTaskStatus handles PUT /tasks/{id}/status.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	task, err := h.Service.UpdateTaskStatus(r.Context(), p, taskID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, task)
}

// UserTasks handles GET /users/{userId}/tasks.
func (h *TaskHandler) UserTasks(w http.ResponseWriter, r *http.Request) {
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

	tasks, err := h.Service.TasksForUser(r.Context(), p, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(tasks), tasks)
}
