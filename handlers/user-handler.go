package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/services"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	users, err := h.Service.ListUsers(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(users), users)
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "id", "user")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.Service.GetUser(r.Context(), p, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	user, err := h.Service.CreateUser(r.Context(), p, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "id", "user")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}

	user, err := h.Service.UpdateUser(r.Context(), p, userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "id", "user")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteUser(r.Context(), p, userID); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}
