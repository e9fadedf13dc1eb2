package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/logging"
	"github.com/jitendra-jitu/Project-Mang-system/models"
	"github.com/jitendra-jitu/Project-Mang-system/services"
	"github.com/jitendra-jitu/Project-Mang-system/utils"
)

type LoginHandler struct {
	Service *services.UserService
}

func NewLoginHandler(service *services.UserService) *LoginHandler {
	return &LoginHandler{Service: service}
}

// Login handles POST /auth/login: verifies the credentials and answers with
// a signed token carrying the user's id and role.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request payload"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperrors.Validationf("email and password are required"))
		return
	}

	user, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		writeError(w, apperrors.Internal(err, "failed to generate token"))
		return
	}

	logging.Logger.Infof("Event ID: USER_LOGIN, Description: User %s logged in", user.ID.Hex())
	writeData(w, http.StatusOK, map[string]string{"token": token})
}
