package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/logging"
)

// Response envelopes. Every operation answers with the same wrapper:
// {success:true, count?, data} on success, {success:false, error} on
// failure. count appears only on collection reads.

type successEnvelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

func writeList(w http.ResponseWriter, count int, data interface{}) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Count: &count, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: Unexpected failure: %v", err)
	}
	writeJSON(w, status, errorEnvelope{Success: false, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
	}
}
