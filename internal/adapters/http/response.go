package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

type apiError struct {
	Status    string `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status":  "success",
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message, requestID string) {
	writeJSON(w, statusCode, apiError{
		Status:    "error",
		Code:      code,
		Message:   message,
		RequestID: requestID,
	})
}

// writeArtifact streams an export as a download under its fixed filename.
func writeArtifact(w http.ResponseWriter, artifact ports.Artifact) {
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Body)
}
