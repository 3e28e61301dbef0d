package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
}{
	JSON: "application/json",
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

// WriteJSON marshals v and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}

func WriteJSONError(w http.ResponseWriter, statusCode int, detail string) {
	respBytes, err := json.Marshal(ErrorResponse{Detail: detail})
	if err != nil {
		// cannot really happen with a plain string
		http.Error(w, detail, statusCode)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}
