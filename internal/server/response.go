// internal/server/response.go
package server

import (
	"encoding/json"
	"net/http"

	"intake-service/internal/common/errors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeStandardError maps a StandardError onto its HTTP status.
func writeStandardError(w http.ResponseWriter, stdErr *errors.StandardError) {
	writeJSON(w, errors.HTTPStatus(stdErr), map[string]interface{}{
		"error": stdErr,
	})
}
