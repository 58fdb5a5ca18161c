package api

import (
	"encoding/json"
	"net/http"

	"github.com/jmichalek/netlayout/pkg/errors"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidAlgorithm,
		errors.ErrCodeInvalidViewport,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidTopology,
		errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeTopologyNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStore:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends err as a JSON error response. The user-facing message
// comes from the error's UserMessage so internal wrapping detail stays out
// of the response body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"error", err,
			"request_id", requestIDFromContext(r.Context()),
		)
	}

	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

// writeJSON sends v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
