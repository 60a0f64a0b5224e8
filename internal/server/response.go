package server

import (
	"encoding/json"
	"net/http"

	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/pipeline"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code       perrors.Code `json:"code"`
	Message    string       `json:"message"`
	Unresolved []string     `json:"unresolved,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeError picks the status from the error's code.
func writeError(w http.ResponseWriter, err error) {
	code := perrors.Classify(err)
	writeJSON(w, perrors.HTTPStatus(code), errorResponse{Error: errorBody{
		Code:       code,
		Message:    perrors.UserMessage(err),
		Unresolved: pipeline.Unresolved(err),
	}})
}
