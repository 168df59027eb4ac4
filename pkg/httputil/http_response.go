package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// Envelope is the response body shape shared by success and error paths:
// {"message": ..., "data": ...}.
type Envelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	sonic.ConfigFastest.NewEncoder(w).Encode(Envelope{
		Message: message,
		Data:    data,
	})
}

func WriteEnvelopeResponse(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	sonic.ConfigDefault.NewEncoder(w).Encode(Envelope{
		Message: message,
		Data:    data,
	})
}

// WriteJSONResponse writes body as-is, for endpoints that return bare
// arrays instead of the envelope.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		sonic.ConfigDefault.NewEncoder(w).Encode(body)
	}
}
