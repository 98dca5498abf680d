// Package responder centralizes JSON response writing for the HTTP layer.
package responder

import (
	"encoding/json"
	"net/http"
)

// Responder writes API responses and decodes request bodies.
type Responder interface {
	Respond(w http.ResponseWriter, status int, data interface{})
	Error(w http.ResponseWriter, status int, message string)
	Decode(r *http.Request, v interface{}) error
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONResponder implements Responder for JSON APIs.
type JSONResponder struct{}

func NewJSONResponder() *JSONResponder {
	return &JSONResponder{}
}

// Respond writes data as a JSON body with the given status.
func (j *JSONResponder) Respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes a JSON error body with the given status.
func (j *JSONResponder) Error(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// Decode parses the request body into v.
func (j *JSONResponder) Decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
