package ipc

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is a command call sent from a front end to the host.
type Request struct {
	ID      string          `json:"id"`             // echoed back in the response
	Command string          `json:"command"`        // e.g. "greet", "read_file"
	Args    json.RawMessage `json:"args,omitempty"` // named arguments object
}

// Response is the host's reply to exactly one Request.
type Response struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`            // "ok" or "error"
	Message string          `json:"message,omitempty"` // error description when Status is "error"
	Data    json.RawMessage `json:"data,omitempty"`    // JSON-encoded result
}

// NewRequest builds a request with a fresh id.
func NewRequest(command string, args json.RawMessage) *Request {
	return &Request{
		ID:      uuid.NewString(),
		Command: command,
		Args:    args,
	}
}

// OK reports whether the response carries a success value.
func (r *Response) OK() bool {
	return r.Status == StatusOK
}

func errorResponse(id, message string) *Response {
	return &Response{ID: id, Status: StatusError, Message: message}
}

// Example usage:
// req := NewRequest("read_file", json.RawMessage(`{"path":"/tmp/notes.md"}`))
// resp := &Response{ID: req.ID, Status: StatusOK, Data: json.RawMessage(`"# Notes"`)}
