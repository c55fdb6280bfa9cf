// ABOUTME: Envelope is the uniform response shape of the remote document API
// ABOUTME: Network failures are normalised into the same shape as application errors

package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Envelope is the `{success, data?, message?, error?}` body every document API call returns.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`

	// StatusCode is the HTTP status that produced the envelope; 0 when the
	// request never reached the server.
	StatusCode int `json:"-"`
}

// HasData reports whether the envelope carries a usable payload. Falsy
// scalars (null, false, 0 and "") count as no payload, so a store holding one
// of them behaves like an empty store on load. Empty objects and arrays are
// payloads.
func (e Envelope) HasData() bool {
	data := bytes.TrimSpace(e.Data)
	switch string(data) {
	case "", "null", "false", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(string(data), 64); err == nil && f == 0 {
		return false
	}
	return true
}

// Failure returns the human readable failure text, preferring Error over Message.
func (e Envelope) Failure() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Reached reports whether the server answered at all.
func (e Envelope) Reached() bool {
	return e.StatusCode != 0
}
