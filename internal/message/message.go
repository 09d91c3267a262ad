// Package message defines the clipbridge control protocol.
//
// All messages are newline-delimited JSON, one message per line. A client
// sends one request per connection and reads at most one response.
package message

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the kind of message.
type Type string

const (
	TypeTrigger        Type = "TRIGGER"
	TypeStatus         Type = "STATUS"
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypeStop           Type = "STOP"
	TypeAck            Type = "ACK"
	TypeError          Type = "ERROR"
)

// BindingInfo reports one hotkey binding in a STATUS response.
type BindingInfo struct {
	Action     string `json:"action"`
	Chord      string `json:"chord"`
	Registered bool   `json:"registered"`
	Error      string `json:"error,omitempty"`
}

// Counters mirrors the conversion counters of the running daemon.
type Counters struct {
	Runs   uint64 `json:"runs"`
	Saved  uint64 `json:"saved"`
	Empty  uint64 `json:"empty"`
	Failed uint64 `json:"failed"`
}

// Status is the payload of a STATUS_RESPONSE.
type Status struct {
	PID       int           `json:"pid"`
	SharedDir string        `json:"shared_dir"`
	PathStyle string        `json:"path_style"`
	Lifetime  string        `json:"lifetime"`
	StartedAt time.Time     `json:"started_at"`
	Images    int           `json:"images"`
	Bindings  []BindingInfo `json:"bindings,omitempty"`
	Counters  Counters      `json:"counters"`
}

// Message is the top-level wire envelope.
type Message struct {
	Type Type `json:"type"`

	// TRIGGER
	Action string `json:"action,omitempty"`

	// STATUS_RESPONSE
	Status *Status `json:"status,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Trigger returns a TRIGGER request for action.
func Trigger(action string) *Message { return &Message{Type: TypeTrigger, Action: action} }

// Ack returns an ACK response.
func Ack() *Message { return &Message{Type: TypeAck} }

// Errorf returns an ERROR response.
func Errorf(format string, args ...any) *Message {
	return &Message{Type: TypeError, Error: fmt.Sprintf(format, args...)}
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	if m.Type == "" {
		return nil, fmt.Errorf("message decode: missing type")
	}
	return &m, nil
}

// Err converts an ERROR message into a Go error, and returns nil for any
// other type.
func (m *Message) Err() error {
	if m.Type != TypeError {
		return nil
	}
	return fmt.Errorf("daemon: %s", m.Error)
}
