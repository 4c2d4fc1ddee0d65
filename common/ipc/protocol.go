package ipc

import (
	"encoding/json"
	"errors"
)

// Request/Response are the wire schema shared by every transport.
type Request struct {
	ID      string   `json:"id,omitempty"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

type Response struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status"`           // "ok" | "error"
	Output json.RawMessage `json:"output,omitempty"` // handler result as raw JSON (avoids double-encoding)
	Error  string          `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

var ErrUnknownCommand = errors.New("unknown command")

// HandlerFunc is the command handler signature.
type HandlerFunc func(args []string) (any, error)

// OK reports whether the response carries a successful result.
func (r Response) OK() bool {
	return r.Status == StatusOK
}

// Decode unmarshals Output into v. Error responses become a Go error holding
// the flattened message.
func (r Response) Decode(v any) error {
	if !r.OK() {
		return errors.New(r.Error)
	}
	if v == nil || len(r.Output) == 0 {
		return nil
	}
	return json.Unmarshal(r.Output, v)
}
