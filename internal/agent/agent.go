// Package agent invokes the remote email agent. Every operation the
// application performs (inbox sync, summarize, send, schedule) is a single
// free-text instruction sent together with a fixed agent identifier.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Agent is the one generic call the application depends on.
type Agent interface {
	// Call sends a natural-language instruction to the agent identified by
	// agentID. A non-nil error means the call itself failed; a returned
	// Response may still report Success == false.
	Call(ctx context.Context, instruction, agentID string) (*Response, error)
}

// Response is the envelope returned by an agent call.
type Response struct {
	// Success is the agent's own verdict on the call.
	Success bool

	// Status is the envelope-level status string, if any.
	Status string

	// Message is the envelope-level message, if any.
	Message string

	// Error carries the failure text when Success is false.
	Error string

	// Result is the opaque payload. Its shape is not contractually fixed.
	Result Result
}

// OK reports whether the call succeeded and produced a payload.
func (r *Response) OK() bool {
	return r != nil && r.Success && r.Result != nil
}

// APIError is returned when the agent endpoint answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agent API error (%d): %s", e.StatusCode, e.Message)
}

// IsAPIError reports whether err (or any error in its chain) is an APIError,
// returning it when it is.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Result is the untyped payload of an agent response. Accessors probe the
// known optional fields and never fail.
type Result map[string]any

// String returns the value at key when it is a non-empty string.
func (r Result) String(key string) string {
	if r == nil {
		return ""
	}
	switch v := r[key].(type) {
	case string:
		return v
	case float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// First returns the first non-empty string among keys.
func (r Result) First(keys ...string) string {
	for _, k := range keys {
		if s := r.String(k); s != "" {
			return s
		}
	}
	return ""
}

// Message returns the human-readable message.
func (r Result) Message() string { return r.String("message") }

// Summary returns the thread summary.
func (r Result) Summary() string { return r.String("summary") }

// DraftReply returns the drafted reply text.
func (r Result) DraftReply() string { return r.String("draft_reply") }

// Category returns the category the agent assigned.
func (r Result) Category() string { return r.String("category") }

// Status returns the payload-level status string.
func (r Result) Status() string { return r.String("status") }

// ActionType returns the kind of action the agent reports having performed.
func (r Result) ActionType() string { return r.String("action_type") }

// Emails returns the raw email records, if the payload carries any.
func (r Result) Emails() []map[string]any {
	if r == nil {
		return nil
	}
	raw, ok := r["emails"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// DecodeResult turns a loosely-typed payload into a Result. Objects are
// used as-is, strings holding JSON objects are decoded, and any other text
// becomes the message field.
func DecodeResult(raw json.RawMessage) Result {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		return Result(obj)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return ResultFromText(text)
	}

	return Result{"message": trimmed}
}

// ResultFromText parses free text produced by an agent. A JSON object
// embedded in the text (optionally inside a code fence) is decoded;
// otherwise the whole text becomes the message.
func ResultFromText(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var obj map[string]any
		if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err == nil {
			return Result(obj)
		}
	}

	return Result{"message": text}
}
