package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPAgent calls a hosted agent over HTTP. Each call POSTs the instruction
// and agent identifier as JSON and decodes the returned envelope.
type HTTPAgent struct {
	endpoint  string
	apiKey    string
	userID    string
	sessionID string
	client    *http.Client
}

// NewHTTPAgent creates an HTTP-backed agent. A zero timeout leaves the
// client without a deadline.
func NewHTTPAgent(endpoint, apiKey, userID string, timeout time.Duration) *HTTPAgent {
	if userID == "" {
		userID = "inboxpilot"
	}
	return &HTTPAgent{
		endpoint:  endpoint,
		apiKey:    apiKey,
		userID:    userID,
		sessionID: uuid.New().String(),
		client:    &http.Client{Timeout: timeout},
	}
}

type callRequest struct {
	Message   string `json:"message"`
	AgentID   string `json:"agent_id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type callEnvelope struct {
	Success  *bool           `json:"success"`
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error"`
	Message  string          `json:"message"`
}

type callInner struct {
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

// Call implements Agent.
func (a *HTTPAgent) Call(ctx context.Context, instruction, agentID string) (*Response, error) {
	body, err := json.Marshal(callRequest{
		Message:   instruction,
		AgentID:   agentID,
		UserID:    a.userID,
		SessionID: a.sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("x-api-key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling agent: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorText(respBody),
		}
	}

	return decodeEnvelope(respBody)
}

// decodeEnvelope parses the hosted agent's response. The inner response may
// be an object carrying status/result/message, or a bare payload.
func decodeEnvelope(body []byte) (*Response, error) {
	var env callEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	out := &Response{
		Success: true,
		Error:   env.Error,
		Message: env.Message,
	}
	if env.Success != nil {
		out.Success = *env.Success
	}

	if len(env.Response) == 0 {
		return out, nil
	}

	var inner callInner
	if err := json.Unmarshal(env.Response, &inner); err == nil &&
		(len(inner.Result) > 0 || inner.Status != "" || inner.Message != "") {
		out.Status = inner.Status
		if inner.Message != "" {
			out.Message = inner.Message
		}
		out.Result = DecodeResult(inner.Result)
		if out.Result == nil && inner.Message != "" {
			out.Result = Result{"message": inner.Message}
		}
		return out, nil
	}

	// The response itself is the payload.
	out.Result = DecodeResult(env.Response)
	return out, nil
}

// errorText extracts a readable message from an error body.
func errorText(body []byte) string {
	var e struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil {
		switch v := e.Error.(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
		if e.Message != "" {
			return e.Message
		}
		if e.Detail != "" {
			return e.Detail
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response"
	}
	return text
}
