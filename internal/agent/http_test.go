package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int, body string, check func(*http.Request, callRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req callRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if check != nil {
			check(r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPAgent_Call(t *testing.T) {
	body := `{"success":true,"response":{"status":"success","result":{"summary":"Q4 numbers","draft_reply":"Thanks!"}}}`
	srv := newTestServer(t, http.StatusOK, body, func(r *http.Request, req callRequest) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("x-api-key"); got != "secret" {
			t.Errorf("x-api-key = %q, want secret", got)
		}
		if req.Message != "summarize" || req.AgentID != "agent-1" {
			t.Errorf("request = %+v", req)
		}
		if req.UserID != "inboxpilot" {
			t.Errorf("user_id = %q, want default", req.UserID)
		}
		if req.SessionID == "" {
			t.Error("session_id is empty")
		}
	})

	a := NewHTTPAgent(srv.URL, "secret", "", 5*time.Second)
	resp, err := a.Call(context.Background(), "summarize", "agent-1")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !resp.Success || resp.Status != "success" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Result.Summary() != "Q4 numbers" || resp.Result.DraftReply() != "Thanks!" {
		t.Errorf("result = %v", resp.Result)
	}
}

func TestHTTPAgent_NoAPIKeyHeader(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"success":true,"response":"ok"}`, func(r *http.Request, _ callRequest) {
		if _, ok := r.Header["X-Api-Key"]; ok {
			t.Error("x-api-key header sent without a key")
		}
	})

	resp, err := NewHTTPAgent(srv.URL, "", "me", 0).Call(context.Background(), "hi", "a")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.Result.Message() != "ok" {
		t.Errorf("Message() = %q, want ok", resp.Result.Message())
	}
}

func TestHTTPAgent_StringResult(t *testing.T) {
	body := `{"success":true,"response":{"status":"success","result":"{\"message\":\"Reply sent\"}"}}`
	srv := newTestServer(t, http.StatusOK, body, nil)

	resp, err := NewHTTPAgent(srv.URL, "", "", 0).Call(context.Background(), "send", "a")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.Result.Message() != "Reply sent" {
		t.Errorf("Message() = %q, want Reply sent", resp.Result.Message())
	}
}

func TestHTTPAgent_ReportedFailure(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"success":false,"error":"Gmail not connected"}`, nil)

	resp, err := NewHTTPAgent(srv.URL, "", "", 0).Call(context.Background(), "sync", "a")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error != "Gmail not connected" {
		t.Errorf("Error = %q", resp.Error)
	}
}

func TestHTTPAgent_Non2xx(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error string", body: `{"error":"quota exceeded"}`, want: "quota exceeded"},
		{name: "error object", body: `{"error":{"message":"invalid key"}}`, want: "invalid key"},
		{name: "detail", body: `{"detail":"not found"}`, want: "not found"},
		{name: "plain text", body: `upstream down`, want: "upstream down"},
		{name: "empty", body: ``, want: "empty response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusBadGateway, tt.body, nil)
			_, err := NewHTTPAgent(srv.URL, "", "", 0).Call(context.Background(), "x", "a")
			apiErr, ok := IsAPIError(err)
			if !ok {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != http.StatusBadGateway {
				t.Errorf("StatusCode = %d", apiErr.StatusCode)
			}
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
		})
	}
}

func TestHTTPAgent_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPAgent(url, "", "", time.Second).Call(context.Background(), "x", "a")
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
	if _, ok := IsAPIError(err); ok {
		t.Error("transport failure should not be an APIError")
	}
}

func TestDecodeEnvelope_BarePayload(t *testing.T) {
	resp, err := decodeEnvelope([]byte(`{"response":{"emails":[{"subject":"Hello","sender":"Ann"}]}}`))
	if err != nil {
		t.Fatalf("decodeEnvelope: %v", err)
	}
	if !resp.Success {
		t.Error("missing success should default to true")
	}
	if n := len(resp.Result.Emails()); n != 1 {
		t.Errorf("len(Emails()) = %d, want 1", n)
	}
}
