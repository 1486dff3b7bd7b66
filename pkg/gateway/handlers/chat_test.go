package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lanternhq/relay/pkg/audit"
	"lanternhq/relay/pkg/limits/ratelimit"
	"lanternhq/relay/pkg/upstream"
)

type fakeUpstream struct {
	resp   *upstream.ChatResponse
	err    error
	gotReq *upstream.ChatRequest
	calls  int
}

func (f *fakeUpstream) Chat(ctx context.Context, req *upstream.ChatRequest) (*upstream.ChatResponse, error) {
	f.calls++
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newChatRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return body
}

func newTestHandler(client UpstreamClient, limiter Admitter) *ChatHandler {
	return NewChatHandler(client, limiter, nil, nil)
}

func defaultLimiter() *ratelimit.Limiter {
	return ratelimit.NewLimiter(ratelimit.Config{MaxRequests: 10, Window: time.Minute})
}

func TestChatSuccess(t *testing.T) {
	client := &fakeUpstream{resp: &upstream.ChatResponse{Response: "Hello there"}}
	handler := newTestHandler(client, defaultLimiter())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(`{"session_id":"s1","query":"hi","email":"user@example.com"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["session_id"] != "s1" {
		t.Errorf("session_id = %v, want s1", body["session_id"])
	}
	if body["response"] != "Hello there" {
		t.Errorf("response = %v", body["response"])
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"].(string)); err != nil {
		t.Errorf("timestamp %v is not RFC3339: %v", body["timestamp"], err)
	}

	if client.gotReq == nil || client.gotReq.Query != "hi" || client.gotReq.Email != "user@example.com" {
		t.Errorf("forwarded request = %+v", client.gotReq)
	}
}

func TestChatValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "Invalid JSON payload"},
		{"malformed JSON", "{not json", "Invalid JSON payload"},
		{"missing session_id", `{"query":"hi","email":"a@b.co"}`, "session_id is required"},
		{"missing query", `{"session_id":"s1","email":"a@b.co"}`, "query is required and must be a non-empty string"},
		{"whitespace query", `{"session_id":"s1","query":"   ","email":"a@b.co"}`, "query is required and must be a non-empty string"},
		{"non-string query", `{"session_id":"s1","query":123,"email":"a@b.co"}`, "query is required and must be a non-empty string"},
		{"missing email", `{"session_id":"s1","query":"hi"}`, "email is required"},
		{"bad email", `{"session_id":"s1","query":"hi","email":"not-an-email"}`, "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeUpstream{resp: &upstream.ChatResponse{Response: "x"}}
			handler := newTestHandler(client, defaultLimiter())

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newChatRequest(tt.body))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.want {
				t.Errorf("error = %v, want %q", body["error"], tt.want)
			}
			if client.calls != 0 {
				t.Error("invalid request must not reach the upstream")
			}
		})
	}
}

// Identity is resolved after validation, so requests rejected for bad
// fields never count against the caller's quota.
func TestChatInvalidRequestsDoNotConsumeQuota(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{MaxRequests: 1, Window: time.Minute})
	client := &fakeUpstream{resp: &upstream.ChatResponse{Response: "ok"}}
	handler := newTestHandler(client, limiter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(`{"session_id":"s1","email":"user@example.com"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(`{"session_id":"s1","query":"hi","email":"user@example.com"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; the rejected request must not have used the quota", rec.Code)
	}
}

func TestChatRateLimited(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{MaxRequests: 2, Window: time.Minute})
	client := &fakeUpstream{resp: &upstream.ChatResponse{Response: "ok"}}
	handler := newTestHandler(client, limiter)

	payload := `{"session_id":"s1","query":"hi","email":"user@example.com"}`

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newChatRequest(payload))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(payload))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != MsgRateLimited {
		t.Errorf("error = %v", body["error"])
	}
	if body["retry_after"] != float64(60) {
		t.Errorf("retry_after = %v, want 60", body["retry_after"])
	}
	if client.calls != 2 {
		t.Errorf("upstream calls = %d, want 2; denied requests must not be forwarded", client.calls)
	}
}

func TestChatDistinctSessionsSeparateBudgets(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{MaxRequests: 1, Window: time.Minute})
	client := &fakeUpstream{resp: &upstream.ChatResponse{Response: "ok"}}
	handler := newTestHandler(client, limiter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(`{"session_id":"s1","query":"hi","email":"a@b.co"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("first session: status = %d, want 200", rec.Code)
	}

	// Same client address, different session: separate budget.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(`{"session_id":"s2","query":"hi","email":"a@b.co"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("second session: status = %d, want 200", rec.Code)
	}
}

func TestChatForwardedForIdentity(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{MaxRequests: 1, Window: time.Minute})
	client := &fakeUpstream{resp: &upstream.ChatResponse{Response: "ok"}}
	handler := newTestHandler(client, limiter)

	payload := `{"session_id":"s1","query":"hi","email":"a@b.co"}`

	req := newChatRequest(payload)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Different forwarded address, same session: separate budget.
	req = newChatRequest(payload)
	req.Header.Set("X-Forwarded-For", "203.0.113.8")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for distinct forwarded address", rec.Code)
	}

	// First address again: budget exhausted.
	req = newChatRequest(payload)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 for exhausted forwarded address", rec.Code)
	}
}

func TestChatUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "upstream non-2xx",
			err:        &upstream.UpstreamError{StatusCode: 500, Body: "model exploded"},
			wantStatus: http.StatusBadGateway,
			wantError:  "LLM API error",
		},
		{
			name:       "timeout",
			err:        &upstream.TimeoutError{Timeout: 30 * time.Second},
			wantStatus: http.StatusGatewayTimeout,
			wantError:  "LLM API request timed out",
		},
		{
			name:       "connection refused",
			err:        &upstream.ConnectionError{Cause: context.Canceled},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Failed to connect to LLM API",
		},
		{
			name:       "parse failure",
			err:        &upstream.ParseError{RawResponse: "garbage"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Error calling LLM API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeUpstream{err: tt.err}
			handler := newTestHandler(client, defaultLimiter())

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newChatRequest(`{"session_id":"s1","query":"hi","email":"a@b.co"}`))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestChatUpstreamErrorDetails(t *testing.T) {
	client := &fakeUpstream{err: &upstream.UpstreamError{StatusCode: 500, Body: "model exploded"}}
	handler := newTestHandler(client, defaultLimiter())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(`{"session_id":"s1","query":"hi","email":"a@b.co"}`))

	body := decodeBody(t, rec)
	if body["details"] != "model exploded" {
		t.Errorf("details = %v, want upstream body", body["details"])
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&fakeUpstream{}, defaultLimiter())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Method not allowed" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestChatAuditTrail(t *testing.T) {
	store := audit.NewMemoryStore()
	recorder := audit.NewRecorder(store, nil)

	limiter := ratelimit.NewLimiter(ratelimit.Config{MaxRequests: 1, Window: time.Minute})
	client := &fakeUpstream{resp: &upstream.ChatResponse{Response: "ok"}}
	handler := NewChatHandler(client, limiter, recorder, nil)

	payload := `{"session_id":"s1","query":"hi","email":"a@b.co"}`

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(payload))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, newChatRequest(payload))

	recorder.Close()

	records, err := store.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("audit records = %d, want 2", len(records))
	}

	outcomes := map[string]int{}
	for _, r := range records {
		outcomes[r.Outcome]++
		if r.SessionID != "s1" {
			t.Errorf("SessionID = %q, want s1", r.SessionID)
		}
		if r.Identity == "" {
			t.Error("Identity not recorded")
		}
	}
	if outcomes[audit.OutcomeSuccess] != 1 || outcomes[audit.OutcomeRateLimited] != 1 {
		t.Errorf("outcomes = %v, want one success and one rate_limited", outcomes)
	}
}
