package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestChatRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   ChatRequest
		wantField string
		wantKind  string
	}{
		{
			name:    "valid request",
			request: ChatRequest{SessionID: "s1", Query: "hello", Email: "a@b.com"},
		},
		{
			name:      "missing session_id",
			request:   ChatRequest{Query: "hello", Email: "a@b.com"},
			wantField: "session_id",
			wantKind:  KindMissingField,
		},
		{
			name:      "missing query",
			request:   ChatRequest{SessionID: "s1", Email: "a@b.com"},
			wantField: "query",
			wantKind:  KindInvalidField,
		},
		{
			name:      "whitespace-only query",
			request:   ChatRequest{SessionID: "s1", Query: "   ", Email: "a@b.com"},
			wantField: "query",
			wantKind:  KindInvalidField,
		},
		{
			name:      "missing email",
			request:   ChatRequest{SessionID: "s1", Query: "hello"},
			wantField: "email",
			wantKind:  KindMissingField,
		},
		{
			name:      "malformed email",
			request:   ChatRequest{SessionID: "s1", Query: "hello", Email: "not-an-email"},
			wantField: "email",
			wantKind:  KindInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.wantField)
			}
			if valErr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", valErr.Kind, tt.wantKind)
			}
		})
	}
}

func TestChatRequest_Validate_TrimsQuery(t *testing.T) {
	req := ChatRequest{SessionID: "s1", Query: "  hello  ", Email: "a@b.com"}

	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if req.Query != "hello" {
		t.Errorf("Query = %q, want %q", req.Query, "hello")
	}
}

func TestChatRequest_UnmarshalJSON_NonStringQuery(t *testing.T) {
	var req ChatRequest
	if err := json.Unmarshal([]byte(`{"session_id":"s1","query":123,"email":"a@b.com"}`), &req); err != nil {
		t.Fatalf("Unmarshal() = %v, want nil; a non-string query is a field error, not a parse error", err)
	}

	err := req.Validate()
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Validate() = %v, want *ValidationError", err)
	}
	if valErr.Field != "query" || valErr.Kind != KindInvalidField {
		t.Errorf("got field %q kind %q, want query/%s", valErr.Field, valErr.Kind, KindInvalidField)
	}
}

func TestChatRequest_Validate_EmailGrammar(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user.name+tag@sub.example.co", true},
		{"USER@EXAMPLE.COM", true},
		{"a@b.com", true},
		{"user@.com", false},
		{"user@com", false},
		{"not-an-email", false},
		{"", false},
		{"user@example.c", false},
		{"user name@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			req := ChatRequest{SessionID: "s1", Query: "hi", Email: tt.email}
			err := req.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil for email %q", err, tt.email)
			}
			if !tt.valid && err == nil {
				t.Errorf("Validate() = nil, want error for email %q", tt.email)
			}
		})
	}
}
