package gateway

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"lanternhq/relay/pkg/upstream"
)

func TestHandleUpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails string
	}{
		{
			name:        "non-2xx upstream response",
			err:         &upstream.UpstreamError{StatusCode: 500, Body: "overloaded"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: MsgUpstreamError,
			wantDetails: "overloaded",
		},
		{
			name:        "timeout",
			err:         &upstream.TimeoutError{Timeout: 30 * time.Second},
			wantStatus:  http.StatusGatewayTimeout,
			wantMessage: MsgUpstreamTimeout,
		},
		{
			name:        "connection failure",
			err:         &upstream.ConnectionError{Cause: errors.New("connection refused")},
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: MsgUpstreamConnection,
		},
		{
			name:        "parse failure",
			err:         &upstream.ParseError{RawResponse: "garbage", Cause: errors.New("invalid character")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: MsgUpstreamOther,
		},
		{
			name:        "unknown error",
			err:         errors.New("something odd"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: MsgUpstreamOther,
			wantDetails: "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := HandleUpstreamError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Error != tt.wantMessage {
				t.Errorf("Error = %q, want %q", body.Error, tt.wantMessage)
			}
			if tt.wantDetails != "" && body.Details != tt.wantDetails {
				t.Errorf("Details = %q, want %q", body.Details, tt.wantDetails)
			}
		})
	}
}
