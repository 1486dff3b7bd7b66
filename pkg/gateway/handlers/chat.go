package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"lanternhq/relay/pkg/audit"
	"lanternhq/relay/pkg/gateway"
	"lanternhq/relay/pkg/gateway/middleware"
	"lanternhq/relay/pkg/gateway/types"
	"lanternhq/relay/pkg/telemetry/metrics"
	"lanternhq/relay/pkg/upstream"
)

// MsgRateLimited is the client-facing message for denied requests.
const MsgRateLimited = "Rate limit exceeded. Please try again later."

// chatEndpoint is the metric label for the chat handler.
const chatEndpoint = "/api/chat"

// UpstreamClient forwards chat requests to the LLM service.
type UpstreamClient interface {
	Chat(ctx context.Context, req *upstream.ChatRequest) (*upstream.ChatResponse, error)
}

// Admitter decides whether a request identity may proceed and reports the
// window used for retry hints.
type Admitter interface {
	Admit(identity string) bool
	Window() time.Duration
}

// ChatHandler handles POST /api/chat: validate, rate limit, forward.
type ChatHandler struct {
	upstream UpstreamClient
	limiter  Admitter
	recorder *audit.Recorder
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewChatHandler creates the chat handler. The recorder and metrics
// collector are optional; pass nil to disable them.
func NewChatHandler(client UpstreamClient, limiter Admitter, recorder *audit.Recorder, collector *metrics.Collector) *ChatHandler {
	return &ChatHandler{
		upstream: client,
		limiter:  limiter,
		recorder: recorder,
		metrics:  collector,
		logger:   slog.Default().With("component", "gateway.chat"),
	}
}

// ServeHTTP implements http.Handler for the chat endpoint.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	record := &audit.Record{
		RequestID:  requestID,
		ReceivedAt: start.UTC(),
		ClientAddr: gateway.ClientAddress(r.RemoteAddr, r.Header.Get(gateway.ForwardedForHeader)),
	}

	if r.Method != http.MethodPost {
		h.finish(w, r, record, http.StatusMethodNotAllowed, start,
			types.NewErrorResponse("Method not allowed"), audit.OutcomeRejected, "method not allowed")
		return
	}

	chatReq, err := gateway.ParseChatRequest(r)
	if err != nil {
		h.logger.WarnContext(ctx, "request rejected",
			"request_id", requestID,
			"error", err,
		)
		// Field failures carry the client-facing text in Message; the
		// full Error() string names the field and stays in the logs.
		message := err.Error()
		var valErr *types.ValidationError
		if errors.As(err, &valErr) {
			message = valErr.Message
		}
		h.finish(w, r, record, http.StatusBadRequest, start,
			types.NewErrorResponse(message), audit.OutcomeRejected, message)
		return
	}

	record.SessionID = chatReq.SessionID

	identity := gateway.ResolveIdentity(r.RemoteAddr, r.Header.Get(gateway.ForwardedForHeader), chatReq.SessionID)
	record.Identity = identity

	if !h.limiter.Admit(identity) {
		h.logger.WarnContext(ctx, "rate limit exceeded",
			"request_id", requestID,
			"identity", identity,
		)
		if h.metrics != nil {
			h.metrics.RecordRateLimitDenied()
		}

		resp := &types.ErrorResponse{
			Error:      MsgRateLimited,
			RetryAfter: int(h.limiter.Window().Seconds()),
		}
		h.finish(w, r, record, http.StatusTooManyRequests, start,
			resp, audit.OutcomeRateLimited, MsgRateLimited)
		return
	}

	h.logger.InfoContext(ctx, "forwarding chat request",
		"request_id", requestID,
		"session_id", chatReq.SessionID,
	)

	callStart := time.Now()
	upstreamResp, err := h.upstream.Chat(ctx, &upstream.ChatRequest{
		SessionID: chatReq.SessionID,
		Query:     chatReq.Query,
		Email:     chatReq.Email,
	})
	record.UpstreamLatency = time.Since(callStart)

	if h.metrics != nil {
		h.metrics.RecordUpstreamLatency(record.UpstreamLatency)
	}

	if err != nil {
		status, errResp := gateway.HandleUpstreamError(err)
		h.logger.ErrorContext(ctx, "upstream call failed",
			"request_id", requestID,
			"session_id", chatReq.SessionID,
			"status", status,
			"error", err,
		)
		h.finish(w, r, record, status, start, errResp, audit.OutcomeUpstreamError, err.Error())
		return
	}

	response := &types.ChatResponse{
		SessionID: chatReq.SessionID,
		Response:  upstreamResp.Response,
		Timestamp: gateway.Timestamp(),
	}
	h.finish(w, r, record, http.StatusOK, start, response, audit.OutcomeSuccess, "")
}

// finish writes the response and records audit and metrics for the request.
func (h *ChatHandler) finish(w http.ResponseWriter, r *http.Request, record *audit.Record, status int, start time.Time, body any, outcome, errMsg string) {
	if err := gateway.WriteJSON(w, status, body); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response", "error", err)
	}

	if h.metrics != nil {
		h.metrics.RecordRequest(chatEndpoint, status, time.Since(start))
	}

	if h.recorder != nil {
		record.Outcome = outcome
		record.Status = status
		record.Error = errMsg
		h.recorder.Record(record)
	}
}
