package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/benvon/chat-relay/internal/gemini"
	"github.com/benvon/chat-relay/internal/metrics"
	"github.com/benvon/chat-relay/internal/request"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Client-facing messages for the chat endpoint. These are wire contract; the
// frontend matches on them.
const (
	ErrInvalidJSON         = "Invalid JSON"
	ErrMissingFields       = "Missing messages or systemPrompt"
	ErrAPIKeyNotConfigured = "API key not configured"
	ErrSafetyFiltered      = "Response filtered for safety"
	ErrUpstreamUnreachable = "Failed to reach Gemini API"
	FallbackReply          = "Sorry, I could not generate a response."
)

// ChatRequest is the inbound chat payload. Both fields are required; messages
// pass through to the upstream contents unchanged.
type ChatRequest struct {
	Messages     []gemini.Content `json:"messages" validate:"required"`
	SystemPrompt string           `json:"systemPrompt" validate:"required"`
}

// ChatResponse is the success payload.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatHandler proxies chat requests to the Gemini API
type ChatHandler struct {
	client    *gemini.Client
	collector *metrics.Collector
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewChatHandler creates a new chat handler. client may be nil when no API
// key is configured; the handler then reports the misconfiguration per
// request instead of refusing to start.
func NewChatHandler(client *gemini.Client, collector *metrics.Collector, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		client:    client,
		collector: collector,
		validate:  validator.New(),
		logger:    logger,
	}
}

// RegisterRoutes registers chat routes on r, which is expected to be the
// /api subrouter.
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/chat", h.Chat).Methods("POST")
}

// Chat handles POST /api/chat. Every failure is terminal for the request;
// there are no retries and no partial responses.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMissingFields)
		return
	}

	if h.client == nil {
		h.logger.Error("gemini_api_key_missing",
			zap.String("request_id", request.RequestID(r.Context())),
		)
		respondError(w, http.StatusInternalServerError, ErrAPIKeyNotConfigured)
		return
	}

	start := time.Now()
	reply, err := h.client.GenerateReply(r.Context(), req.SystemPrompt, req.Messages)
	latency := time.Since(start)

	if err != nil {
		h.respondUpstreamError(w, r, err, latency)
		return
	}

	h.recordUpstream(metrics.UpstreamSuccess, latency)
	if reply == "" {
		reply = FallbackReply
	}
	respondJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

func (h *ChatHandler) respondUpstreamError(w http.ResponseWriter, r *http.Request, err error, latency time.Duration) {
	requestID := request.RequestID(r.Context())

	var apiErr *gemini.APIError
	switch {
	case errors.Is(err, gemini.ErrSafetyFiltered):
		h.recordUpstream(metrics.UpstreamSafetyFiltered, latency)
		h.logger.Info("chat_response_safety_filtered",
			zap.String("request_id", requestID),
		)
		respondError(w, http.StatusBadRequest, ErrSafetyFiltered)

	case errors.As(err, &apiErr):
		h.recordUpstream(metrics.UpstreamAPIError, latency)
		h.logger.Warn("gemini_api_request_failed",
			zap.Int("upstream_status", apiErr.StatusCode),
			zap.String("request_id", requestID),
		)
		// Propagate the upstream status and its own message when present.
		respondError(w, apiErr.StatusCode, apiErr.PublicMessage())

	default:
		h.recordUpstream(metrics.UpstreamUnreachable, latency)
		h.logger.Error("gemini_api_unreachable",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(w, http.StatusBadGateway, ErrUpstreamUnreachable)
	}
}

func (h *ChatHandler) recordUpstream(outcome string, latency time.Duration) {
	if h.collector != nil {
		h.collector.RecordUpstream(outcome, latency)
	}
}
