package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"therapeutic-assistant/backend/pkg/logger"
	"therapeutic-assistant/backend/pkg/resilience"
	"therapeutic-assistant/backend/shared/observability"
)

// Fixed generation parameters sent with every chat request
const (
	defaultMaxTokens   = 200
	defaultTemperature = 0.4
)

// User-facing fallback replies. The gateway never surfaces a transport
// error to its caller: a turn always completes with some assistant text.
const (
	// FallbackUnavailable is used when the model endpoint answers but
	// produces nothing usable
	FallbackUnavailable = "Je suis désolé, je ne peux pas répondre pour le moment. Veuillez réessayer."
	// FallbackError is used when the model endpoint cannot be reached
	FallbackError = "Je suis désolé, une erreur s'est produite. Veuillez réessayer plus tard."
)

var errNoUsableReply = errors.New("ai service returned no usable reply")

type chatRequest struct {
	Message     string  `json:"message"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// Client talks to the external text-generation service. It is stateless
// apart from its circuit breaker and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	log        *logger.Logger
}

// NewClient creates a gateway client for the model service at baseURL.
// The timeout bounds every chat call so a slow model cannot hang a turn.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    resilience.New(resilience.DefaultConfig("ai-service"), log),
		log:        log,
	}
}

// GetReply forwards the user's message to the model service and returns
// the generated reply, or a fixed fallback string when the service is
// unreachable or answers unusably. It never returns an error.
func (c *Client) GetReply(ctx context.Context, userMessage string) string {
	var reply string
	err := c.breaker.Execute(func() error {
		r, err := c.chat(ctx, userMessage)
		if err != nil {
			return err
		}
		reply = r
		return nil
	})
	if err == nil {
		return reply
	}

	c.log.Warn("ai reply substituted by fallback", "error", err.Error())
	observability.RecordAIFallback(ctx)

	if errors.Is(err, errNoUsableReply) || errors.Is(err, resilience.ErrCircuitOpen) {
		return FallbackUnavailable
	}
	return FallbackError
}

func (c *Client) chat(ctx context.Context, userMessage string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Message:     userMessage,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ai service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return "", errNoUsableReply
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if parsed.Response == "" {
		return "", errNoUsableReply
	}

	return parsed.Response, nil
}

// IsAvailable probes the model service health endpoint. It bypasses the
// circuit breaker so the health checker observes the real endpoint state.
func (c *Client) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}
