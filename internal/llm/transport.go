package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sender turns a transcript into one assistant reply. Implementations differ
// only in where the API credential lives; the conversation service never
// branches on deployment mode itself.
type Sender interface {
	Send(ctx context.Context, messages []Message) (string, error)
}

// DirectTransport posts completions straight to the upstream API with the
// caller-held bearer key. This is the local-development path, where no relay
// process exists to hide the credential.
type DirectTransport struct {
	apiKey     string
	url        string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewDirectTransport builds a transport against <base>/v1/chat/completions.
func NewDirectTransport(apiKey, base, model string, maxTokens int, timeout time.Duration) *DirectTransport {
	return &DirectTransport{
		apiKey:    apiKey,
		url:       strings.TrimSuffix(base, "/") + "/v1/chat/completions",
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *DirectTransport) Send(ctx context.Context, messages []Message) (string, error) {
	if t.apiKey == "" {
		return "", newError(KindMisconfiguredServer, 0, "API key is not configured", nil)
	}
	return post(ctx, t.httpClient, t.url, t.apiKey, CompletionRequest{
		Model:     t.model,
		Messages:  messages,
		MaxTokens: t.maxTokens,
	})
}

// RelayTransport posts completions to a server-side proxy that attaches the
// credential itself. No Authorization header leaves this process.
type RelayTransport struct {
	url        string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewRelayTransport builds a transport against the relay endpoint, e.g.
// https://example.com/api/openai?endpoint=/v1/chat/completions.
func NewRelayTransport(relayURL, model string, maxTokens int, timeout time.Duration) *RelayTransport {
	return &RelayTransport{
		url:       relayURL,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *RelayTransport) Send(ctx context.Context, messages []Message) (string, error) {
	return post(ctx, t.httpClient, t.url, "", CompletionRequest{
		Model:     t.model,
		Messages:  messages,
		MaxTokens: t.maxTokens,
	})
}

// post performs one completion round trip. One attempt, no retries; retry
// policy belongs to callers, and none of them want one.
func post(ctx context.Context, client *http.Client, url, bearer string, reqBody CompletionRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", newError(KindMalformedRequest, 0, "failed to marshal completion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", newError(KindGatewayFailure, 0, "failed to create completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", newError(KindGatewayFailure, 0, "completion request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(KindGatewayFailure, resp.StatusCode, "failed reading completion response", err)
	}

	var parsed CompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", newError(KindGatewayFailure, resp.StatusCode,
			fmt.Sprintf("failed to parse completion response: %s", truncate(string(body), 400)), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := truncate(string(body), 400)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", newError(KindUpstreamError, resp.StatusCode, msg, nil)
	}

	if len(parsed.Choices) == 0 {
		return "", newError(KindGatewayFailure, resp.StatusCode, "completion response has no choices", nil)
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", newError(KindGatewayFailure, resp.StatusCode, "completion response is empty", nil)
	}
	return content, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
