// Package gateway exposes the server-side completion proxy. The browser
// widget posts completion payloads here without any credential; this handler
// attaches the server-held API key and relays the upstream response verbatim.
// It is deliberately a dumb pass-through: no retries, no body limits, no rate
// limiting. Anything smarter belongs to the upstream service or the caller.
package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bmartins-dev/bruno-dev/internal/llm"
)

const defaultEndpoint = "/v1/chat/completions"

// Gateway proxies completion requests to the upstream API.
type Gateway struct {
	apiKey     string
	base       string
	httpClient *http.Client
}

// New creates a gateway against the given upstream base URL. An empty apiKey
// is accepted here and reported per-request, so a misconfigured deployment
// still boots and serves the rest of the site.
func New(apiKey, base string, timeout time.Duration) *Gateway {
	return &Gateway{
		apiKey: apiKey,
		base:   strings.TrimSuffix(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Register mounts the proxy at /api/openai for GET, POST, and OPTIONS.
func (g *Gateway) Register(r gin.IRouter) {
	r.GET("/api/openai", g.Handle)
	r.POST("/api/openai", g.Handle)
	r.OPTIONS("/api/openai", g.Handle)
}

// Handle serves one proxy request.
func (g *Gateway) Handle(c *gin.Context) {
	// The widget and this endpoint may live on different origins.
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}

	endpoint := c.DefaultQuery("endpoint", defaultEndpoint)

	var body []byte
	if c.Request.Method != http.MethodGet {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"details": err.Error(),
				"kind":    string(llm.KindMalformedRequest),
			})
			return
		}
		if len(raw) > 0 && !json.Valid(raw) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"details": "request body is not valid JSON",
				"kind":    string(llm.KindMalformedRequest),
			})
			return
		}
		body = raw
	}

	if g.apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "API key is not configured on the server",
			"details": "set OPENAI_API_KEY in the server environment",
			"kind":    string(llm.KindMisconfiguredServer),
		})
		return
	}

	var reader io.Reader
	if c.Request.Method != http.MethodGet && len(body) > 0 {
		reader = strings.NewReader(string(body))
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, g.base+endpoint, reader)
	if err != nil {
		g.gatewayFailure(c, "failed to build upstream request", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.gatewayFailure(c, "failed to reach the completion API", err)
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		g.gatewayFailure(c, "failed to read upstream response", err)
		return
	}
	if !json.Valid(respBody) {
		g.gatewayFailure(c, "upstream response is not valid JSON", nil)
		return
	}

	// Upstream status and body pass through unchanged, success or not. The
	// caller tells an upstream rejection apart from a gateway failure by
	// looking at exactly this.
	c.Data(resp.StatusCode, "application/json", respBody)
}

func (g *Gateway) gatewayFailure(c *gin.Context, msg string, err error) {
	details := msg
	if err != nil {
		details = msg + ": " + err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Failed to proxy request to the completion API",
		"details": details,
		"kind":    string(llm.KindGatewayFailure),
	})
}
