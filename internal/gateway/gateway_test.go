package gateway_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmartins-dev/bruno-dev/internal/gateway"
)

func newRouter(apiKey, upstreamBase string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gateway.New(apiKey, upstreamBase, 5*time.Second).Register(r)
	return r
}

func TestOptionsPreflightAnsweredImmediately(t *testing.T) {
	upstreamHits := int32(0)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamHits, 1)
	}))
	defer upstream.Close()

	r := newRouter("sk-test", upstream.URL)

	req := httptest.NewRequest(http.MethodOptions, "/api/openai?endpoint=/anything", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Zero(t, atomic.LoadInt32(&upstreamHits))
}

func TestInvalidJSONBodyRejectedWithoutUpstreamCall(t *testing.T) {
	upstreamHits := int32(0)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamHits, 1)
	}))
	defer upstream.Close()

	r := newRouter("sk-test", upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
	assert.Contains(t, w.Body.String(), "malformed_request")
	assert.Zero(t, atomic.LoadInt32(&upstreamHits))
}

func TestMissingAPIKeyRejectedWithoutUpstreamCall(t *testing.T) {
	upstreamHits := int32(0)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamHits, 1)
	}))
	defer upstream.Close()

	r := newRouter("", upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(`{"model":"gpt-4o-mini"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "API key is not configured")
	assert.Contains(t, w.Body.String(), "misconfigured_server")
	assert.Zero(t, atomic.LoadInt32(&upstreamHits))
}

func TestSuccessRelayedVerbatim(t *testing.T) {
	const upstreamBody = `{"choices":[{"message":{"content":"hello"}}]}`
	var gotPath, gotAuth, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	r := newRouter("sk-test", upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(`{"model":"gpt-4o-mini"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, upstreamBody, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "/v1/chat/completions", gotPath, "default endpoint applied")
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.JSONEq(t, `{"model":"gpt-4o-mini"}`, gotBody)
}

func TestEndpointQueryParameterSelectsSubPath(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	r := newRouter("sk-test", upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/openai?endpoint=/v1/models", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/v1/models", gotPath)
}

func TestUpstreamErrorStatusAndBodyPassThrough(t *testing.T) {
	const errBody = `{"error":{"message":"rate limited","type":"rate_limit_exceeded"}}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(errBody))
	}))
	defer upstream.Close()

	r := newRouter("sk-test", upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, errBody, w.Body.String())
}

func TestNonJSONUpstreamBodyIsGatewayFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer upstream.Close()

	r := newRouter("sk-test", upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "gateway_failure")
}

func TestNetworkFailureIsGatewayFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing listening anymore

	r := newRouter("sk-test", upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to proxy request")
	assert.Contains(t, w.Body.String(), "gateway_failure")
}
