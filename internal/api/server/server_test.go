package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apierrors "whisper-web/internal/api/errors"
	"whisper-web/internal/api/upload"
	"whisper-web/internal/app/api/provider"
	"whisper-web/internal/app/metrics"
	"whisper-web/internal/app/testutil"
	"whisper-web/internal/app/transcription"
	"whisper-web/internal/config"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:        "127.0.0.1",
		Port:        0,
		Environment: "test",
		MaxUploadMB: 1,
	}
}

func newTestServer(t *testing.T, p provider.TranscriptionProvider) (*Server, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	svc := transcription.NewService(p, transcription.Options{
		ProviderName:  "openai",
		CredentialEnv: config.OpenAIKeyEnv,
		Metrics:       m,
		Logger:        zap.NewNop(),
	})
	return NewServer(testConfig(), svc, m, zap.NewNop()), m
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "openai", body["provider"])
	assert.Equal(t, false, body["credential_configured"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t, testutil.NewMockProvider(t, "openai"))

	routes := map[string]bool{}
	for _, r := range srv.Router().Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /",
		"POST /transcribe",
		"POST /api/v1/transcriptions",
		"GET /health",
		"GET /metrics",
		"GET /static/*filepath",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestServer_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apierrors.KindNotFound, body.Kind)
	assert.Equal(t, "route /api/v1/nope not found", body.Message)
	assert.NotEmpty(t, body.RequestID)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404 page not found", rec.Body.String())
}

func TestServer_TranscribeAndMetrics(t *testing.T) {
	p := testutil.NewMockProvider(t, "openai")
	p.On("Transcribe", mock.Anything, mock.Anything).
		Return(&provider.TranscriptionResponse{Text: "hi", Duration: 30 * time.Second}, nil).Once()
	srv, _ := newTestServer(t, p)

	body, contentType := testutil.MultipartAudio(t, upload.FieldAudio, "a.wav", "audio/wav", testutil.WAV(100), nil)
	req := httptest.NewRequest("POST", "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	metricsBody := rec.Body.String()
	assert.Contains(t, metricsBody, `whisper_web_transcriptions_total{outcome="success",provider="openai"} 1`)
	assert.Contains(t, metricsBody, `whisper_web_http_requests_total{method="POST",route="/api/v1/transcriptions",status="200"} 1`)
	assert.Contains(t, metricsBody, "whisper_web_audio_seconds_total")
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	require.NoError(t, srv.Start())

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	payload, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(payload), "healthy"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	_, err = http.Get("http://" + srv.Addr() + "/health")
	assert.Error(t, err)
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	first, _ := newTestServer(t, nil)
	require.NoError(t, first.Start())
	defer first.Shutdown(context.Background())

	cfg := testConfig()
	_, port, _ := strings.Cut(first.Addr(), ":")
	second, _ := newTestServer(t, nil)
	second.httpServer.Addr = cfg.Host + ":" + port
	assert.Error(t, second.Start())
}
