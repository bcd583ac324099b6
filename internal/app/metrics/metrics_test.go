package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTranscriptions(t *testing.T) {
	m := New()

	m.RecordSuccess("openai", 2*time.Second, 90*time.Second, 0.009)
	m.RecordSuccess("openai", time.Second, 0, 0)
	m.RecordUpstreamFailure("openai", 500*time.Millisecond)
	m.RecordRejected("openai", OutcomeUnsupportedMediaType)
	m.RecordRejected("gemini", OutcomeMissingCredential)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("openai", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("openai", OutcomeServiceError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("openai", OutcomeUnsupportedMediaType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("gemini", OutcomeMissingCredential)))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.audioSeconds.WithLabelValues("openai")))
	assert.InDelta(t, 0.009, testutil.ToFloat64(m.costUSD.WithLabelValues("openai")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(m.transcriptionLatency))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveHTTP("POST", "/transcribe", 200, 150*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `whisper_web_http_requests_total{method="POST",route="/transcribe",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
