package elevenlabs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-web/internal/app/api/provider"
	apperrors "whisper-web/internal/app/errors"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, config provider.ProviderConfig) provider.TranscriptionProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.APIKey = "test-xi-key"
	config.BaseURL = server.URL + "/v1"
	p, err := provider.CreateProvider("elevenlabs", config)
	require.NoError(t, err)
	return p
}

func TestSTTProvider_Transcribe(t *testing.T) {
	audio := []byte("RIFF fake wav payload")

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/speech-to-text", r.URL.Path)
		assert.Equal(t, "test-xi-key", r.Header.Get("xi-api-key"))

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, DefaultModel, r.FormValue("model_id"))
		assert.Equal(t, "de", r.FormValue("language_code"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		assert.Equal(t, "clip.wav", header.Filename)
		got, _ := io.ReadAll(file)
		assert.Equal(t, audio, got)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"language_code":"deu","language_probability":0.98,"text":" Guten Tag ",
			"words":[{"text":"Guten","start":0.1,"end":0.5,"type":"word"},{"text":"Tag","start":0.6,"end":1.25,"type":"word"}]}`))
	}, provider.ProviderConfig{Language: "de"})

	resp, err := p.Transcribe(context.Background(), &provider.TranscriptionRequest{
		Audio:    audio,
		Filename: "clip.wav",
		MIMEType: "audio/wav",
	})
	require.NoError(t, err)
	assert.Equal(t, " Guten Tag ", resp.Text)
	assert.Equal(t, "deu", resp.Language)
	assert.Equal(t, 1250*time.Millisecond, resp.Duration)
	assert.Equal(t, DefaultModel, resp.ModelUsed)
}

func TestSTTProvider_RequestOverridesModelAndLanguage(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "scribe_v2", r.FormValue("model_id"))
		assert.Equal(t, "fr", r.FormValue("language_code"))
		w.Write([]byte(`{"text":""}`))
	}, provider.ProviderConfig{Language: "de"})

	resp, err := p.Transcribe(context.Background(), &provider.TranscriptionRequest{
		Audio:    []byte("x"),
		Filename: "a.mp3",
		Language: "fr",
		Model:    "scribe_v2",
	})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Text)
	assert.Zero(t, resp.Duration)
}

func TestSTTProvider_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{
			name:            "detail object",
			status:          http.StatusUnauthorized,
			body:            `{"detail":{"status":"invalid_api_key","message":"Invalid API key"}}`,
			expectedMessage: "Invalid API key",
		},
		{
			name:            "validation list",
			status:          http.StatusUnprocessableEntity,
			body:            `{"detail":[{"loc":["body","file"],"msg":"field required","type":"missing"}]}`,
			expectedMessage: "field required",
		},
		{
			name:            "plain text body",
			status:          http.StatusInternalServerError,
			body:            "upstream exploded",
			expectedMessage: "upstream exploded",
		},
		{
			name:            "empty body",
			status:          http.StatusServiceUnavailable,
			expectedMessage: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, provider.ProviderConfig{})

			_, err := p.Transcribe(context.Background(), &provider.TranscriptionRequest{Audio: []byte("x"), Filename: "a.wav"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrTranscriptionService))

			var svcErr *apperrors.ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, "elevenlabs", svcErr.Provider)
			assert.Equal(t, tt.status, svcErr.StatusCode)
			assert.Equal(t, tt.expectedMessage, svcErr.Message)
		})
	}
}

func TestSTTProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	p, err := provider.CreateProvider("elevenlabs", provider.ProviderConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Transcribe(context.Background(), &provider.TranscriptionRequest{Audio: []byte("x")})
	require.Error(t, err)

	var svcErr *apperrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Zero(t, svcErr.StatusCode)
}

func TestCreateElevenLabsProvider(t *testing.T) {
	_, err := createElevenLabsProvider(provider.ProviderConfig{})
	assert.Error(t, err)

	p, err := createElevenLabsProvider(provider.ProviderConfig{APIKey: "k"})
	require.NoError(t, err)
	info := p.GetProviderInfo()
	assert.Equal(t, "elevenlabs", info.Name)
	assert.Equal(t, DefaultModel, info.DefaultModel)
	assert.Equal(t, "ELEVENLABS_API_KEY", info.CredentialEnv)
	assert.Equal(t, DefaultBaseURL, p.(*STTProvider).baseURL)
}
