package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-web/internal/app/api/provider"
	apperrors "whisper-web/internal/app/errors"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, config provider.ProviderConfig) provider.TranscriptionProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.APIKey = "test-gemini-key"
	config.BaseURL = server.URL
	p, err := provider.CreateProvider("gemini", config)
	require.NoError(t, err)
	return p
}

func TestTranscriber_Transcribe(t *testing.T) {
	audio := []byte("RIFF fake wav payload")

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/"+DefaultModel+":generateContent"), r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), base64.StdEncoding.EncodeToString(audio))
		assert.Contains(t, string(body), "audio/wav")
		assert.Contains(t, string(body), "The spoken language is en.")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hello from gemini"}]}}]}`))
	}, provider.ProviderConfig{Language: "en"})

	resp, err := p.Transcribe(context.Background(), &provider.TranscriptionRequest{
		Audio:    audio,
		Filename: "clip.wav",
		MIMEType: "audio/wav",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello from gemini", resp.Text)
	assert.Equal(t, DefaultModel, resp.ModelUsed)
	assert.Equal(t, "en", resp.Language)
}

func TestTranscriber_UpstreamError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"backend overloaded","status":"INTERNAL"}}`))
	}, provider.ProviderConfig{})

	_, err := p.Transcribe(context.Background(), &provider.TranscriptionRequest{
		Audio:    []byte("x"),
		MIMEType: "audio/wav",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTranscriptionService))
	assert.Contains(t, err.Error(), "backend overloaded")

	var svcErr *apperrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	assert.Equal(t, "backend overloaded", svcErr.Message)
}

func TestTranscriber_InvalidKeyKeepsStatus(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`))
	}, provider.ProviderConfig{})

	_, err := p.Transcribe(context.Background(), &provider.TranscriptionRequest{
		Audio:    []byte("x"),
		MIMEType: "audio/wav",
	})
	require.Error(t, err)

	var svcErr *apperrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "gemini", svcErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	assert.Equal(t, "API key not valid", svcErr.Message)
}

func TestCreateGeminiProvider(t *testing.T) {
	_, err := createGeminiProvider(provider.ProviderConfig{})
	assert.Error(t, err)

	p, err := createGeminiProvider(provider.ProviderConfig{APIKey: "k", Model: "gemini-2.5-pro"})
	require.NoError(t, err)
	info := p.GetProviderInfo()
	assert.Equal(t, "gemini", info.Name)
	assert.Equal(t, "gemini-2.5-pro", info.DefaultModel)
	assert.Equal(t, "GEMINI_API_KEY", info.CredentialEnv)
}
