package upload

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-web/internal/api/errors"
	"whisper-web/internal/app/audio"
	"whisper-web/internal/app/testutil"
)

func readVia(t *testing.T, limit int64, body *bytes.Buffer, contentType string, unknownLength bool) (*audio.Input, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var (
		in  *audio.Input
		err error
	)
	router := gin.New()
	router.POST("/", Limit(limit), func(c *gin.Context) {
		in, err = ReadAudio(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	if unknownLength {
		req.ContentLength = -1
	}
	router.ServeHTTP(httptest.NewRecorder(), req)
	return in, err
}

func TestReadAudio(t *testing.T) {
	data := testutil.WAV(100)
	body, contentType := testutil.MultipartAudio(t, FieldAudio, "clip.wav", "audio/x-wav", data, map[string]string{"language": "en"})

	in, err := readVia(t, 1<<20, body, contentType, false)
	require.NoError(t, err)
	assert.Equal(t, data, in.Data)
	assert.Equal(t, "audio/x-wav", in.MediaType)
	assert.Equal(t, "clip.wav", in.Filename)
}

func TestReadAudio_Errors(t *testing.T) {
	big := make([]byte, 3<<20)

	tests := []struct {
		name          string
		limit         int64
		field         string
		data          []byte
		unknownLength bool
		expectedKind  errors.ErrorKind
	}{
		{name: "wrong field", limit: 1 << 20, field: "file", data: []byte("x"), expectedKind: errors.KindBadRequest},
		{name: "declared length too large", limit: 1 << 20, field: FieldAudio, data: big, expectedKind: errors.KindPayloadTooLarge},
		{name: "streamed body too large", limit: 1 << 20, field: FieldAudio, data: big, unknownLength: true, expectedKind: errors.KindPayloadTooLarge},
		{name: "file above limit inside overhead", limit: 1024, field: FieldAudio, data: make([]byte, 4096), expectedKind: errors.KindPayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := testutil.MultipartAudio(t, tt.field, "clip.wav", "audio/wav", tt.data, nil)
			_, err := readVia(t, tt.limit, body, contentType, tt.unknownLength)
			require.Error(t, err)

			apiErr, ok := err.(*errors.APIError)
			require.True(t, ok)
			assert.Equal(t, tt.expectedKind, apiErr.Kind)
		})
	}
}

func TestReadAudio_NotMultipart(t *testing.T) {
	_, err := readVia(t, 1<<20, bytes.NewBufferString("plain"), "text/plain", false)
	require.Error(t, err)
	assert.Equal(t, errors.KindBadRequest, err.(*errors.APIError).Kind)
}
