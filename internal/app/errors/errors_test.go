package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyMatching(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		matches error
		others  []error
	}{
		{
			name:    "missing credential",
			err:     MissingCredential("openai", "OPENAI_API_KEY"),
			matches: ErrMissingCredential,
			others:  []error{ErrUnsupportedMediaType, ErrTranscriptionService},
		},
		{
			name:    "unsupported media type",
			err:     UnsupportedMediaType("audio payload is empty"),
			matches: ErrUnsupportedMediaType,
			others:  []error{ErrMissingCredential, ErrTranscriptionService},
		},
		{
			name:    "service error",
			err:     NewServiceError("openai", 500, "boom", nil),
			matches: ErrTranscriptionService,
			others:  []error{ErrMissingCredential, ErrUnsupportedMediaType},
		},
		{
			name:    "service error wrapped with fmt",
			err:     fmt.Errorf("transcribe: %w", NewServiceError("openai", 0, "connection refused", nil)),
			matches: ErrTranscriptionService,
			others:  []error{ErrMissingCredential, ErrUnsupportedMediaType},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, stderrors.Is(tc.err, tc.matches))
			for _, other := range tc.others {
				assert.False(t, stderrors.Is(tc.err, other), "unexpected match with %v", other)
			}
		})
	}
}

func TestServiceError(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := NewServiceError("openai", 0, cause.Error(), cause)

	assert.Equal(t, "transcription service error: openai: dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	withStatus := NewServiceError("openai", 401, "Incorrect API key provided", nil)
	assert.Contains(t, withStatus.Error(), "returned 401")
	assert.Contains(t, withStatus.Error(), "Incorrect API key provided")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Transcription failed: Invalid file format.",
		UserMessage(NewServiceError("openai", 400, "Invalid file format.", nil)))
	assert.Equal(t, "Unsupported audio: audio payload is empty",
		UserMessage(UnsupportedMediaType("audio payload is empty")))
	assert.Contains(t, UserMessage(MissingCredential("openai", "OPENAI_API_KEY")), "no API key configured")
	assert.Equal(t, "An error occurred: boom", UserMessage(stderrors.New("boom")))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))

	err := Wrapf(stderrors.New("inner"), "outer %s", "ctx")
	assert.Equal(t, "outer ctx: inner", err.Error())
}
