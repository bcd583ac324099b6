// Package upload reads the audio part of a multipart form into an
// audio.Input while enforcing the configured size limit.
package upload

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-web/internal/api/errors"
	"whisper-web/internal/app/audio"
)

// FieldAudio is the multipart field carrying the recording or file.
const FieldAudio = "audio"

const (
	// multipart framing on top of the audio payload
	formOverhead = 1 << 20

	limitKey    = "upload_limit"
	tooLargeKey = "upload_too_large"
)

// Limit caps the request body at maxBytes plus form overhead. Requests that
// announce a larger Content-Length are rejected before the body is read.
func Limit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(limitKey, maxBytes)
		if c.Request.ContentLength > maxBytes+formOverhead {
			c.Set(tooLargeKey, true)
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formOverhead)
		c.Next()
	}
}

// ReadAudio returns the uploaded audio. Missing or malformed forms are a
// bad request and oversized bodies a payload-too-large APIError. The media
// type is not judged here.
func ReadAudio(c *gin.Context) (*audio.Input, error) {
	limit := c.GetInt64(limitKey)
	if c.GetBool(tooLargeKey) {
		return nil, errors.NewPayloadTooLargeError(limit)
	}

	header, err := c.FormFile(FieldAudio)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &maxErr):
			return nil, errors.NewPayloadTooLargeError(limit)
		case stderrors.Is(err, http.ErrMissingFile):
			return nil, errors.NewBadRequestError("No audio uploaded: expected a file in the \"audio\" field")
		default:
			return nil, errors.NewBadRequestError("Malformed form data")
		}
	}
	if limit > 0 && header.Size > limit {
		return nil, errors.NewPayloadTooLargeError(limit)
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.NewBadRequestError("Unreadable audio upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewBadRequestError("Unreadable audio upload")
	}

	return &audio.Input{
		Data:      data,
		MediaType: header.Header.Get("Content-Type"),
		Filename:  header.Filename,
	}, nil
}
