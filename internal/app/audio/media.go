package audio

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	apperrors "whisper-web/internal/app/errors"
)

// Input is one user-supplied audio payload. It lives for a single request.
type Input struct {
	Data      []byte
	MediaType string // declared by the client, may be empty
	Filename  string // original upload name, may be empty
}

// Format is an audio container accepted by the upstream services.
type Format struct {
	Name      string
	Extension string
	MIMETypes []string
}

// MIMEType returns the canonical media type of the format.
func (f Format) MIMEType() string {
	return f.MIMETypes[0]
}

// SupportedFormats lists the containers the transcription APIs accept.
var SupportedFormats = []Format{
	{Name: "flac", Extension: ".flac", MIMETypes: []string{"audio/flac", "audio/x-flac"}},
	{Name: "m4a", Extension: ".m4a", MIMETypes: []string{"audio/x-m4a", "audio/m4a", "audio/mp4"}},
	{Name: "mp3", Extension: ".mp3", MIMETypes: []string{"audio/mpeg", "audio/mp3", "audio/mpga"}},
	{Name: "mp4", Extension: ".mp4", MIMETypes: []string{"video/mp4"}},
	{Name: "mpeg", Extension: ".mpeg", MIMETypes: []string{"video/mpeg"}},
	{Name: "ogg", Extension: ".ogg", MIMETypes: []string{"audio/ogg", "application/ogg", "audio/opus"}},
	{Name: "wav", Extension: ".wav", MIMETypes: []string{"audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave"}},
	{Name: "webm", Extension: ".webm", MIMETypes: []string{"audio/webm", "video/webm"}},
}

const genericBinary = "application/octet-stream"

// Accept returns the value for an <input accept> attribute.
func Accept() string {
	exts := lo.Map(SupportedFormats, func(f Format, _ int) string { return f.Extension })
	mimes := lo.FlatMap(SupportedFormats, func(f Format, _ int) []string { return f.MIMETypes })
	return strings.Join(append(exts, mimes...), ",")
}

// FormatNames returns the accepted container names.
func FormatNames() []string {
	return lo.Map(SupportedFormats, func(f Format, _ int) string { return f.Name })
}

// Detect determines the container of in. Content sniffing wins; the declared
// media type and the filename extension are consulted only when the bytes are
// not recognisable. Empty or unrecognised payloads are rejected with
// ErrUnsupportedMediaType.
func Detect(in *Input) (Format, error) {
	if in == nil || len(in.Data) == 0 {
		return Format{}, apperrors.UnsupportedMediaType("audio payload is empty")
	}

	sniffed := mimetype.Detect(in.Data)
	if f, ok := formatForDetected(sniffed); ok {
		return f, nil
	}
	if !sniffed.Is(genericBinary) {
		return Format{}, apperrors.UnsupportedMediaType(
			"content looks like " + sniffed.String() + ", expected one of " + strings.Join(FormatNames(), ", "))
	}

	if f, ok := formatForMediaType(in.MediaType); ok {
		return f, nil
	}
	if f, ok := formatForExtension(in.Filename); ok {
		return f, nil
	}

	declared := in.MediaType
	if declared == "" {
		declared = "unknown"
	}
	return Format{}, apperrors.UnsupportedMediaType(
		"media type " + declared + " is not accepted, expected one of " + strings.Join(FormatNames(), ", "))
}

// UploadName returns the filename to send upstream. The services infer the
// container from the extension, so it always matches f.
func (in *Input) UploadName(f Format) string {
	base := strings.TrimSuffix(filepath.Base(in.Filename), filepath.Ext(in.Filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "audio"
	}
	return base + f.Extension
}

func formatForDetected(m *mimetype.MIME) (Format, bool) {
	for ; m != nil; m = m.Parent() {
		if m.Is(genericBinary) {
			break
		}
		f, ok := lo.Find(SupportedFormats, func(f Format) bool {
			return lo.ContainsBy(f.MIMETypes, func(t string) bool { return m.Is(t) })
		})
		if ok {
			return f, true
		}
	}
	return Format{}, false
}

func formatForMediaType(declared string) (Format, bool) {
	if declared == "" {
		return Format{}, false
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return Format{}, false
	}
	return lo.Find(SupportedFormats, func(f Format) bool {
		return lo.Contains(f.MIMETypes, strings.ToLower(mediaType))
	})
}

func formatForExtension(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return Format{}, false
	}
	if ext == ".mpga" {
		ext = ".mp3"
	} else if ext == ".oga" {
		ext = ".ogg"
	}
	return lo.Find(SupportedFormats, func(f Format) bool { return f.Extension == ext })
}
