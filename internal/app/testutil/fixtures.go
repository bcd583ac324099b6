package testutil

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// WAV returns a mono 16 kHz PCM WAV file holding samples zero samples.
func WAV(samples int) []byte {
	dataLen := samples * 2
	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVEfmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1))     // mono
	binary.Write(buf, binary.LittleEndian, uint32(16000)) // sample rate
	binary.Write(buf, binary.LittleEndian, uint32(32000)) // byte rate
	binary.Write(buf, binary.LittleEndian, uint16(2))     // block align
	binary.Write(buf, binary.LittleEndian, uint16(16))    // bits per sample
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}

// MultipartAudio builds a multipart body with the audio under field, plus
// any extra text fields. It returns the body and its Content-Type.
func MultipartAudio(t testing.TB, field, filename, contentType string, data []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)

	for k, v := range extra {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// FakeOpenAIServer answers /v1/audio/transcriptions with a fixed status and body.
type FakeOpenAIServer struct {
	*httptest.Server
	Status int
	Body   interface{}
	calls  int32
}

// NewFakeOpenAIServer starts a server replying with status and body (JSON
// encoded unless it is already a string). The server is closed at cleanup.
func NewFakeOpenAIServer(t testing.TB, status int, body interface{}) *FakeOpenAIServer {
	t.Helper()
	f := &FakeOpenAIServer{Status: status, Body: body}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.Status)
		switch b := f.Body.(type) {
		case string:
			w.Write([]byte(b))
		default:
			json.NewEncoder(w).Encode(b)
		}
	}))
	t.Cleanup(f.Server.Close)
	return f
}

// BaseURL is the value for the OpenAI base_url setting.
func (f *FakeOpenAIServer) BaseURL() string {
	return f.Server.URL + "/v1"
}

// Calls returns how many requests the server received.
func (f *FakeOpenAIServer) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}
