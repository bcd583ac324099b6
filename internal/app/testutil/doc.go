// Package testutil provides testing utilities shared by the whisper-web packages.
//
// It contains:
//
//   - MockProvider: a testify mock of provider.TranscriptionProvider that also
//     counts calls, so tests can assert that a request never reached upstream.
//   - Audio fixtures: minimal WAV payloads that pass content sniffing.
//   - NewFakeOpenAIServer: an httptest server speaking the OpenAI
//     /audio/transcriptions contract.
package testutil
