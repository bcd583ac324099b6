package testutil

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"whisper-web/internal/app/api/provider"
)

// MockProvider is a testify mock of provider.TranscriptionProvider.
type MockProvider struct {
	mock.Mock
	Info  provider.ProviderInfo
	calls int32
}

// NewMockProvider returns a mock named name with testing hooks attached.
func NewMockProvider(t mock.TestingT, name string) *MockProvider {
	m := &MockProvider{Info: provider.ProviderInfo{Name: name, DisplayName: "Mock " + name, DefaultModel: "mock-model"}}
	m.Test(t)
	return m
}

// Transcribe implements provider.TranscriptionProvider.
func (m *MockProvider) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	atomic.AddInt32(&m.calls, 1)
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TranscriptionResponse), args.Error(1)
}

// GetProviderInfo implements provider.TranscriptionProvider.
func (m *MockProvider) GetProviderInfo() provider.ProviderInfo {
	return m.Info
}

// CallCount returns how many times Transcribe ran.
func (m *MockProvider) CallCount() int {
	return int(atomic.LoadInt32(&m.calls))
}
