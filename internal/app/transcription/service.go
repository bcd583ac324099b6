package transcription

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"whisper-web/internal/app/api/provider"
	"whisper-web/internal/app/audio"
	apperrors "whisper-web/internal/app/errors"
	"whisper-web/internal/app/metrics"
	"whisper-web/internal/app/pricing"
	"whisper-web/internal/config"
)

// Hints are optional per-request settings forwarded to the provider.
type Hints struct {
	Language string
	Prompt   string
}

// Result is the outcome of one successful transcription.
type Result struct {
	Text           string
	Language       string
	Duration       time.Duration
	Provider       string
	Model          string
	ProcessingTime time.Duration
	Estimate       pricing.Estimate
}

// Options configures a Service.
type Options struct {
	ProviderName  string
	CredentialEnv string
	Pricing       *pricing.Calculator
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// Service turns one AudioInput into at most one Result. It holds no state
// between calls: every Transcribe is an independent upstream request.
type Service struct {
	provider provider.TranscriptionProvider
	opts     Options
}

// NewService wraps p. A nil p means no credential is configured; every call
// then fails with ErrMissingCredential.
func NewService(p provider.TranscriptionProvider, opts Options) *Service {
	if opts.Pricing == nil {
		opts.Pricing = pricing.NewCalculator(config.DefaultCostPerMinute)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ProviderName == "" && p != nil {
		opts.ProviderName = p.GetProviderInfo().Name
	}
	return &Service{provider: p, opts: opts}
}

// NewServiceFromConfig builds the configured provider. A missing API key is
// logged and deferred to request time so the UI stays usable.
func NewServiceFromConfig(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*Service, error) {
	name := cfg.Transcription.Provider
	apiKey, envVar := cfg.Credential()
	opts := Options{
		ProviderName:  name,
		CredentialEnv: envVar,
		Pricing:       pricing.NewCalculator(cfg.Transcription.CostPerMinute),
		Metrics:       m,
		Logger:        logger,
	}

	if apiKey == "" {
		logger.Warn("No API key configured; transcription requests will fail until it is set",
			zap.String("provider", name),
			zap.String("env", envVar),
		)
		return NewService(nil, opts), nil
	}

	p, err := provider.CreateProvider(name, provider.ProviderConfig{
		APIKey:   apiKey,
		BaseURL:  cfg.BaseURL(),
		Model:    cfg.Transcription.Model,
		Language: cfg.Transcription.Language,
		Prompt:   cfg.Transcription.Prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription service: %w", err)
	}

	info := p.GetProviderInfo()
	logger.Info("Transcription provider ready",
		zap.String("provider", info.Name),
		zap.String("model", info.DefaultModel),
		zap.Strings("registered", provider.ListRegisteredProviders()),
	)
	return NewService(p, opts), nil
}

// ProviderName returns the configured provider name.
func (s *Service) ProviderName() string {
	return s.opts.ProviderName
}

// Ready reports whether a credential is configured.
func (s *Service) Ready() bool {
	return s.provider != nil
}

// Transcribe validates in and submits it upstream synchronously.
//
// Checks run in this order, and the first two never touch the network:
// credential present, then payload non-empty with an accepted media type.
// Upstream text is returned verbatim. No retry is attempted.
func (s *Service) Transcribe(ctx context.Context, in *audio.Input, hints Hints) (*Result, error) {
	name := s.opts.ProviderName
	logger := s.opts.Logger.With(zap.String("provider", name))

	if s.provider == nil {
		s.opts.Metrics.RecordRejected(name, metrics.OutcomeMissingCredential)
		logger.Warn("Rejected transcription: missing credential", zap.String("env", s.opts.CredentialEnv))
		return nil, apperrors.MissingCredential(name, s.opts.CredentialEnv)
	}

	format, err := audio.Detect(in)
	if err != nil {
		s.opts.Metrics.RecordRejected(name, metrics.OutcomeUnsupportedMediaType)
		logger.Info("Rejected transcription: unsupported media", zap.Error(err))
		return nil, err
	}

	request := &provider.TranscriptionRequest{
		Audio:    in.Data,
		Filename: in.UploadName(format),
		MIMEType: format.MIMEType(),
		Language: hints.Language,
		Prompt:   hints.Prompt,
	}

	logger.Info("Submitting audio for transcription",
		zap.String("format", format.Name),
		zap.Int("bytes", len(in.Data)),
	)

	start := time.Now()
	resp, err := s.provider.Transcribe(ctx, request)
	elapsed := time.Since(start)
	if err != nil {
		err = asServiceError(name, err)
		s.opts.Metrics.RecordUpstreamFailure(name, elapsed)
		logger.Error("Transcription failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, err
	}

	estimate := s.opts.Pricing.Estimate(resp.Duration)
	cost, _ := estimate.CostUSD.Float64()
	s.opts.Metrics.RecordSuccess(name, elapsed, resp.Duration, cost)

	logger.Info("Transcription complete",
		zap.Duration("elapsed", elapsed),
		zap.Duration("audio", resp.Duration),
		zap.String("estimated_cost_usd", estimate.CostString()),
	)

	return &Result{
		Text:           resp.Text,
		Language:       resp.Language,
		Duration:       resp.Duration,
		Provider:       name,
		Model:          resp.ModelUsed,
		ProcessingTime: elapsed,
		Estimate:       estimate,
	}, nil
}

// asServiceError guarantees provider failures carry the ServiceError type.
func asServiceError(name string, err error) error {
	var svcErr *apperrors.ServiceError
	if stderrors.As(err, &svcErr) {
		return err
	}
	return apperrors.NewServiceError(name, 0, err.Error(), err)
}
