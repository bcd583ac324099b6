package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every optional setting, e.g. WHISPER_WEB_SERVER_PORT.
	EnvPrefix = "WHISPER_WEB"

	OpenAIKeyEnv     = "OPENAI_API_KEY"
	GeminiKeyEnv     = "GEMINI_API_KEY"
	ElevenLabsKeyEnv = "ELEVENLABS_API_KEY"

	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderElevenLabs = "elevenlabs"

	// DefaultPort is the fixed local port the start script serves on.
	DefaultPort = 8080

	// DefaultCostPerMinute is the whisper-1 list price in USD.
	DefaultCostPerMinute = 0.006
)

// Config is the complete process configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	OpenAI        ProviderCredentials `mapstructure:"openai"`
	Gemini        ProviderCredentials `mapstructure:"gemini"`
	ElevenLabs    ProviderCredentials `mapstructure:"elevenlabs"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	Environment  string        `mapstructure:"environment" validate:"oneof=development production test"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb" validate:"min=1,max=1024"`
}

// TranscriptionConfig selects the upstream provider and its request options.
type TranscriptionConfig struct {
	Provider      string  `mapstructure:"provider" validate:"oneof=openai gemini elevenlabs"`
	Model         string  `mapstructure:"model"`
	Language      string  `mapstructure:"language" validate:"omitempty,min=2,max=5"`
	Prompt        string  `mapstructure:"prompt"`
	CostPerMinute float64 `mapstructure:"cost_per_minute" validate:"gte=0"`
}

// ProviderCredentials holds the API key and optional endpoint override.
type ProviderCredentials struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Credential returns the API key of the selected provider and the
// environment variable it is read from.
func (c *Config) Credential() (apiKey string, envVar string) {
	switch c.Transcription.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey, GeminiKeyEnv
	case ProviderElevenLabs:
		return c.ElevenLabs.APIKey, ElevenLabsKeyEnv
	default:
		return c.OpenAI.APIKey, OpenAIKeyEnv
	}
}

// BaseURL returns the endpoint override of the selected provider, empty for
// the public endpoint.
func (c *Config) BaseURL() string {
	switch c.Transcription.Provider {
	case ProviderGemini:
		return c.Gemini.BaseURL
	case ProviderElevenLabs:
		return c.ElevenLabs.BaseURL
	default:
		return c.OpenAI.BaseURL
	}
}

// HasCredential reports whether the selected provider has an API key.
func (c *Config) HasCredential() bool {
	key, _ := c.Credential()
	return key != ""
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an optional YAML/TOML/JSON file; env vars still win.
	ConfigFile string
}

// Load reads defaults, the optional config file and the environment into a
// validated Config. A missing API key is not an error here.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials use the conventional unprefixed names.
	if err := v.BindEnv("openai.api_key", OpenAIKeyEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", OpenAIKeyEnv, err)
	}
	if err := v.BindEnv("gemini.api_key", GeminiKeyEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", GeminiKeyEnv, err)
	}
	if err := v.BindEnv("elevenlabs.api_key", ElevenLabsKeyEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", ElevenLabsKeyEnv, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Transcription.Provider = strings.ToLower(strings.TrimSpace(c.Transcription.Provider))
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	c.ElevenLabs.APIKey = strings.TrimSpace(c.ElevenLabs.APIKey)
	c.OpenAI.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.OpenAI.BaseURL), "/")
	c.Gemini.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.Gemini.BaseURL), "/")
	c.ElevenLabs.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.ElevenLabs.BaseURL), "/")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.max_upload_mb", 25)

	v.SetDefault("transcription.provider", ProviderOpenAI)
	v.SetDefault("transcription.model", "")
	v.SetDefault("transcription.language", "")
	v.SetDefault("transcription.prompt", "")
	v.SetDefault("transcription.cost_per_minute", DefaultCostPerMinute)

	v.SetDefault("openai.base_url", "")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("elevenlabs.base_url", "")

	v.SetDefault("log.development", true)
}
