// Package llm provides completion clients for the hosted model APIs.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/HartBrook/lyra/internal/errors"
)

// Client sends a prompt to a model and returns the text of its reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Providers lists the supported providers.
var Providers = []string{ProviderOpenAI, ProviderAnthropic}

const defaultTimeout = 120 * time.Second

// settings holds the options shared by every client.
type settings struct {
	apiKey      string
	baseURL     string
	model       string
	system      string
	temperature *float64
	maxTokens   int
	httpClient  *http.Client
}

// Option configures a client.
type Option func(*settings)

// WithAPIKey sets the API key instead of reading it from the environment.
func WithAPIKey(key string) Option {
	return func(s *settings) {
		s.apiKey = key
	}
}

// WithModel sets the model to use.
func WithModel(model string) Option {
	return func(s *settings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(s *settings) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.httpClient = client
	}
}

// WithSystem sets a system prompt sent with every request.
func WithSystem(system string) Option {
	return func(s *settings) {
		s.system = system
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(s *settings) {
		s.temperature = &t
	}
}

// WithMaxTokens caps the reply length.
func WithMaxTokens(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

func newSettings(baseURL, model string, maxTokens int, opts []Option) *settings {
	s := &settings{
		baseURL:   baseURL,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveKey falls back to envVar when no key was passed explicitly.
func (s *settings) resolveKey(provider, envVar string) error {
	if s.apiKey == "" {
		s.apiKey = os.Getenv(envVar)
	}
	if s.apiKey == "" {
		return errors.LLMAuthFailed(provider, envVar)
	}
	return nil
}

// New creates a client for the named provider.
func New(provider string, opts ...Option) (Client, error) {
	switch provider {
	case ProviderOpenAI, "":
		return NewOpenAI(opts...)
	case ProviderAnthropic:
		return NewAnthropic(opts...)
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown provider %q (use openai or anthropic)", provider))
	}
}

// EnvVar returns the environment variable holding the provider's API key.
func EnvVar(provider string) string {
	if provider == ProviderAnthropic {
		return anthropicKeyEnv
	}
	return openAIKeyEnv
}
