package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rahul/geoflow/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	// ErrBackend marks any model backend failure other than a timeout.
	ErrBackend = errors.New("backend error")

	// ErrBackendTimeout marks a backend call that exceeded its deadline.
	ErrBackendTimeout = errors.New("backend timeout")
)

// Backend is a single interchangeable language-model capability. Which
// implementation serves it is a configuration choice, never a type hierarchy.
type Backend interface {
	ModelID() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options bound every Generate call.
type Options struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// LLM adapts a langchaingo model to the Backend interface.
type LLM struct {
	model   llms.Model
	modelID string
	opts    Options
}

// New builds a backend for the named provider. "openrouter" is the OpenAI
// wire protocol with a custom base URL, so both share a constructor.
func New(provider string, cfg config.ProviderConfig, opts Options) (*LLM, error) {
	var (
		model llms.Model
		err   error
	)

	switch provider {
	case "openai", "openrouter":
		llmOpts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			llmOpts = append(llmOpts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(llmOpts...)
	case "ollama":
		llmOpts := []ollama.Option{
			ollama.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			llmOpts = append(llmOpts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err = ollama.New(llmOpts...)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", provider, err)
	}

	return &LLM{model: model, modelID: cfg.Model, opts: opts}, nil
}

func (l *LLM) ModelID() string {
	return l.modelID
}

// Generate runs one time-boxed completion. Calls are at-most-once: there is
// no retry here beyond whatever the underlying client does.
func (l *LLM) Generate(ctx context.Context, prompt string) (string, error) {
	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, l.model, prompt,
		llms.WithMaxTokens(l.opts.MaxTokens),
		llms.WithTemperature(l.opts.Temperature),
	)
	if err != nil {
		// Some clients return their own error type on deadline instead of
		// wrapping the context error, so check both.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrBackendTimeout, l.modelID)
		}
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return out, nil
}
