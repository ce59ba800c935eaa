package model

import (
	"github.com/cockroachdb/errors"
	"github.com/rahul/kaam/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const openRouterURL = "https://openrouter.ai/api/v1"

// New creates the langchaingo model for a configured provider.
func New(name string, cfg config.ProviderConfig) (llms.Model, error) {
	var (
		llm llms.Model
		err error
	)

	switch name {
	case "openai", "openrouter":
		baseURL := cfg.BaseURL
		if baseURL == "" && name == "openrouter" {
			baseURL = openRouterURL
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		llm, err = openai.New(opts...)

	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		llm, err = ollama.New(opts...)

	case "anthropic":
		opts := []anthropic.Option{
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		llm, err = anthropic.New(opts...)

	default:
		return nil, errors.Newf("provider %s is not supported", name)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s client", name)
	}
	return llm, nil
}

// NewClientFromConfig wires a provider into a Client with its temperature and
// stop words.
func NewClientFromConfig(name string, cfg config.ProviderConfig) (*Client, error) {
	llm, err := New(name, cfg)
	if err != nil {
		return nil, err
	}
	return NewClient(llm,
		WithTemperature(cfg.Temperature),
		WithStopWords(cfg.Stop...),
		WithModelName(cfg.Model),
	), nil
}
