package model

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

var (
	// ErrNoChoices is returned when the provider answers without any choice.
	ErrNoChoices = errors.New("model returned no choices")
	// ErrInvalidJSON is returned when the reply text cannot be decoded.
	ErrInvalidJSON = errors.New("model reply is not valid JSON")
)

// Usage holds the token counts reported by the provider, when available.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Reply is the raw text of a model answer.
type Reply struct {
	Text  string
	Usage Usage
}

// Client sends a system and a user prompt to a chat model in a single
// request. It never retries.
type Client struct {
	llm         llms.Model
	name        string
	temperature float64
	stop        []string
}

type Option func(*Client)

// WithTemperature sets the sampling temperature. The default is 0.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// WithStopWords sets stop sequences, e.g. "<|eot_id|>" for llama3 on Ollama.
func WithStopWords(stop ...string) Option {
	return func(c *Client) { c.stop = stop }
}

// WithModelName records the model name reported in cost events.
func WithModelName(name string) Option {
	return func(c *Client) { c.name = name }
}

func NewClient(llm llms.Model, opts ...Option) *Client {
	c := &Client{llm: llm}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ModelName returns the configured model name.
func (c *Client) ModelName() string {
	return c.name
}

// Generate issues one chat-completion request and returns the reply text.
func (c *Client) Generate(ctx context.Context, systemPrompt, prompt string) (*Reply, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	opts := []llms.CallOption{llms.WithTemperature(c.temperature)}
	if len(c.stop) > 0 {
		opts = append(opts, llms.WithStopWords(c.stop))
	}

	resp, err := c.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "chat completion failed")
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, ErrNoChoices
	}

	choice := resp.Choices[0]
	return &Reply{
		Text:  choice.Content,
		Usage: usageFrom(choice.GenerationInfo),
	}, nil
}

// GenerateJSON is Generate followed by decoding the reply text into v.
func (c *Client) GenerateJSON(ctx context.Context, systemPrompt, prompt string, v any) (*Reply, error) {
	reply, err := c.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(CleanJSON(reply.Text)), v); err != nil {
		return reply, errors.Wrapf(ErrInvalidJSON, "%v: %q", err, reply.Text)
	}
	return reply, nil
}

// Decide asks the model which tool to run.
func (c *Client) Decide(ctx context.Context, systemPrompt, prompt string) (Decision, *Reply, error) {
	var d Decision
	reply, err := c.GenerateJSON(ctx, systemPrompt, prompt, &d)
	if err != nil {
		return Decision{}, reply, err
	}
	return d, reply, nil
}

// CleanJSON strips markdown fences and any prose around the outermost
// JSON object in a model reply.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func usageFrom(info map[string]any) Usage {
	return Usage{
		PromptTokens:     intFrom(info, "PromptTokens", "InputTokens"),
		CompletionTokens: intFrom(info, "CompletionTokens", "OutputTokens"),
	}
}

func intFrom(info map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := info[k].(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}
