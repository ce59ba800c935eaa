package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/tmc/langchaingo/tools/duckduckgo"
)

type SearchTool struct {
	client *duckduckgo.Tool
}

func NewSearchTool() (*SearchTool, error) {
	ddg, err := duckduckgo.New(10, duckduckgo.DefaultUserAgent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create duckduckgo client")
	}
	return &SearchTool{client: ddg}, nil
}

func (s *SearchTool) Name() string {
	return "search"
}

func (s *SearchTool) Description() string {
	return "Search the web using DuckDuckGo for real-time information. Input is the search query."
}

func (s *SearchTool) Execute(ctx context.Context, input string) (string, error) {
	query := field(input, "query")
	if query == "" {
		return "Error: empty search query", nil
	}

	res, err := s.client.Call(ctx, query)
	if err != nil {
		return "", errors.Wrap(err, "search failed")
	}
	return res, nil
}
