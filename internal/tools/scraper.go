package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

const maxScrapeChars = 50000

type ScraperTool struct {
	UserAgent string
	Client    *http.Client
}

func NewScraperTool() *ScraperTool {
	return &ScraperTool{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *ScraperTool) Name() string {
	return "scraper"
}

func (s *ScraperTool) Description() string {
	return "Fetch a webpage and extract the main content as clean text. Input is the full URL, e.g. https://example.com/article."
}

func (s *ScraperTool) Execute(ctx context.Context, input string) (string, error) {
	target := field(input, "url")
	parsedURL, err := url.Parse(target)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Sprintf("Error: %q is not an absolute URL", target), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("failed to fetch URL: status code %d", resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse article")
	}

	// Strip anything readability left behind.
	content := bluemonday.StrictPolicy().Sanitize(article.TextContent)
	if len(content) > maxScrapeChars {
		content = content[:maxScrapeChars] + "\n... (content truncated) ..."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "TITLE: %s\n", article.Title)
	if article.Excerpt != "" {
		fmt.Fprintf(&sb, "EXCERPT: %s\n", article.Excerpt)
	}
	sb.WriteString("\n-- CONTENT --\n")
	sb.WriteString(content)
	return sb.String(), nil
}
