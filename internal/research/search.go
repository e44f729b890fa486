// Package research provides the external-search collaborator used by the
// market-intelligence tools. A missing API configuration is a normal condition
// surfaced as ErrNotConfigured, never a crash.
package research

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// ErrNotConfigured indicates no search backend is configured. Callers degrade
// to a descriptive placeholder rather than failing the coaching request.
var ErrNotConfigured = errors.New("market intelligence search is not configured")

// Result is a single search hit with plain-text content
type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Searcher is the market-intelligence search capability
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Number of results requested per query
const maxResults = 3

// GoogleSearcher implements Searcher with the Google Custom Search API
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a searcher from an API key and search-engine ID.
// Returns ErrNotConfigured when either credential is missing.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string) (*GoogleSearcher, error) {
	if apiKey == "" || cx == "" {
		return nil, ErrNotConfigured
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{svc: svc, cx: cx}, nil
}

// Search runs the query and returns cleaned plain-text results
func (s *GoogleSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	resp, err := s.svc.Cse.List().Cx(s.cx).Q(query).Num(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		snippet := item.HtmlSnippet
		if snippet == "" {
			snippet = item.Snippet
		}
		results = append(results, Result{
			Title:   item.Title,
			Content: CleanSnippet(snippet),
			URL:     item.Link,
		})
	}
	return results, nil
}
