// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// ErrFetch is matched by every *FetchError via errors.Is.
var ErrFetch = errors.New("fetch failed")

// FetchError wraps any failure to retrieve or decode a JSON document.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Fetcher defines the behavior of a gateway for fetching JSON documents from GitHub.
type Fetcher interface {
	// GetJSON issues a GET against url and returns the decoded body as
	// map[string]any, []any or a scalar, mirroring the response exactly.
	GetJSON(ctx context.Context, url string) (any, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token makes anonymous requests.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	return &GitHubGateway{
		client: github.NewClient(&http.Client{Transport: transport}),
		logger: logger,
	}, nil
}

func (g *GitHubGateway) GetJSON(ctx context.Context, url string) (any, error) {
	g.logger.Printf("Fetching %s\n", url)
	req, err := g.client.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	var payload any
	if _, err := g.client.Do(ctx, req, &payload); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return payload, nil
}
