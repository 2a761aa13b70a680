// Package client provides a client for the organization endpoints of the GitHub API.
package client

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/naka-gawa/github-repos/internal/gateway"
	"github.com/naka-gawa/github-repos/internal/memo"
	"github.com/naka-gawa/github-repos/internal/nested"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// GithubOrgClient lists the public repositories of a single organization.
// The organization payload and the repositories URL are fetched once per
// client and kept for its lifetime.
type GithubOrgClient struct {
	org     string
	baseURL string
	fetcher gateway.Fetcher
	initErr error
	logger  *log.Logger

	orgPayload memo.Value[nested.Map]
	reposURL   memo.Value[string]
}

// Option configures a GithubOrgClient.
type Option func(*GithubOrgClient)

// WithFetcher replaces the default anonymous GitHub gateway.
func WithFetcher(fetcher gateway.Fetcher) Option {
	return func(c *GithubOrgClient) {
		c.fetcher = fetcher
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *log.Logger) Option {
	return func(c *GithubOrgClient) {
		c.logger = logger
	}
}

// WithBaseURL points the client at another API root, such as a GitHub Enterprise server.
func WithBaseURL(baseURL string) Option {
	return func(c *GithubOrgClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewGithubOrgClient creates a client for the named organization.
func NewGithubOrgClient(org string, opts ...Option) *GithubOrgClient {
	c := &GithubOrgClient{
		org:     org,
		baseURL: DefaultBaseURL,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		gw, err := gateway.NewGitHubGateway("", c.logger)
		if err != nil {
			c.initErr = fmt.Errorf("failed to create GitHub gateway: %w", err)
		} else {
			c.fetcher = gw
		}
	}
	return c
}

func (c *GithubOrgClient) getJSON(ctx context.Context, url string) (any, error) {
	if c.initErr != nil {
		return nil, c.initErr
	}
	return c.fetcher.GetJSON(ctx, url)
}

// Name returns the organization name the client was created with.
func (c *GithubOrgClient) Name() string {
	return c.org
}

// OrgURL returns the organization endpoint. No request is made.
func (c *GithubOrgClient) OrgURL() string {
	return fmt.Sprintf("%s/orgs/%s", c.baseURL, c.org)
}

// Org returns the organization payload, fetching it on first use only.
func (c *GithubOrgClient) Org(ctx context.Context) (nested.Map, error) {
	return c.orgPayload.Get(func() (nested.Map, error) {
		c.logger.Printf("Fetching organization %s...\n", c.org)
		payload, err := c.getJSON(ctx, c.OrgURL())
		if err != nil {
			return nil, err
		}
		org, ok := payload.(nested.Map)
		if !ok {
			return nil, fmt.Errorf("organization %s: expected a JSON object, got %T", c.org, payload)
		}
		return org, nil
	})
}

// PublicReposURL returns the repos_url advertised by the organization payload.
func (c *GithubOrgClient) PublicReposURL(ctx context.Context) (string, error) {
	return c.reposURL.Get(func() (string, error) {
		org, err := c.Org(ctx)
		if err != nil {
			return "", err
		}
		return nested.AccessString(org, "repos_url")
	})
}

// ReposPayload fetches the current repository list. It is not cached.
func (c *GithubOrgClient) ReposPayload(ctx context.Context) ([]any, error) {
	url, err := c.PublicReposURL(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Fetching repositories of %s...\n", c.org)
	payload, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	repos, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("repositories of %s: expected a JSON array, got %T", c.org, payload)
	}
	return repos, nil
}

// PublicRepos returns the names of the organization's public repositories in
// the order the API lists them. A non-empty license keeps only repositories
// whose license key matches it exactly.
func (c *GithubOrgClient) PublicRepos(ctx context.Context, license string) ([]string, error) {
	repos, err := c.ReposPayload(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		if license != "" && !HasLicense(repo, license) {
			continue
		}
		name, err := nested.AccessString(repo, "name")
		if err != nil {
			return nil, fmt.Errorf("failed to read repository name: %w", err)
		}
		names = append(names, name)
	}
	c.logger.Printf("Found %d repositories in %s.\n", len(names), c.org)
	return names, nil
}

// HasLicense reports whether repo.license.key equals licenseKey.
// A repository without license metadata never matches.
func HasLicense(repo any, licenseKey string) bool {
	key, err := nested.Access(repo, "license", "key")
	if err != nil {
		return false
	}
	return key == licenseKey
}
