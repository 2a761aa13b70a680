// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/naka-gawa/github-repos/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentOrgs bounds the number of organizations fetched at once.
const maxConcurrentOrgs = 4

// RepoLister is the part of client.GithubOrgClient the use case depends on.
type RepoLister interface {
	PublicRepos(ctx context.Context, license string) ([]string, error)
}

// ClientFactory builds an independent RepoLister for one organization.
type ClientFactory func(org string) RepoLister

// Lister is the use case for listing public repositories across organizations.
type Lister struct {
	newClient ClientFactory
	logger    *log.Logger
}

// NewLister creates a new Lister instance.
func NewLister(newClient ClientFactory, logger *log.Logger) *Lister {
	return &Lister{
		newClient: newClient,
		logger:    logger,
	}
}

// List fetches the repositories of every organization concurrently, one client
// per organization. An empty license lists all repositories.
// If any organization fails, List returns nil and an error naming every failure.
func (l *Lister) List(ctx context.Context, orgs []string, license string) ([]*domain.OrgRepos, error) {
	l.logger.Printf("Usecase: Listing repositories of %d organization(s)...\n", len(orgs))

	var (
		mu      sync.Mutex
		errs    *multierror.Error
		results = make([]*domain.OrgRepos, 0, len(orgs))
	)

	// Errors are collected rather than returned so that one failing
	// organization does not cancel the others.
	var eg errgroup.Group
	eg.SetLimit(maxConcurrentOrgs)
	for _, org := range orgs {
		eg.Go(func() error {
			repos, err := l.newClient(org).PublicRepos(ctx, license)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("failed to list repositories of %s: %w", org, err))
				return nil
			}
			results = append(results, &domain.OrgRepos{Org: org, License: license, Repos: repos})
			return nil
		})
	}
	_ = eg.Wait()

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Org < results[j].Org
	})
	l.logger.Println("Usecase: Listing complete.")
	return results, nil
}
