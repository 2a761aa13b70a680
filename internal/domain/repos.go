// Package domain contains the core data structures and domain logic for the application.
package domain

// OrgRepos holds the public repositories listed for a single organization.
// It is the core domain entity of this application.
type OrgRepos struct {
	Org     string   `json:"org" yaml:"org"`
	License string   `json:"license,omitempty" yaml:"license,omitempty"`
	Repos   []string `json:"repos" yaml:"repos"`
}
