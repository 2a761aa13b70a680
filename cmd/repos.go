package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/naka-gawa/github-repos/internal/client"
	"github.com/naka-gawa/github-repos/internal/config"
	"github.com/naka-gawa/github-repos/internal/domain"
	"github.com/naka-gawa/github-repos/internal/gateway"
	"github.com/naka-gawa/github-repos/internal/usecase"
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Lists the public repositories of GitHub organizations",
	Long: `Lists the public repositories of one or more GitHub organizations in the order
the API returns them. With --license, only repositories whose license key matches
exactly (e.g. "mit", "apache-2.0") are kept.`,
	SilenceUsage: true,
	RunE:         runRepos,
}

func runRepos(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	orgs, _ := cmd.Flags().GetStringSlice("org")
	license, _ := cmd.Flags().GetString("license")
	output, _ := cmd.Flags().GetString("output")
	if output != "json" && output != "yaml" {
		return fmt.Errorf("unsupported --output %q: use json or yaml", output)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Inject dependencies and run the main business logic.
	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	newClient := func(org string) usecase.RepoLister {
		return client.NewGithubOrgClient(org,
			client.WithFetcher(githubGateway),
			client.WithBaseURL(cfg.APIURL),
			client.WithLogger(logger),
		)
	}
	lister := usecase.NewLister(newClient, logger)

	results, err := lister.List(cmd.Context(), orgs, license)
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}
	return writeResults(cmd.OutOrStdout(), results, output)
}

func writeResults(w io.Writer, results []*domain.OrgRepos, output string) error {
	var (
		data []byte
		err  error
	)
	switch output {
	case "yaml":
		data, err = yaml.Marshal(results)
	default:
		data, err = json.MarshalIndent(results, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal results to %s: %w", output, err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func init() {
	rootCmd.AddCommand(reposCmd)
	reposCmd.Flags().StringSliceP("org", "o", nil, "Target GitHub organization name, repeatable (required)")
	reposCmd.Flags().StringP("license", "l", "", "Keep only repositories with this license key")
	reposCmd.Flags().String("output", "json", "Output format: json or yaml")
	reposCmd.MarkFlagRequired("org")
}
