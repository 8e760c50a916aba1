package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pubwatch/pubwatch/pkg/adapters/github"
	"github.com/pubwatch/pubwatch/pkg/config"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=fetcher.go -destination=mock_fetcher.gen.go -package=check

// ErrInvalidRepoURL is returned when the repository URL cannot be parsed.
var ErrInvalidRepoURL = errors.New("invalid repository URL")

// ManifestFetcher reads a single file from a configured repository.
type ManifestFetcher interface {
	Fetch(ctx context.Context, repo config.Repository, path string) ([]byte, error)
}

// githubFetcher reads repository files through the GitHub contents API.
type githubFetcher struct {
	client github.Client
}

// Ensure githubFetcher implements ManifestFetcher.
var _ ManifestFetcher = (*githubFetcher)(nil)

// NewGitHubFetcher wraps a GitHub client as a ManifestFetcher.
func NewGitHubFetcher(client github.Client) ManifestFetcher {
	return &githubFetcher{client: client}
}

// Fetch reads one file from the repository's configured branch.
func (f *githubFetcher) Fetch(ctx context.Context, repo config.Repository, path string) ([]byte, error) {
	owner, name := parseOwnerAndRepo(repo.URL)
	if owner == "" || name == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepoURL, repo.URL)
	}
	return f.client.GetFileContent(ctx, github.GetFileContentParams{
		Owner: owner,
		Repo:  name,
		Path:  path,
		Ref:   repo.Branch,
	})
}

// parseOwnerAndRepo extracts the owner and repository name from an HTTPS
// or SSH GitHub URL, tolerating a trailing .git suffix.
func parseOwnerAndRepo(url string) (owner, repo string) {
	const host = "github.com"
	idx := strings.Index(url, host)
	if idx == -1 {
		return "", ""
	}
	rest := url[idx+len(host):]
	rest = strings.TrimPrefix(rest, ":")
	rest = strings.Trim(rest, "/")
	rest = strings.TrimSuffix(rest, ".git")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}
