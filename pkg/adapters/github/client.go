//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=client.go -destination=mock.gen.go -package=github
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v55/github"
	"github.com/pubwatch/pubwatch/pkg/adapters"
	"golang.org/x/oauth2"
)

// GetFileContentParams contains parameters for GetFileContent.
type GetFileContentParams struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// Client defines the read-only GitHub surface pubwatch consumes.
type Client interface {
	GetFileContent(ctx context.Context, params GetFileContentParams) ([]byte, error)
}

// client implements Client using go-github.
type client struct {
	gh *github.Client
}

// New creates a new GitHub client. An empty token yields an
// unauthenticated client, enough for public repositories but subject to
// much lower rate limits.
func New(token string) Client {
	hc := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	hc.Timeout = adapters.RequestTimeout
	return &client{gh: github.NewClient(hc)}
}

// GetFileContent retrieves the decoded content of a file from a GitHub
// repository at the given ref.
func (c *client) GetFileContent(ctx context.Context, params GetFileContentParams) ([]byte, error) {
	fileContent, _, _, err := c.gh.Repositories.GetContents(
		ctx, params.Owner, params.Repo, params.Path,
		&github.RepositoryContentGetOptions{Ref: params.Ref},
	)
	if err != nil {
		return nil, err
	}
	if fileContent == nil {
		return nil, nil
	}
	content, err := fileContent.GetContent()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}
