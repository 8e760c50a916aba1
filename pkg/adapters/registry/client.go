//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=client.go -destination=mock.gen.go -package=registry
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/pubwatch/pubwatch/pkg/adapters"
	"golang.org/x/mod/semver"
)

const (
	defaultPubHost = "https://pub.dev"

	// The Flutter release index is the same for every platform where
	// version metadata is concerned; the linux variant is the smallest.
	defaultReleasesURL = "https://storage.googleapis.com/flutter_infra_release/releases/releases_linux.json"
)

// Client resolves latest published versions from the pub registry and
// the Flutter release feed.
type Client interface {
	// LatestPackageVersion returns the latest version published on pub.dev
	// for the named package.
	LatestPackageVersion(ctx context.Context, name string) (string, error)
	// LatestRuntimeVersion returns the newest stable Flutter release.
	LatestRuntimeVersion(ctx context.Context) (string, error)
}

// client implements Client over plain HTTP.
type client struct {
	http        *http.Client
	pubHost     string
	releasesURL string
}

// Option customizes the resolver client.
type Option func(*client)

// WithPubHost points the resolver at a different pub host, for mirrors
// and tests.
func WithPubHost(host string) Option {
	return func(c *client) { c.pubHost = host }
}

// WithReleasesURL overrides the Flutter release feed location.
func WithReleasesURL(url string) Option {
	return func(c *client) { c.releasesURL = url }
}

// New creates a registry client.
func New(opts ...Option) Client {
	c := &client{
		http:        &http.Client{Timeout: adapters.RequestTimeout},
		pubHost:     defaultPubHost,
		releasesURL: defaultReleasesURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type packageInfo struct {
	Latest struct {
		Version string `json:"version"`
	} `json:"latest"`
}

// LatestPackageVersion queries the pub.dev package API.
func (c *client) LatestPackageVersion(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/api/packages/%s", c.pubHost, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building pub request for %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/vnd.pub.v2+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("querying pub registry for %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pub registry returned %d (%s) for %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), name)
	}

	var info packageInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decoding pub response for %s: %w", name, err)
	}
	if info.Latest.Version == "" {
		return "", fmt.Errorf("pub response for %s carries no latest version", name)
	}
	return info.Latest.Version, nil
}

type releaseIndex struct {
	CurrentRelease struct {
		Stable string `json:"stable"`
	} `json:"current_release"`
	Releases []release `json:"releases"`
}

type release struct {
	Hash    string `json:"hash"`
	Channel string `json:"channel"`
	Version string `json:"version"`
}

// LatestRuntimeVersion resolves the current stable Flutter release. The
// feed names the stable release by commit hash; should the hash be
// missing from the release list, the highest stable version wins.
func (c *client) LatestRuntimeVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releasesURL, nil)
	if err != nil {
		return "", fmt.Errorf("building release feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("querying release feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release feed returned %d (%s)",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var index releaseIndex
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return "", fmt.Errorf("decoding release feed: %w", err)
	}

	for _, rel := range index.Releases {
		if rel.Hash != "" && rel.Hash == index.CurrentRelease.Stable && rel.Version != "" {
			return rel.Version, nil
		}
	}
	if latest := newestStable(index.Releases); latest != "" {
		return latest, nil
	}
	return "", fmt.Errorf("release feed lists no stable release")
}

// newestStable returns the highest stable version listed in the feed.
func newestStable(releases []release) string {
	versions := make([]string, 0, len(releases))
	for _, rel := range releases {
		if rel.Channel == "stable" && semver.IsValid("v"+rel.Version) {
			versions = append(versions, rel.Version)
		}
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare("v"+versions[i], "v"+versions[j]) > 0
	})
	return versions[0]
}
