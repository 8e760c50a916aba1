package check

import (
	"context"
	"fmt"

	"github.com/pubwatch/pubwatch/pkg/adapters/registry"
	"github.com/pubwatch/pubwatch/pkg/config"
	"github.com/pubwatch/pubwatch/pkg/divergence"
	"github.com/pubwatch/pubwatch/pkg/logging"
	"github.com/pubwatch/pubwatch/pkg/manifest"
	"go.uber.org/zap"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=checker.go -destination=mock_checker.gen.go -package=check

const (
	manifestPath = "pubspec.yaml"
	fvmrcPath    = ".fvmrc"

	// unresolvedLatest fills the latest column when the registry could
	// not answer for a package.
	unresolvedLatest = "N/A"
)

// PackageDivergence pairs a package name with its comparison outcome.
type PackageDivergence struct {
	Name   string
	Record divergence.Record
}

// Result is the outcome of checking one repository. Either Err is set
// and the repository could not be checked at all, or Runtime and
// Packages carry the comparison outcomes.
type Result struct {
	Repository config.Repository
	Runtime    divergence.Record
	Packages   []PackageDivergence
	Err        string
}

// Failed reports whether the repository check aborted before producing
// comparisons.
func (r Result) Failed() bool {
	return r.Err != ""
}

// Checker drives one repository through fetch, extract, resolve and
// classify. A failure confined to one repository or one package never
// propagates past its Result.
type Checker interface {
	Check(ctx context.Context, repo config.Repository, latestRuntime string) Result
}

type checker struct {
	fetcher        ManifestFetcher
	registry       registry.Client
	includeDevDeps bool
}

// New creates a Checker.
func New(fetcher ManifestFetcher, reg registry.Client, includeDevDeps bool) Checker {
	return &checker{
		fetcher:        fetcher,
		registry:       reg,
		includeDevDeps: includeDevDeps,
	}
}

// Check fetches the repository manifest, compares its Flutter pin with
// the given fleet-wide latest runtime, and resolves every declared
// package against the registry.
func (c *checker) Check(ctx context.Context, repo config.Repository, latestRuntime string) Result {
	result := Result{Repository: repo}

	content, err := c.fetcher.Fetch(ctx, repo, manifestPath)
	if err != nil {
		logging.C(ctx).Warn("Manifest fetch failed",
			zap.String("repository", repo.Name),
			zap.Error(err))
		result.Err = fmt.Sprintf("fetching %s: %v", manifestPath, err)
		return result
	}

	pubspec, err := manifest.Parse(content)
	if err != nil {
		logging.C(ctx).Warn("Manifest unusable",
			zap.String("repository", repo.Name),
			zap.Error(err))
		result.Err = fmt.Sprintf("parsing %s: %v", manifestPath, err)
		return result
	}

	result.Runtime = c.runtimeRecord(ctx, repo, string(content), latestRuntime)
	result.Packages = c.resolvePackages(ctx, repo, manifest.Dependencies(pubspec, c.includeDevDeps))
	return result
}

// runtimeRecord determines the repository's effective Flutter pin. The
// pubspec environment block wins; repositories managing their SDK with
// FVM fall back to .fvmrc; with no pin anywhere the fleet-wide latest is
// assumed, which flags nothing.
func (c *checker) runtimeRecord(ctx context.Context, repo config.Repository, manifestText, latestRuntime string) divergence.Record {
	pin := manifest.RuntimePin(manifestText)
	if pin == "" {
		if content, err := c.fetcher.Fetch(ctx, repo, fvmrcPath); err == nil {
			pin = manifest.FVMPin(string(content))
		}
	}
	if pin == "" {
		logging.C(ctx).Info("No Flutter pin declared, assuming latest",
			zap.String("repository", repo.Name),
			zap.String("latest", latestRuntime))
		pin = latestRuntime
	}
	return divergence.Classify(pin, latestRuntime)
}

// resolvePackages compares each resolvable dependency with the latest
// registry version. A registry failure marks that one package
// unresolvable and moves on.
func (c *checker) resolvePackages(ctx context.Context, repo config.Repository, deps []manifest.Dependency) []PackageDivergence {
	packages := make([]PackageDivergence, 0, len(deps))
	for _, dep := range deps {
		if !manifest.Resolvable(dep.Constraint) {
			logging.C(ctx).Debug("Skipping unresolvable dependency",
				zap.String("repository", repo.Name),
				zap.String("package", dep.Name),
				zap.String("constraint", dep.Constraint))
			continue
		}

		latest, err := c.registry.LatestPackageVersion(ctx, dep.Name)
		if err != nil {
			logging.C(ctx).Warn("Package resolution failed",
				zap.String("repository", repo.Name),
				zap.String("package", dep.Name),
				zap.Error(err))
			packages = append(packages, PackageDivergence{
				Name: dep.Name,
				Record: divergence.Record{
					Current:  dep.Constraint,
					Latest:   unresolvedLatest,
					Severity: divergence.SeverityNone,
				},
			})
			continue
		}

		packages = append(packages, PackageDivergence{
			Name:   dep.Name,
			Record: divergence.Classify(dep.Constraint, latest),
		})
	}
	return packages
}
