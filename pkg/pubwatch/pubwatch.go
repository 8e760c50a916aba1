package pubwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pubwatch/pubwatch/pkg/adapters/github"
	"github.com/pubwatch/pubwatch/pkg/adapters/registry"
	"github.com/pubwatch/pubwatch/pkg/adapters/slack"
	"github.com/pubwatch/pubwatch/pkg/check"
	"github.com/pubwatch/pubwatch/pkg/config"
	"github.com/pubwatch/pubwatch/pkg/logging"
	"github.com/pubwatch/pubwatch/pkg/notify"
	"github.com/pubwatch/pubwatch/pkg/report"
	"github.com/pubwatch/pubwatch/pkg/spreadsheet"
	"go.uber.org/zap"
)

// PubWatch is the main pubwatch application: it checks every configured
// repository against the registries, posts the report message and
// attaches the rendered workbook to its thread.
type PubWatch struct {
	config    *config.Config
	registry  registry.Client
	checker   check.Checker
	renderer  spreadsheet.Renderer
	notifier  notify.Notifier
	uploader  notify.Uploader
	dryRun    bool
	outputDir string
}

// Params carries the process-boundary inputs for New. The GitHub token
// may be empty for fleets of public repositories.
type Params struct {
	GitHubToken string
	SlackToken  string
	ChannelID   string
	DryRun      bool
}

// New creates a PubWatch instance wired to the real collaborators.
func New(cfg *config.Config, params Params) *PubWatch {
	gh := github.New(params.GitHubToken)
	reg := registry.New()
	sl := slack.New(params.SlackToken)

	return &PubWatch{
		config:    cfg,
		registry:  reg,
		checker:   check.New(check.NewGitHubFetcher(gh), reg, cfg.Settings.IncludeDevDeps),
		renderer:  spreadsheet.New(),
		notifier:  notify.NewNotifier(sl, params.ChannelID),
		uploader:  notify.NewUploader(sl, params.ChannelID),
		dryRun:    params.DryRun,
		outputDir: ".",
	}
}

// Run executes one reconciliation pass. Repositories are checked
// strictly in configuration order; a failure confined to one repository
// lands in the report rather than aborting the run. Only pre-flight
// conditions return an error.
func (w *PubWatch) Run(ctx context.Context) error {
	if len(w.config.Repositories) == 0 {
		return fmt.Errorf("no repositories configured")
	}

	latestRuntime, err := w.registry.LatestRuntimeVersion(ctx)
	if err != nil {
		return fmt.Errorf("resolving latest Flutter release: %w", err)
	}
	logging.C(ctx).Info("Latest stable Flutter release",
		zap.String("version", latestRuntime))

	results := make([]check.Result, 0, len(w.config.Repositories))
	for _, repo := range w.config.Repositories {
		logging.C(ctx).Info("Checking repository",
			zap.String("repository", repo.Name),
			zap.String("url", repo.URL))
		results = append(results, w.checker.Check(ctx, repo, latestRuntime))
	}

	rep := report.Build(results)
	totals := rep.Totals()
	logging.C(ctx).Info("Check run finished",
		zap.Int("repositories", totals.Repositories),
		zap.Int("need_update", totals.NeedUpdate),
		zap.Int("failed", totals.Failed),
		zap.Int("outdated_packages", totals.OutdatedPackages))

	if w.dryRun {
		return w.writeWorkbook(ctx, rep)
	}

	timestamp, err := w.notifier.Post(ctx, rep)
	if err != nil {
		// The workbook is still worth delivering; without the message
		// timestamp it lands at the channel root instead of a thread.
		logging.C(ctx).Error("Posting report message failed", zap.Error(err))
		timestamp = ""
	}

	w.uploadWorkbook(ctx, rep, timestamp)
	return nil
}

// uploadWorkbook renders the report and runs the upload handshake. Any
// failure here is logged and absorbed: the report message is already
// out and stays valid without its attachment.
func (w *PubWatch) uploadWorkbook(ctx context.Context, rep *report.Report, threadTimestamp string) {
	content, err := w.renderer.Render(rep)
	if err != nil {
		logging.C(ctx).Error("Rendering workbook failed", zap.Error(err))
		return
	}

	filename := spreadsheet.Filename(rep.GeneratedAt)
	if err := w.uploader.Upload(ctx, notify.UploadParams{
		Filename:        filename,
		Title:           workbookTitle(rep),
		Body:            content,
		ThreadTimestamp: threadTimestamp,
	}); err != nil {
		logging.C(ctx).Error("Uploading workbook failed", zap.Error(err))
		return
	}

	logging.C(ctx).Info("Workbook uploaded",
		zap.String("filename", filename),
		zap.Int("bytes", len(content)))
}

// writeWorkbook renders the report into a local file instead of the
// channel, for dry runs.
func (w *PubWatch) writeWorkbook(ctx context.Context, rep *report.Report) error {
	content, err := w.renderer.Render(rep)
	if err != nil {
		return fmt.Errorf("rendering workbook: %w", err)
	}

	path := filepath.Join(w.outputDir, spreadsheet.Filename(rep.GeneratedAt))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	logging.C(ctx).Info("Workbook written", zap.String("path", path))
	return nil
}

func workbookTitle(rep *report.Report) string {
	return fmt.Sprintf("Flutter Dependency Report %s", rep.GeneratedAt.Format("2006-01-02"))
}

// RunWithLogging executes the pubwatch workflow with logging.
func (w *PubWatch) RunWithLogging(ctx context.Context) {
	logging.C(ctx).Info("Loaded configuration", zap.Any("config", w.config))

	if err := w.Run(ctx); err != nil {
		logging.C(ctx).Fatal("Error running pubwatch", zap.Error(err))
	}
}
