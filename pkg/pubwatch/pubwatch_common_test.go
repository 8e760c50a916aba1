//go:build unit
// +build unit

package pubwatch

import (
	"testing"

	"github.com/pubwatch/pubwatch/pkg/adapters/registry"
	"github.com/pubwatch/pubwatch/pkg/check"
	"github.com/pubwatch/pubwatch/pkg/config"
	"github.com/pubwatch/pubwatch/pkg/divergence"
	"github.com/pubwatch/pubwatch/pkg/notify"
	"github.com/pubwatch/pubwatch/pkg/spreadsheet"
	"go.uber.org/mock/gomock"
)

const latestFlutter = "3.22.1"

// TestPubWatch contains all the mocks and the pubwatch instance for testing.
type TestPubWatch struct {
	PubWatch       *PubWatch
	MockController *gomock.Controller
	MockRegistry   *registry.MockClient
	MockChecker    *check.MockChecker
	MockRenderer   *spreadsheet.MockRenderer
	MockNotifier   *notify.MockNotifier
	MockUploader   *notify.MockUploader
}

// newTestPubWatch creates a TestPubWatch instance with all mocked collaborators.
func newTestPubWatch(t *testing.T, cfg *config.Config) *TestPubWatch {
	ctrl := gomock.NewController(t)

	mockRegistry := registry.NewMockClient(ctrl)
	mockChecker := check.NewMockChecker(ctrl)
	mockRenderer := spreadsheet.NewMockRenderer(ctrl)
	mockNotifier := notify.NewMockNotifier(ctrl)
	mockUploader := notify.NewMockUploader(ctrl)

	// Create PubWatch directly, avoiding New() which builds real clients.
	w := &PubWatch{
		config:    cfg,
		registry:  mockRegistry,
		checker:   mockChecker,
		renderer:  mockRenderer,
		notifier:  mockNotifier,
		uploader:  mockUploader,
		outputDir: t.TempDir(),
	}

	return &TestPubWatch{
		PubWatch:       w,
		MockController: ctrl,
		MockRegistry:   mockRegistry,
		MockChecker:    mockChecker,
		MockRenderer:   mockRenderer,
		MockNotifier:   mockNotifier,
		MockUploader:   mockUploader,
	}
}

func twoRepoConfig() *config.Config {
	return &config.Config{
		Repositories: []config.Repository{
			{Name: "shop-app", URL: "https://github.com/example/shop-app", Branch: "main"},
			{Name: "rider-app", URL: "https://github.com/example/rider-app", Branch: "main"},
		},
	}
}

func upToDateResult(repo config.Repository) check.Result {
	return check.Result{
		Repository: repo,
		Runtime: divergence.Record{
			Current: latestFlutter, Latest: latestFlutter,
			Severity: divergence.SeverityNone,
		},
	}
}

func outdatedResult(repo config.Repository) check.Result {
	return check.Result{
		Repository: repo,
		Runtime: divergence.Record{
			Current: "3.19.6", Latest: latestFlutter,
			UpdateAvailable: true, Severity: divergence.SeverityMinor,
		},
		Packages: []check.PackageDivergence{
			{Name: "dio", Record: divergence.Record{
				Current: "^5.0.0", Latest: "6.0.0",
				UpdateAvailable: true, Severity: divergence.SeverityMajor,
			}},
		},
	}
}
