//go:build unit
// +build unit

package pubwatch

import (
	"context"
	"strings"
	"testing"

	"github.com/pubwatch/pubwatch/pkg/check"
	"github.com/pubwatch/pubwatch/pkg/config"
	"github.com/pubwatch/pubwatch/pkg/notify"
	"github.com/pubwatch/pubwatch/pkg/report"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPubWatch_Run_NoRepositories(t *testing.T) {
	cfg := &config.Config{Repositories: []config.Repository{}}

	tc := newTestPubWatch(t, cfg)
	defer tc.MockController.Finish()

	err := tc.PubWatch.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no repositories configured")
}

func TestPubWatch_Run_PostsAndUploads(t *testing.T) {
	cfg := twoRepoConfig()
	tc := newTestPubWatch(t, cfg)
	defer tc.MockController.Finish()

	tc.MockRegistry.EXPECT().LatestRuntimeVersion(gomock.Any()).Return(latestFlutter, nil)

	// Repositories are checked strictly in configuration order.
	gomock.InOrder(
		tc.MockChecker.EXPECT().
			Check(gomock.Any(), cfg.Repositories[0], latestFlutter).
			Return(outdatedResult(cfg.Repositories[0])),
		tc.MockChecker.EXPECT().
			Check(gomock.Any(), cfg.Repositories[1], latestFlutter).
			Return(upToDateResult(cfg.Repositories[1])),
	)

	var posted *report.Report
	tc.MockNotifier.EXPECT().Post(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rep *report.Report) (string, error) {
			posted = rep
			return "1724400000.000100", nil
		})

	workbook := []byte("workbook bytes")
	tc.MockRenderer.EXPECT().Render(gomock.Any()).Return(workbook, nil)

	tc.MockUploader.EXPECT().Upload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params notify.UploadParams) error {
			assert.Equal(t, workbook, params.Body)
			assert.Equal(t, "1724400000.000100", params.ThreadTimestamp)
			assert.True(t, strings.HasPrefix(params.Filename, "flutter_dependency_report_"))
			assert.True(t, strings.HasSuffix(params.Filename, ".xlsx"))
			assert.Contains(t, params.Title, "Flutter Dependency Report")
			return nil
		})

	err := tc.PubWatch.Run(context.Background())
	assert.NoError(t, err)

	// The posted report preserves configuration order.
	if assert.NotNil(t, posted) && assert.Len(t, posted.Results, 2) {
		assert.Equal(t, "shop-app", posted.Results[0].Repository.Name)
		assert.Equal(t, "rider-app", posted.Results[1].Repository.Name)
		totals := posted.Totals()
		assert.Equal(t, 2, totals.Repositories)
		assert.Equal(t, 1, totals.NeedUpdate)
		assert.Equal(t, 1, totals.UpToDate)
	}
}

func TestPubWatch_Run_FailedRepositoryStaysInReport(t *testing.T) {
	cfg := twoRepoConfig()
	tc := newTestPubWatch(t, cfg)
	defer tc.MockController.Finish()

	tc.MockRegistry.EXPECT().LatestRuntimeVersion(gomock.Any()).Return(latestFlutter, nil)
	tc.MockChecker.EXPECT().
		Check(gomock.Any(), cfg.Repositories[0], latestFlutter).
		Return(check.Result{
			Repository: cfg.Repositories[0],
			Err:        "fetching pubspec.yaml: 404 Not Found",
		})
	tc.MockChecker.EXPECT().
		Check(gomock.Any(), cfg.Repositories[1], latestFlutter).
		Return(upToDateResult(cfg.Repositories[1]))

	var posted *report.Report
	tc.MockNotifier.EXPECT().Post(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rep *report.Report) (string, error) {
			posted = rep
			return "1724400000.000100", nil
		})
	tc.MockRenderer.EXPECT().Render(gomock.Any()).Return([]byte("x"), nil)
	tc.MockUploader.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(nil)

	err := tc.PubWatch.Run(context.Background())
	assert.NoError(t, err)

	// One failed check does not stop the run and stays visible in the totals.
	if assert.NotNil(t, posted) {
		totals := posted.Totals()
		assert.Equal(t, 2, totals.Repositories)
		assert.Equal(t, 1, totals.Failed)
		assert.Equal(t, 1, totals.UpToDate)
		assert.Equal(t, 0, totals.OutdatedPackages)
	}
}
