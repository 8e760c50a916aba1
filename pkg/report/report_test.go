package report

import (
	"testing"

	"github.com/pubwatch/pubwatch/pkg/check"
	"github.com/pubwatch/pubwatch/pkg/config"
	"github.com/pubwatch/pubwatch/pkg/divergence"
	"github.com/stretchr/testify/require"
)

func result(name string) check.Result {
	return check.Result{
		Repository: config.Repository{Name: name, Description: name + " service"},
	}
}

func TestBuild(t *testing.T) {
	outdated := result("shop-app")
	outdated.Runtime = divergence.Record{
		Current:         "3.19.6",
		Latest:          "3.22.1",
		UpdateAvailable: true,
		Severity:        divergence.SeverityMinor,
	}
	outdated.Packages = []check.PackageDivergence{
		{Name: "dio", Record: divergence.Record{Current: "5.0.0", Latest: "5.4.3", UpdateAvailable: true, Severity: divergence.SeverityMinor}},
		{Name: "intl", Record: divergence.Record{Current: "^0.19.0", Latest: "0.19.0"}},
	}

	current := result("rider-app")
	current.Runtime = divergence.Record{Current: "3.22.1", Latest: "3.22.1"}
	current.Packages = []check.PackageDivergence{
		{Name: "dio", Record: divergence.Record{Current: "^5.4.0", Latest: "5.4.3"}},
	}

	failed := result("legacy-app")
	failed.Err = "fetching pubspec.yaml: 404 Not Found"

	rep := Build([]check.Result{outdated, current, failed})
	require.Len(t, rep.Rows, 3)
	require.False(t, rep.GeneratedAt.IsZero())

	require.Equal(t, Row{
		Repository:          "shop-app",
		Description:         "shop-app service",
		RuntimeCurrent:      "3.19.6",
		RuntimeLatest:       "3.22.1",
		RuntimeUpdateNeeded: true,
		OutdatedCount:       1,
		TotalCount:          2,
		Status:              StatusNeedsUpdate,
	}, rep.Rows[0])

	require.Equal(t, StatusUpToDate, rep.Rows[1].Status)
	require.Zero(t, rep.Rows[1].OutdatedCount)

	require.Equal(t, StatusError, rep.Rows[2].Status)
	require.Equal(t, "fetching pubspec.yaml: 404 Not Found", rep.Rows[2].Err)
	require.Zero(t, rep.Rows[2].TotalCount)
}

func TestBuild_RuntimeOnlyDivergence(t *testing.T) {
	res := result("shop-app")
	res.Runtime = divergence.Record{Current: "3.19.6", Latest: "3.22.1", UpdateAvailable: true, Severity: divergence.SeverityMinor}

	rep := Build([]check.Result{res})
	require.Equal(t, StatusNeedsUpdate, rep.Rows[0].Status)
	require.Zero(t, rep.Rows[0].OutdatedCount)
}

func TestTotals(t *testing.T) {
	needsUpdate := result("a")
	needsUpdate.Packages = []check.PackageDivergence{
		{Name: "dio", Record: divergence.Record{UpdateAvailable: true, Severity: divergence.SeverityMajor}},
		{Name: "intl", Record: divergence.Record{UpdateAvailable: true, Severity: divergence.SeverityPatch}},
	}
	upToDate := result("b")
	failed := result("c")
	failed.Err = "boom"

	rep := Build([]check.Result{needsUpdate, upToDate, failed})
	totals := rep.Totals()
	require.Equal(t, Totals{
		Repositories:     3,
		UpToDate:         1,
		NeedUpdate:       1,
		Failed:           1,
		OutdatedPackages: 2,
	}, totals)
}

func TestBuild_Empty(t *testing.T) {
	rep := Build(nil)
	require.Empty(t, rep.Rows)
	require.Equal(t, Totals{}, rep.Totals())
}
