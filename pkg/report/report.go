package report

import (
	"time"

	"github.com/pubwatch/pubwatch/pkg/check"
)

// Status summarizes one repository's standing.
type Status string

const (
	StatusUpToDate    Status = "upToDate"
	StatusNeedsUpdate Status = "needsUpdate"
	StatusError       Status = "error"
)

// Row is the derived per-repository summary line.
type Row struct {
	Repository          string
	Description         string
	RuntimeCurrent      string
	RuntimeLatest       string
	RuntimeUpdateNeeded bool
	OutdatedCount       int
	TotalCount          int
	Status              Status
	Err                 string
}

// Totals aggregates the whole run for headlines and logs.
type Totals struct {
	Repositories     int
	UpToDate         int
	NeedUpdate       int
	Failed           int
	OutdatedPackages int
}

// Report pairs the raw check results, in input order, with their derived
// summary rows. Renderers and notifiers both consume it.
type Report struct {
	Results     []check.Result
	Rows        []Row
	GeneratedAt time.Time
}

// Build folds check results into a report. Result order is preserved.
func Build(results []check.Result) *Report {
	rows := make([]Row, 0, len(results))
	for _, result := range results {
		rows = append(rows, buildRow(result))
	}
	return &Report{
		Results:     results,
		Rows:        rows,
		GeneratedAt: time.Now().UTC(),
	}
}

// buildRow derives one summary row. A repository needs an update as soon
// as its runtime pin or any package lags; a failed check reports its
// error and nothing else.
func buildRow(result check.Result) Row {
	row := Row{
		Repository:  result.Repository.Name,
		Description: result.Repository.Description,
		Err:         result.Err,
	}

	if result.Failed() {
		row.Status = StatusError
		return row
	}

	row.RuntimeCurrent = result.Runtime.Current
	row.RuntimeLatest = result.Runtime.Latest
	row.RuntimeUpdateNeeded = result.Runtime.UpdateAvailable
	row.TotalCount = len(result.Packages)
	for _, pkg := range result.Packages {
		if pkg.Record.UpdateAvailable {
			row.OutdatedCount++
		}
	}

	if row.RuntimeUpdateNeeded || row.OutdatedCount > 0 {
		row.Status = StatusNeedsUpdate
	} else {
		row.Status = StatusUpToDate
	}
	return row
}

// Totals counts rows by status across the run.
func (r *Report) Totals() Totals {
	totals := Totals{Repositories: len(r.Rows)}
	for _, row := range r.Rows {
		switch row.Status {
		case StatusError:
			totals.Failed++
		case StatusNeedsUpdate:
			totals.NeedUpdate++
		default:
			totals.UpToDate++
		}
		totals.OutdatedPackages += row.OutdatedCount
	}
	return totals
}
