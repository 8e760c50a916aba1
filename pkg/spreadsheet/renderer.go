//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=renderer.go -destination=mock.gen.go -package=spreadsheet
package spreadsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/pubwatch/pubwatch/pkg/check"
	"github.com/pubwatch/pubwatch/pkg/divergence"
	"github.com/pubwatch/pubwatch/pkg/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"

	// The xlsx format caps sheet names at 31 characters.
	maxSheetNameLen = 31
)

// Renderer serializes a report into a binary xlsx workbook: one summary
// sheet plus one detail sheet per repository.
type Renderer interface {
	Render(rep *report.Report) ([]byte, error)
}

type renderer struct{}

// New creates a Renderer.
func New() Renderer {
	return &renderer{}
}

// styleSet holds the style IDs registered on one workbook.
type styleSet struct {
	header    int
	major     int
	minor     int
	attention int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var styles styleSet
	var err error

	if styles.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	}); err != nil {
		return styles, err
	}
	if styles.major, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
	}); err != nil {
		return styles, err
	}
	if styles.minor, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C6500"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEB9C"}},
	}); err != nil {
		return styles, err
	}
	if styles.attention, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFD966"}},
	}); err != nil {
		return styles, err
	}
	return styles, nil
}

// Render builds the workbook in memory.
func (r *renderer) Render(rep *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("registering styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := renderSummary(f, styles, rep); err != nil {
		return nil, fmt.Errorf("rendering summary: %w", err)
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for i := range rep.Results {
		result := rep.Results[i]
		name := sheetName(result.Repository.Name, used)
		if err := renderDetail(f, styles, name, result); err != nil {
			return nil, fmt.Errorf("rendering sheet for %s: %w", result.Repository.Name, err)
		}
	}

	if index, err := f.GetSheetIndex(summarySheet); err == nil {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var summaryHeaders = []string{
	"Repository", "Description", "Flutter (pinned)", "Flutter (latest)",
	"Flutter Status", "Outdated Packages", "Status",
}

func renderSummary(f *excelize.File, styles styleSet, rep *report.Report) error {
	if err := setRow(f, summarySheet, 1, toCells(summaryHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, summarySheet, 1, len(summaryHeaders), styles.header); err != nil {
		return err
	}

	for i, row := range rep.Rows {
		line := i + 2
		cells := summaryCells(row)
		if err := setRow(f, summarySheet, line, cells); err != nil {
			return err
		}
		if row.RuntimeUpdateNeeded {
			if err := styleCell(f, summarySheet, 5, line, styles.attention); err != nil {
				return err
			}
		}
		if row.Status == report.StatusNeedsUpdate {
			if err := styleCell(f, summarySheet, 7, line, styles.minor); err != nil {
				return err
			}
		}
		if row.Status == report.StatusError {
			if err := styleCell(f, summarySheet, 7, line, styles.major); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "B", 28); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "C", "G", 18)
}

func summaryCells(row report.Row) []any {
	if row.Status == report.StatusError {
		return []any{row.Repository, row.Description, "", "", "", "", string(row.Status)}
	}

	runtimeStatus := "up to date"
	if row.RuntimeUpdateNeeded {
		runtimeStatus = "update available"
	}
	outdated := fmt.Sprintf("%d / %d", row.OutdatedCount, row.TotalCount)
	return []any{
		row.Repository, row.Description,
		row.RuntimeCurrent, row.RuntimeLatest, runtimeStatus,
		outdated, string(row.Status),
	}
}

var detailHeaders = []string{"Package", "Declared", "Latest", "Note"}

func renderDetail(f *excelize.File, styles styleSet, sheet string, result check.Result) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, toCells(detailHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(detailHeaders), styles.header); err != nil {
		return err
	}

	if result.Failed() {
		if err := setRow(f, sheet, 2, []any{"Check failed", result.Err, "", ""}); err != nil {
			return err
		}
		return styleRow(f, sheet, 2, len(detailHeaders), styles.major)
	}

	runtimeNote := "up to date"
	if result.Runtime.UpdateAvailable {
		runtimeNote = "update available"
	}
	if err := setRow(f, sheet, 2, []any{
		"Flutter SDK", result.Runtime.Current, result.Runtime.Latest, runtimeNote,
	}); err != nil {
		return err
	}
	if result.Runtime.UpdateAvailable {
		if err := styleRow(f, sheet, 2, len(detailHeaders), styles.attention); err != nil {
			return err
		}
	}

	for i, pkg := range result.Packages {
		line := i + 3
		if err := setRow(f, sheet, line, []any{
			pkg.Name, pkg.Record.Current, pkg.Record.Latest, packageNote(pkg.Record),
		}); err != nil {
			return err
		}
		if !pkg.Record.UpdateAvailable {
			continue
		}
		style := styles.minor
		if pkg.Record.Severity == divergence.SeverityMajor {
			style = styles.major
		}
		if err := styleRow(f, sheet, line, len(detailHeaders), style); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "D", 18)
}

func packageNote(record divergence.Record) string {
	if !record.UpdateAvailable {
		return ""
	}
	if record.Severity == divergence.SeverityNone {
		return "update available"
	}
	return fmt.Sprintf("%s update", record.Severity)
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, width, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func styleCell(f *excelize.File, sheet string, col, row, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// invalidSheetChars replaces the characters xlsx forbids in sheet names.
var invalidSheetChars = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")",
)

// sheetName derives a legal, unique sheet name from a repository name.
// Names are truncated to the format limit and deduplicated with a
// numeric suffix; xlsx treats names case-insensitively.
func sheetName(repoName string, used map[string]bool) string {
	name := invalidSheetChars.Replace(repoName)
	if name == "" {
		name = "repository"
	}
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}

	base := name
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSheetNameLen {
			trimmed = trimmed[:maxSheetNameLen-len(suffix)]
		}
		name = trimmed + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

// Filename names the workbook for a report generated at the given time.
// Colons and periods are unsafe in filenames and upload fields, both are
// replaced.
func Filename(generatedAt time.Time) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(generatedAt.UTC().Format(time.RFC3339))
	return fmt.Sprintf("flutter_dependency_report_%s.xlsx", stamp)
}
