package notify

import (
	"fmt"
	"strings"

	"github.com/pubwatch/pubwatch/pkg/report"
	slackapi "github.com/slack-go/slack"
)

// Message is a composed notification: the Block Kit blocks Slack
// renders plus a plain fallback for surfaces that do not.
type Message struct {
	Text   string
	Blocks []slackapi.Block
}

// linesPerSection groups repository lines so that no section text
// exceeds Slack's 3000 character limit and a large fleet stays well
// under the 50 block cap.
const linesPerSection = 10

// Compose renders a report into the notification message: a header,
// the run totals, one line per repository and the generation time.
// Totals are always present, even when every check failed.
func Compose(rep *report.Report) Message {
	totals := rep.Totals()

	text := fmt.Sprintf("Flutter dependency report: %d repositories checked, %d need updates, %d failed",
		totals.Repositories, totals.NeedUpdate, totals.Failed)

	blocks := []slackapi.Block{
		slackapi.NewHeaderBlock(slackapi.NewTextBlockObject(
			slackapi.PlainTextType, "Flutter Dependency Report", true, false)),
		slackapi.NewSectionBlock(nil, []*slackapi.TextBlockObject{
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("*Checked:*\n%d", totals.Repositories), false, false),
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("*Need updates:*\n%d", totals.NeedUpdate), false, false),
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				fmt.Sprintf("*Failed:*\n%d", totals.Failed), false, false),
		}, nil),
		slackapi.NewDividerBlock(),
	}

	lines := make([]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		lines = append(lines, rowLine(row))
	}
	for start := 0; start < len(lines); start += linesPerSection {
		end := min(start+linesPerSection, len(lines))
		blocks = append(blocks, slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				strings.Join(lines[start:end], "\n"), false, false),
			nil, nil))
	}

	blocks = append(blocks, slackapi.NewContextBlock("",
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("Generated %s", rep.GeneratedAt.Format("2006-01-02 15:04 MST")), false, false)))

	return Message{Text: text, Blocks: blocks}
}

// rowLine formats one repository's standing. Failed checks carry their
// error verbatim.
func rowLine(row report.Row) string {
	switch row.Status {
	case report.StatusError:
		return fmt.Sprintf(":x: *%s*: check failed: %s", row.Repository, row.Err)
	case report.StatusNeedsUpdate:
		details := make([]string, 0, 2)
		if row.RuntimeUpdateNeeded {
			details = append(details, fmt.Sprintf("Flutter %s -> %s", row.RuntimeCurrent, row.RuntimeLatest))
		}
		if row.OutdatedCount > 0 {
			details = append(details, fmt.Sprintf("%d of %d packages outdated", row.OutdatedCount, row.TotalCount))
		}
		return fmt.Sprintf(":warning: *%s*: %s", row.Repository, strings.Join(details, ", "))
	default:
		return fmt.Sprintf(":white_check_mark: *%s*: up to date", row.Repository)
	}
}
