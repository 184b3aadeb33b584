package reporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/internal/models"
	"github.com/quickshot/quickshot/pkg/utils"
)

// Source provides journal data for a history report
type Source interface {
	History(since time.Time, limit int) (*models.History, error)
}

// Reporter renders the capture journal
type Reporter struct {
	source Source
	now    func() time.Time
}

// New creates a new reporter
func New(source Source) *Reporter {
	return &Reporter{
		source: source,
		now:    time.Now,
	}
}

// GenerateHistory loads the latest captures and the per-strategy summary for
// the given period ("day", "week", "month" or "all")
func (r *Reporter) GenerateHistory(periodType string, limit int) (*models.History, error) {
	since, err := r.periodStart(periodType)
	if err != nil {
		return nil, err
	}

	history, err := r.source.History(since, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load history")
	}
	history.GeneratedAt = r.now()
	return history, nil
}

// periodStart calculates where the summary window begins
func (r *Reporter) periodStart(periodType string) (time.Time, error) {
	now := r.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch periodType {
	case "day", "today":
		return midnight, nil

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		return midnight.AddDate(0, 0, -(weekday - 1)), nil

	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil

	case "all", "":
		return time.Time{}, nil

	default:
		return time.Time{}, errors.Errorf("invalid period type: %s (valid: day, week, month, all)", periodType)
	}
}

// FormatHistoryText formats the history as tables
func (r *Reporter) FormatHistoryText(history *models.History) string {
	var b strings.Builder

	if history.Since.IsZero() {
		b.WriteString("Capture History - all time\n")
	} else {
		fmt.Fprintf(&b, "Capture History - since %s\n", history.Since.Format("2006-01-02 15:04"))
	}

	if len(history.Captures) == 0 {
		b.WriteString("No captures recorded.\n")
		return b.String()
	}

	captures := table.NewWriter()
	captures.SetStyle(table.StyleLight)
	captures.AppendHeader(table.Row{"When", "Window", "Size", "Strategy", "Result"})
	for _, c := range history.Captures {
		result := "✅ " + shortPath(c.Path)
		if !c.Success {
			result = "❌ " + utils.Truncate(c.Error, 40)
		}
		captures.AppendRow(table.Row{
			utils.FormatAge(c.Timestamp, history.GeneratedAt),
			utils.Truncate(c.WindowTitle, 30),
			fmt.Sprintf("%dx%d", c.Width, c.Height),
			c.Strategy,
			result,
		})
	}
	b.WriteString(captures.Render())
	b.WriteString("\n")

	if len(history.Strategies) > 0 || history.Failures > 0 {
		summary := table.NewWriter()
		summary.SetStyle(table.StyleLight)
		summary.AppendHeader(table.Row{"Strategy", "Captures"})
		for _, s := range history.Strategies {
			summary.AppendRow(table.Row{s.Strategy, s.Count})
		}
		summary.AppendFooter(table.Row{"failed", history.Failures})
		b.WriteString(summary.Render())
		b.WriteString("\n")
	}

	return b.String()
}

// FormatHistoryJSON formats the history as JSON
func (r *Reporter) FormatHistoryJSON(history *models.History) (string, error) {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal JSON")
	}
	return string(data), nil
}

func shortPath(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
