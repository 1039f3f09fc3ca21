package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aardalath/arestools/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// writeReport renders the per-file report into a file.
func writeReport(report *models.Report, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	renderReport(report, f, format)
	return nil
}

// renderReport writes the per-file results as a table.
func renderReport(report *models.Report, out io.Writer, format string) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "file", "type", "folder", "outcome", "waited", "message"})
	for i, r := range report.Results {
		t.AppendRow(table.Row{
			i + 1,
			filepath.Base(r.Source),
			r.Type,
			r.Dir,
			string(r.Outcome),
			r.Waited.Round(time.Millisecond).String(),
			r.Message,
		})
	}
	t.AppendFooter(table.Row{
		"", "", "", "",
		fmt.Sprintf("%d/%d ok", report.Succeeded, report.Total),
		report.Elapsed.Round(time.Millisecond).String(),
		"",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignCenter},
		{Number: 6, Align: text.AlignRight},
	})
	renderTable(t, format)
}

// renderTable renders a table in the requested format.
func renderTable(t table.Writer, format string) {
	switch strings.ToLower(format) {
	case "md", "markdown":
		t.RenderMarkdown()
	case "csv":
		t.RenderCSV()
	case "html":
		t.RenderHTML()
	default:
		t.Render()
	}
}
