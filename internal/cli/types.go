package cli

import (
	"os"

	"github.com/aardalath/arestools/internal/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var typesFormat string

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the data type catalog",
	Long: `List the ordered data type catalog used to classify data files.

Rules are matched top to bottom; the first pattern that matches a file
name decides its type and import folder.

Examples:
  arestools types
  arestools types --format md`,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().StringVar(&typesFormat, "format", "pretty", "output format: pretty, md, csv, html")
}

func runTypes(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load(cfg.TypesFile)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "type", "pattern", "folder"})
	for i, rule := range cat.Rules() {
		t.AppendRow(table.Row{i + 1, rule.Type, rule.Pattern, rule.Dir})
	}
	renderTable(t, typesFormat)
	return nil
}
