package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aardalath/arestools/internal/catalog"
	"github.com/aardalath/arestools/internal/config"
	"github.com/aardalath/arestools/internal/metrics"
	"github.com/aardalath/arestools/internal/models"
	"github.com/aardalath/arestools/internal/monitor"
	"github.com/aardalath/arestools/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	importDataDir   string
	importFile      string
	importType      string
	importDefFile   string
	importDir       string
	importRuntime   string
	importTimeout   time.Duration
	importReport    string
	importReportFmt string
	importStats     bool
	importPlain     bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import data files into the ARES server",
	Long: `Import data files into a running ARES server.

Files come from a data folder (every *.dat file, in name order) or from a
single input file. Each file is classified against the type catalog, copied
into the matching folder of the import tree, and the server log is polled
until the import is confirmed.

A parameter definition file given with --def-file is imported first through
the paramdef folder; data files then follow it into the parameter folder it
defines. With --import-dir the catalog is bypassed entirely.

Examples:
  arestools import -d ./downlink/2026_224
  arestools import -f hktm_20260812.dat
  arestools import -d ./events -t SC_EVENTS
  arestools import -d ./params --def-file apid_defs.xml -i mission_a
  arestools import -d ./downlink --report run.md --report-format md`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importDataDir, "dir", "d", "", "folder with data files to import")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "single data file to import")
	importCmd.Flags().StringVarP(&importType, "type", "t", "", "force a catalog type instead of classifying by name")
	importCmd.Flags().StringVar(&importDefFile, "def-file", "", "parameter definition file imported before the data")
	importCmd.Flags().StringVarP(&importDir, "import-dir", "i", "", "target folder under the import tree, bypassing the catalog")
	importCmd.Flags().StringVarP(&importRuntime, "runtime", "r", "", "ARES runtime folder (default $ARES_RUNTIME or $HOME/ARES_RUNTIME)")
	importCmd.Flags().DurationVar(&importTimeout, "timeout", 0, "per-file wait bound, 0 disables (default from ARES_WAIT_TIMEOUT)")
	importCmd.Flags().StringVar(&importReport, "report", "", "write a per-file report to this path")
	importCmd.Flags().StringVar(&importReportFmt, "report-format", "pretty", "report format: pretty, md, csv, html")
	importCmd.Flags().BoolVar(&importStats, "stats", false, "print run statistics after the import")
	importCmd.Flags().BoolVar(&importPlain, "plain", false, "disable the interactive progress display")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	layout, err := config.ResolveLayout(importRuntime)
	if err != nil {
		return err
	}
	logger.Info("runtime folder resolved", "root", layout.Root)

	// The catalog is only needed when files are routed by type.
	var cat *catalog.Catalog
	if importDir == "" {
		cat, err = catalog.Load(cfg.TypesFile)
		if err != nil {
			return err
		}
	}

	timeout := cfg.WaitTimeout
	if cmd.Flags().Changed("timeout") {
		timeout = importTimeout
	}

	mon := &monitor.Monitor{
		LogPath:  layout.ServerLog,
		Interval: cfg.PollInterval,
		Timeout:  timeout,
	}

	imp, err := service.NewImporter(layout, cat, mon, logger, service.Options{
		DataDir:    importDataDir,
		InputFile:  importFile,
		ForcedType: importType,
		DefFile:    importDefFile,
		ImportDir:  importDir,
	})
	if err != nil {
		return err
	}

	report, err := runWithProgress(ctx, imp)
	if err != nil {
		return err
	}

	fmt.Println(report.Summary())

	if importReport != "" {
		if err := writeReport(report, importReport, importReportFmt); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", importReport)
	}

	if importStats {
		printRunStats(imp.Metrics())
	}

	return nil
}

// runWithProgress shows the interactive progress display on a terminal
// and falls back to a plain run otherwise.
func runWithProgress(ctx context.Context, imp *service.Importer) (*models.Report, error) {
	if importPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return imp.Run(ctx)
	}
	return RunImportProgress(ctx, imp)
}

// printRunStats displays run statistics.
func printRunStats(snap metrics.Snapshot) {
	fmt.Printf("\nRun Statistics\n")
	fmt.Printf("═══════════════════════════════════════\n")
	fmt.Printf("Elapsed: %.1f seconds\n", snap.UptimeSeconds)

	if snap.Copy != nil {
		fmt.Printf("\nFile copies:\n")
		printOpStats(snap.Copy)
	}

	if snap.Wait != nil {
		fmt.Printf("\nServer waits:\n")
		printOpStats(snap.Wait)
	}

	if len(snap.Outcomes) > 0 {
		fmt.Printf("\nOutcomes:\n")
		for _, o := range []models.Outcome{
			models.OutcomeSucceeded,
			models.OutcomeFailed,
			models.OutcomeUnclassified,
			models.OutcomeTimedOut,
		} {
			if n := snap.Outcomes[o]; n > 0 {
				fmt.Printf("  %-14s %d\n", o, n)
			}
		}
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(op *metrics.OperationSnapshot) {
	fmt.Printf("  Calls: %d, Total: %dms\n", op.Count, op.TotalTimeMs)
	fmt.Printf("  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
