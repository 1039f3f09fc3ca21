package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aardalath/arestools/internal/catalog"
	"github.com/aardalath/arestools/internal/config"
	"github.com/aardalath/arestools/internal/monitor"
	"github.com/aardalath/arestools/internal/service"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	watchDir       string
	watchType      string
	watchImportDir string
	watchRuntime   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a folder and import data files as they arrive",
	Long: `Watch a folder and import every new data file as it arrives.

Each settled file runs through the same pipeline as 'import -f': it is
classified, copied into the import tree, and confirmed against the server
log. Failures are logged and watching continues until interrupted.

Examples:
  arestools watch -d ./downlink
  arestools watch -d ./events -t SC_EVENTS
  arestools watch -d ./raw -i mission_a`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "folder to watch for data files")
	watchCmd.Flags().StringVarP(&watchType, "type", "t", "", "force a catalog type instead of classifying by name")
	watchCmd.Flags().StringVarP(&watchImportDir, "import-dir", "i", "", "target folder under the import tree, bypassing the catalog")
	watchCmd.Flags().StringVarP(&watchRuntime, "runtime", "r", "", "ARES runtime folder (default $ARES_RUNTIME or $HOME/ARES_RUNTIME)")
	watchCmd.MarkFlagRequired("dir")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	layout, err := config.ResolveLayout(watchRuntime)
	if err != nil {
		return err
	}

	var cat *catalog.Catalog
	if watchImportDir == "" {
		cat, err = catalog.Load(cfg.TypesFile)
		if err != nil {
			return err
		}
		// Catch a bad forced type now, not on the first arriving file.
		if watchType != "" {
			if _, ok := cat.Lookup(watchType); !ok {
				return fmt.Errorf("%w: %s", service.ErrUnknownType, watchType)
			}
		}
	}

	if info, err := os.Stat(watchDir); err != nil || !info.IsDir() {
		return fmt.Errorf("watch folder %s does not exist", watchDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("watch %s: %w", watchDir, err)
	}

	mon := &monitor.Monitor{
		LogPath:  layout.ServerLog,
		Interval: cfg.PollInterval,
		Timeout:  cfg.WaitTimeout,
	}

	logger.Info("watching for data files", "folder", watchDir, "runtime", layout.Root)

	// Writers often deliver a file as several events; let it settle
	// before importing.
	const settle = 500 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, service.DataFileExt) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settle {
					continue
				}
				delete(pending, path)
				importWatchedFile(ctx, layout, cat, mon, path)
			}
		}
	}
}

// importWatchedFile runs one file through the import pipeline. Errors
// are logged, not fatal: the watch keeps going.
func importWatchedFile(ctx context.Context, layout config.RuntimeLayout, cat *catalog.Catalog, mon *monitor.Monitor, path string) {
	imp, err := service.NewImporter(layout, cat, mon, logger, service.Options{
		InputFile:  path,
		ForcedType: watchType,
		ImportDir:  watchImportDir,
	})
	if err != nil {
		logger.Error("skipping watched file", "file", path, "error", err)
		return
	}

	report, err := imp.Run(ctx)
	if err != nil {
		logger.Error("watched file import broke off", "file", path, "error", err)
		return
	}

	logger.Info("watched file processed", "file", path, "imported", report.Succeeded == 1)
}
