package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aardalath/arestools/internal/catalog"
	"github.com/aardalath/arestools/internal/config"
	"github.com/aardalath/arestools/internal/metrics"
	"github.com/aardalath/arestools/internal/models"
)

// DataFileExt is the filename extension of importable data files.
const DataFileExt = ".dat"

// Waiter blocks until the server reports a verdict for the import it is
// currently processing.
type Waiter interface {
	Wait(ctx context.Context) (models.Outcome, error)
}

// Options selects the input source and routing overrides for an import run.
type Options struct {
	// DataDir is a folder whose data files are imported in name order.
	// Mutually exclusive with InputFile.
	DataDir string
	// InputFile is a single data file to import.
	InputFile string
	// ForcedType routes every file through the named catalog rule,
	// skipping classification.
	ForcedType string
	// DefFile is a parameter definition file imported before any data.
	DefFile string
	// ImportDir overrides routing entirely: files go to this folder
	// under the import tree. Required with DefFile.
	ImportDir string
}

// Importer drives a batch import run against an ARES runtime.
type Importer struct {
	layout  config.RuntimeLayout
	catalog *catalog.Catalog
	waiter  Waiter
	logger  *slog.Logger
	metrics *metrics.Collector
	opts    Options

	run *Run

	// activeImportDir is the routing override in effect; the definition
	// phase rewrites it to the parameter folder it creates.
	activeImportDir string
}

// NewImporter validates options and assembles an import run.
func NewImporter(layout config.RuntimeLayout, cat *catalog.Catalog, waiter Waiter, logger *slog.Logger, opts Options) (*Importer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.DataDir == "" && opts.InputFile == "" {
		return nil, ErrNoInput
	}
	if opts.DataDir != "" && opts.InputFile != "" {
		return nil, fmt.Errorf("%w: data folder and input file are mutually exclusive", ErrNoInput)
	}
	if opts.DefFile != "" && opts.ImportDir == "" {
		return nil, ErrMissingImportDir
	}
	if opts.ImportDir == "" {
		if cat == nil {
			return nil, errors.New("type catalog required without an import folder override")
		}
		if opts.ForcedType != "" {
			if _, ok := cat.Lookup(opts.ForcedType); !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownType, opts.ForcedType)
			}
		}
	}

	return &Importer{
		layout:          layout,
		catalog:         cat,
		waiter:          waiter,
		logger:          logger,
		metrics:         metrics.NewCollector(),
		opts:            opts,
		run:             newRun(),
		activeImportDir: opts.ImportDir,
	}, nil
}

// Run executes the import: optional definition phase, then each data
// file in order. Per-file failures are recorded and the run continues;
// only environment-level problems abort it.
func (imp *Importer) Run(ctx context.Context) (*models.Report, error) {
	files, err := imp.collectInputs()
	if err != nil {
		imp.run.setPhase(PhaseAborted)
		return nil, err
	}
	imp.run.setTotal(len(files))

	imp.logger.Info("run starting",
		"run_id", imp.run.ID,
		"files", len(files),
		"runtime", imp.layout.Root)

	if imp.opts.DefFile != "" {
		imp.run.setPhase(PhaseDefinition)
		if err := imp.importDefinition(ctx); err != nil {
			imp.run.setPhase(PhaseAborted)
			return nil, err
		}
	}

	imp.run.setPhase(PhaseImporting)
	results := make([]models.FileResult, 0, len(files))
	for i, fname := range files {
		if err := ctx.Err(); err != nil {
			imp.run.setPhase(PhaseAborted)
			return nil, err
		}

		base := filepath.Base(fname)
		imp.logger.Info("preparing import", "file", base, "index", i+1, "total", len(files))
		imp.run.startFile(base)

		res, err := imp.placeFile(ctx, fname)
		if err != nil {
			imp.run.setPhase(PhaseAborted)
			return nil, err
		}

		results = append(results, res)
		imp.run.recordOutcome(res.Outcome)
		imp.metrics.RecordOutcome(res.Outcome)

		switch res.Outcome {
		case models.OutcomeSucceeded:
			imp.logger.Info("data file imported successfully", "file", base, "waited", res.Waited)
		case models.OutcomeUnclassified:
			imp.logger.Warn("unidentified data file type, failed import", "file", base)
		default:
			imp.logger.Warn("data file importing failed", "file", base, "outcome", res.Outcome, "detail", res.Message)
		}
	}

	imp.run.setPhase(PhaseDone)

	snap := imp.run.Snapshot()
	report := &models.Report{
		RunID:     imp.run.ID,
		Started:   imp.run.StartedAt,
		Elapsed:   time.Since(imp.run.StartedAt),
		Total:     snap.Total,
		Succeeded: snap.Succeeded,
		Failed:    snap.Failed,
		Results:   results,
	}

	imp.logger.Info("import process completed",
		"run_id", imp.run.ID,
		"succeeded", snap.Succeeded,
		"failed", snap.Failed,
		"elapsed", report.Elapsed)
	if snap.Failed > 0 {
		imp.logger.Warn("some files failed to import", "run_id", imp.run.ID, "failed", snap.Failed)
	}

	return report, nil
}

// Progress exposes live run state for UI polling.
func (imp *Importer) Progress() *Run {
	return imp.run
}

// Metrics returns a snapshot of collected run statistics.
func (imp *Importer) Metrics() metrics.Snapshot {
	return imp.metrics.Snapshot()
}

// placeFile routes one data file into the import tree and waits for the
// server verdict. Classification misses and copy failures are recorded
// in the result; only a broken wait aborts the run.
func (imp *Importer) placeFile(ctx context.Context, source string) (models.FileResult, error) {
	res := models.FileResult{Source: source}
	base := filepath.Base(source)

	switch {
	case imp.activeImportDir != "":
		res.Type = models.TypeAssumedFromDir
		res.Dir = imp.activeImportDir
	case imp.opts.ForcedType != "":
		rule, _ := imp.catalog.Lookup(imp.opts.ForcedType) // validated at construction
		res.Type = rule.Type
		res.Dir = rule.Dir
	default:
		rule, ok := imp.catalog.Classify(base)
		if !ok {
			res.Outcome = models.OutcomeUnclassified
			return res, nil
		}
		res.Type = rule.Type
		res.Dir = rule.Dir
	}

	imp.logger.Info("data type resolved", "file", base, "type", res.Type, "folder", res.Dir)

	dest := filepath.Join(imp.layout.ImportRoot, res.Dir)
	if err := imp.copyFile(source, filepath.Join(dest, base)); err != nil {
		res.Outcome = models.OutcomeFailed
		res.Message = err.Error()
		return res, nil
	}

	start := time.Now()
	outcome, err := imp.waiter.Wait(ctx)
	res.Waited = time.Since(start)
	imp.metrics.RecordTiming(metrics.OpWait, res.Waited)
	if err != nil {
		return res, err
	}

	res.Outcome = outcome
	return res, nil
}

// importDefinition pushes the parameter definition file through the
// paramdef folder and retargets data routing at the parameter folder
// it defines.
func (imp *Importer) importDefinition(ctx context.Context) error {
	base := filepath.Base(imp.opts.DefFile)
	dest := filepath.Join(imp.layout.ImportRoot, "paramdef", imp.opts.ImportDir)

	imp.logger.Info("preparing import of definition file", "file", base, "folder", dest)

	if err := imp.copyFile(imp.opts.DefFile, filepath.Join(dest, base)); err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionImport, err)
	}

	start := time.Now()
	outcome, err := imp.waiter.Wait(ctx)
	imp.metrics.RecordTiming(metrics.OpWait, time.Since(start))
	if err != nil {
		return err
	}
	if outcome != models.OutcomeSucceeded {
		return fmt.Errorf("%w: server reported %s", ErrDefinitionImport, outcome)
	}

	imp.activeImportDir = filepath.Join("parameter", imp.opts.ImportDir)
	imp.logger.Info("definition file imported", "file", base, "parameter_folder", imp.activeImportDir)
	return nil
}

// collectInputs resolves the run's data files: the explicit input file,
// or every data file in the data folder in name order.
func (imp *Importer) collectInputs() ([]string, error) {
	if imp.opts.InputFile != "" {
		if _, err := os.Stat(imp.opts.InputFile); err != nil {
			return nil, fmt.Errorf("input file: %w", err)
		}
		return []string{imp.opts.InputFile}, nil
	}

	info, err := os.Stat(imp.opts.DataDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: data folder %s does not exist", ErrNoInput, imp.opts.DataDir)
	}

	// Glob returns matches already sorted by name.
	files, err := filepath.Glob(filepath.Join(imp.opts.DataDir, "*"+DataFileExt))
	if err != nil {
		return nil, fmt.Errorf("scan data folder: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, imp.opts.DataDir)
	}
	return files, nil
}

// copyFile copies source into the watched import tree. The destination
// folder must already exist; the server owns the tree layout.
func (imp *Importer) copyFile(source, dest string) error {
	start := time.Now()
	defer func() {
		imp.metrics.RecordTiming(metrics.OpCopy, time.Since(start))
	}()

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dest, err)
	}
	return out.Close()
}
