package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mccread/internal/caption"
	"mccread/internal/fileutil"
	"mccread/internal/logging"
	"mccread/internal/reader"
	"mccread/internal/runstore"
	"mccread/internal/services"
	"mccread/internal/services/inspector"
	"mccread/internal/services/langdetect"
	"mccread/internal/workspace"
)

type decodeOptions struct {
	outputDir string
	keep      bool
	fps       float64
}

func addDecodeFlags(cmd *cobra.Command, opts *decodeOptions) {
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Export decoder artifacts to this directory")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "Keep the temporary artifact directory")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "Override the frame rate declared by the descriptor")
}

// decode runs the full pipeline for one MCC file and records the run when
// run history is enabled. Every query command funnels through here.
func (c *commandContext) decode(cmd *cobra.Command, inputPath string, opts decodeOptions) (*caption.Result, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	// CLI output owns stdout; diagnostics go to stderr.
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var store *runstore.Store
	var run *runstore.Run
	if cfg.Runs.Enabled {
		store, err = runstore.Open(cfg)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}

	runID := uuid.NewString()
	if store != nil {
		run, err = store.Begin(ctx, inputPath)
		if err != nil {
			return nil, err
		}
		runID = run.ID
	}
	ctx = services.WithRunID(ctx, runID)

	exportDir := strings.TrimSpace(opts.outputDir)
	keep := opts.keep || cfg.Decode.KeepArtifacts
	ws, err := workspace.Open(cfg.Paths.WorkDir)
	if err != nil {
		return nil, err
	}
	defer ws.Close()
	outputDir, err := ws.RunDir(runID)
	if err != nil {
		return nil, err
	}

	client, err := inspector.New(cfg.Inspector.Binary, cfg.Inspector.TimeoutSeconds)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "decode", "caption-inspector", "invalid decoder configuration", err)
	}

	fpsOverride := opts.fps
	if fpsOverride == 0 {
		fpsOverride = cfg.Decode.FPSOverride
	}

	readerOpts := []reader.Option{
		reader.WithLogger(logger),
		reader.WithFPSOverride(fpsOverride),
	}
	if cfg.Language.DetectionEnabled {
		readerOpts = append(readerOpts, reader.WithDetector(langdetect.New()))
	}

	r, err := reader.New(client, readerOpts...)
	if err != nil {
		return nil, err
	}

	result, readErr := r.Read(ctx, inputPath, outputDir)

	// An explicit output directory gets verified copies of the artifacts; the
	// scratch run directory can then be reclaimed as usual.
	if readErr == nil && exportDir != "" {
		exported, expErr := fileutil.ExportAll(result.Metadata.OutputFiles, exportDir)
		if expErr != nil {
			readErr = fmt.Errorf("export artifacts: %w", expErr)
		} else {
			result.Metadata.OutputFiles = exported
			result.Metadata.SourceDir = exportDir
		}
	}

	if !keep {
		if rmErr := ws.Remove(runID); rmErr != nil {
			logger.Warn("failed to clean run directory", logging.Error(rmErr))
		}
	}

	recordDir := ""
	switch {
	case exportDir != "" && readErr == nil:
		recordDir = exportDir
	case keep:
		recordDir = outputDir
	}
	if store != nil && run != nil {
		finalizeRun(ctx, store, run, result, readErr, recordDir, logger)
	}

	return result, readErr
}

func finalizeRun(ctx context.Context, store *runstore.Store, run *runstore.Run, result *caption.Result, readErr error, outputDir string, logger *slog.Logger) {
	if readErr != nil {
		run.Status = runstore.StatusFailed
		run.ErrorMessage = readErr.Error()
	} else {
		run.Status = runstore.StatusCompleted
		run.Formats = strings.Join(result.FormatsPresent(), ",")
		for _, tracks := range result.Captions {
			for _, events := range tracks {
				run.TrackCount++
				run.EventCount += len(events)
			}
		}
		run.WarningCount = len(result.Debug(caption.LevelWarn))
	}
	run.OutputDir = outputDir
	if err := store.Finish(ctx, run); err != nil {
		logger.Warn("failed to record run", logging.Error(err))
	}
}
