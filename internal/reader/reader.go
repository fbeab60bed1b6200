package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mccread/internal/caption"
	"mccread/internal/caption/cea608"
	"mccread/internal/caption/cea708"
	"mccread/internal/caption/debuglog"
	"mccread/internal/caption/descriptor"
	"mccread/internal/logging"
	"mccread/internal/services"
	"mccread/internal/services/inspector"
	"mccread/internal/textio"
	"mccread/internal/timecode"
)

const magicHeader = "File Format=MacCaption_MCC"

// Detect reports whether content looks like an MCC file, based on its magic
// header alone. It never decodes anything.
func Detect(content []byte) bool {
	return strings.HasPrefix(textio.Decode(content), magicHeader)
}

// Reader runs the full decode pipeline: validate the input, invoke the
// external decoder, parse its artifacts, and aggregate them into one Result.
type Reader struct {
	decoder     inspector.Decoder
	detector    caption.LanguageDetector
	logger      *slog.Logger
	fpsOverride float64
}

// Option configures the reader.
type Option func(*Reader)

// WithDetector enables language annotation with the given detector.
func WithDetector(d caption.LanguageDetector) Option {
	return func(r *Reader) { r.detector = d }
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFPSOverride forces a display frame rate, bypassing the descriptor's
// value. The descriptor is still parsed for the drop-frame flag.
func WithFPSOverride(fps float64) Option {
	return func(r *Reader) { r.fpsOverride = fps }
}

// New constructs a reader around the given decoder.
func New(decoder inspector.Decoder, opts ...Option) (*Reader, error) {
	if decoder == nil {
		return nil, errors.New("reader requires a decoder")
	}
	r := &Reader{decoder: decoder, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Read decodes the MCC file at inputPath, depositing artifacts in outputDir,
// and returns the aggregated captions. Callers get a complete Result or an
// error, never a partial: recoverable parse conditions become debug entries
// on the Result, fatal conditions abort the run.
func (r *Reader) Read(ctx context.Context, inputPath, outputDir string) (*caption.Result, error) {
	if err := validateInput(inputPath); err != nil {
		return nil, err
	}
	ctx = services.WithInput(ctx, inputPath)
	logger := logging.WithContext(ctx, r.logger)

	artifacts, err := r.decoder.Decode(services.WithStage(ctx, "decode"), inputPath, outputDir)
	if err != nil {
		return nil, err
	}

	if artifacts.Descriptor == "" {
		return nil, fmt.Errorf("%w: descriptor artifact not produced", descriptor.ErrMissingDescriptor)
	}
	info, err := descriptor.ParseFile(artifacts.Descriptor)
	if err != nil {
		return nil, err
	}

	rate := info.Rate
	if r.fpsOverride != 0 {
		rate, err = timecode.RateFromFloat(r.fpsOverride)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "read", "fps override", "unsupported frame rate", err)
		}
	}

	result := caption.NewResult(rate.Float(), info.DropFrame)

	for _, path := range artifacts.CEA608 {
		events, diags, err := cea608.ParseFile(path, rate, info.DropFrame)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		result.AddTrack(caption.FormatCEA608, cea608.TrackID(path), events)
		result.AddDebug(diags...)
	}
	for _, path := range artifacts.CEA708 {
		events, diags, err := cea708.ParseFile(path, rate, info.DropFrame)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		result.AddTrack(caption.FormatCEA708, cea708.TrackID(path), events)
		result.AddDebug(diags...)
	}

	if artifacts.Debug != "" {
		entries, err := debuglog.ParseFile(artifacts.Debug)
		if err != nil {
			logger.Warn("decoder debug log unreadable", logging.Error(err))
		} else {
			result.AddDebug(entries...)
		}
	}

	result.Metadata.InputFile = inputPath
	result.Metadata.OutputFiles = artifacts.All()
	result.Metadata.SourceDir = outputDir

	caption.Annotate(result, r.detector)

	trackCount := 0
	eventCount := 0
	for _, tracks := range result.Captions {
		for _, events := range tracks {
			trackCount++
			eventCount += len(events)
		}
	}
	logger.Info("decoded captions",
		logging.Int("tracks", trackCount),
		logging.Int("events", eventCount),
		logging.Float64("fps", result.Metadata.FPS),
		logging.Bool("drop_frame", result.Metadata.DropFrame),
	)

	return result, nil
}

// validateInput checks existence, extension, and the MCC magic header before
// anything is spawned.
func validateInput(inputPath string) error {
	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return services.Wrap(services.ErrNotFound, "read", "validate input", "MCC file not found", err)
		}
		return services.Wrap(services.ErrValidation, "read", "validate input", "cannot access MCC file", err)
	}
	if strings.ToLower(filepath.Ext(inputPath)) != ".mcc" {
		return services.Wrap(services.ErrValidation, "read", "validate input",
			fmt.Sprintf("input must have .mcc extension: %s", inputPath), nil)
	}
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "read", "validate input", "cannot read MCC file", err)
	}
	if len(content) == 0 {
		return services.Wrap(services.ErrValidation, "read", "validate input",
			fmt.Sprintf("MCC file has no content: %s", inputPath), nil)
	}
	if !Detect(content) {
		return services.Wrap(services.ErrValidation, "read", "validate input",
			fmt.Sprintf("MCC file has no %q header: %s", magicHeader, inputPath), nil)
	}
	return nil
}
