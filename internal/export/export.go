package export

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"captionexport/internal/captions"
	"captionexport/internal/config"
	"captionexport/internal/logging"
	"captionexport/internal/report"
	"captionexport/internal/textutil"
	"captionexport/internal/timecode"
	"captionexport/internal/timeline"
)

// Options configures one export run.
type Options struct {
	Path       string
	Encoding   string
	LineEnding string
	BOM        bool
	Strict     bool
	// Format and FrameRate choose the timecode display. FrameRate is only
	// used when the document does not declare a rate.
	Format    timecode.Format
	FrameRate float64
	Parameter string
	Logger    *slog.Logger
}

// OptionsFromConfig maps configuration onto export options writing to path.
func OptionsFromConfig(cfg *config.Config, path string) Options {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	format, err := timecode.ParseFormat(cfg.Timecode.Format)
	if err != nil {
		format = timecode.SMPTEDrop
	}
	return Options{
		Path:       path,
		Encoding:   cfg.Output.Encoding,
		LineEnding: cfg.LineTerminator(),
		BOM:        cfg.Output.BOM,
		Strict:     cfg.Output.StrictEncoding,
		Format:     format,
		FrameRate:  cfg.Timecode.FrameRate,
		Parameter:  cfg.Extract.Parameter,
	}
}

// Result describes a finished run.
type Result struct {
	// Empty is set when the document has no tracks; nothing was written.
	Empty    bool
	Path     string
	Lines    int
	Stats    captions.Stats
	Timecode timecode.Formatter
}

// Run exports the captions of doc to opts.Path.
func Run(ctx context.Context, doc timeline.Document, opts Options) (Result, error) {
	if doc == nil {
		return Result{}, errors.New("export requires a document")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	if len(doc.Tracks()) == 0 {
		logger.Info("document has no tracks; nothing to export")
		return Result{Empty: true}, nil
	}

	records, stats, tc, err := Collect(doc, opts)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	n, err := report.Write(records, report.Options{
		Path:       opts.Path,
		Encoding:   opts.Encoding,
		LineEnding: opts.LineEnding,
		Timecode:   tc,
		Strict:     opts.Strict,
		BOM:        opts.BOM,
		Logger:     logger,
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("captions exported",
		logging.String(logging.FieldOutput, opts.Path),
		logging.Int("captions", n),
		logging.Int("skipped_events", stats.SkippedEvents()),
		logging.String("timecode", string(tc.Name())),
	)
	return Result{Path: opts.Path, Lines: n, Stats: stats, Timecode: tc}, nil
}

// Collect extracts the captions of doc in scan order together with the
// formatter a report would use.
func Collect(doc timeline.Document, opts Options) ([]captions.Record, captions.Stats, timecode.Formatter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	tc, err := Formatter(doc, opts.Format, opts.FrameRate, logger)
	if err != nil {
		return nil, captions.Stats{}, timecode.Formatter{}, err
	}
	extractor := captions.NewExtractor(
		captions.WithParameter(opts.Parameter),
		captions.WithLogger(logger),
	)
	records, stats := extractor.Extract(doc)
	return records, stats, tc, nil
}

// Formatter builds the timecode formatter for doc. The document's own frame
// rate wins over fallbackRate. Drop-frame falls back to non-drop when the
// document rate is not an NTSC rate.
func Formatter(doc timeline.Document, format timecode.Format, fallbackRate float64, logger *slog.Logger) (timecode.Formatter, error) {
	if format == "" {
		format = timecode.SMPTEDrop
	}
	if doc == nil || doc.FrameRate() <= 0 {
		return timecode.New(format, fallbackRate)
	}
	rate := doc.FrameRate()
	tc, err := timecode.New(format, rate)
	if err == nil || format != timecode.SMPTEDrop {
		return tc, err
	}
	if logger != nil {
		logger.Warn("drop-frame timecode needs an NTSC rate; using non-drop",
			logging.Float64("frame_rate", rate),
		)
	}
	return timecode.New(timecode.SMPTE, rate)
}

// DefaultOutputPath derives "<dir>/<prefix><project base name><ext>" from the
// project file path. The base name is taken after either separator style.
func DefaultOutputPath(projectPath, prefix, ext string) string {
	return filepath.Join(filepath.Dir(projectPath), outputName(projectPath, prefix, ext))
}

// OutputPath resolves the report path. An explicit path wins. Otherwise the
// name comes from hostPath, the project path the document declares, and the
// directory is dir or, when empty, the directory of sourcePath.
func OutputPath(explicit, dir, sourcePath, hostPath, prefix, ext string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	if strings.TrimSpace(hostPath) == "" {
		hostPath = sourcePath
	}
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = filepath.Dir(sourcePath)
	}
	return filepath.Join(dir, outputName(hostPath, prefix, ext))
}

func outputName(projectPath, prefix, ext string) string {
	base := path.Base(strings.ReplaceAll(projectPath, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	return textutil.SanitizeFileName(prefix + base + ext)
}
