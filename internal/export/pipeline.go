// Package export orchestrates the full export pipeline: pre-flight
// validation, asset collection, rendering and packaging. The pipeline
// short-circuits on validation errors and contains every downstream failure
// behind a structured result so no raw error or panic crosses the public
// boundary.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MykhailoOS/PortfolioLab/internal/archive"
	"github.com/MykhailoOS/PortfolioLab/internal/assets"
	"github.com/MykhailoOS/PortfolioLab/internal/metrics"
	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
	"github.com/MykhailoOS/PortfolioLab/internal/render"
	"github.com/MykhailoOS/PortfolioLab/internal/site"
	"github.com/MykhailoOS/PortfolioLab/internal/validate"
)

// Stage names used in timings and metrics.
const (
	StageValidate = "validate"
	StageCollect  = "collect"
	StageRender   = "render"
	StagePackage  = "package"
)

// Result is the outcome of one export run. On validation failure, Errors is
// populated and no files are generated. On success, Files holds every
// generated file (for publishing) and Archive the packaged zip.
type Result struct {
	RunID       string                      `json:"runId"`
	Success     bool                        `json:"success"`
	Errors      []validate.ValidationError  `json:"errors,omitempty"`
	Files       []site.File                 `json:"-"`
	Archive     []byte                      `json:"-"`
	ArchiveName string                      `json:"archiveName,omitempty"`
	Stats       archive.Stats               `json:"stats"`
	Durations   map[string]time.Duration    `json:"durations"`
}

// Summary groups the result's validation errors by kind.
func (r *Result) Summary() validate.Summary {
	return validate.Summarize(r.Errors)
}

// Pipeline wires the export stages together.
type Pipeline struct {
	validator *validate.Validator
	collector *assets.Collector
	recorder  metrics.Recorder
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithValidator overrides the default validator.
func WithValidator(v *validate.Validator) Option {
	return func(p *Pipeline) { p.validator = v }
}

// WithCollector overrides the default asset collector.
func WithCollector(c *assets.Collector) Option {
	return func(p *Pipeline) { p.collector = c }
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// New creates a Pipeline with default components and no metrics.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: validate.New(),
		collector: assets.NewCollector(),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline to completion. It never returns a Go error:
// every failure mode ends in a structured Result, with unexpected failures
// folded into a single synthetic required_field validation error so the
// caller's reporting UI has one shape to render.
func (p *Pipeline) Run(ctx context.Context, doc *portfolio.Portfolio, hasUnsavedChanges bool) (res *Result) {
	start := time.Now()
	res = &Result{
		RunID:     uuid.NewString(),
		Durations: make(map[string]time.Duration),
	}
	p.recorder.ExportStarted()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("export pipeline panicked", "run_id", res.RunID, "panic", r)
			res.Success = false
			res.Errors = []validate.ValidationError{syntheticFailure(fmt.Sprintf("export failed: %v", r))}
		}
		p.recorder.ExportCompleted(res.Success, time.Since(start))
		if !res.Success {
			for kind, n := range validate.Summarize(res.Errors).Counts {
				p.recorder.ValidationErrors(string(kind), n)
			}
		}
	}()

	timed := func(stage string, fn func() error) error {
		t0 := time.Now()
		err := fn()
		d := time.Since(t0)
		res.Durations[stage] = d
		p.recorder.StageDuration(stage, d)
		return err
	}

	// Pre-flight validation gates everything else.
	_ = timed(StageValidate, func() error {
		res.Errors = p.validator.Validate(ctx, doc, hasUnsavedChanges)
		return nil
	})
	if len(res.Errors) > 0 {
		slog.Info("export refused by pre-flight validation",
			"run_id", res.RunID, "errors", len(res.Errors))
		return res
	}

	var (
		assetMap assets.Map
		blobs    map[string][]byte
	)
	_ = timed(StageCollect, func() error {
		assetMap, blobs = p.collector.Collect(ctx, doc)
		return nil
	})

	_ = timed(StageRender, func() error {
		res.Files = renderFiles(doc, assetMap, blobs)
		return nil
	})

	if err := timed(StagePackage, func() error {
		data, stats, err := archive.Build(res.Files)
		if err != nil {
			return err
		}
		res.Archive = data
		res.ArchiveName = doc.ArchiveName()
		res.Stats = stats
		return nil
	}); err != nil {
		slog.Error("archive assembly failed", "run_id", res.RunID, "error", err)
		res.Success = false
		res.Errors = []validate.ValidationError{syntheticFailure(fmt.Sprintf("export failed: %v", err))}
		res.Files = nil
		return res
	}

	res.Success = true
	slog.Info("export completed",
		"run_id", res.RunID,
		"archive", res.ArchiveName,
		"bytes", res.Stats.FileSize,
		"pages", res.Stats.PageCount,
		"assets", res.Stats.AssetCount)
	return res
}

// renderFiles produces the full generated-file list: shared CSS and JS, the
// README, one HTML page per enabled locale, and every collected binary
// asset at its assigned path.
func renderFiles(doc *portfolio.Portfolio, assetMap assets.Map, blobs map[string][]byte) []site.File {
	files := []site.File{
		site.TextFile("assets/css/style.css", render.CSS(render.Theme{
			PrimaryColor: doc.Theme.PrimaryColor,
			Mode:         doc.Theme.Mode,
		})),
		site.TextFile("assets/js/main.js", render.JS()),
		site.TextFile("README.txt", render.Readme(doc)),
	}
	for _, loc := range doc.EnabledLocales {
		files = append(files, site.TextFile(
			fmt.Sprintf("%s/index.html", loc),
			render.HTMLPage(doc, loc, assetMap),
		))
	}
	for path, data := range blobs {
		files = append(files, site.BinaryFile(path, data))
	}
	return files
}

// syntheticFailure converts a pipeline-fatal failure into the uniform
// validation-error shape the caller renders.
func syntheticFailure(msg string) validate.ValidationError {
	return validate.ValidationError{
		Kind:    validate.KindRequiredField,
		Message: msg,
	}
}
