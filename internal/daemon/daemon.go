// Package daemon keeps the exporter running continuously: it re-exports the
// portfolio when the document changes on disk, optionally on a fixed
// interval, and serves Prometheus metrics over HTTP.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/MykhailoOS/PortfolioLab/internal/config"
	"github.com/MykhailoOS/PortfolioLab/internal/export"
	"github.com/MykhailoOS/PortfolioLab/internal/metrics"
	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

// Daemon runs exports in response to file changes and timers.
type Daemon struct {
	cfg      *config.Config
	pipeline *export.Pipeline
	recorder *metrics.PrometheusRecorder

	exportCh chan struct{}
}

// New creates a daemon for the given configuration. The pipeline is built
// with a Prometheus recorder so /metrics reflects every run.
func New(cfg *config.Config) *Daemon {
	recorder := metrics.NewPrometheusRecorder()
	return &Daemon{
		cfg:      cfg,
		pipeline: export.New(export.WithRecorder(recorder)),
		recorder: recorder,
		exportCh: make(chan struct{}, 1),
	}
}

// Run blocks until ctx is cancelled. It performs one export immediately,
// then re-exports on document changes (debounced) and on the configured
// interval.
func (d *Daemon) Run(ctx context.Context) error {
	docPath, err := filepath.Abs(d.cfg.Document)
	if err != nil {
		return fmt.Errorf("resolve document path: %w", err)
	}

	srv := d.startMetricsServer()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if d.cfg.Daemon.Watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory; editors replace files on save, so watching
		// the file itself loses the inode.
		if err := watcher.Add(filepath.Dir(docPath)); err != nil {
			return fmt.Errorf("watch document directory: %w", err)
		}
		go d.watchLoop(ctx, watcher, docPath)
		slog.Info("watching portfolio document", "path", docPath)
	}

	var scheduler gocron.Scheduler
	if interval := d.cfg.Daemon.IntervalDuration(); interval > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(d.triggerExport),
			gocron.WithName("periodic-export"),
		)
		if err != nil {
			return fmt.Errorf("schedule periodic export: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("scheduled periodic export", "interval", interval)
	}

	d.triggerExport()
	d.exportLoop(ctx, docPath)
	return nil
}

// triggerExport requests an export run, collapsing into an already-pending
// request.
func (d *Daemon) triggerExport() {
	select {
	case d.exportCh <- struct{}{}:
	default:
	}
}

// watchLoop forwards write/create events for the document into export
// triggers.
func (d *Daemon) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, docPath string) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(docPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				slog.Debug("document change detected", "op", event.Op.String())
				d.triggerExport()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("file watcher error", "error", err)
		}
	}
}

// exportLoop debounces triggers and runs exports until ctx is cancelled.
func (d *Daemon) exportLoop(ctx context.Context, docPath string) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.exportCh:
		}

		// Debounce: absorb the burst an editor save produces.
		timer := time.NewTimer(d.cfg.Daemon.DebounceDuration())
	drain:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-d.exportCh:
			case <-timer.C:
				break drain
			}
		}

		d.runExport(ctx, docPath)
	}
}

// runExport loads the document and runs one export, writing the archive and
// report into the output directory.
func (d *Daemon) runExport(ctx context.Context, docPath string) {
	doc, err := portfolio.Load(docPath)
	if err != nil {
		slog.Error("skipping export, document not loadable", "path", docPath, "error", err)
		return
	}

	res := d.pipeline.Run(ctx, doc, false)
	if !res.Success {
		for _, e := range res.Errors {
			slog.Warn("validation error", "kind", e.Kind, "field", e.Field, "message", e.Message)
		}
		return
	}

	archivePath := filepath.Join(d.cfg.Output.Directory, res.ArchiveName)
	if err := os.WriteFile(archivePath, res.Archive, 0o644); err != nil {
		slog.Error("write archive failed", "path", archivePath, "error", err)
		return
	}
	if d.cfg.Output.Report {
		reportPath := filepath.Join(d.cfg.Output.Directory, "export-report.md")
		if err := export.WriteReport(res, reportPath); err != nil {
			slog.Error("write report failed", "path", reportPath, "error", err)
		}
	}
	slog.Info("export written", "archive", archivePath, "bytes", res.Stats.FileSize)
}

// startMetricsServer serves /metrics and a liveness endpoint.
func (d *Daemon) startMetricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.recorder.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: d.cfg.Daemon.MetricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "addr", srv.Addr, "error", err)
		}
	}()
	slog.Info("metrics server listening", "addr", d.cfg.Daemon.MetricsAddr)
	return srv
}
