// Package metrics provides export observability through a Recorder
// interface. Components default to NoopRecorder so metrics collection is
// zero-cost unless a real recorder is injected (daemon mode wires the
// Prometheus implementation).
package metrics

import "time"

// Recorder receives export pipeline measurements.
type Recorder interface {
	// ExportStarted is called when an export run begins.
	ExportStarted()
	// ExportCompleted is called when a run finishes, successfully or not.
	ExportCompleted(success bool, duration time.Duration)
	// ValidationErrors records the per-kind error count of a failed
	// pre-flight pass.
	ValidationErrors(kind string, count int)
	// StageDuration records the duration of one pipeline stage.
	StageDuration(stage string, duration time.Duration)
}

// NoopRecorder discards all measurements.
type NoopRecorder struct{}

func (NoopRecorder) ExportStarted()                           {}
func (NoopRecorder) ExportCompleted(bool, time.Duration)      {}
func (NoopRecorder) ValidationErrors(string, int)             {}
func (NoopRecorder) StageDuration(string, time.Duration)      {}
