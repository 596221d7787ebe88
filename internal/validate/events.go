package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// UnreachableMediaEvent is published for every field referencing a media URL
// that failed its reachability probe. Consumers (dashboards, cleanup jobs)
// subscribe to the configured subject.
type UnreachableMediaEvent struct {
	URL       string    `json:"url"`
	SectionID string    `json:"sectionId"`
	Field     string    `json:"field"`
	CheckedAt time.Time `json:"checkedAt"`
}

// EventEmitter publishes validation findings to an external channel.
type EventEmitter interface {
	PublishUnreachable(ctx context.Context, event *UnreachableMediaEvent) error
	Close()
}

// NoopEmitter discards all events. Default when no messaging is configured.
type NoopEmitter struct{}

func (NoopEmitter) PublishUnreachable(context.Context, *UnreachableMediaEvent) error { return nil }
func (NoopEmitter) Close()                                                          {}

// NATSEmitter publishes unreachable-media events to a NATS subject.
type NATSEmitter struct {
	conn    *nats.Conn
	subject string
}

// NewNATSEmitter connects to the given NATS URL. The connection is
// publish-only.
func NewNATSEmitter(url, subject string) (*NATSEmitter, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("NATS emitter initialized for media validation events", "url", url, "subject", subject)
	return &NATSEmitter{conn: conn, subject: subject}, nil
}

// PublishUnreachable serializes the event as JSON and publishes it.
func (e *NATSEmitter) PublishUnreachable(_ context.Context, event *UnreachableMediaEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal media event: %w", err)
	}
	if err := e.conn.Publish(e.subject, payload); err != nil {
		return fmt.Errorf("publish media event: %w", err)
	}
	return nil
}

// Close drains and closes the underlying connection.
func (e *NATSEmitter) Close() {
	if e.conn != nil {
		_ = e.conn.Drain()
	}
}

// emitUnreachable forwards a finding to the configured emitter. Emission is
// best effort; a failed publish never affects validation results.
func (v *Validator) emitUnreachable(ctx context.Context, sectionID, field, url string) {
	event := &UnreachableMediaEvent{
		URL:       url,
		SectionID: sectionID,
		Field:     field,
		CheckedAt: time.Now().UTC(),
	}
	if err := v.emitter.PublishUnreachable(ctx, event); err != nil {
		slog.Warn("failed to publish unreachable media event", "url", url, "error", err)
	}
}
