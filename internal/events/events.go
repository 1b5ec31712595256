// Package events carries operational events (server start/stop, page
// mutations) to whatever sink the process is configured with.
package events

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// Event kinds emitted by the notebook.
const (
	ServerStarted = "server.started"
	ServerStopped = "server.stopped"
	PageCreated   = "page.created"
	PageSaved     = "page.saved"
	PageRenamed   = "page.renamed"
	PageImported  = "page.imported"
)

// Event is a single operational occurrence.
type Event struct {
	Kind    string
	Message string
	Attrs   map[string]string
	Time    time.Time
}

// Sink receives operational events. Implementations must not block the caller
// for long and must be safe for concurrent use.
type Sink interface {
	Emit(ctx context.Context, ev Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Emit(context.Context, Event) {}

// LogSink writes events as structured log records.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("component", "events")}
}

func (s *LogSink) Emit(ctx context.Context, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	args := make([]any, 0, 4+2*len(ev.Attrs))
	args = append(args, "event", ev.Kind, "at", ev.Time)
	for _, k := range slices.Sorted(maps.Keys(ev.Attrs)) {
		args = append(args, k, ev.Attrs[k])
	}
	msg := ev.Message
	if msg == "" {
		msg = ev.Kind
	}
	s.log.InfoContext(ctx, msg, args...)
}

// Multi fans an event out to several sinks in order.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, ev Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(ctx, ev)
		}
	}
}

// Recorder keeps emitted events in memory. Tests use it to assert on what the
// notebook reported.
type Recorder struct {
	ch chan Event
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{ch: make(chan Event, capacity)}
}

func (r *Recorder) Emit(_ context.Context, ev Event) {
	select {
	case r.ch <- ev:
	default:
	}
}

// Events drains and returns everything recorded so far.
func (r *Recorder) Events() []Event {
	var out []Event
	for {
		select {
		case ev := <-r.ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}
