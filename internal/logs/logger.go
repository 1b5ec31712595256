// Package logs builds the process logger. Records go to the configured
// writer and, when the systemd journal is reachable, to the journal as well.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options controls logger construction.
type Options struct {
	Level   slog.Level
	Format  string // "json" (default) or "text"
	Journal bool   // also log to the systemd journal when available
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var local slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		local = slog.NewTextHandler(w, handlerOpts)
	} else {
		local = slog.NewJSONHandler(w, handlerOpts)
	}
	if !opts.Journal {
		return slog.New(local)
	}

	if _, err := os.Stat(journalSocket); err != nil {
		warn(local, "systemd journal unavailable", err)
		return slog.New(local)
	}
	journal, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: opts.Level,
		ReplaceGroup: func(key string) string {
			return journalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = journalKey(a.Key)
			return a
		},
	})
	if err != nil {
		warn(local, "systemd journal unavailable", err)
		return slog.New(local)
	}

	return slog.New(slogmulti.Fanout(local, journal))
}

// journalSocket is where journald listens. The journal handler only opens an
// unbound datagram socket, so a missing journal shows up here and not as a
// handler error.
var journalSocket = "/run/systemd/journal/socket"

func warn(h slog.Handler, msg string, err error) {
	record := slog.NewRecord(time.Now(), slog.LevelWarn, msg, 0)
	record.Add("error", err)
	_ = h.Handle(context.Background(), record)
}

// journalKey converts an attribute key into a valid journal field name.
func journalKey(s string) string {
	s = strings.ToUpper(s)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
}
