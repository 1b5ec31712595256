package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/mdnotebook/internal/config"
	"github.com/dgallion1/mdnotebook/internal/events"
	"github.com/dgallion1/mdnotebook/internal/logs"
	"github.com/dgallion1/mdnotebook/internal/notebook"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "notebook",
		Usage:     "single-file markdown notebook",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "notebook",
				Aliases: []string{"n"},
				Usage:   "path to the notebook file (overrides NOTEBOOK_PATH and the config file)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the web editor",
				Action: serveAction,
			},
			{
				Name:   "pages",
				Usage:  "list page titles in order",
				Action: pagesAction,
			},
			{
				Name:      "show",
				Usage:     "print a page body",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "plain", Usage: "strip HTML from the body"},
				},
				Action: showAction,
			},
			{
				Name:      "new",
				Usage:     "append a new page",
				ArgsUsage: "<title>",
				Action:    newAction,
			},
			{
				Name:      "rename",
				Usage:     "rename a page",
				ArgsUsage: "<old> <new>",
				Action:    renameAction,
			},
			{
				Name:      "import",
				Usage:     "append a file (txt, md, csv, html, pdf, docx) as a new page",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "page title (default: taken from the file)"},
				},
				Action: importAction,
			},
			{
				Name:   "export",
				Usage:  "render the notebook as HTML on stdout",
				Action: exportAction,
			},
		},
	}
}

// loadConfig reads config and applies the global --notebook override.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if p := c.String("notebook"); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return cfg, fmt.Errorf("notebook path: %w", err)
		}
		cfg.NotebookPath = abs
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Offline commands only surface
// warnings so their stdout stays clean.
func newLogger(w io.Writer, cfg config.Config, offline bool) (*slog.Logger, error) {
	level, err := logs.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := logs.Options{Level: level, Format: cfg.LogFormat, Journal: cfg.LogJournal}
	if offline {
		opts.Format = "text"
		opts.Journal = false
		if opts.Level < slog.LevelWarn {
			opts.Level = slog.LevelWarn
		}
	}
	return logs.New(w, opts), nil
}

// openService wires the file-backed notebook for an offline command.
func openService(c *cli.Context) (*notebook.Service, config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, cfg, err
	}
	log, err := newLogger(c.App.ErrWriter, cfg, true)
	if err != nil {
		return nil, cfg, err
	}
	svc := notebook.NewService(notebook.NewFileStore(cfg.NotebookPath), events.NewLogSink(log), log)
	return svc, cfg, nil
}
