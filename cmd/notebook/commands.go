package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/mdnotebook/internal/importer"
	"github.com/dgallion1/mdnotebook/internal/render"
	"github.com/urfave/cli/v2"
)

func pagesAction(c *cli.Context) error {
	svc, _, err := openService(c)
	if err != nil {
		return err
	}
	titles, err := svc.Titles(c.Context)
	if err != nil {
		return err
	}
	for _, t := range titles {
		fmt.Fprintln(c.App.Writer, t)
	}
	return nil
}

func showAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: show <title>")
	}
	svc, _, err := openService(c)
	if err != nil {
		return err
	}
	p, err := svc.Page(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	if c.Bool("plain") {
		fmt.Fprintln(c.App.Writer, render.PlainText(p.Body))
		return nil
	}
	fmt.Fprintln(c.App.Writer, strings.TrimSpace(p.Body))
	return nil
}

func newAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: new <title>")
	}
	svc, _, err := openService(c)
	if err != nil {
		return err
	}
	return svc.Create(c.Context, c.Args().First())
}

func renameAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: rename <old> <new>")
	}
	svc, _, err := openService(c)
	if err != nil {
		return err
	}
	return svc.Rename(c.Context, c.Args().Get(0), c.Args().Get(1))
}

func importAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: import <file>")
	}
	svc, cfg, err := openService(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if !importer.IsSupported(path) {
		return fmt.Errorf("unsupported file type: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > cfg.MaxUploadBytes {
		return fmt.Errorf("file exceeds max size (%d bytes)", cfg.MaxUploadBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	page, err := importer.Import(data, path, c.String("title"), importer.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		return err
	}
	if err := svc.Import(c.Context, page.Title, page.Body); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "imported %q\n", page.Title)
	return nil
}

func exportAction(c *cli.Context) error {
	svc, _, err := openService(c)
	if err != nil {
		return err
	}
	doc, err := svc.Document(c.Context)
	if err != nil {
		return err
	}
	out, err := render.Markdown(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.App.Writer, out)
	return err
}
