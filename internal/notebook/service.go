// Package notebook applies page operations to the backing store. Every call
// loads the whole document, runs one sections operation on it and, for
// mutations, writes the result back, all under a single-writer lock.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dgallion1/mdnotebook/internal/events"
	"github.com/dgallion1/mdnotebook/internal/sections"
)

// ErrTitleExists is returned by Import when the title is already in use.
// Imported content is written through a title lookup, and lookups resolve to
// the first match, so a duplicate would overwrite the existing page.
var ErrTitleExists = errors.New("title already exists")

// Service is the notebook's single entry point for reads and writes.
type Service struct {
	mu    sync.Mutex
	store Store
	sink  events.Sink
	log   *slog.Logger
}

// NewService creates a Service. A nil sink discards events.
func NewService(store Store, sink events.Sink, log *slog.Logger) *Service {
	if sink == nil {
		sink = events.Nop{}
	}
	return &Service{
		store: store,
		sink:  sink,
		log:   log.With("component", "notebook"),
	}
}

// Document returns the raw notebook text.
func (s *Service) Document(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

// Pages returns all pages in document order.
func (s *Service) Pages(ctx context.Context) ([]sections.Page, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return sections.Parse(doc), nil
}

// Titles returns page titles in document order.
func (s *Service) Titles(ctx context.Context) ([]string, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return sections.Titles(doc), nil
}

// Page returns the first page titled title.
func (s *Service) Page(ctx context.Context, title string) (sections.Page, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return sections.Page{}, err
	}
	return sections.FindByTitle(doc, title)
}

// Save replaces the body of oldTitle and retitles it. An empty newTitle
// keeps the old one. Titles are used as given.
func (s *Service) Save(ctx context.Context, oldTitle, newTitle, html string) error {
	if oldTitle == "" {
		return fmt.Errorf("missing oldTitle: %w", sections.ErrInvalidInput)
	}
	if newTitle == "" {
		newTitle = oldTitle
	}
	err := s.mutate(ctx, func(doc string) (string, error) {
		return sections.ReplaceContent(doc, oldTitle, newTitle, html)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, events.PageSaved, "old_title", oldTitle, "new_title", newTitle)
	return nil
}

// Create appends a placeholder page.
func (s *Service) Create(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("missing title: %w", sections.ErrInvalidInput)
	}
	err := s.mutate(ctx, func(doc string) (string, error) {
		return sections.InsertPage(doc, title), nil
	})
	if err != nil {
		return err
	}
	s.emit(ctx, events.PageCreated, "title", title)
	return nil
}

// Rename changes the heading of the first page titled oldTitle.
func (s *Service) Rename(ctx context.Context, oldTitle, newTitle string) error {
	oldTitle = strings.TrimSpace(oldTitle)
	newTitle = strings.TrimSpace(newTitle)
	if oldTitle == "" || newTitle == "" {
		return fmt.Errorf("missing oldTitle/newTitle: %w", sections.ErrInvalidInput)
	}
	err := s.mutate(ctx, func(doc string) (string, error) {
		return sections.RenamePage(doc, oldTitle, newTitle)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, events.PageRenamed, "old_title", oldTitle, "new_title", newTitle)
	return nil
}

// Import appends a page titled title holding body, in one write.
func (s *Service) Import(ctx context.Context, title, body string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("missing title: %w", sections.ErrInvalidInput)
	}
	err := s.mutate(ctx, func(doc string) (string, error) {
		if _, err := sections.FindByTitle(doc, title); err == nil {
			return "", fmt.Errorf("import %q: %w", title, ErrTitleExists)
		}
		return sections.ReplaceContent(sections.InsertPage(doc, title), title, title, body)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, events.PageImported, "title", title, "bytes", fmt.Sprint(len(body)))
	return nil
}

// mutate runs one load/apply/save cycle under the writer lock. Nothing is
// written when fn fails.
func (s *Service) mutate(ctx context.Context, fn func(doc string) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(doc)
	if err != nil {
		s.log.Debug("mutation rejected", "error", err)
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.log.Debug("notebook written", "bytes_before", len(doc), "bytes_after", len(next))
	return nil
}

func (s *Service) emit(ctx context.Context, kind string, kv ...string) {
	attrs := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	s.sink.Emit(ctx, events.Event{Kind: kind, Attrs: attrs})
}
