// Package loader performs the one-shot load of the résumé document and
// exposes its state to the views.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/cv-site/internal/metrics"
	"github.com/jonathan/cv-site/internal/types"
	"github.com/rs/zerolog"
)

// DocumentName is the well-known resource name of the résumé document.
const DocumentName = "cv.json"

// Status is the lifecycle state of a load.
type Status string

const (
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// Source produces the raw document bytes.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// State is a snapshot of the loader. Document is nil unless Status is loaded.
type State struct {
	Status   Status
	Document *types.CVDocument
	Err      error
}

// Loader fetches the document exactly once.
type Loader struct {
	source Source
	logger zerolog.Logger

	once    sync.Once
	done    chan struct{}
	fetches int

	mu     sync.RWMutex
	state  State
	closed bool
}

// New creates a loader in the loading state.
func New(source Source, logger zerolog.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger,
		done:   make(chan struct{}),
		state:  State{Status: StatusLoading},
	}
}

// Start issues the fetch in the background. Calls after the first do nothing.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		l.mu.Lock()
		l.fetches++
		l.mu.Unlock()
		go l.run(ctx)
	})
}

// Load starts the fetch if needed and waits for it or for ctx.
func (l *Loader) Load(ctx context.Context) State {
	l.Start(ctx)
	select {
	case <-l.done:
	case <-ctx.Done():
	}
	return l.State()
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)

	data, err := l.source.Fetch(ctx)
	var doc *types.CVDocument
	if err == nil {
		doc, err = types.DecodeCVDocument(data)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		l.logger.Debug().Str("event", "cv_load_discarded").Msg("document arrived after close")
		return
	}

	if err != nil {
		l.state = State{Status: StatusFailed, Err: err}
		metrics.DocumentFetches.WithLabelValues(string(StatusFailed)).Inc()
		l.logger.Error().Err(err).Str("event", "cv_load_failed").Str("source", sourceName(l.source)).Msg("failed to load document")
		return
	}

	l.state = State{Status: StatusLoaded, Document: doc}
	metrics.DocumentFetches.WithLabelValues(string(StatusLoaded)).Inc()
	l.logger.Info().
		Str("event", "cv_loaded").
		Int("experience", len(doc.Experience)).
		Int("education", len(doc.Education)).
		Int("skills", len(doc.Skills)).
		Msg("document loaded")
}

// State returns the current snapshot.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Done is closed once the fetch has finished.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Fetches reports how many fetches were issued. It never exceeds one.
func (l *Loader) Fetches() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fetches
}

// Close detaches the loader; a result that arrives later is dropped and the
// state is left as it was.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

// FileSource reads the document from a directory on disk.
type FileSource struct {
	Dir string
}

// Path returns the document path.
func (s FileSource) Path() string {
	return filepath.Join(s.Dir, DocumentName)
}

// Fetch reads the document file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path(), err)
	}
	return data, nil
}

// String names the source in logs.
func (s FileSource) String() string {
	return s.Path()
}

func sourceName(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
