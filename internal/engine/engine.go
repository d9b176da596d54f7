// Package engine owns one editing session of a profile document: the
// in-memory copy, its undo history, pending confirmations and the ordered
// background persistence of every change.
//
// All operations apply to memory synchronously and return immediately.
// Persistence happens on a single worker goroutine in call order. A failed
// write is reported as a notification and, for undoable operations that
// nothing has superseded yet, rolled back.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/logger"
	"github.com/MrSnakeDoc/bio/internal/normalize"
	"github.com/MrSnakeDoc/bio/internal/storeclient"
)

// MaxHistory is the number of undo snapshots kept.
const MaxHistory = 20

var (
	ErrNotLoaded        = errors.New("no document loaded")
	ErrUnknownID        = errors.New("unknown id")
	ErrHistoryEmpty     = errors.New("nothing to undo")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoConfirmation   = errors.New("no pending confirmation")
	ErrClosed           = errors.New("engine closed")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// errNoop aborts a mutation without error and without side effects.
var errNoop = errors.New("no change")

// Options configures an Engine. The zero value is an anonymous session.
type Options struct {
	// Username of the authenticated user. Empty means anonymous: changes
	// stay in memory and import/export are refused.
	Username string

	Logger   logger.Logger
	Notifier Notifier
	// OnLogout is called when loading fails for an authenticated session.
	OnLogout func()

	NewID        func() string
	Now          func() time.Time
	Placeholder  func(now time.Time) domain.Document
	WriteTimeout time.Duration
}

// Engine is a single editing session.
type Engine struct {
	store       storeclient.Store
	log         logger.Logger
	notifier    Notifier
	onLogout    func()
	newID       func() string
	now         func() time.Time
	placeholder func(time.Time) domain.Document
	timeout     time.Duration

	mu       sync.Mutex
	username string
	doc      *domain.Document
	history  []domain.Document // most recent first
	pending  *Confirmation
	revision uint64
	closed   bool
	queue    []job

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

// New creates an engine over store and starts its persistence worker.
// Call Load before any operation and Close when the session ends.
func New(store storeclient.Store, opts Options) *Engine {
	e := &Engine{
		store:       store,
		log:         opts.Logger,
		notifier:    opts.Notifier,
		onLogout:    opts.OnLogout,
		newID:       opts.NewID,
		now:         opts.Now,
		placeholder: opts.Placeholder,
		timeout:     opts.WriteTimeout,
		username:    opts.Username,
		wake:        make(chan struct{}, 1),
		quit:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.placeholder == nil {
		e.placeholder = catalog.Placeholder
	}
	if e.timeout <= 0 {
		e.timeout = 15 * time.Second
	}

	go e.run()
	return e
}

// Load fetches the user's document and makes it current, clearing history.
//
// Anonymous sessions get the placeholder document. A missing document is
// seeded and persisted. Any other failure installs the placeholder, ends an
// authenticated session through OnLogout and is returned.
func (e *Engine) Load(ctx context.Context) error {
	username := e.Username()
	if username == "" {
		e.install(e.placeholder(e.now()))
		return nil
	}

	doc, err := e.store.FetchDocument(ctx, username)
	switch {
	case err == nil:
		e.install(doc)
		e.log.Debug("document loaded", logger.String("user", username))
		return nil

	case errors.Is(err, storeclient.ErrNotFound):
		seed := catalog.NewUserDocument(username, e.newID)
		e.install(seed)
		e.mu.Lock()
		e.enqueueLocked(job{doc: seed, revision: e.revision})
		e.mu.Unlock()
		e.log.Info("seeded new document", logger.String("user", username))
		return nil

	default:
		e.log.Warn("failed to load document, falling back to placeholder",
			logger.String("user", username), logger.Error(err))
		e.install(e.placeholder(e.now()))
		e.mu.Lock()
		e.username = ""
		e.mu.Unlock()
		if e.onLogout != nil {
			e.onLogout()
		}
		return fmt.Errorf("load document: %w", err)
	}
}

// Username returns the authenticated user, or "" for anonymous sessions.
func (e *Engine) Username() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.username
}

// Document returns a copy of the current document.
func (e *Engine) Document() (domain.Document, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return domain.Document{}, false
	}
	return e.doc.Clone(), true
}

// History returns copies of the undo snapshots, most recent first.
func (e *Engine) History() []domain.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Document, len(e.history))
	for i, d := range e.history {
		out[i] = d.Clone()
	}
	return out
}

// Undo makes the most recent snapshot current again and persists it. The
// replaced document is not pushed onto history.
func (e *Engine) Undo() error {
	e.mu.Lock()
	if e.doc == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}
	if len(e.history) == 0 {
		e.mu.Unlock()
		return ErrHistoryEmpty
	}
	prev := e.history[0]
	e.history = e.history[1:]
	e.doc = &prev
	e.revision++
	if e.username != "" {
		e.enqueueLocked(job{doc: prev, revision: e.revision})
	}
	e.mu.Unlock()

	e.notify(LevelInfo, msgUndo)
	return nil
}

// Flush blocks until every change made so far has been written or has
// failed.
func (e *Engine) Flush(ctx context.Context) error {
	done := make(chan struct{})

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.enqueueLocked(job{barrier: done})
	e.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the session. Queued writes still go out but their outcome no
// longer touches the document or produces notifications.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.pending = nil
	close(e.quit)
}

// install replaces the document wholesale and resets session state.
func (e *Engine) install(doc domain.Document) {
	doc.Palettes = normalize.EnsureDefaultPalette(doc.Palettes)
	doc.Customization.CustomColors = doc.Customization.CustomColors.Ensure()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = &doc
	e.history = nil
	e.pending = nil
	e.revision++
}

// mutate applies fn to a copy of the current document and commits it.
// fn returns the success notification to emit, if any. Returning errNoop
// leaves everything untouched.
func (e *Engine) mutate(undoable bool, fn func(doc *domain.Document) (string, error)) error {
	e.mu.Lock()
	if e.doc == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	next := e.doc.Clone()
	notice, err := fn(&next)
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, errNoop) {
			return nil
		}
		return err
	}
	e.commitLocked(next, undoable)
	e.mu.Unlock()

	if notice != "" {
		e.notify(LevelSuccess, notice)
	}
	return nil
}

func (e *Engine) commitLocked(next domain.Document, undoable bool) {
	prev := *e.doc
	if undoable {
		e.history = append([]domain.Document{prev}, e.history...)
		if len(e.history) > MaxHistory {
			e.history = e.history[:MaxHistory]
		}
	}
	e.doc = &next
	e.revision++

	if e.username == "" {
		return
	}
	j := job{doc: next, revision: e.revision}
	if undoable {
		j.prev = &prev
	}
	e.enqueueLocked(j)
}

func (e *Engine) notify(level Level, msg string) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(Notification{Level: level, Message: msg})
}

func unknown(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrUnknownID)
}
