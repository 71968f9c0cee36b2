// Package editor drives a single editable content block through
// loading, viewing, editing and saving.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"site_cms/internal/domain/models"
	"site_cms/internal/events"
	"site_cms/internal/lib/logger/sl"
)

var (
	ErrBusy     = errors.New("editor is busy")
	ErrReadOnly = errors.New("editor is read-only")
)

// FailurePolicy decides what a failed save leaves on screen.
type FailurePolicy int

const (
	// RevertOnFailure shows the last committed text again.
	RevertOnFailure FailurePolicy = iota
	// RetainOptimistic keeps showing the unsaved text.
	RetainOptimistic
)

type ContentStore interface {
	Get(ctx context.Context, page, section, language string) string
	Set(ctx context.Context, page, section, content, language string) error
}

type Publisher interface {
	Publish(e events.ContentChanged)
}

type Notifier interface {
	Notify(ctx context.Context, typ models.NotificationType, title, message string) models.Notification
}

type Options struct {
	Page           string
	Section        string
	Language       string
	SourceLanguage string
	DefaultText    string
	ReadOnly       bool
	Policy         FailurePolicy
}

type Editor struct {
	log      *slog.Logger
	store    ContentStore
	bus      Publisher
	notifier Notifier
	opts     Options

	mu        sync.Mutex
	state     State
	committed string
	display   string
	pending   string
}

func New(log *slog.Logger, store ContentStore, bus Publisher, notifier Notifier, opts Options) *Editor {
	if opts.SourceLanguage == "" {
		opts.SourceLanguage = "en"
	}
	if opts.Language == "" {
		opts.Language = opts.SourceLanguage
	}
	return &Editor{
		log:      log,
		store:    store,
		bus:      bus,
		notifier: notifier,
		opts:     opts,
		state:    Loading,
	}
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Text is what the block currently displays.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.display
}

func (e *Editor) Pending() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

func (e *Editor) bound() bool {
	return e.opts.Page != "" && e.opts.Section != ""
}

// Load fetches the stored text, or uses the default when the editor is not bound to a block.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.state != Loading {
		e.mu.Unlock()
		return fmt.Errorf("%w: already loaded", ErrInvalidTransition)
	}
	e.mu.Unlock()

	text := e.opts.DefaultText
	if e.bound() {
		text = e.store.Get(ctx, e.opts.Page, e.opts.Section, e.opts.Language)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := Transition(e.state, EventLoaded)
	if err != nil {
		return err
	}
	e.state = next
	e.committed = text
	e.display = text
	e.pending = text

	return nil
}

func (e *Editor) BeginEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.opts.ReadOnly {
		return ErrReadOnly
	}
	if e.state == Loading || e.state == Saving {
		return ErrBusy
	}

	next, err := Transition(e.state, EventEdit)
	if err != nil {
		return err
	}
	e.state = next
	e.pending = e.committed

	return nil
}

func (e *Editor) Update(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Editing {
		return fmt.Errorf("%w: update while %s", ErrInvalidTransition, e.state)
	}
	e.pending = text

	return nil
}

// Cancel drops pending edits.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := Transition(e.state, EventCancel)
	if err != nil {
		return err
	}
	e.state = next
	e.pending = e.committed
	e.display = e.committed

	return nil
}

// Save shows the pending text right away, then persists it. Only one save runs at a time.
func (e *Editor) Save(ctx context.Context) error {
	const op = "editor.Editor.Save"

	e.mu.Lock()
	if e.state == Saving {
		e.mu.Unlock()
		return ErrBusy
	}
	next, err := Transition(e.state, EventCommit)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.state = next
	previous := e.committed
	text := e.pending
	e.display = text
	e.mu.Unlock()

	log := e.log.With(
		slog.String("op", op),
		slog.String("page", e.opts.Page),
		slog.String("section", e.opts.Section),
		slog.String("language", e.opts.Language),
	)

	var saveErr error
	if e.bound() {
		saveErr = e.store.Set(ctx, e.opts.Page, e.opts.Section, text, e.opts.Language)
	}

	e.mu.Lock()
	if saveErr != nil {
		e.state, _ = Transition(e.state, EventSaveFailed)
		if e.opts.Policy == RevertOnFailure {
			e.display = previous
			e.pending = previous
		}
		e.mu.Unlock()

		log.Error("failed to save content", sl.Err(saveErr))
		e.notify(ctx, models.NotificationError, "Save failed", "Your changes could not be saved. Please try again.")

		return fmt.Errorf("%s: %w", op, saveErr)
	}

	e.state, _ = Transition(e.state, EventSaveSucceeded)
	e.committed = text
	e.mu.Unlock()

	log.Info("content saved")

	if e.bus != nil {
		e.bus.Publish(events.ContentChanged{
			Page:      e.opts.Page,
			Section:   e.opts.Section,
			Language:  e.opts.Language,
			Content:   text,
			ChangedAt: time.Now().UTC(),
		})
	}

	message := "Content updated."
	if e.opts.Language == e.opts.SourceLanguage {
		message = "Content updated. Translations will be refreshed automatically."
	}
	e.notify(ctx, models.NotificationSuccess, "Saved", message)

	return nil
}

func (e *Editor) notify(ctx context.Context, typ models.NotificationType, title, message string) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(ctx, typ, title, message)
}
