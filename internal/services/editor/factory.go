package editor

import (
	"context"
	"log/slog"
)

// Factory opens editors that share one store, bus and notifier.
type Factory struct {
	log            *slog.Logger
	store          ContentStore
	bus            Publisher
	notifier       Notifier
	sourceLanguage string
	policy         FailurePolicy
}

func NewFactory(log *slog.Logger, store ContentStore, bus Publisher, notifier Notifier, sourceLanguage string, policy FailurePolicy) *Factory {
	return &Factory{
		log:            log,
		store:          store,
		bus:            bus,
		notifier:       notifier,
		sourceLanguage: sourceLanguage,
		policy:         policy,
	}
}

// Open returns a loaded editor for the block.
func (f *Factory) Open(ctx context.Context, page, section, language string) (*Editor, error) {
	ed := New(f.log, f.store, f.bus, f.notifier, Options{
		Page:           page,
		Section:        section,
		Language:       language,
		SourceLanguage: f.sourceLanguage,
		Policy:         f.policy,
	})
	if err := ed.Load(ctx); err != nil {
		return nil, err
	}
	return ed, nil
}

// Commit runs a full edit of the block and returns the text left on display.
func (f *Factory) Commit(ctx context.Context, page, section, language, text string) (string, error) {
	ed, err := f.Open(ctx, page, section, language)
	if err != nil {
		return "", err
	}
	if err := ed.BeginEdit(); err != nil {
		return ed.Text(), err
	}
	if err := ed.Update(text); err != nil {
		return ed.Text(), err
	}
	err = ed.Save(ctx)
	return ed.Text(), err
}
