package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/table"
	"github.com/luca-patrignani/pushfold/store"
)

// ErrNothingParsed is returned by Draft.Import when non-empty text selected no hand.
var ErrNothingParsed = errors.New("could not parse range")

// Draft is the working copy of one context's range. Changing it never
// touches the store until it is saved.
type Draft struct {
	Context table.Context
	Range   grid.Range
	Dirty   bool
}

// Toggle flips one hand.
func (d Draft) Toggle(index int) (Draft, error) {
	r, err := d.Range.Toggle(index)
	if err != nil {
		return d, err
	}
	d.Range = r
	d.Dirty = true
	return d, nil
}

// Clear folds every hand.
func (d Draft) Clear() Draft {
	d.Range = grid.Range{}
	d.Dirty = true
	return d
}

// Import replaces the range with the parsed text and returns the tokens that
// were not understood. Blank text leaves the draft unchanged.
func (d Draft) Import(text string) (Draft, []string, error) {
	if strings.TrimSpace(text) == "" {
		return d, nil, nil
	}
	r, skipped := grid.ParseRangeReport(text)
	if r.Empty() {
		return d, skipped, fmt.Errorf("%w: %q", ErrNothingParsed, text)
	}
	d.Range = r
	d.Dirty = true
	return d, skipped, nil
}

// Editor loads and saves range drafts.
type Editor struct {
	store  store.Store
	logger *slog.Logger
}

func NewEditor(s store.Store, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{store: s, logger: logger}
}

// Open returns a draft of the stored range for c, all-fold if none is stored.
func (e *Editor) Open(ctx context.Context, c table.Context) (Draft, error) {
	if err := c.Validate(); err != nil {
		return Draft{}, err
	}
	ranges, err := e.store.LoadAll(ctx)
	if err != nil {
		return Draft{}, fmt.Errorf("load ranges: %w", err)
	}
	return Draft{Context: c, Range: ranges[c.Key()]}, nil
}

// Save stores the draft and returns it marked clean together with the
// updated mapping.
func (e *Editor) Save(ctx context.Context, d Draft) (Draft, store.Ranges, error) {
	ranges, err := e.store.Save(ctx, d.Context.Key(), d.Range)
	if err != nil {
		return d, nil, err
	}
	e.logger.Info("range saved", "context", d.Context.Key(), "hands", d.Range.Count(), "combos", d.Range.Combos())
	d.Dirty = false
	return d, ranges, nil
}

// ResetAll deletes every stored range and returns the defaults.
func (e *Editor) ResetAll(ctx context.Context) (store.Ranges, error) {
	ranges, err := e.store.ResetAll(ctx)
	if err != nil {
		return nil, err
	}
	e.logger.Warn("all ranges reset to defaults")
	return ranges, nil
}
