// Package store persists push/fold ranges keyed by context and the capped log
// of quiz results.
//
// # Contract
//
// Every Range handed out is a copy: callers may change it freely without
// affecting the stored value, and must Save to publish a change. Stored data
// that cannot be decoded is replaced by its default value and logged, it is
// never reported as an error.
//
// # First run
//
// While nothing has been saved, LoadAll returns the defaults: either an
// empty mapping or, when the preset is enabled, the 6-max BTN 10bb demo range.
// The first Save persists those defaults together with the saved range.
package store

import (
	"context"
	"log/slog"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/quiz"
	"github.com/luca-patrignani/pushfold/domain/table"
)

// Ranges maps context keys to their range.
type Ranges = map[string]grid.Range

type Store interface {
	// LoadAll returns every stored range, or the defaults if none is stored.
	LoadAll(ctx context.Context) (Ranges, error)
	// Save stores r under key and returns the updated mapping.
	Save(ctx context.Context, key string, r grid.Range) (Ranges, error)
	// ResetAll removes every stored range and returns the defaults.
	ResetAll(ctx context.Context) (Ranges, error)
	// AppendResult adds r to the log, evicting the oldest entries past quiz.MaxResults.
	AppendResult(ctx context.Context, r quiz.Result) error
	// LoadResults returns the log, oldest first.
	LoadResults(ctx context.Context) ([]quiz.Result, error)
	Close() error
}

// PresetContext is the context seeded with the demo range on first run.
var PresetContext = table.Context{Players: table.SixMax, Position: table.BTN, Stack: table.BB10}

// Preset returns the demo range: every pair, every ace, every suited king and
// every hand made of two cards ten or higher.
func Preset() grid.Range {
	var r grid.Range
	for _, c := range grid.All() {
		hi, lo := min(c.Row, c.Col), max(c.Row, c.Col)
		switch {
		case c.Kind == grid.Pair:
		case hi == int(grid.Ace):
		case hi == int(grid.King) && c.Kind == grid.Suited:
		case lo <= int(grid.Ten):
		default:
			continue
		}
		r[c.Index()] = true
	}
	return r
}

// Defaults returns the mapping used while nothing is stored.
func Defaults(preset bool) Ranges {
	out := make(Ranges)
	if preset {
		out[PresetContext.Key()] = Preset()
	}
	return out
}

type Options struct {
	Logger *slog.Logger
	// Preset seeds the demo range on first run.
	Preset bool
}

type Option func(Options) Options

// Resolve applies opts over the defaults: slog.Default() and the preset enabled.
func Resolve(opts ...Option) Options {
	o := Options{
		Logger: slog.Default(),
		Preset: true,
	}
	for _, opt := range opts {
		o = opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func WithLogger(logger *slog.Logger) Option {
	return func(o Options) Options {
		o.Logger = logger
		return o
	}
}

func WithPreset(enabled bool) Option {
	return func(o Options) Options {
		o.Preset = enabled
		return o
	}
}

// CheckKey rejects keys that do not name a valid context.
func CheckKey(key string) error {
	_, err := table.ParseKey(key)
	return err
}

func clone(in Ranges) Ranges {
	out := make(Ranges, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
