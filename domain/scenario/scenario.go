// Package scenario deals training hands: it picks a table context out of the
// enabled filters, deals two cards, places them on the hand grid and reads
// the correct push/fold answer off the stored range.
package scenario

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/luca-patrignani/pushfold/domain/deck"
	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/table"
)

// MaxAttempts bounds how many table sizes are drawn before giving up on the
// current filters.
const MaxAttempts = 50

var (
	ErrEmptyFilter     = errors.New("select at least one option for each category")
	ErrNoValidScenario = errors.New("no valid scenario for current filters")
)

// NoValidScenarioError is returned when MaxAttempts draws found no table size
// with an enabled first-in position.
type NoValidScenarioError struct {
	Attempts int
}

func (e *NoValidScenarioError) Error() string {
	return fmt.Sprintf("%s after %d attempts, adjust your filters", ErrNoValidScenario, e.Attempts)
}

func (e *NoValidScenarioError) Unwrap() error {
	return ErrNoValidScenario
}

type Action string

const (
	Push Action = "Push"
	Fold Action = "Fold"
)

// Filters are the table sizes, positions and stacks enabled for training.
type Filters struct {
	Players   []table.PlayerCount
	Positions []table.Position
	Stacks    []table.Stack
}

// DefaultFilters enables 6-max with every position and stack.
func DefaultFilters() Filters {
	return Filters{
		Players:   []table.PlayerCount{table.SixMax},
		Positions: slices.Clone(table.Positions),
		Stacks:    slices.Clone(table.Stacks),
	}
}

// Validate reports an empty category with ErrEmptyFilter and an unknown table
// size or stack with table.ErrInvalidContext.
func (f Filters) Validate() error {
	switch {
	case len(f.Players) == 0:
		return fmt.Errorf("%w: no table size enabled", ErrEmptyFilter)
	case len(f.Positions) == 0:
		return fmt.Errorf("%w: no position enabled", ErrEmptyFilter)
	case len(f.Stacks) == 0:
		return fmt.Errorf("%w: no stack enabled", ErrEmptyFilter)
	}
	for _, n := range f.Players {
		if !n.Valid() {
			return fmt.Errorf("%w: unsupported player count %d", table.ErrInvalidContext, n)
		}
	}
	for _, s := range f.Stacks {
		if !s.Valid() {
			return fmt.Errorf("%w: unsupported stack %q", table.ErrInvalidContext, s)
		}
	}
	return nil
}

// Scenario is one quiz round. It is a value: copies never share state.
type Scenario struct {
	Context table.Context
	Cell    grid.Cell
	Cards   [2]deck.Card
	Correct Action
}

// Key returns the storage key of the scenario's context.
func (s Scenario) Key() string {
	return s.Context.Key()
}

// CellOf places two distinct cards on the grid: a pair on the diagonal,
// suited cards above it and offsuit cards below it.
func CellOf(a, b deck.Card) grid.Cell {
	hi, lo := int(a.Rank()), int(b.Rank())
	if hi > lo {
		hi, lo = lo, hi
	}
	var row, col int
	switch {
	case hi == lo:
		row, col = hi, hi
	case a.Suit() == b.Suit():
		row, col = hi, lo
	default:
		row, col = lo, hi
	}
	c, _ := grid.Classify(row, col)
	return c
}

// Sampler draws scenarios from its random source. It is not safe for
// concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler reading from rng, or from a time seeded source
// when rng is nil.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rng: rng}
}

// PickContext draws a table size, then a legal enabled position and a stack.
// Table sizes are redrawn at most MaxAttempts times while none of their
// first-in positions is enabled.
func (s *Sampler) PickContext(f Filters) (table.Context, error) {
	if err := f.Validate(); err != nil {
		return table.Context{}, err
	}
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		players := f.Players[s.rng.Intn(len(f.Players))]
		var candidates []table.Position
		for _, p := range table.LegalPositions(players) {
			if slices.Contains(f.Positions, p) {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		return table.Context{
			Players:  players,
			Position: candidates[s.rng.Intn(len(candidates))],
			Stack:    f.Stacks[s.rng.Intn(len(f.Stacks))],
		}, nil
	}
	return table.Context{}, &NoValidScenarioError{Attempts: MaxAttempts}
}

// Deal draws two cards for ctx and judges them against r.
func (s *Sampler) Deal(ctx table.Context, r grid.Range) (Scenario, error) {
	a, b := deck.DrawTwo(s.rng)
	if err := deck.CheckDistinct(a, b); err != nil {
		return Scenario{}, err
	}
	cell := CellOf(a, b)
	correct := Fold
	if r[cell.Index()] {
		correct = Push
	}
	return Scenario{
		Context: ctx,
		Cell:    cell,
		Cards:   [2]deck.Card{a, b},
		Correct: correct,
	}, nil
}

// Sample picks a context and deals a hand against its stored range. A context
// without a stored range folds everything.
func (s *Sampler) Sample(f Filters, ranges map[string]grid.Range) (Scenario, error) {
	ctx, err := s.PickContext(f)
	if err != nil {
		return Scenario{}, err
	}
	return s.Deal(ctx, ranges[ctx.Key()])
}
