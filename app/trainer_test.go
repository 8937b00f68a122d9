package app

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/quiz"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/domain/table"
	"github.com/luca-patrignani/pushfold/store"
)

// failingStore reports every load as an error, to check filters are
// validated before the store is read.
type failingStore struct {
	store.Store
}

func (failingStore) LoadAll(context.Context) (store.Ranges, error) {
	return nil, errors.New("store unavailable")
}

var huCtx = table.Context{Players: table.HeadsUp, Position: table.SB, Stack: table.BB20}

func huFilters() scenario.Filters {
	return scenario.Filters{
		Players:   []table.PlayerCount{table.HeadsUp},
		Positions: []table.Position{table.SB},
		Stacks:    []table.Stack{table.BB20},
	}
}

func newTestTrainer(t *testing.T, s store.Store) *Trainer {
	t.Helper()
	tr := NewTrainer(s, scenario.NewSampler(rand.New(rand.NewSource(11))), nil)
	tr.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return tr
}

func TestTrainerRound(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(store.WithPreset(false))
	var all grid.Range
	for i := range all {
		all[i] = true
	}
	if _, err := s.Save(ctx, huCtx.Key(), all); err != nil {
		t.Fatal(err)
	}
	tr := newTestTrainer(t, s)

	sc, err := tr.Next(ctx, huFilters())
	if err != nil {
		t.Fatal(err)
	}
	if sc.Context != huCtx || sc.Correct != scenario.Push {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	r, err := tr.Answer(ctx, sc, scenario.Fold)
	if err != nil {
		t.Fatal(err)
	}
	if r.Correct || r.ScenarioKey != huCtx.Key() || r.HandLabel != sc.Cell.Label {
		t.Fatalf("unexpected result %+v", r)
	}
	if _, err := tr.Answer(ctx, sc, scenario.Push); err != nil {
		t.Fatal(err)
	}

	stats, err := tr.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 2 || stats.Correct != 1 || len(stats.Recent) != 2 || stats.Recent[0] || !stats.Recent[1] {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestTrainerEmptyFilterBeforeLoad(t *testing.T) {
	tr := newTestTrainer(t, failingStore{})
	_, err := tr.Next(context.Background(), scenario.Filters{Players: []table.PlayerCount{table.SixMax}})
	if !errors.Is(err, scenario.ErrEmptyFilter) {
		t.Fatalf("expected ErrEmptyFilter, got %v", err)
	}
}

func TestTrainerNoValidScenario(t *testing.T) {
	tr := newTestTrainer(t, store.NewMemory())
	f := scenario.Filters{
		Players:   []table.PlayerCount{table.HeadsUp},
		Positions: []table.Position{table.UTG},
		Stacks:    table.Stacks,
	}
	if _, err := tr.Next(context.Background(), f); !errors.Is(err, scenario.ErrNoValidScenario) {
		t.Fatalf("expected ErrNoValidScenario, got %v", err)
	}
}

func TestTrainerRejectsUnknownAction(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	tr := newTestTrainer(t, s)
	sc, err := tr.Next(ctx, huFilters())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Answer(ctx, sc, "Limp"); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	results, err := s.LoadResults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatal("an invalid answer must not be recorded")
	}
}
