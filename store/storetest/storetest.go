// Package storetest holds the behaviour every store.Store implementation must
// share, so each implementation runs the same checks.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/quiz"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/domain/table"
	"github.com/luca-patrignani/pushfold/store"
)

// Factory opens a fresh, empty store. preset selects whether the demo range
// is seeded on first run.
type Factory func(t *testing.T, preset bool) store.Store

// Run exercises the store contract against stores built by open.
func Run(t *testing.T, open Factory) {
	t.Run("FirstRunDefaults", func(t *testing.T) { testFirstRunDefaults(t, open) })
	t.Run("FirstRunWithoutPreset", func(t *testing.T) { testFirstRunWithoutPreset(t, open) })
	t.Run("SaveAndLoad", func(t *testing.T) { testSaveAndLoad(t, open) })
	t.Run("SaveRejectsInvalidKey", func(t *testing.T) { testSaveRejectsInvalidKey(t, open) })
	t.Run("ReturnedRangesAreCopies", func(t *testing.T) { testReturnedRangesAreCopies(t, open) })
	t.Run("ResetAll", func(t *testing.T) { testResetAll(t, open) })
	t.Run("ResultsCapped", func(t *testing.T) { testResultsCapped(t, open) })
	t.Run("ResultsRoundTrip", func(t *testing.T) { testResultsRoundTrip(t, open) })
	t.Run("CanceledContext", func(t *testing.T) { testCanceledContext(t, open) })
}

var sixCO = table.Context{Players: table.SixMax, Position: table.CO, Stack: table.BB15}

func testFirstRunDefaults(t *testing.T, open Factory) {
	s := open(t, true)
	ranges, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected only the preset, got %d ranges", len(ranges))
	}
	if ranges[store.PresetContext.Key()] != store.Preset() {
		t.Fatal("preset range not returned on first run")
	}
}

func testFirstRunWithoutPreset(t *testing.T, open Factory) {
	s := open(t, false)
	ranges, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 0 {
		t.Fatalf("expected no ranges, got %d", len(ranges))
	}
}

func testSaveAndLoad(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t, true)
	r := grid.ParseRange("22+,AT+")
	updated, err := s.Save(ctx, sixCO.Key(), r)
	if err != nil {
		t.Fatal(err)
	}
	if updated[sixCO.Key()] != r {
		t.Fatal("Save did not return the saved range")
	}
	if _, ok := updated[store.PresetContext.Key()]; !ok {
		t.Fatal("first Save should persist the preset too")
	}

	loaded, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 || loaded[sixCO.Key()] != r {
		t.Fatalf("unexpected ranges after save: %d", len(loaded))
	}

	r2 := grid.ParseRange("AA")
	if _, err := s.Save(ctx, sixCO.Key(), r2); err != nil {
		t.Fatal(err)
	}
	loaded, err = s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if loaded[sixCO.Key()] != r2 {
		t.Fatalf("expected overwrite, got %v", loaded[sixCO.Key()].Labels())
	}
}

func testSaveRejectsInvalidKey(t *testing.T, open Factory) {
	s := open(t, false)
	if _, err := s.Save(context.Background(), "2-BTN-10bb", grid.Range{}); !errors.Is(err, table.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func testReturnedRangesAreCopies(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t, false)
	if _, err := s.Save(ctx, sixCO.Key(), grid.ParseRange("KK")); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	r := loaded[sixCO.Key()]
	r[0] = true
	loaded[sixCO.Key()] = r
	delete(loaded, sixCO.Key())

	again, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again[sixCO.Key()] != grid.ParseRange("KK") {
		t.Fatal("changing a loaded mapping changed the store")
	}
}

func testResetAll(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t, true)
	if _, err := s.Save(ctx, sixCO.Key(), grid.ParseRange("AA")); err != nil {
		t.Fatal(err)
	}
	defaults, err := s.ResetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(defaults) != 1 || defaults[store.PresetContext.Key()] != store.Preset() {
		t.Fatalf("ResetAll should return the defaults, got %d ranges", len(defaults))
	}
	loaded, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loaded[sixCO.Key()]; ok {
		t.Fatal("range survived ResetAll")
	}
}

func testResultsCapped(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t, false)
	base := time.UnixMilli(1700000000000)
	for i := 0; i < quiz.MaxResults+1; i++ {
		r := quiz.Result{
			Correct:       i%2 == 0,
			UserAction:    scenario.Push,
			CorrectAction: scenario.Fold,
			HandLabel:     fmt.Sprint(i),
			ScenarioKey:   sixCO.Key(),
			Timestamp:     base.Add(time.Duration(i) * time.Second),
		}
		if err := s.AppendResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	results, err := s.LoadResults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != quiz.MaxResults {
		t.Fatalf("expected %d results, got %d", quiz.MaxResults, len(results))
	}
	if results[0].HandLabel != "1" {
		t.Fatalf("expected the first result to be evicted, oldest is %s", results[0].HandLabel)
	}
	if results[len(results)-1].HandLabel != fmt.Sprint(quiz.MaxResults) {
		t.Fatalf("unexpected newest result %s", results[len(results)-1].HandLabel)
	}
}

func testResultsRoundTrip(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t, false)
	results, err := s.LoadResults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	want := quiz.Result{
		Correct:       true,
		UserAction:    scenario.Fold,
		CorrectAction: scenario.Fold,
		HandLabel:     "72o",
		ScenarioKey:   "9-UTG+2-20bb",
		Timestamp:     time.UnixMilli(1700000123456),
	}
	if err := s.AppendResult(ctx, want); err != nil {
		t.Fatal(err)
	}
	results, err = s.LoadResults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	got := results[0]
	if got.Correct != want.Correct || got.UserAction != want.UserAction || got.CorrectAction != want.CorrectAction ||
		got.HandLabel != want.HandLabel || got.ScenarioKey != want.ScenarioKey || !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func testCanceledContext(t *testing.T, open Factory) {
	s := open(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.LoadAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := s.AppendResult(ctx, quiz.Result{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
