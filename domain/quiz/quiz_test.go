package quiz

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/domain/table"
)

func testScenario(t *testing.T, correct scenario.Action) scenario.Scenario {
	t.Helper()
	cell, err := grid.CellFor("AKs")
	if err != nil {
		t.Fatal(err)
	}
	return scenario.Scenario{
		Context: table.Context{Players: table.SixMax, Position: table.BTN, Stack: table.BB10},
		Cell:    cell,
		Correct: correct,
	}
}

func TestJudge(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	cases := []struct {
		correct, user scenario.Action
		want          bool
	}{
		{scenario.Push, scenario.Push, true},
		{scenario.Push, scenario.Fold, false},
		{scenario.Fold, scenario.Fold, true},
		{scenario.Fold, scenario.Push, false},
	}
	for _, tc := range cases {
		r, err := Judge(testScenario(t, tc.correct), tc.user, now)
		if err != nil {
			t.Fatal(err)
		}
		if r.Correct != tc.want {
			t.Errorf("correct=%s user=%s: got %v, want %v", tc.correct, tc.user, r.Correct, tc.want)
		}
		if r.UserAction != tc.user || r.CorrectAction != tc.correct {
			t.Errorf("actions not recorded: %+v", r)
		}
		if r.HandLabel != "AKs" || r.ScenarioKey != "6-BTN-10bb" || !r.Timestamp.Equal(now) {
			t.Errorf("unexpected result %+v", r)
		}
	}
}

func TestJudgeRejectsUnknownAction(t *testing.T) {
	if _, err := Judge(testScenario(t, scenario.Push), "Call", time.Now()); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestAppendCappedEvictsOldest(t *testing.T) {
	var log []Result
	for i := 0; i < MaxResults+1; i++ {
		log = AppendCapped(log, Result{HandLabel: fmt.Sprint(i)}, MaxResults)
	}
	if len(log) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(log))
	}
	if log[0].HandLabel != "1" {
		t.Fatalf("expected the oldest entry to be evicted, first is %s", log[0].HandLabel)
	}
	if log[len(log)-1].HandLabel != fmt.Sprint(MaxResults) {
		t.Fatalf("expected the newest entry last, got %s", log[len(log)-1].HandLabel)
	}
}

func TestAppendCappedDoesNotAlias(t *testing.T) {
	log := make([]Result, 2, 10)
	out := AppendCapped(log, Result{HandLabel: "new"}, 10)
	out[0].HandLabel = "changed"
	if log[0].HandLabel == "changed" {
		t.Fatal("AppendCapped shares memory with its input")
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s.Total != 0 || s.Accuracy != 0 || len(s.Recent) != 0 {
		t.Fatalf("unexpected empty summary %+v", s)
	}
	var results []Result
	for i := 0; i < 30; i++ {
		results = append(results, Result{Correct: i%3 != 0})
	}
	s := Summarize(results)
	if s.Total != 30 || s.Correct != 20 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.Accuracy < 0.666 || s.Accuracy > 0.667 {
		t.Fatalf("unexpected accuracy %f", s.Accuracy)
	}
	if len(s.Recent) != RecentWindow {
		t.Fatalf("expected %d recent outcomes, got %d", RecentWindow, len(s.Recent))
	}
	// results[10] is the first one kept, and 10%3 != 0.
	if !s.Recent[0] || s.Recent[2] {
		t.Fatalf("unexpected recent strip %v", s.Recent)
	}
}
