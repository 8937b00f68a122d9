// Package quiz scores answers to training scenarios and keeps the capped
// history of results.
package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/luca-patrignani/pushfold/domain/scenario"
)

const (
	// MaxResults caps the result log. Older entries are evicted first.
	MaxResults = 500
	// RecentWindow is how many of the latest outcomes Summary keeps.
	RecentWindow = 20
)

var ErrInvalidAction = errors.New("action must be Push or Fold")

// Result records one judged answer. It is never modified once created.
type Result struct {
	Correct       bool            `json:"correct"`
	UserAction    scenario.Action `json:"userAction"`
	CorrectAction scenario.Action `json:"correctAction"`
	HandLabel     string          `json:"handLabel"`
	ScenarioKey   string          `json:"scenarioKey"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Judge compares the user's answer with the scenario's correct action.
func Judge(s scenario.Scenario, user scenario.Action, now time.Time) (Result, error) {
	if user != scenario.Push && user != scenario.Fold {
		return Result{}, fmt.Errorf("%w: got %q", ErrInvalidAction, user)
	}
	return Result{
		Correct:       (user == scenario.Push) == (s.Correct == scenario.Push),
		UserAction:    user,
		CorrectAction: s.Correct,
		HandLabel:     s.Cell.Label,
		ScenarioKey:   s.Key(),
		Timestamp:     now,
	}, nil
}

// AppendCapped returns a new log holding log followed by r, trimmed from the
// front to at most limit entries. The input slice is left untouched.
func AppendCapped(log []Result, r Result, limit int) []Result {
	if limit <= 0 {
		return nil
	}
	start := 0
	if len(log)+1 > limit {
		start = len(log) + 1 - limit
	}
	out := make([]Result, 0, len(log)-start+1)
	out = append(out, log[start:]...)
	return append(out, r)
}

// Summary aggregates a result log.
type Summary struct {
	Total    int
	Correct  int
	Accuracy float64 // 0..1, zero when nothing was answered
	// Recent holds the outcome of the latest RecentWindow results, oldest first.
	Recent []bool
}

func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Correct {
			s.Correct++
		}
	}
	if s.Total > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Total)
	}
	start := max(0, len(results)-RecentWindow)
	for _, r := range results[start:] {
		s.Recent = append(s.Recent, r.Correct)
	}
	return s
}
