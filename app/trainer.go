package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luca-patrignani/pushfold/domain/quiz"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/store"
)

// Trainer runs quiz rounds against the stored ranges.
type Trainer struct {
	store   store.Store
	sampler *scenario.Sampler
	logger  *slog.Logger
	now     func() time.Time
}

func NewTrainer(s store.Store, sampler *scenario.Sampler, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.Default()
	}
	if sampler == nil {
		sampler = scenario.NewSampler(nil)
	}
	return &Trainer{store: s, sampler: sampler, logger: logger, now: time.Now}
}

// Next deals a new scenario. Filters are checked before anything is loaded.
func (t *Trainer) Next(ctx context.Context, f scenario.Filters) (scenario.Scenario, error) {
	if err := f.Validate(); err != nil {
		return scenario.Scenario{}, err
	}
	ranges, err := t.store.LoadAll(ctx)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("load ranges: %w", err)
	}
	s, err := t.sampler.Sample(f, ranges)
	if err != nil {
		t.logger.Warn("no scenario dealt", "error", err)
		return scenario.Scenario{}, err
	}
	t.logger.Debug("scenario dealt", "context", s.Key(), "hand", s.Cell.Label,
		"cards", s.Cards[0].Text()+s.Cards[1].Text())
	return s, nil
}

// Answer judges the user's action and appends the result to the log.
func (t *Trainer) Answer(ctx context.Context, s scenario.Scenario, a scenario.Action) (quiz.Result, error) {
	r, err := quiz.Judge(s, a, t.now())
	if err != nil {
		return quiz.Result{}, err
	}
	if err := t.store.AppendResult(ctx, r); err != nil {
		return r, fmt.Errorf("record result: %w", err)
	}
	t.logger.Debug("answer judged", "context", r.ScenarioKey, "hand", r.HandLabel, "correct", r.Correct)
	return r, nil
}

// Stats summarizes the stored result log.
func (t *Trainer) Stats(ctx context.Context) (quiz.Summary, error) {
	results, err := t.store.LoadResults(ctx)
	if err != nil {
		return quiz.Summary{}, fmt.Errorf("load results: %w", err)
	}
	return quiz.Summarize(results), nil
}
