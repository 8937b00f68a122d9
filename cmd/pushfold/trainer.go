package main

import (
	"context"
	"slices"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/pushfold/app"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/domain/table"
)

const answerStop = "Stop"

// train asks for filters, then deals hands until the user stops. It returns
// the filters so the next session starts from them.
func train(ctx context.Context, trainer *app.Trainer, filters scenario.Filters) (scenario.Filters, error) {
	filters, err := chooseFilters(filters)
	if err != nil {
		return filters, err
	}
	for {
		s, err := trainer.Next(ctx, filters)
		if err != nil {
			return filters, err
		}
		pterm.DefaultPanel.WithPanels([][]pterm.Panel{{{Data: scenarioBox(s)}}}).Render()

		answer, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Your action").
			WithOptions([]string{string(scenario.Push), string(scenario.Fold), answerStop}).
			Show()
		if err != nil {
			return filters, err
		}
		if answer == answerStop {
			return filters, nil
		}
		r, err := trainer.Answer(ctx, s, scenario.Action(answer))
		if err != nil {
			return filters, err
		}
		if r.Correct {
			pterm.Success.Printfln("Correct: %s %s", r.CorrectAction, r.HandLabel)
		} else {
			pterm.Error.Printfln("Wrong: %s should %s", r.HandLabel, r.CorrectAction)
		}
	}
}

func chooseFilters(current scenario.Filters) (scenario.Filters, error) {
	var sizes, sizeDefaults []string
	byLabel := make(map[string]table.PlayerCount)
	for _, n := range table.PlayerCounts {
		sizes = append(sizes, n.Label())
		byLabel[n.Label()] = n
		if slices.Contains(current.Players, n) {
			sizeDefaults = append(sizeDefaults, n.Label())
		}
	}
	chosen, err := pterm.DefaultInteractiveMultiselect.
		WithDefaultText("Table sizes").
		WithOptions(sizes).
		WithDefaultOptions(sizeDefaults).
		Show()
	if err != nil {
		return current, err
	}
	var next scenario.Filters
	for _, label := range chosen {
		next.Players = append(next.Players, byLabel[label])
	}

	positions, err := multiselect("Positions", table.Positions, current.Positions)
	if err != nil {
		return current, err
	}
	next.Positions = positions
	stacks, err := multiselect("Stacks", table.Stacks, current.Stacks)
	if err != nil {
		return current, err
	}
	next.Stacks = stacks
	return next, nil
}

func multiselect[T ~string](title string, options, selected []T) ([]T, error) {
	var all, defaults []string
	for _, o := range options {
		all = append(all, string(o))
		if slices.Contains(selected, o) {
			defaults = append(defaults, string(o))
		}
	}
	chosen, err := pterm.DefaultInteractiveMultiselect.
		WithDefaultText(title).
		WithOptions(all).
		WithDefaultOptions(defaults).
		Show()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(chosen))
	for _, c := range chosen {
		out = append(out, T(c))
	}
	return out, nil
}

func showStats(ctx context.Context, trainer *app.Trainer) error {
	stats, err := trainer.Stats(ctx)
	if err != nil {
		return err
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{{Data: statsBox(stats)}}}).Render()
	return nil
}
