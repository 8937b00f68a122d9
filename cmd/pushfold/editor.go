package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/pushfold/app"
	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/table"
)

var errUnknownHand = errors.New("unknown hand, use labels like AKs, T9o or 77")

const (
	editToggle = "Toggle hands"
	editImport = "Import range text"
	editClear  = "Clear"
	editSave   = "Save"
	editBack   = "Back"
)

func editRanges(ctx context.Context, editor *app.Editor) error {
	c, err := selectContext()
	if err != nil {
		return err
	}
	draft, err := editor.Open(ctx, c)
	if err != nil {
		return err
	}
	for {
		printDraft(draft)
		action, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Editing " + c.String()).
			WithOptions([]string{editToggle, editImport, editClear, editSave, editBack}).
			Show()
		if err != nil {
			return err
		}
		switch action {
		case editToggle:
			input, _ := pterm.DefaultInteractiveTextInput.
				WithDefaultText("Hands to toggle, comma separated").
				Show()
			next, err := toggleLabels(draft, input)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			draft = next
		case editImport:
			input, _ := pterm.DefaultInteractiveTextInput.
				WithDefaultText("Range, e.g. 22+, AJ+, 98s+, KQ").
				Show()
			next, skipped, err := draft.Import(input)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			if len(skipped) > 0 {
				pterm.Warning.Printfln("Ignored: %s", strings.Join(skipped, ", "))
			}
			draft = next
		case editClear:
			draft = draft.Clear()
		case editSave:
			saved, _, err := editor.Save(ctx, draft)
			if err != nil {
				return err
			}
			draft = saved
			pterm.Success.Printfln("Saved %s", c.Key())
		case editBack:
			if draft.Dirty {
				discard, _ := pterm.DefaultInteractiveConfirm.
					WithDefaultText("Discard unsaved changes?").
					WithDefaultValue(false).
					Show()
				if !discard {
					continue
				}
			}
			return nil
		}
	}
}

// toggleLabels flips every listed hand, or none if one label is unknown.
func toggleLabels(d app.Draft, input string) (app.Draft, error) {
	for _, label := range strings.Split(input, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		cell, err := grid.CellFor(label)
		if err != nil {
			return d, fmt.Errorf("%w: %q", errUnknownHand, label)
		}
		d, err = d.Toggle(cell.Index())
		if err != nil {
			return d, err
		}
	}
	return d, nil
}

func selectContext() (table.Context, error) {
	var labels []string
	byLabel := make(map[string]table.PlayerCount)
	for _, n := range table.PlayerCounts {
		labels = append(labels, n.Label())
		byLabel[n.Label()] = n
	}
	chosen, err := pterm.DefaultInteractiveSelect.WithDefaultText("Table size").WithOptions(labels).Show()
	if err != nil {
		return table.Context{}, err
	}
	players := byLabel[chosen]

	var positions []string
	for _, p := range table.LegalPositions(players) {
		positions = append(positions, string(p))
	}
	position, err := pterm.DefaultInteractiveSelect.WithDefaultText("Position").WithOptions(positions).Show()
	if err != nil {
		return table.Context{}, err
	}

	var stacks []string
	for _, s := range table.Stacks {
		stacks = append(stacks, string(s))
	}
	stack, err := pterm.DefaultInteractiveSelect.WithDefaultText("Stack").WithOptions(stacks).Show()
	if err != nil {
		return table.Context{}, err
	}
	return table.Context{Players: players, Position: table.Position(position), Stack: table.Stack(stack)}, nil
}

func printDraft(d app.Draft) {
	status := pterm.LightGreen("saved")
	if d.Dirty {
		status = pterm.LightYellow("unsaved")
	}
	info := pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(d.Context.String()).WithTitleTopLeft().
		Sprintf("Hands: %d\nCombos: %d (%s%%)\n%s",
			d.Range.Count(), d.Range.Combos(), strconv.FormatFloat(comboShare(d.Range), 'f', 1, 64), status)
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{{Data: renderGrid(d.Range, -1)}, {Data: info}},
	}).Render()
}
