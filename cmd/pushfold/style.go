package main

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/quiz"
	"github.com/luca-patrignani/pushfold/domain/scenario"
)

// totalCombos is the number of distinct starting hands.
const totalCombos = 1326

// renderGrid draws the 13x13 chart. Pushed cells are green, the cell at
// highlight (if any) is inverted.
func renderGrid(r grid.Range, highlight int) string {
	var b strings.Builder
	for row := range grid.Size {
		for col := range grid.Size {
			cell, _ := grid.Classify(row, col)
			b.WriteString(cellStyle(r[cell.Index()], cell.Index() == highlight).Sprintf("%-4s", cell.Label))
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func cellStyle(push, highlight bool) *pterm.Style {
	switch {
	case highlight:
		return pterm.NewStyle(pterm.BgLightYellow, pterm.FgBlack)
	case push:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// comboShare is the percentage of all starting hands covered by r.
func comboShare(r grid.Range) float64 {
	return float64(r.Combos()) * 100 / totalCombos
}

func scenarioBox(s scenario.Scenario) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(10).WithTopPadding(1).WithBottomPadding(1)
	hand := pterm.BgGreen.Sprintf("%s - %s", s.Cards[0].String(), s.Cards[1].String())
	return pbox.WithTitle(pterm.LightYellow("|" + s.Context.String() + "|")).WithTitleTopCenter().
		Sprintf("%s\n%s", hand, pterm.LightCyan(s.Cell.Label))
}

func statsBox(s quiz.Summary) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	if s.Total == 0 {
		return pbox.WithTitle("|STATISTICS|").WithTitleTopCenter().Sprint("No answers yet")
	}
	return pbox.WithTitle("|STATISTICS|").WithTitleTopCenter().
		Sprintf("Answered: %d\nCorrect: %d\nAccuracy: %.1f%%\nLast %d: %s",
			s.Total, s.Correct, s.Accuracy*100, len(s.Recent), recentStrip(s.Recent))
}

// recentStrip renders outcomes oldest first, one mark per answer.
func recentStrip(recent []bool) string {
	var b strings.Builder
	for _, ok := range recent {
		if ok {
			b.WriteString(pterm.LightGreen("✓"))
		} else {
			b.WriteString(pterm.LightRed("✗"))
		}
	}
	return b.String()
}
