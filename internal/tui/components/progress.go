package components

import (
	"fmt"
	"strings"

	"pacewatch/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForUsage returns green/yellow/orange/red by how much of the
// budget is used.
func ColorForUsage(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1.0:
		return string(t.Red)
	case pct >= 0.9:
		return string(t.Orange)
	case pct >= 0.7:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// BudgetBar renders a labeled budget utilization bar with percentage
// and a month-reset countdown.
func BudgetBar(label string, pct float64, daysRemaining, labelW, barWidth int) string {
	t := theme.Active

	clamped := pct
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForUsage(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForUsage(pct))).Background(t.Surface).Bold(true)
	resetStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	reset := ""
	switch {
	case daysRemaining == 1:
		reset = "resets tomorrow"
	case daysRemaining > 1:
		reset = fmt.Sprintf("resets in %dd", daysRemaining)
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(clamped) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		resetStyle.Render(reset)
}

// PaceGauge renders actual vs expected spend as a two-marker strip.
func PaceGauge(actual, expected, scale float64, width int) string {
	t := theme.Active
	if width < 10 || scale <= 0 {
		return ""
	}

	pos := func(v float64) int {
		p := int(v / scale * float64(width-1))
		if p < 0 {
			p = 0
		}
		if p > width-1 {
			p = width - 1
		}
		return p
	}

	actPos := pos(actual)
	expPos := pos(expected)

	cells := make([]string, width)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	for i := range cells {
		cells[i] = dim.Render("·")
	}

	expStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	cells[expPos] = expStyle.Render("┃")

	actColor := t.Green
	if actual > expected {
		actColor = t.Red
	}
	actStyle := lipgloss.NewStyle().Foreground(actColor).Background(t.Surface).Bold(true)
	cells[actPos] = actStyle.Render("●")

	return strings.Join(cells, "")
}
