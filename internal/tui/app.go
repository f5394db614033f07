// Package tui provides the interactive Bubble Tea dashboard for
// pacewatch.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pacewatch/internal/cli"
	"pacewatch/internal/model"
	"pacewatch/internal/pace"
	"pacewatch/internal/pipeline"
	"pacewatch/internal/tui/components"
	"pacewatch/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CheckFunc runs one budget check for the dashboard.
type CheckFunc func(ctx context.Context) (*pipeline.CheckResult, error)

// checkDoneMsg is sent when a check finishes.
type checkDoneMsg struct {
	result *pipeline.CheckResult
	err    error
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 110
)

// App is the root Bubble Tea model.
type App struct {
	check CheckFunc

	result  *pipeline.CheckResult
	err     error
	loading bool

	spinner spinner.Model
	width   int
	height  int
}

// NewApp returns the dashboard model. check is invoked on start and on
// each manual refresh.
func NewApp(check CheckFunc) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return &App{
		check:   check,
		loading: true,
		spinner: sp,
	}
}

// Run starts the dashboard and blocks until it exits.
func Run(check CheckFunc) error {
	p := tea.NewProgram(NewApp(check), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.runCheck())
}

func (a *App) runCheck() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		result, err := a.check(ctx)
		return checkDoneMsg{result: result, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		case "r":
			if !a.loading {
				a.loading = true
				return a, tea.Batch(a.spinner.Tick, a.runCheck())
			}
		}
		return a, nil

	case checkDoneMsg:
		a.loading = false
		a.result = msg.result
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) View() string {
	t := theme.Active

	if a.width > 0 && a.width < minTerminalWidth {
		return lipgloss.NewStyle().Foreground(t.TextMuted).
			Render(fmt.Sprintf("\n  Terminal too narrow (need %d columns)\n", minTerminalWidth))
	}

	if a.loading && a.result == nil {
		return fmt.Sprintf("\n  %s checking budget...\n", a.spinner.View())
	}

	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return fmt.Sprintf("\n  %s\n\n  press q to quit\n", errStyle.Render(a.err.Error()))
	}

	if a.result == nil {
		return "\n  no data\n"
	}

	width := a.width
	if width <= 0 {
		width = 80
	}
	if width > maxContentWidth {
		width = maxContentWidth
	}

	summary := a.result.Summary
	var b strings.Builder

	b.WriteString(a.renderHeader(summary, width))
	b.WriteString("\n")
	b.WriteString(a.renderMetrics(summary, width))
	b.WriteString("\n")
	b.WriteString(a.renderBars(summary, width))
	b.WriteString("\n")
	b.WriteString(a.renderCurve(width))
	b.WriteString("\n")
	b.WriteString(a.renderBreakdown(summary, width))

	if len(a.result.Decision.Reasons) > 0 {
		b.WriteString("\n")
		b.WriteString(a.renderAlerts(width))
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(width, a.lastSync()))

	return b.String()
}

func (a *App) renderHeader(summary model.Summary, width int) string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).
		Render("pacewatch " + string(summary.Month))
	badge := cli.RenderStatusBadge(summary.Status)
	pad := width - lipgloss.Width(title) - lipgloss.Width(badge) - 3
	if pad < 1 {
		pad = 1
	}
	return " " + title + strings.Repeat(" ", pad) + badge
}

func (a *App) renderMetrics(summary model.Summary, width int) string {
	sp := summary.Spending
	metrics := []components.Metric{
		{Label: "Spent", Value: cli.FormatMoney(sp.Total),
			Note: cli.FormatPercent(sp.PercentUsed) + " of target"},
		{Label: "Target", Value: cli.FormatMoney(sp.Target)},
		{Label: "Remaining", Value: cli.FormatMoney(sp.Remaining),
			Note: fmt.Sprintf("%d days left", summary.Period.DaysRemaining)},
		{Label: "Pace", Value: string(summary.Pace.Classification),
			Note: cli.FormatSignedMoney(summary.Pace.Delta) + " vs expected"},
	}
	return components.MetricCardRow(metrics, width)
}

func (a *App) renderBars(summary model.Summary, width int) string {
	sp := summary.Spending
	pctUsed := sp.PercentUsed.InexactFloat64() / 100

	barW := width - 30
	if barW < 10 {
		barW = 10
	}

	budget := " " + components.BudgetBar("Budget", pctUsed, summary.Period.DaysRemaining, 6, barW)

	actual, _ := summary.Pace.Actual.Float64()
	expected, _ := summary.Pace.Expected.Float64()
	scale, _ := sp.Target.Float64()
	if scale <= 0 {
		scale = actual
	}
	gauge := components.PaceGauge(actual, expected, scale, barW)
	paceLabel := lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render("Pace  ")

	out := budget
	if gauge != "" {
		out += "\n " + paceLabel + " " + gauge
	}
	return out
}

func (a *App) renderCurve(width int) string {
	curve := pace.BuildCurve(a.result.Ledger)
	elapsed := a.result.Summary.Period.DaysElapsed
	points := cli.CurvePoints(curve, elapsed)
	target, _ := a.result.Summary.Spending.Target.Float64()

	chart := components.CurveChart(points, target, width-4, 8)
	if chart == "" {
		return ""
	}

	if prior := a.result.Prior; !prior.Empty() {
		priorPoints := cli.CurvePoints(prior, prior.Days)
		label := lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render("last month ")
		chart += "\n" + label + components.Sparkline(priorPoints, theme.Active.Cyan)
	}

	return components.ContentCard("Cumulative spend", chart, width)
}

func (a *App) renderBreakdown(summary model.Summary, width int) string {
	widths := components.LayoutRow(width, 2)
	catW := components.CardInnerWidth(widths[0])
	recW := components.CardInnerWidth(widths[1])

	var cats strings.Builder
	if len(summary.TopCategories) == 0 {
		cats.WriteString(cli.Muted("no spending yet"))
	}
	for i, c := range summary.TopCategories {
		if i > 0 {
			cats.WriteString("\n")
		}
		amount := cli.FormatMoney(c.Total)
		name := cli.Truncate(c.Category, catW-len(amount)-2)
		pad := catW - lipgloss.Width(name) - len(amount)
		if pad < 1 {
			pad = 1
		}
		cats.WriteString(name + strings.Repeat(" ", pad) + amount)
	}

	var rec strings.Builder
	if len(summary.RecentTransactions) == 0 {
		rec.WriteString(cli.Muted("no transactions"))
	}
	for i, tx := range summary.RecentTransactions {
		if i > 0 {
			rec.WriteString("\n")
		}
		amount := cli.FormatMoney(tx.Amount)
		line := tx.Date.Format("Jan 02") + "  " + cli.Truncate(tx.Merchant, recW-len(amount)-10)
		pad := recW - lipgloss.Width(line) - len(amount)
		if pad < 1 {
			pad = 1
		}
		rec.WriteString(line + strings.Repeat(" ", pad) + amount)
	}

	left := components.ContentCard("Top categories", cats.String(), widths[0])
	right := components.ContentCard("Recent", rec.String(), widths[1])
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (a *App) renderAlerts(width int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.Orange)

	var b strings.Builder
	for i, reason := range a.result.Decision.Reasons {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(style.Render("! " + reason))
	}
	return components.ContentCard("Alerts", b.String(), width)
}

func (a *App) lastSync() string {
	if a.result == nil || a.result.Ledger == nil {
		return ""
	}
	at := a.result.Ledger.LastSyncedAt
	if at.IsZero() {
		return "never"
	}
	return at.Format("Jan 2 15:04")
}
