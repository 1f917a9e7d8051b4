// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     stepper
// Description: Bubbletea model that walks through a fixed-point run
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package stepper is an interactive terminal viewer that shows the
// explanation of a run one step at a time next to its iteration table.
package stepper

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/puntofijo/internal/explain"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/report"
)

// Config holds the run shown by the stepper
type Config struct {
	Options iteration.Options
	F       string
	Format  report.FormatOptions
	Engine  *iteration.Engine
}

// Model is the main Bubbletea model of the stepper
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	loading bool

	// Components
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Run
	cfg         Config
	outcome     iteration.Outcome
	explanation explain.Explanation
	steps       []explain.Step
	current     int
}

// New creates a stepper model; the run starts with Init
func New(cfg Config) Model {
	if cfg.Engine == nil {
		cfg.Engine = iteration.NewEngine(nil)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	t := table.New(table.WithFocused(false))
	t.SetStyles(tableStyles())

	return Model{
		cfg:     cfg,
		spinner: sp,
		table:   t,
		loading: true,
	}
}

// Init starts the spinner and the run
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runEngine)
}

// runEngine executes the iteration off the UI loop
func (m Model) runEngine() tea.Msg {
	out := m.cfg.Engine.Run(m.cfg.Options)
	return outcomeMsg{
		outcome: out,
		explanation: explain.Explain(explain.Input{
			Options: m.cfg.Options,
			Outcome: out,
			F:       m.cfg.F,
			Format:  m.cfg.Format,
		}),
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case outcomeMsg:
		m.loading = false
		m.outcome = msg.outcome
		m.explanation = msg.explanation
		m.steps = msg.explanation.Steps()
		m.current = 0
		m.setTable()
		m.layout()
		m.updateViewportContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "right", "l", "n", " ", "enter":
		m.goTo(m.current + 1)
	case "left", "h", "p", "backspace":
		m.goTo(m.current - 1)
	case "home", "g":
		m.goTo(0)
	case "end", "G":
		m.goTo(len(m.steps) - 1)
	case "up", "k":
		m.viewport.LineUp(1)
	case "down", "j":
		m.viewport.LineDown(1)
	}
	return m, nil
}

// goTo selects step i, clamped to the available steps
func (m *Model) goTo(i int) {
	if len(m.steps) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.steps) {
		i = len(m.steps) - 1
	}
	m.current = i
	if row, ok := m.tableRow(i); ok {
		m.table.SetCursor(row)
	}
	m.updateViewportContent()
}

// tableRow maps a step index to its iteration table row
func (m Model) tableRow(step int) (int, bool) {
	row := step - len(m.explanation.Method)
	if row < 0 || row >= len(m.outcome.Iterations) {
		return 0, false
	}
	return row, true
}

// Current returns the selected step
func (m Model) Current() (explain.Step, bool) {
	if len(m.steps) == 0 {
		return explain.Step{}, false
	}
	return m.steps[m.current], true
}

// Outcome returns the finished run; false while it is still running
func (m Model) Outcome() (iteration.Outcome, bool) {
	return m.outcome, !m.loading
}

func (m *Model) setTable() {
	withAitken := report.HasAitken(m.outcome)
	headers := report.Headers(withAitken)

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := 14
		if i == 0 {
			width = 5
		}
		columns[i] = table.Column{Title: h, Width: width}
	}

	rows := make([]table.Row, 0, len(m.outcome.Iterations))
	for _, r := range report.Rows(m.outcome, m.cfg.Format) {
		rows = append(rows, table.Row(r))
	}

	// Columns first so rows are rendered against the new layout.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
}

// layout sizes table and viewport to the window
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	headerHeight := 4 // title panel
	footerHeight := 4 // status bar + help
	bodyHeight := m.height - headerHeight - footerHeight
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	tableWidth := 0
	for _, c := range m.table.Columns() {
		tableWidth += c.Width + 2
	}
	if tableWidth > m.width/2 {
		tableWidth = m.width / 2
	}
	m.table.SetWidth(tableWidth)
	m.table.SetHeight(bodyHeight - 2)

	vpWidth := m.width - tableWidth - 8
	if vpWidth < 20 {
		vpWidth = 20
	}
	if !m.ready {
		m.viewport = viewport.New(vpWidth, bodyHeight-2)
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = bodyHeight - 2
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Iterando...")
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			PanelStyle.Render(m.table.View()),
			FocusedPanelStyle.Render(m.viewport.View()),
		))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the title panel with the expression
func (m Model) renderHeader() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		ExpressionStyle.Render(fmt.Sprintf("g(x) = %s   x₀ = %s", m.cfg.Options.G,
			report.FormatNumber(m.cfg.Options.X0, m.cfg.Format))),
	)
	width := m.width - 4
	if width < 0 {
		width = 0
	}
	return TitlePanelStyle.Width(width).Render(header)
}

// renderStatusBar renders step position and run status
func (m Model) renderStatusBar() string {
	if m.loading {
		return StatusBarStyle.Render(m.spinner.View() + " Ejecutando iteración")
	}

	position := HelpDescStyle.Render(fmt.Sprintf("Paso %d / %d", m.current+1, len(m.steps)))

	status := StatusFailureStyle.Render(m.outcome.Message)
	if m.outcome.Success {
		status = StatusSuccessStyle.Render(m.outcome.Message)
	}

	return StatusBarStyle.Render(position + "   " + status)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("←/→", "Paso"),
		RenderKeyHint("g/G", "Inicio/Fin"),
		RenderKeyHint("↑/↓", "Desplazar"),
		RenderKeyHint("q", "Salir"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent renders the selected step into the viewport
func (m *Model) updateViewportContent() {
	step, ok := m.Current()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(renderStep(step))
	m.viewport.GotoTop()
}

func renderStep(s explain.Step) string {
	var b strings.Builder

	title := fmt.Sprintf("%d. %s", s.Number, s.Title)
	if s.Highlight {
		b.WriteString(StepHighlightTitleStyle.Render(title))
	} else {
		b.WriteString(StepTitleStyle.Render(title))
	}
	b.WriteString("\n\n")

	for _, line := range s.Content {
		if strings.HasPrefix(line, "⚠") {
			b.WriteString(WarningStyle.PaddingLeft(2).Render(line))
		} else {
			b.WriteString(StepContentStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if s.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(StepExplanationStyle.Render(s.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the stepper TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
