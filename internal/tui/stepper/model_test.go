package stepper

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/report"
)

func cosineConfig() Config {
	return Config{
		Options: iteration.Options{
			G: "cos(x)", X0: 0.5, Tolerance: 1e-4, MaxIterations: 100, AngleUnit: angle.Radians,
		},
		Format: report.DefaultFormatOptions(),
	}
}

// loaded returns a model that has received a window size and the outcome
func loaded(t *testing.T, cfg Config) Model {
	t.Helper()
	m := New(cfg)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	updated, _ = m.Update(m.runEngine())
	return updated.(Model)
}

func press(m Model, key tea.KeyMsg) Model {
	updated, _ := m.Update(key)
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadsOutcome(t *testing.T) {
	m := New(cosineConfig())
	if _, done := m.Outcome(); done {
		t.Fatal("outcome must not be available before the run")
	}

	m = loaded(t, cosineConfig())
	out, done := m.Outcome()
	if !done || !out.Success {
		t.Fatalf("outcome = %+v, done = %v", out, done)
	}
	if len(m.table.Rows()) != len(out.Iterations) {
		t.Errorf("table has %d rows, want %d", len(m.table.Rows()), len(out.Iterations))
	}

	step, ok := m.Current()
	if !ok || step.Number != 1 {
		t.Errorf("current step = %+v, want the first", step)
	}
}

func TestModel_Navigation(t *testing.T) {
	m := loaded(t, cosineConfig())
	total := len(m.steps)

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.current != 0 {
		t.Errorf("left at start moved to %d", m.current)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, runes("l"))
	if m.current != 2 {
		t.Errorf("after two steps current = %d, want 2", m.current)
	}

	m = press(m, runes("G"))
	if m.current != total-1 {
		t.Errorf("end moved to %d, want %d", m.current, total-1)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.current != total-1 {
		t.Errorf("right at end moved to %d", m.current)
	}

	step, _ := m.Current()
	if step.Title != "Resultado" {
		t.Errorf("last step = %q, want Resultado", step.Title)
	}

	m = press(m, runes("g"))
	if m.current != 0 {
		t.Errorf("home moved to %d", m.current)
	}
}

func TestModel_IterationStepSelectsTableRow(t *testing.T) {
	m := loaded(t, cosineConfig())
	first := len(m.explanation.Method)

	m.goTo(first + 3)
	if got := m.table.Cursor(); got != 3 {
		t.Errorf("table cursor = %d, want 3", got)
	}

	step, _ := m.Current()
	if step.Title != "Iteración 3" {
		t.Errorf("step title = %q, want Iteración 3", step.Title)
	}
	if !strings.Contains(m.viewport.View(), "Iteración 3") {
		t.Error("viewport does not show the selected step")
	}
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, cosineConfig())
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected a quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", key)
		}
	}
}

func TestModel_View(t *testing.T) {
	m := New(cosineConfig())
	if got := m.View(); got != "Cargando..." {
		t.Errorf("view before sizing = %q", got)
	}

	m = loaded(t, cosineConfig())
	view := m.View()
	for _, want := range []string{Logo, "g(x) = cos(x)", "Paso 1 /", "Converge"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestModel_FailedRun(t *testing.T) {
	cfg := cosineConfig()
	cfg.Options.G = "cos(x"
	m := loaded(t, cfg)

	out, _ := m.Outcome()
	if out.Success || out.Kind != iteration.KindSyntax {
		t.Fatalf("outcome kind = %s, want syntax", out.Kind)
	}
	if len(m.table.Rows()) != 0 {
		t.Errorf("table has %d rows, want none", len(m.table.Rows()))
	}

	m = press(m, runes("G"))
	step, _ := m.Current()
	if step.Title != "Resultado" {
		t.Errorf("last step = %q", step.Title)
	}
}
