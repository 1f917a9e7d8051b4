package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	mdwlog "github.com/msto63/puntofijo/foundation/core/log"
	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/internal/report"
)

const sampleSet = `
name: Ejercicios
description: Ecuaciones clásicas
defaults:
  tolerance: 1e-6
  max_iterations: 100
problems:
  - name: coseno
    g: cos(x)
    x0: 0.5
  - name: duplica
    g: 2*x
    x0: 1
  - name: seno en grados
    g: sin(x) + 30
    x0: 30
    angle_unit: degrees
    use_acceleration: true
  - g: (x + 2/x) / 2
    x0: 1
    stop_criterion: residual
    error_type: relative
`

func baseOptions() iteration.Options {
	return iteration.Options{
		Tolerance:     1e-3,
		MaxIterations: 10,
		AngleUnit:     angle.Radians,
	}
}

func TestParse(t *testing.T) {
	set, err := Parse(strings.NewReader(sampleSet))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if set.Name != "Ejercicios" || len(set.Problems) != 4 {
		t.Fatalf("set = %q with %d problems", set.Name, len(set.Problems))
	}
	if set.Problems[3].Name != "problema 4" {
		t.Errorf("unnamed problem = %q, want problema 4", set.Problems[3].Name)
	}

	opts := set.Options(set.Problems[2], baseOptions())
	if opts.AngleUnit != angle.Degrees || !opts.UseAcceleration {
		t.Errorf("problem options = %+v", opts)
	}
	if opts.Tolerance != 1e-6 || opts.MaxIterations != 100 {
		t.Errorf("set defaults not applied: %+v", opts)
	}
	if opts.G != "sin(x) + 30" || opts.X0 != 30 {
		t.Errorf("problem fields not applied: %+v", opts)
	}

	opts = set.Options(set.Problems[3], baseOptions())
	if opts.StopCriterion != iteration.StopResidual || opts.ErrorType != iteration.ErrorRelative {
		t.Errorf("criterion = %s/%s", opts.StopCriterion, opts.ErrorType)
	}
	if opts.AngleUnit != angle.Radians {
		t.Errorf("base unit not inherited: %s", opts.AngleUnit)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  mdwerror.Code
	}{
		{"empty", "", mdwerror.CodeValidationFailed},
		{"no problems", "name: vacío\nproblems: []\n", mdwerror.CodeValidationFailed},
		{"missing g", "problems:\n  - name: a\n    x0: 1\n", mdwerror.CodeValidationFailed},
		{"missing x0", "problems:\n  - name: a\n    g: cos(x)\n", mdwerror.CodeValidationFailed},
		{"duplicate", "problems:\n  - {name: a, g: x, x0: 1}\n  - {name: a, g: x, x0: 2}\n", mdwerror.CodeValidationFailed},
		{"bad unit", "problems:\n  - {name: a, g: x, x0: 1, angle_unit: gradians}\n", mdwerror.CodeValidationFailed},
		{"bad default", "defaults:\n  stop_criterion: step\nproblems:\n  - {g: x, x0: 1}\n", mdwerror.CodeValidationFailed},
		{"unknown key", "problems:\n  - {g: x, x0: 1, tolerancia: 1}\n", mdwerror.CodeInvalidFormat},
		{"broken yaml", "problems: [", mdwerror.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Parse error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.yaml")
	if err := os.WriteFile(path, []byte(sampleSet), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load error = %v, want NOT_FOUND", err)
	}
}

func TestRunner_Run(t *testing.T) {
	set, err := Parse(strings.NewReader(sampleSet))
	if err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	logger := mdwlog.New().WithOutput(&logs).WithFormat(mdwlog.FormatJSON).WithLevel(mdwlog.LevelInfo)

	rep, err := NewRunner(WithLogger(logger), WithBaseOptions(baseOptions())).Run(context.Background(), set)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if rep.ID == "" || len(rep.Results) != 4 {
		t.Fatalf("report id %q with %d results", rep.ID, len(rep.Results))
	}
	if !rep.Results[0].Outcome.Success {
		t.Errorf("coseno: %s", rep.Results[0].Outcome.Message)
	}
	if rep.Results[1].Outcome.Kind != iteration.KindDivergence {
		t.Errorf("duplica kind = %s, want divergence", rep.Results[1].Outcome.Kind)
	}

	converged, failed, skipped := rep.Counts()
	if converged+failed != 4 || skipped != 0 || failed < 1 {
		t.Errorf("counts = %d/%d/%d", converged, failed, skipped)
	}

	if !strings.Contains(logs.String(), rep.ID) {
		t.Error("logs do not carry the batch id")
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	set, err := Parse(strings.NewReader(sampleSet))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := NewRunner(WithBaseOptions(baseOptions())).Run(ctx, set)
	if err != context.Canceled {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	_, _, skipped := rep.Counts()
	if skipped != 4 {
		t.Errorf("skipped = %d, want 4", skipped)
	}
}

func runSample(t *testing.T) *Report {
	t.Helper()
	set, err := Parse(strings.NewReader(sampleSet))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := NewRunner(WithBaseOptions(baseOptions())).Run(context.Background(), set)
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func TestRenderSummary(t *testing.T) {
	rep := runSample(t)
	out := RenderSummary(rep, report.DefaultFormatOptions())

	for _, want := range []string{"Ejercicios", "coseno", "diverge", "converge", rep.ID} {
		if !strings.Contains(out, want) {
			t.Errorf("summary lacks %q", want)
		}
	}

	rows := SummaryRows(rep, report.DefaultFormatOptions())
	if len(rows) != 4 || len(rows[0]) != len(SummaryHeaders) {
		t.Errorf("rows = %v", rows)
	}
}

func TestWrite_Formats(t *testing.T) {
	rep := runSample(t)

	var buf bytes.Buffer
	if err := Write(&buf, report.FormatJSON, rep, report.FormatOptions{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var doc ReportDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json output does not decode: %v", err)
	}
	if doc.ID != rep.ID || len(doc.Results) != 4 || doc.Results[0].Outcome == nil {
		t.Errorf("json doc = %+v", doc)
	}

	buf.Reset()
	if err := Write(&buf, report.FormatYAML, rep, report.FormatOptions{}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var generic map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &generic); err != nil {
		t.Fatalf("yaml output does not decode: %v", err)
	}
	if generic["name"] != "Ejercicios" {
		t.Errorf("yaml name = %v", generic["name"])
	}

	buf.Reset()
	if err := Write(&buf, report.FormatCSV, rep, report.FormatOptions{}); err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[0], "name,g,x0,kind") {
		t.Errorf("csv = %q", buf.String())
	}
}
