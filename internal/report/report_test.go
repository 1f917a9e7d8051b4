package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
)

func sampleOutcome() iteration.Outcome {
	aitken := 0.739
	deriv := -0.479
	return iteration.Outcome{
		Success: true,
		Iterations: []iteration.Record{
			{N: 0, Xn: 0.5, Gxn: 0.8775825619, Error: math.NaN()},
			{N: 1, Xn: 0.8775825619, Gxn: 0.6390124942, Error: 0.3775825619},
			{N: 2, Xn: 0.6390124942, Gxn: 0.8026851007, Error: 0.2385700677, AitkenValue: &aitken},
		},
		FinalValue:           0.6390124942,
		FinalError:           0.2385700677,
		Message:              "✅ Converge en 2 iteraciones",
		ConvergenceCriterion: "|xₙ₊₁ - xₙ| = 2.39e-1 < 1 y 6 cifras estables",
		DerivativeValue:      &deriv,
		AngleUnit:            angle.Radians,
		Kind:                 iteration.KindConverged,
		Expression:           "cos(x)",
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleOutcome(), FormatOptions{Mode: PrecisionDecimals, Decimals: 4})

	want := [][]string{
		{"0", "0.5000", "0.8776", "–", "–"},
		{"1", "0.8776", "0.6390", "0.377583", "–"},
		{"2", "0.6390", "0.8027", "0.238570", "0.7390"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsWithoutAitkenColumn(t *testing.T) {
	out := sampleOutcome()
	out.Iterations[2].AitkenValue = nil

	for _, row := range Rows(out, DefaultFormatOptions()) {
		if len(row) != 4 {
			t.Fatalf("row %v should have 4 cells", row)
		}
	}
	if got := Headers(false); len(got) != 4 {
		t.Errorf("Headers(false) = %v", got)
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleOutcome(), DefaultFormatOptions())

	for _, want := range []string{"xₙ", "g(xₙ)", "Aitken", "0.877583", "Converge en 2", "Criterio:", "rad", "Iteraciones:"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	out := iteration.Outcome{
		Message:              "❌ Configuración inválida: la función g(x) no puede estar vacía",
		ConvergenceCriterion: iteration.CriterionSyntax,
		FinalValue:           math.NaN(),
		FinalError:           math.NaN(),
		AngleUnit:            angle.Radians,
	}
	rendered := Render(out, DefaultFormatOptions())
	if !strings.Contains(rendered, "sin iteraciones") || !strings.Contains(rendered, "no puede estar vacía") {
		t.Errorf("unexpected rendering:\n%s", rendered)
	}
	if strings.Contains(rendered, "x* ≈") {
		t.Error("no final value line without iterations")
	}
}

func TestWriteJSON_NaNBecomesNull(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleOutcome()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	iterations := decoded["iterations"].([]interface{})
	first := iterations[0].(map[string]interface{})
	if first["error"] != nil {
		t.Errorf("error of record 0 = %v, want null", first["error"])
	}
	if _, ok := first["aitken_value"]; ok {
		t.Error("aitken_value should be omitted when absent")
	}
	third := iterations[2].(map[string]interface{})
	if third["aitken_value"] != 0.739 {
		t.Errorf("aitken_value = %v", third["aitken_value"])
	}
	if decoded["kind"] != "converged" || decoded["angle_unit"] != "radians" {
		t.Errorf("kind/unit = %v/%v", decoded["kind"], decoded["angle_unit"])
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, sampleOutcome()); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var doc OutcomeDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(doc.Iterations) != 3 || doc.Iterations[0].Error != nil {
		t.Errorf("unexpected iterations: %+v", doc.Iterations)
	}
	if doc.FinalValue == nil || *doc.FinalValue != 0.6390124942 {
		t.Errorf("FinalValue = %v", doc.FinalValue)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleOutcome()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	want := [][]string{
		{"n", "xn", "gxn", "error", "aitken"},
		{"0", "0.5", "0.8775825619", "", ""},
		{"1", "0.8775825619", "0.6390124942", "0.3775825619", ""},
		{"2", "0.6390124942", "0.8026851007", "0.2385700677", "0.739"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "JSON": FormatJSON, "yml": FormatYAML, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	_, err := ParseFormat("xml")
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want INVALID_FORMAT", err)
	}
}
