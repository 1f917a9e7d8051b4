// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     report
// Description: Machine-readable exports of an outcome (JSON, YAML, CSV)
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	"github.com/msto63/puntofijo/internal/iteration"
)

// Format is an output format of the CLI
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

// ParseFormat parses an output format name; empty selects table
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", mdwerror.Newf("formato de salida desconocido %q", s).
			WithCode(mdwerror.CodeInvalidFormat).
			WithOperation("report.ParseFormat")
	}
}

// RecordDoc is the exported form of a record. Non-finite numbers become
// null because JSON cannot represent them.
type RecordDoc struct {
	N           int      `json:"n" yaml:"n"`
	Xn          *float64 `json:"xn" yaml:"xn"`
	Gxn         *float64 `json:"gxn" yaml:"gxn"`
	Error       *float64 `json:"error" yaml:"error"`
	AitkenValue *float64 `json:"aitken_value,omitempty" yaml:"aitken_value,omitempty"`
}

// OutcomeDoc is the exported form of an outcome
type OutcomeDoc struct {
	Success              bool        `json:"success" yaml:"success"`
	Kind                 string      `json:"kind" yaml:"kind"`
	Message              string      `json:"message" yaml:"message"`
	ConvergenceCriterion string      `json:"convergence_criterion,omitempty" yaml:"convergence_criterion,omitempty"`
	FinalValue           *float64    `json:"final_value" yaml:"final_value"`
	FinalError           *float64    `json:"final_error" yaml:"final_error"`
	DerivativeValue      *float64    `json:"derivative_value,omitempty" yaml:"derivative_value,omitempty"`
	DerivativeWarning    string      `json:"derivative_warning,omitempty" yaml:"derivative_warning,omitempty"`
	AngleUnit            string      `json:"angle_unit" yaml:"angle_unit"`
	Expression           string      `json:"expression,omitempty" yaml:"expression,omitempty"`
	Iterations           []RecordDoc `json:"iterations" yaml:"iterations"`
}

// NewOutcomeDoc converts an outcome for export
func NewOutcomeDoc(out iteration.Outcome) OutcomeDoc {
	doc := OutcomeDoc{
		Success:              out.Success,
		Kind:                 string(out.Kind),
		Message:              out.Message,
		ConvergenceCriterion: out.ConvergenceCriterion,
		FinalValue:           finite(out.FinalValue),
		FinalError:           finite(out.FinalError),
		DerivativeWarning:    out.DerivativeWarning,
		AngleUnit:            string(out.AngleUnit),
		Expression:           out.Expression,
		Iterations:           make([]RecordDoc, 0, len(out.Iterations)),
	}
	if out.DerivativeValue != nil {
		doc.DerivativeValue = finite(*out.DerivativeValue)
	}

	for _, rec := range out.Iterations {
		rd := RecordDoc{
			N:     rec.N,
			Xn:    finite(rec.Xn),
			Gxn:   finite(rec.Gxn),
			Error: finite(rec.Error),
		}
		if rec.AitkenValue != nil {
			rd.AitkenValue = finite(*rec.AitkenValue)
		}
		doc.Iterations = append(doc.Iterations, rd)
	}
	return doc
}

// WriteJSON writes the outcome as indented JSON
func WriteJSON(w io.Writer, out iteration.Outcome) error {
	return EncodeJSON(w, NewOutcomeDoc(out))
}

// WriteYAML writes the outcome as YAML
func WriteYAML(w io.Writer, out iteration.Outcome) error {
	return EncodeYAML(w, NewOutcomeDoc(out))
}

// WriteCSV writes one row per record with full precision values
func WriteCSV(w io.Writer, out iteration.Outcome) error {
	cw := csv.NewWriter(w)

	header := []string{"n", "xn", "gxn", "error", "aitken"}
	if err := cw.Write(header); err != nil {
		return exportError("csv", err)
	}

	for _, rec := range out.Iterations {
		aitken := ""
		if rec.AitkenValue != nil {
			aitken = csvFloat(*rec.AitkenValue)
		}
		row := []string{strconv.Itoa(rec.N), csvFloat(rec.Xn), csvFloat(rec.Gxn), csvFloat(rec.Error), aitken}
		if err := cw.Write(row); err != nil {
			return exportError("csv", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return exportError("csv", err)
	}
	return nil
}

// Write dispatches on format. The table format includes the summary.
func Write(w io.Writer, format Format, out iteration.Outcome, opts FormatOptions) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, out)
	case FormatYAML:
		return WriteYAML(w, out)
	case FormatCSV:
		return WriteCSV(w, out)
	default:
		if _, err := fmt.Fprintln(w, Render(out, opts)); err != nil {
			return exportError("table", err)
		}
		return nil
	}
}

// EncodeJSON writes v as indented JSON
func EncodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return exportError("json", err)
	}
	return nil
}

// EncodeYAML writes v as YAML with two-space indentation
func EncodeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return exportError("yaml", err)
	}
	if err := enc.Close(); err != nil {
		return exportError("yaml", err)
	}
	return nil
}

func exportError(format string, err error) error {
	return mdwerror.Wrap(err, "export failed").
		WithCode(mdwerror.CodeRenderFailed).
		WithOperation("report.Write").
		WithDetail("format", format)
}

// finite returns nil for NaN and ±Inf
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// csvFloat writes the shortest exact representation; NaN becomes empty
func csvFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
