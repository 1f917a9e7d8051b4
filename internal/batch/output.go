// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     batch
// Description: Summary table and exports of a batch report
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	"github.com/msto63/puntofijo/internal/report"
)

// SummaryHeaders are the columns of the summary table
var SummaryHeaders = []string{"#", "Problema", "g(x)", "x₀", "Estado", "x*", "Iter.", "Error"}

// SummaryRows formats one row per problem
func SummaryRows(rep *Report, opts report.FormatOptions) [][]string {
	rows := make([][]string, 0, len(rep.Results))
	for i, res := range rep.Results {
		row := []string{
			strconv.Itoa(i + 1),
			res.Problem.Name,
			res.Options.G,
			report.FormatNumber(res.Options.X0, opts),
		}
		if res.Skipped {
			row = append(row, "omitido", "–", "–", "–")
		} else {
			out := res.Outcome
			row = append(row,
				status(out.Success, string(out.Kind)),
				report.FormatNumber(out.FinalValue, opts),
				strconv.Itoa(out.Steps()),
				report.FormatError(out.FinalError),
			)
		}
		rows = append(rows, row)
	}
	return rows
}

func status(success bool, kind string) string {
	if success {
		return "converge"
	}
	switch kind {
	case "divergence":
		return "diverge"
	case "oscillation":
		return "oscila"
	case "max_iterations":
		return "sin convergencia"
	case "syntax":
		return "error de sintaxis"
	case "evaluation":
		return "error de evaluación"
	default:
		return "configuración inválida"
	}
}

// RenderSummary renders the summary table followed by the totals
func RenderSummary(rep *Report, opts report.FormatOptions) string {
	var b strings.Builder

	title := rep.Name
	if title == "" {
		title = "Lote"
	}
	b.WriteString(report.TitleStyle.Render(title))
	b.WriteString("\n")
	if rep.Description != "" {
		b.WriteString(report.MutedStyle.Render(rep.Description))
		b.WriteString("\n")
	}

	rows := SummaryRows(rep, opts)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(report.MutedStyle).
		Headers(SummaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return report.HeaderStyle
			}
			if col == 4 && row >= 0 && row < len(rep.Results) {
				res := rep.Results[row]
				switch {
				case res.Skipped:
					return report.CellStyle.Foreground(lipgloss.Color("#6B7280"))
				case res.Outcome.Success:
					return report.CellStyle.Foreground(lipgloss.Color("#10B981"))
				default:
					return report.CellStyle.Foreground(lipgloss.Color("#EF4444"))
				}
			}
			if col == 1 || col == 2 {
				return report.CellStyle.Align(lipgloss.Left)
			}
			return report.CellStyle
		})
	b.WriteString(t.String())
	b.WriteString("\n")

	converged, failed, skipped := rep.Counts()
	line := fmt.Sprintf("%d convergen, %d fallan", converged, failed)
	if skipped > 0 {
		line += fmt.Sprintf(", %d omitidos", skipped)
	}
	b.WriteString(report.MutedStyle.Render(line + " · lote " + rep.ID))
	b.WriteString("\n")

	return b.String()
}

// ResultDoc is the exported form of a result
type ResultDoc struct {
	Name    string             `json:"name" yaml:"name"`
	G       string             `json:"g" yaml:"g"`
	X0      float64            `json:"x0" yaml:"x0"`
	Skipped bool               `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Outcome *report.OutcomeDoc `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// ReportDoc is the exported form of a report
type ReportDoc struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	StartedAt   time.Time   `json:"started_at" yaml:"started_at"`
	Duration    string      `json:"duration" yaml:"duration"`
	Converged   int         `json:"converged" yaml:"converged"`
	Failed      int         `json:"failed" yaml:"failed"`
	Skipped     int         `json:"skipped" yaml:"skipped"`
	Results     []ResultDoc `json:"results" yaml:"results"`
}

// NewReportDoc converts a report for export
func NewReportDoc(rep *Report) ReportDoc {
	converged, failed, skipped := rep.Counts()
	doc := ReportDoc{
		ID:          rep.ID,
		Name:        rep.Name,
		Description: rep.Description,
		StartedAt:   rep.StartedAt,
		Duration:    rep.Duration.String(),
		Converged:   converged,
		Failed:      failed,
		Skipped:     skipped,
		Results:     make([]ResultDoc, 0, len(rep.Results)),
	}
	for _, res := range rep.Results {
		rd := ResultDoc{
			Name:    res.Problem.Name,
			G:       res.Options.G,
			X0:      res.Options.X0,
			Skipped: res.Skipped,
		}
		if !res.Skipped {
			od := report.NewOutcomeDoc(res.Outcome)
			rd.Outcome = &od
		}
		doc.Results = append(doc.Results, rd)
	}
	return doc
}

// Write renders rep in the given format
func Write(w io.Writer, format report.Format, rep *Report, opts report.FormatOptions) error {
	switch format {
	case report.FormatJSON:
		return report.EncodeJSON(w, NewReportDoc(rep))
	case report.FormatYAML:
		return report.EncodeYAML(w, NewReportDoc(rep))
	case report.FormatCSV:
		return writeCSV(w, rep)
	default:
		if _, err := io.WriteString(w, RenderSummary(rep, opts)); err != nil {
			return writeError("table", err)
		}
		return nil
	}
}

// writeCSV writes one row per problem with full precision values
func writeCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"name", "g", "x0", "kind", "success", "final_value", "final_error", "iterations"}}

	for _, res := range rep.Results {
		row := []string{res.Problem.Name, res.Options.G, strconv.FormatFloat(res.Options.X0, 'g', -1, 64)}
		if res.Skipped {
			row = append(row, "skipped", "false", "", "", "0")
		} else {
			out := res.Outcome
			row = append(row,
				string(out.Kind),
				strconv.FormatBool(out.Success),
				csvNumber(out.FinalValue),
				csvNumber(out.FinalError),
				strconv.Itoa(out.Steps()),
			)
		}
		rows = append(rows, row)
	}

	if err := cw.WriteAll(rows); err != nil {
		return writeError("csv", err)
	}
	return nil
}

// csvNumber writes the shortest exact representation; non-finite values
// are left empty
func csvNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeError(format string, err error) error {
	return mdwerror.Wrap(err, "batch export failed").
		WithCode(mdwerror.CodeRenderFailed).
		WithOperation("batch.Write").
		WithDetail("format", format)
}
