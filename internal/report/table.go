// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     report
// Description: Terminal rendering of the iteration table and run summary
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/msto63/puntofijo/internal/iteration"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1).
			Align(lipgloss.Center)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right)

	FinalRowStyle = CellStyle.
			Foreground(colorSecondary).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	FailureStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Headers returns the column titles of the iteration table
func Headers(withAitken bool) []string {
	headers := []string{"n", "xₙ", "g(xₙ)", "Error"}
	if withAitken {
		headers = append(headers, "Aitken")
	}
	return headers
}

// Rows formats every record as table cells
func Rows(out iteration.Outcome, opts FormatOptions) [][]string {
	withAitken := HasAitken(out)

	rows := make([][]string, 0, len(out.Iterations))
	for _, rec := range out.Iterations {
		row := []string{
			strconv.Itoa(rec.N),
			FormatNumber(rec.Xn, opts),
			FormatNumber(rec.Gxn, opts),
			FormatError(rec.Error),
		}
		if withAitken {
			aitken := "–"
			if rec.AitkenValue != nil {
				aitken = FormatNumber(*rec.AitkenValue, opts)
			}
			row = append(row, aitken)
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderTable renders the iteration history as a bordered table. The
// final record is highlighted on success.
func RenderTable(out iteration.Outcome, opts FormatOptions) string {
	if len(out.Iterations) == 0 {
		return MutedStyle.Render("(sin iteraciones)")
	}

	rows := Rows(out, opts)
	lastRow := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(Headers(HasAitken(out))...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case row == lastRow && out.Success:
				return FinalRowStyle
			default:
				return CellStyle
			}
		})

	return t.String()
}

// RenderSummary renders the status lines below the table
func RenderSummary(out iteration.Outcome, opts FormatOptions) string {
	var b strings.Builder

	if out.Success {
		b.WriteString(SuccessStyle.Render(out.Message))
	} else {
		b.WriteString(FailureStyle.Render(out.Message))
	}
	b.WriteString("\n")

	if out.ConvergenceCriterion != "" {
		fmt.Fprintf(&b, "%s %s\n", MutedStyle.Render("Criterio:"), out.ConvergenceCriterion)
	}

	if len(out.Iterations) > 0 {
		fmt.Fprintf(&b, "%s %s\n", MutedStyle.Render("x* ≈"), FormatWithUnit(out.FinalValue, out.AngleUnit, opts))
		fmt.Fprintf(&b, "%s %s\n", MutedStyle.Render("Error final:"), FormatError(out.FinalError))
		fmt.Fprintf(&b, "%s %d\n", MutedStyle.Render("Iteraciones:"), out.Steps())
	}

	if out.DerivativeValue != nil {
		fmt.Fprintf(&b, "%s %s\n", MutedStyle.Render("g'(x₀) ≈"), FormatNumber(*out.DerivativeValue, opts))
	}

	if out.DerivativeWarning != "" {
		b.WriteString(WarningStyle.Render(out.DerivativeWarning))
		b.WriteString("\n")
	}

	return b.String()
}

// Render returns the table followed by the summary
func Render(out iteration.Outcome, opts FormatOptions) string {
	return RenderTable(out, opts) + "\n" + RenderSummary(out, opts)
}

// HasAitken reports whether any record carries an accelerated value
func HasAitken(out iteration.Outcome) bool {
	for _, rec := range out.Iterations {
		if rec.AitkenValue != nil {
			return true
		}
	}
	return false
}
