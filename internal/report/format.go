// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     report
// Description: Number formatting for display. Values are only rounded
//              here; computations always keep full precision.
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package report renders iteration outcomes as terminal tables, summaries
// and JSON, YAML or CSV exports.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/msto63/puntofijo/internal/angle"
)

// PrecisionMode selects how FormatNumber rounds
type PrecisionMode string

const (
	PrecisionDecimals    PrecisionMode = "decimals"
	PrecisionSignificant PrecisionMode = "significant"
)

// ParsePrecisionMode parses a precision mode name; empty selects decimals
func ParsePrecisionMode(s string) (PrecisionMode, error) {
	switch PrecisionMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PrecisionDecimals:
		return PrecisionDecimals, nil
	case PrecisionSignificant:
		return PrecisionSignificant, nil
	default:
		return "", fmt.Errorf("modo de precisión desconocido %q: use decimals o significant", s)
	}
}

// FormatOptions controls number formatting
type FormatOptions struct {
	Mode               PrecisionMode
	Decimals           int // default 6
	SignificantFigures int // default 6
}

// DefaultFormatOptions returns six decimals
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Mode: PrecisionDecimals, Decimals: 6, SignificantFigures: 6}
}

func (o FormatOptions) withDefaults() FormatOptions {
	if o.Mode == "" {
		o.Mode = PrecisionDecimals
	}
	if o.Decimals <= 0 {
		o.Decimals = 6
	}
	if o.SignificantFigures <= 0 {
		o.SignificantFigures = 6
	}
	return o
}

// FormatNumber formats value with a fixed number of decimals or
// significant figures. Non-finite values print as "N/A".
func FormatNumber(value float64, opts FormatOptions) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}

	opts = opts.withDefaults()
	if opts.Mode == PrecisionSignificant {
		return toPrecision(value, opts.SignificantFigures)
	}
	return strconv.FormatFloat(value, 'f', opts.Decimals, 64)
}

// FormatError formats an iteration error. NaN (step 0) prints as "–";
// values below 0.001 or above 1000 use scientific notation with two
// decimals, everything else six decimals.
func FormatError(value float64) string {
	switch {
	case math.IsNaN(value):
		return "–"
	case math.IsInf(value, 0):
		return "N/A"
	case value < 0.001 || value > 1000:
		return toExponential(value, 2)
	default:
		return strconv.FormatFloat(value, 'f', 6, 64)
	}
}

// FormatWithUnit appends the unit symbol to a formatted value
func FormatWithUnit(value float64, unit angle.Unit, opts FormatOptions) string {
	return FormatNumber(value, opts) + " " + unit.Symbol()
}

// toExponential writes value as d.dde±x with the exponent unpadded,
// e.g. 1.00e-6 and 1.23e+3
func toExponential(value float64, digits int) string {
	s := strconv.FormatFloat(value, 'e', digits, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}

// toPrecision writes value with sig significant digits, switching to
// exponential notation when the decimal exponent is below -6 or at least sig
func toPrecision(value float64, sig int) string {
	if value == 0 {
		return strconv.FormatFloat(0, 'f', sig-1, 64)
	}

	// Round first so the exponent reflects carries such as 9.99 -> 10.0
	s := strconv.FormatFloat(value, 'e', sig-1, 64)
	_, expPart, _ := strings.Cut(s, "e")
	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return s
	}

	if exp < -6 || exp >= sig {
		return toExponential(value, sig-1)
	}
	return strconv.FormatFloat(value, 'f', sig-1-exp, 64)
}
