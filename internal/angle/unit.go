// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     angle
// Description: Angle units and conversions between degrees and radians
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package angle handles the angle unit in which trigonometric arguments
// of g(x) are interpreted.
package angle

import (
	"fmt"
	"math"
	"strings"
)

// Unit is the angle unit of trigonometric arguments
type Unit string

const (
	Radians Unit = "radians"
	Degrees Unit = "degrees"
)

// Valid reports whether u is one of the two supported units.
// The zero value is not valid.
func (u Unit) Valid() bool {
	return u == Radians || u == Degrees
}

// Symbol returns the short display symbol of the unit
func (u Unit) Symbol() string {
	if u == Degrees {
		return "°"
	}
	return "rad"
}

// Label returns the Spanish display name of the unit
func (u Unit) Label() string {
	if u == Degrees {
		return "grados"
	}
	return "radianes"
}

func (u Unit) String() string {
	return string(u)
}

// ParseUnit accepts the canonical names plus the usual short forms
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radians", "radian", "rad", "radianes":
		return Radians, nil
	case "degrees", "degree", "deg", "grados", "°":
		return Degrees, nil
	default:
		return "", fmt.Errorf("unidad angular desconocida %q: use radians o degrees", s)
	}
}

// DegreesToRadians converts an angle from degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// RadiansToDegrees converts an angle from radians to degrees
func RadiansToDegrees(radians float64) float64 {
	return radians * (180 / math.Pi)
}

// Convert converts value from one unit to another. Invalid units leave
// the value unchanged.
func Convert(value float64, from, to Unit) float64 {
	switch {
	case from == to:
		return value
	case from == Degrees && to == Radians:
		return DegreesToRadians(value)
	case from == Radians && to == Degrees:
		return RadiansToDegrees(value)
	default:
		return value
	}
}

// ConvertForDisplay converts a value computed in calc for display in display
func ConvertForDisplay(value float64, calc, display Unit) float64 {
	return Convert(value, calc, display)
}

// ConvertInitialValue converts a seed entered in input into the unit used
// for the computation. An empty input unit means the seed is already in calc.
func ConvertInitialValue(x0 float64, calc, input Unit) float64 {
	if input == "" {
		return x0
	}
	return Convert(x0, input, calc)
}
