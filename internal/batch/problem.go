// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     batch
// Description: YAML problem sets
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package batch runs a set of named fixed-point problems read from YAML
// and summarises their outcomes.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
)

// Settings are the iteration parameters a set or a problem may override.
// Unset fields inherit from the enclosing level.
type Settings struct {
	Tolerance          *float64 `yaml:"tolerance,omitempty"`
	MaxIterations      *int     `yaml:"max_iterations,omitempty"`
	StopCriterion      string   `yaml:"stop_criterion,omitempty"`
	ErrorType          string   `yaml:"error_type,omitempty"`
	UseAcceleration    *bool    `yaml:"use_acceleration,omitempty"`
	SignificantFigures *int     `yaml:"significant_figures,omitempty"`
	AngleUnit          string   `yaml:"angle_unit,omitempty"`
}

// Problem is one entry of a set
type Problem struct {
	Name     string   `yaml:"name"`
	F        string   `yaml:"f,omitempty"`
	G        string   `yaml:"g"`
	X0       *float64 `yaml:"x0"`
	Settings `yaml:",inline"`
}

// Set is a named list of problems with shared defaults
type Set struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Defaults    Settings  `yaml:"defaults,omitempty"`
	Problems    []Problem `yaml:"problems"`
}

// Load reads a problem set from a YAML file
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		code := mdwerror.CodeInternal
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "problem set not readable").
			WithCode(code).
			WithOperation("batch.Load").
			WithDetail("path", path)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		var structured *mdwerror.Error
		if errors.As(err, &structured) {
			return nil, structured.WithDetail("path", path)
		}
		return nil, err
	}
	return set, nil
}

// Parse decodes and validates a problem set. Unknown keys are rejected.
func Parse(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var set Set
	if err := dec.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid(-1, "", "the problem set is empty")
		}
		return nil, mdwerror.Wrap(err, "invalid problem set").
			WithCode(mdwerror.CodeInvalidFormat).
			WithOperation("batch.Parse")
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate checks that every problem is complete and that every setting
// names a known value. Missing problem names are filled in.
func (s *Set) Validate() error {
	if len(s.Problems) == 0 {
		return invalid(-1, "problems", "the set has no problems")
	}
	if err := s.Defaults.check(); err != nil {
		return invalid(-1, "defaults", err.Error())
	}

	seen := make(map[string]bool, len(s.Problems))
	for i := range s.Problems {
		p := &s.Problems[i]
		if strings.TrimSpace(p.Name) == "" {
			p.Name = fmt.Sprintf("problema %d", i+1)
		}
		if seen[p.Name] {
			return invalid(i, "name", fmt.Sprintf("duplicate problem name %q", p.Name))
		}
		seen[p.Name] = true

		if strings.TrimSpace(p.G) == "" {
			return invalid(i, "g", "g is required")
		}
		if p.X0 == nil {
			return invalid(i, "x0", "x0 is required")
		}
		if err := p.Settings.check(); err != nil {
			return invalid(i, "settings", err.Error())
		}
	}
	return nil
}

// check parses the enumerated settings
func (s Settings) check() error {
	if s.StopCriterion != "" {
		if _, err := iteration.ParseStopCriterion(s.StopCriterion); err != nil {
			return err
		}
	}
	if s.ErrorType != "" {
		if _, err := iteration.ParseErrorType(s.ErrorType); err != nil {
			return err
		}
	}
	if s.AngleUnit != "" {
		if _, err := angle.ParseUnit(s.AngleUnit); err != nil {
			return err
		}
	}
	return nil
}

// apply overlays the set fields onto o. Range checks are left to the
// engine so that they surface in the outcome.
func (s Settings) apply(o iteration.Options) iteration.Options {
	if s.Tolerance != nil {
		o.Tolerance = *s.Tolerance
	}
	if s.MaxIterations != nil {
		o.MaxIterations = *s.MaxIterations
	}
	if s.StopCriterion != "" {
		o.StopCriterion, _ = iteration.ParseStopCriterion(s.StopCriterion)
	}
	if s.ErrorType != "" {
		o.ErrorType, _ = iteration.ParseErrorType(s.ErrorType)
	}
	if s.UseAcceleration != nil {
		o.UseAcceleration = *s.UseAcceleration
	}
	if s.SignificantFigures != nil {
		o.SignificantFigures = *s.SignificantFigures
	}
	if s.AngleUnit != "" {
		o.AngleUnit, _ = angle.ParseUnit(s.AngleUnit)
	}
	return o
}

// Options resolves the run options of p: base, then the set defaults,
// then the problem's own settings
func (s *Set) Options(p Problem, base iteration.Options) iteration.Options {
	o := s.Defaults.apply(base)
	o = p.Settings.apply(o)
	o.G = p.G
	if p.X0 != nil {
		o.X0 = *p.X0
	}
	return o
}

func invalid(index int, field, message string) error {
	err := mdwerror.New("invalid problem set: " + message).
		WithCode(mdwerror.CodeValidationFailed).
		WithOperation("batch.Validate")
	if field != "" {
		err = err.WithDetail("field", field)
	}
	if index >= 0 {
		err = err.WithDetail("problem", index+1)
	}
	return err
}
