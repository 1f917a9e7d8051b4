package iteration

import (
	"fmt"
	"math"
	"strings"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
	"github.com/msto63/puntofijo/internal/angle"
)

// ValidationError reports an option that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Structured converts the error into a foundation error
func (e *ValidationError) Structured() *mdwerror.Error {
	code := mdwerror.CodeValidationFailed
	if e.Field == "angle_unit" {
		code = mdwerror.CodeInvalidConfig
	}
	return mdwerror.New(e.Message).
		WithCode(code).
		WithOperation("iteration.Validate").
		WithDetail("field", e.Field)
}

// Validate checks the options in the order the engine does and returns
// the first violation
func (o Options) Validate() error {
	_, err := o.normalized()
	return err
}

// normalized applies defaults for the optional fields and validates.
// The angle unit is checked first and has no default.
func (o Options) normalized() (Options, error) {
	if !o.AngleUnit.Valid() {
		return o, &ValidationError{
			Field:   "angle_unit",
			Message: fmt.Sprintf("la unidad angular debe ser %q o %q, se recibió %q", angle.Radians, angle.Degrees, o.AngleUnit),
		}
	}

	if math.IsNaN(o.X0) || math.IsInf(o.X0, 0) {
		return o, &ValidationError{Field: "x0", Message: "el valor inicial x₀ debe ser un número finito"}
	}

	if math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) || o.Tolerance <= 0 {
		return o, &ValidationError{Field: "tolerance", Message: "la tolerancia debe ser un número finito positivo"}
	}

	if o.MaxIterations < 1 {
		return o, &ValidationError{Field: "max_iterations", Message: "el máximo de iteraciones debe ser un entero positivo"}
	}

	if strings.TrimSpace(o.G) == "" {
		return o, &ValidationError{Field: "g", Message: "la función g(x) no puede estar vacía"}
	}

	if len(o.G) > MaxExpressionLength {
		return o, &ValidationError{
			Field:   "g",
			Message: fmt.Sprintf("la función g(x) es demasiado larga (máximo %d caracteres)", MaxExpressionLength),
		}
	}

	switch o.StopCriterion {
	case "":
		o.StopCriterion = StopDelta
	case StopDelta, StopResidual:
	default:
		return o, &ValidationError{
			Field:   "stop_criterion",
			Message: fmt.Sprintf("criterio de parada desconocido %q: use delta o residual", o.StopCriterion),
		}
	}

	switch o.ErrorType {
	case "":
		o.ErrorType = ErrorAbsolute
	case ErrorAbsolute, ErrorRelative:
	default:
		return o, &ValidationError{
			Field:   "error_type",
			Message: fmt.Sprintf("tipo de error desconocido %q: use absolute o relative", o.ErrorType),
		}
	}

	if o.SignificantFigures == 0 {
		o.SignificantFigures = DefaultSignificantFigures
	}
	if o.SignificantFigures < 1 {
		return o, &ValidationError{Field: "significant_figures", Message: "las cifras significativas deben ser al menos 1"}
	}

	return o, nil
}

// ParseStopCriterion parses a stop criterion name; empty selects delta
func ParseStopCriterion(s string) (StopCriterion, error) {
	switch StopCriterion(strings.ToLower(strings.TrimSpace(s))) {
	case "", StopDelta:
		return StopDelta, nil
	case StopResidual:
		return StopResidual, nil
	default:
		return "", fmt.Errorf("criterio de parada desconocido %q: use delta o residual", s)
	}
}

// ParseErrorType parses an error type name; empty selects absolute
func ParseErrorType(s string) (ErrorType, error) {
	switch ErrorType(strings.ToLower(strings.TrimSpace(s))) {
	case "", ErrorAbsolute:
		return ErrorAbsolute, nil
	case ErrorRelative:
		return ErrorRelative, nil
	default:
		return "", fmt.Errorf("tipo de error desconocido %q: use absolute o relative", s)
	}
}
