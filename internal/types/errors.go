package types

import "errors"

// Sentinel errors for smart folder operations. Inside the evaluator these
// are diagnostics: logged, then unwrapped to a plain false at the public
// API boundary.
var (
	// ErrFieldNotFound indicates no alias of a logical field is present on
	// the record, or the record is not an object.
	ErrFieldNotFound = errors.New("field not found")

	// ErrInvalidPattern indicates a regex pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrInvalidRange indicates a range operand is not a [min, max] tuple.
	ErrInvalidRange = errors.New("range operand is not a [min, max] tuple")

	// ErrUnsupportedOperator indicates a reserved or unknown operator token.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrFunctionNotFound indicates a custom_function rule references an
	// unregistered function name.
	ErrFunctionNotFound = errors.New("custom function not registered")

	// ErrSecurityClearance indicates a restricted or dangerous custom
	// function was rejected outside development mode.
	ErrSecurityClearance = errors.New("insufficient security clearance for custom function")

	// ErrNotBoolean indicates a custom predicate expression produced a
	// non-boolean result.
	ErrNotBoolean = errors.New("expression result is not a boolean")

	// ErrTooManyRules indicates a rule set exceeds the configured limit.
	ErrTooManyRules = errors.New("rule set exceeds maximum size")

	// ErrPatternTooLong indicates a regex pattern exceeds the configured
	// length limit.
	ErrPatternTooLong = errors.New("regex pattern exceeds maximum length")
)
