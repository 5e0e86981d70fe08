// internal/rules/cel.go
package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celtypes "github.com/google/cel-go/common/types"

	"github.com/focusdeck/smartfolder/internal/types"
)

/*
 * CEL-backed custom predicates.
 *
 * CompileExpression turns a CEL expression over a `value` variable into a
 * SafeCustomFunction. CEL programs are sandboxed and terminate, so the
 * result carries the safe security level and is registrable in production.
 * This is the supported authoring path for user-supplied predicates;
 * hand-written Go validators are for trusted code.
 *
 * Compile errors surface at authoring time. Evaluation errors (type
 * errors against a particular record value) follow the engine's degrade
 * policy: the validator returns them and the engine logs and yields false.
 */

// celEnv builds the single-variable environment shared by all compiled
// predicates: `value` is the resolved field value, dynamically typed.
func celEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("value", cel.DynType),
	)
}

// CompileExpression compiles expr into a safe custom function named name.
// The expression must produce a boolean.
func CompileExpression(name, description, expr string) (types.SafeCustomFunction, error) {
	env, err := celEnv()
	if err != nil {
		return types.SafeCustomFunction{}, fmt.Errorf("failed to create expression environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return types.SafeCustomFunction{}, fmt.Errorf("failed to compile expression %q: %w", name, issues.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return types.SafeCustomFunction{}, fmt.Errorf("expression %q: %w (got %s)", name, types.ErrNotBoolean, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return types.SafeCustomFunction{}, fmt.Errorf("failed to create program for expression %q: %w", name, err)
	}

	validator := func(value any, _ *types.Rule) (bool, error) {
		out, _, err := program.Eval(map[string]any{"value": celValue(value)})
		if err != nil {
			return false, fmt.Errorf("expression %q: %w", name, err)
		}
		b, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("expression %q: %w", name, types.ErrNotBoolean)
		}
		return b, nil
	}

	return types.SafeCustomFunction{
		Name:          name,
		Description:   description,
		Validator:     validator,
		SecurityLevel: types.SecuritySafe,
	}, nil
}

// celValue adapts an unresolved (nil) field value so the program sees a
// CEL null rather than a Go nil interface.
func celValue(value any) any {
	if value == nil {
		return celtypes.NullValue
	}
	return value
}
