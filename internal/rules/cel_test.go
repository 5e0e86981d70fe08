package rules

import (
	"testing"

	"github.com/focusdeck/smartfolder/internal/types"
)

func TestCompileExpression(t *testing.T) {
	def, err := CompileExpression("long-title", "titles over five chars", `type(value) == string && size(value) > 5`)
	if err != nil {
		t.Fatalf("CompileExpression() error = %v, want nil", err)
	}
	if def.SecurityLevel != types.SecuritySafe {
		t.Errorf("SecurityLevel = %q, want safe (CEL predicates are sandboxed)", def.SecurityLevel)
	}

	e := newTestEngine()
	if !e.RegisterSafeCustomFunction(def) {
		t.Fatal("RegisterSafeCustomFunction() = false, want true")
	}

	rule := &types.Rule{Field: types.FieldTitle, Operator: types.OpCustomFunction, Value: "long-title"}
	if !e.Evaluate(map[string]any{"title": "a long title"}, rule) {
		t.Error("Evaluate() = false, want true from CEL predicate")
	}
	if e.Evaluate(map[string]any{"title": "tiny"}, rule) {
		t.Error("Evaluate() = true, want false from CEL predicate")
	}
}

func TestCompileExpression_RegistersInProduction(t *testing.T) {
	def, err := CompileExpression("prod-safe", "", `value == "ok"`)
	if err != nil {
		t.Fatalf("CompileExpression() error = %v, want nil", err)
	}

	e := NewEngine(false, nil) // production mode
	if !e.RegisterSafeCustomFunction(def) {
		t.Error("RegisterSafeCustomFunction() = false, want true (safe level passes the gate)")
	}
}

func TestCompileExpression_CompileError(t *testing.T) {
	if _, err := CompileExpression("broken", "", `value ==`); err == nil {
		t.Error("CompileExpression() error = nil, want compile failure")
	}
}

func TestCompileExpression_RuntimeErrorDegrades(t *testing.T) {
	// size() of a non-sized value errors at evaluation time, not compile
	// time; the engine must degrade to false.
	def, err := CompileExpression("sized", "", `size(value) > 0`)
	if err != nil {
		t.Fatalf("CompileExpression() error = %v, want nil", err)
	}

	e := newTestEngine()
	e.RegisterSafeCustomFunction(def)

	rule := &types.Rule{Field: types.FieldPriority, Operator: types.OpCustomFunction, Value: "sized"}
	if e.Evaluate(map[string]any{"priority": 3.0}, rule) {
		t.Error("Evaluate() = true, want false when the expression errors at runtime")
	}
}

func TestCompileExpression_NilFieldValue(t *testing.T) {
	def, err := CompileExpression("null-check", "", `value == null`)
	if err != nil {
		t.Fatalf("CompileExpression() error = %v, want nil", err)
	}

	e := newTestEngine()
	e.RegisterSafeCustomFunction(def)

	rule := &types.Rule{Field: types.FieldTitle, Operator: types.OpCustomFunction, Value: "null-check"}
	if !e.Evaluate(map[string]any{"other": 1}, rule) {
		t.Error("Evaluate() = false, want true (unresolved field presents as null)")
	}
}
