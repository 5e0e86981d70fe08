// internal/rules/engine.go
package rules

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/focusdeck/smartfolder/internal/types"
)

/*
 * Rule engine context.
 *
 * Engine holds the two registries (custom fields, safe custom functions),
 * the development-mode flag, a logger, and a clock. Registries live on the
 * engine rather than at module scope so each application or test constructs
 * a fresh context while keeping the register-once-evaluate-many pattern.
 *
 * Development mode is captured once at construction and never re-checked:
 * an engine built for production stays production even if the environment
 * changes underneath it.
 *
 * Registries are guarded by a mutex. The reference execution model is a
 * single-threaded request handler, but a Go host is plausibly concurrent
 * and registration vs evaluation must not race.
 */

// Engine evaluates smart folder rules against records. Construct with
// NewEngine; the zero value is not usable.
type Engine struct {
	mu           sync.RWMutex
	customFields map[string]types.CustomFieldDefinition
	customFuncs  map[string]types.SafeCustomFunction

	development bool
	logger      *slog.Logger

	// now is the evaluation clock for validity windows. Tests override it.
	now func() time.Time
}

// NewEngine creates an engine context. development gates registration of
// restricted and dangerous custom functions. A nil logger falls back to
// slog.Default().
func NewEngine(development bool, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		customFields: make(map[string]types.CustomFieldDefinition),
		customFuncs:  make(map[string]types.SafeCustomFunction),
		development:  development,
		logger:       logger,
		now:          time.Now,
	}
}

// Development reports whether the engine was constructed in development
// mode.
func (e *Engine) Development() bool {
	return e.development
}

// Filter applies rules to each record and collects the members. Membership
// per record follows EvaluateGroups semantics.
func (e *Engine) Filter(records []any, rules []types.Rule) []any {
	var matched []any
	for _, record := range records {
		if e.EvaluateGroups(record, rules) {
			matched = append(matched, record)
		}
	}
	return matched
}

// ValidateRuleSet checks a caller-supplied rule set against resource
// limits before evaluation. Unlike evaluation this is a hard boundary:
// a rule set that fails validation is a configuration error, not a
// non-matching record. Limits of zero or less are unenforced.
func ValidateRuleSet(rules []types.Rule, maxRules, maxPatternLen int) error {
	if maxRules > 0 && len(rules) > maxRules {
		return fmt.Errorf("%w: %d rules, limit %d", types.ErrTooManyRules, len(rules), maxRules)
	}
	for i, rule := range rules {
		if !types.KnownOperator(rule.Operator) {
			// Unknown tokens still evaluate (to false); flagging them here
			// surfaces typos at load time instead.
			return fmt.Errorf("rule %d: %w: %q", i, types.ErrUnsupportedOperator, rule.Operator)
		}
		if rule.Operator == types.OpRegexMatch || rule.Operator == types.OpRegexNotMatch {
			if s, ok := rule.Value.(string); ok && maxPatternLen > 0 && len(s) > maxPatternLen {
				return fmt.Errorf("rule %d: %w: %d chars, limit %d", i, types.ErrPatternTooLong, len(s), maxPatternLen)
			}
		}
	}
	return nil
}
