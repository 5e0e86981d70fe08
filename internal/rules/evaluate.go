// internal/rules/evaluate.go
package rules

import (
	"regexp"

	"github.com/focusdeck/smartfolder/internal/types"
)

/*
 * Rule evaluation orchestration.
 *
 * Single-rule flow, in order:
 *   1. Validity gate: outside [validFrom, validUntil] (inclusive) -> false
 *   2. Parameter substitution: {{name}} tokens in string values, applied
 *      to a shallow copy of the rule
 *   3. Field resolution via the resolver
 *   4. Operator dispatch: extended catalog first, then the legacy basic
 *      set, then false
 *
 * Group flow: partition by groupId (rules without one share a synthetic
 * ungrouped bucket), fold each group with its logic (default AND, read
 * from the first rule encountered in the group), then OR across groups.
 * Groups are alternative eligibility criteria: any one complete group
 * admits the record.
 *
 * Failure semantics: evaluation is a best-effort boolean classifier, never
 * a validator. Malformed patterns, type mismatches, missing functions, and
 * garbage records all degrade to false with a logged warning; nothing
 * escapes to the caller.
 */

// paramToken matches {{identifier}} substitution tokens.
var paramToken = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Evaluate checks a single rule against a record. It never panics and
// never mutates rule or record.
func (e *Engine) Evaluate(record any, rule *types.Rule) bool {
	if rule == nil {
		return false
	}

	now := e.now()
	if rule.ValidFrom != nil && now.Before(*rule.ValidFrom) {
		return false
	}
	if rule.ValidUntil != nil && now.After(*rule.ValidUntil) {
		return false
	}

	// Shallow copy: substitution must not mutate the caller's rule.
	r := *rule
	if len(r.Parameters) > 0 {
		if s, ok := r.Value.(string); ok {
			r.Value = substituteParams(s, r.Parameters)
		}
	}

	fieldValue, _ := e.Resolve(record, &r)

	matched, err := e.dispatch(fieldValue, &r)
	if err != nil {
		e.logger.Warn("rule degraded to non-match",
			"operator", string(r.Operator),
			"field", string(r.Field),
			"error", err)
	}
	return matched
}

// EvaluateGroups checks a whole rule set against a record: AND (by
// default) within each group, OR across groups. An empty rule set matches;
// a folder with no rules imposes no constraint.
func (e *Engine) EvaluateGroups(record any, rules []types.Rule) bool {
	if len(rules) == 0 {
		return true
	}

	// Partition by groupId, preserving first-seen group order. Rules
	// without a groupId share the synthetic "" bucket.
	var order []string
	groups := make(map[string][]*types.Rule)
	for i := range rules {
		id := rules[i].GroupID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], &rules[i])
	}

	for _, id := range order {
		if e.evaluateGroup(record, groups[id]) {
			return true
		}
	}
	return false
}

// evaluateGroup folds one group's member results with the group's logic.
// The logic is read from the first rule in the group; heterogeneous
// settings within a group are not supported and later ones are ignored.
// An empty group is vacuously true.
func (e *Engine) evaluateGroup(record any, group []*types.Rule) bool {
	if len(group) == 0 {
		return true
	}
	logic := group[0].GroupLogic
	if logic == "" {
		logic = types.GroupAnd
	}

	if logic == types.GroupOr {
		for _, rule := range group {
			if e.Evaluate(record, rule) {
				return true
			}
		}
		return false
	}

	for _, rule := range group {
		if !e.Evaluate(record, rule) {
			return false
		}
	}
	return true
}

// dispatch routes a rule to its operator predicate. Extended catalog
// first; unknown tokens fall through to the legacy basic set; anything
// else is false. The error return is diagnostic only.
func (e *Engine) dispatch(fieldValue any, rule *types.Rule) (bool, error) {
	switch rule.Operator {
	case types.OpRegexMatch:
		return matchPattern(fieldValue, asString(rule.Value), rule.RegexFlags)

	case types.OpRegexNotMatch:
		// Negation of the shared helper: a non-string field or an invalid
		// pattern reports "no match", so the negation yields true here.
		matched, err := matchPattern(fieldValue, asString(rule.Value), rule.RegexFlags)
		return !matched, err

	case types.OpBetween:
		return numericBetween(fieldValue, rule.Value, false)

	case types.OpNotBetween:
		return numericBetween(fieldValue, rule.Value, true)

	case types.OpTimeBetween:
		return timeOfDayInWindow(fieldValue, rule.TimeRange), nil

	case types.OpTimeNotBetween:
		return !timeOfDayInWindow(fieldValue, rule.TimeRange), nil

	case types.OpArrayLength:
		return arrayLength(fieldValue, rule.Value), nil

	case types.OpArrayContainsAll, types.OpArrayContainsAny, types.OpArrayContainsNone:
		return arrayContains(fieldValue, rule.Value, rule.Operator), nil

	case types.OpCustomFunction:
		return e.callCustomFunction(fieldValue, rule)

	case types.OpWithinHours, types.OpWithinDays, types.OpWithinWeeks, types.OpWithinMonths,
		types.OpDayOfWeek, types.OpNotDayOfWeek:
		// Reserved catalog tokens without dispatch arms.
		return false, types.ErrUnsupportedOperator

	case types.OpEquals:
		return strictEqual(fieldValue, rule.Value), nil

	case types.OpContains:
		return legacyContains(fieldValue, rule.Value), nil

	default:
		return false, types.ErrUnsupportedOperator
	}
}

// callCustomFunction dispatches to a registered predicate. Missing
// functions, validator errors, and validator panics all degrade to false.
func (e *Engine) callCustomFunction(fieldValue any, rule *types.Rule) (matched bool, err error) {
	name, _ := rule.Value.(string)
	def, ok := e.customFunction(name)
	if !ok {
		return false, types.ErrFunctionNotFound
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("custom function panicked",
				"function", name,
				"panic", r)
			matched, err = false, nil
		}
	}()

	matched, err = def.Validator(fieldValue, rule)
	if err != nil {
		return false, err
	}
	return matched, nil
}

// substituteParams replaces {{name}} tokens in value with the string form
// of the matching parameter. Tokens without a matching parameter are left
// verbatim.
func substituteParams(value string, params map[string]any) string {
	return paramToken.ReplaceAllStringFunc(value, func(token string) string {
		name := token[2 : len(token)-2]
		if v, ok := params[name]; ok {
			return asString(v)
		}
		return token
	})
}
