// internal/rules/builder.go
package rules

import "github.com/focusdeck/smartfolder/internal/types"

/*
 * Fluent rule set builder.
 *
 * A stateful accumulator with a current-group cursor: StartGroup sets the
 * cursor, EndGroup clears it, and every rule added in between is stamped
 * with the cursor's group ID and logic. Build returns a defensive copy so
 * later builder mutations cannot alias an already-built rule set.
 *
 * The builder is a pure convenience layer over the rule model: it performs
 * no validation and never evaluates anything.
 */

// Builder assembles rule arrays fluently. The zero value is ready to use.
type Builder struct {
	rules      []types.Rule
	groupID    string
	groupLogic types.GroupLogic
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// StartGroup sets the current-group cursor. Rules added until EndGroup (or
// the next StartGroup) carry this group ID and logic. Logic defaults to
// AND when omitted.
func (b *Builder) StartGroup(id string, logic ...types.GroupLogic) *Builder {
	b.groupID = id
	b.groupLogic = types.GroupAnd
	if len(logic) > 0 {
		b.groupLogic = logic[0]
	}
	return b
}

// EndGroup clears the current-group cursor.
func (b *Builder) EndGroup() *Builder {
	b.groupID = ""
	b.groupLogic = ""
	return b
}

// AddRule appends a rule, stamping the current group cursor onto it when
// one is set and the rule does not already carry a group.
func (b *Builder) AddRule(rule types.Rule) *Builder {
	if b.groupID != "" && rule.GroupID == "" {
		rule.GroupID = b.groupID
		rule.GroupLogic = b.groupLogic
	}
	b.rules = append(b.rules, rule)
	return b
}

// Regex appends a regex_match rule. Flags default to case-insensitive
// when omitted.
func (b *Builder) Regex(field types.Field, pattern string, flags ...string) *Builder {
	rule := types.Rule{
		Field:    field,
		Operator: types.OpRegexMatch,
		Value:    pattern,
		IsRegex:  true,
	}
	if len(flags) > 0 {
		rule.RegexFlags = flags[0]
	}
	return b.AddRule(rule)
}

// Between appends an inclusive numeric range rule.
func (b *Builder) Between(field types.Field, min, max float64) *Builder {
	return b.AddRule(types.Rule{
		Field:    field,
		Operator: types.OpBetween,
		Value:    []any{min, max},
	})
}

// TimeRange appends a time_between rule over a start/end window.
func (b *Builder) TimeRange(field types.Field, start, end string, tr ...types.TimeRange) *Builder {
	window := types.TimeRange{StartTime: start, EndTime: end}
	if len(tr) > 0 {
		window = tr[0]
		window.StartTime = start
		window.EndTime = end
	}
	return b.AddRule(types.Rule{
		Field:     field,
		Operator:  types.OpTimeBetween,
		TimeRange: &window,
	})
}

// ContainsAny appends an array_contains_any rule over the given targets.
func (b *Builder) ContainsAny(field types.Field, targets ...any) *Builder {
	return b.AddRule(types.Rule{
		Field:    field,
		Operator: types.OpArrayContainsAny,
		Value:    targets,
	})
}

// CustomFunction appends a custom_function rule dispatching to name.
func (b *Builder) CustomFunction(field types.Field, name string) *Builder {
	return b.AddRule(types.Rule{
		Field:    field,
		Operator: types.OpCustomFunction,
		Value:    name,
	})
}

// Build returns a defensive copy of the accumulated rules. The builder
// remains usable afterwards.
func (b *Builder) Build() []types.Rule {
	out := make([]types.Rule, len(b.rules))
	copy(out, b.rules)
	return out
}

// Reset clears the accumulated rules and the group cursor.
func (b *Builder) Reset() *Builder {
	b.rules = nil
	b.groupID = ""
	b.groupLogic = ""
	return b
}
