// Package types provides domain models shared across smart folder components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so rule sets can be embedded in other binaries without pulling in
// the engine. ID utilities in ids.go import uuid but are isolated for
// selective inclusion.
package types

import (
	"sort"
	"time"
)

// Field is a logical field identifier on a record. The resolver maps each
// value through an alias table, so a Field names a concept (creation date)
// rather than a concrete record key (createdAt vs created_at). Arbitrary
// strings are also valid Fields and resolve by direct key lookup.
type Field string

const (
	FieldTag         Field = "tag"
	FieldCreatedDate Field = "created_date"
	FieldUpdatedDate Field = "updated_date"
	FieldStatus      Field = "status"
	FieldPriority    Field = "priority"
	FieldIsFavorite  Field = "is_favorite"
	FieldDueDate     Field = "due_date"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// Operator identifies a predicate in the extended catalog, or one of the
// legacy basic operators kept for backward compatibility. The catalog is
// open for extension and closed for modification: new operators are
// additive tokens, existing tokens are never redefined.
type Operator string

const (
	// Regex family.
	OpRegexMatch    Operator = "regex_match"
	OpRegexNotMatch Operator = "regex_not_match"

	// Numeric range family. Inclusive on both ends.
	OpBetween    Operator = "between"
	OpNotBetween Operator = "not_between"

	// Relative-time family. Reserved: catalog tokens with no dispatch arm.
	OpWithinHours  Operator = "within_hours"
	OpWithinDays   Operator = "within_days"
	OpWithinWeeks  Operator = "within_weeks"
	OpWithinMonths Operator = "within_months"

	// Time-of-day window family.
	OpTimeBetween    Operator = "time_between"
	OpTimeNotBetween Operator = "time_not_between"

	// Day-of-week family. Reserved: catalog tokens with no dispatch arm.
	OpDayOfWeek    Operator = "day_of_week"
	OpNotDayOfWeek Operator = "not_day_of_week"

	// Array family.
	OpArrayLength       Operator = "array_length"
	OpArrayContainsAll  Operator = "array_contains_all"
	OpArrayContainsAny  Operator = "array_contains_any"
	OpArrayContainsNone Operator = "array_contains_none"

	// Custom-function dispatch. Rule.Value names a registered function.
	OpCustomFunction Operator = "custom_function"

	// Legacy basic operators.
	OpEquals   Operator = "equals"
	OpContains Operator = "contains"
)

// catalog holds every known operator token, including reserved ones.
var catalog = map[Operator]struct{}{
	OpRegexMatch: {}, OpRegexNotMatch: {},
	OpBetween: {}, OpNotBetween: {},
	OpWithinHours: {}, OpWithinDays: {}, OpWithinWeeks: {}, OpWithinMonths: {},
	OpTimeBetween: {}, OpTimeNotBetween: {},
	OpDayOfWeek: {}, OpNotDayOfWeek: {},
	OpArrayLength: {}, OpArrayContainsAll: {}, OpArrayContainsAny: {}, OpArrayContainsNone: {},
	OpCustomFunction: {},
	OpEquals:         {}, OpContains: {},
}

// KnownOperator reports whether op is a catalog token (reserved tokens
// included) or a legacy basic operator.
func KnownOperator(op Operator) bool {
	_, ok := catalog[op]
	return ok
}

// GroupLogic combines member results within a rule group.
type GroupLogic string

const (
	GroupAnd GroupLogic = "AND"
	GroupOr  GroupLogic = "OR"
)

// SecurityLevel classifies a custom function for registration gating.
type SecurityLevel string

const (
	// SecuritySafe functions are always registrable.
	SecuritySafe SecurityLevel = "safe"
	// SecurityRestricted functions are registrable only in development mode.
	SecurityRestricted SecurityLevel = "restricted"
	// SecurityDangerous functions are registrable only in development mode.
	SecurityDangerous SecurityLevel = "dangerous"
)

// TimeRange configures the time-of-day window operators.
// StartTime/EndTime are 24h "HH:MM" strings compared lexicographically
// against the record's local time; windows that wrap midnight
// (StartTime > EndTime) are not supported. Timezone is advisory only and
// not enforced by the evaluator.
type TimeRange struct {
	StartTime       string `json:"startTime,omitempty"`
	EndTime         string `json:"endTime,omitempty"`
	Timezone        string `json:"timezone,omitempty"`
	ExcludeWeekends bool   `json:"excludeWeekends,omitempty"`
	ExcludeHolidays bool   `json:"excludeHolidays,omitempty"`
}

// Rule is a single predicate: field + operator + operand, with optional
// grouping, validity window, and parameterization. Rules are immutable by
// convention: the engine never mutates its input and performs parameter
// substitution on a shallow copy.
//
// Value is polymorphic: string, number, boolean, time, nil, a two-element
// numeric tuple for the range operators, or an opaque payload interpreted
// by a custom function. JSON round-trips losslessly through this shape.
type Rule struct {
	// ID is optional; persisted or UI-managed rules carry one, inline
	// rules usually do not.
	ID RuleID `json:"id,omitempty"`

	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`

	// IsRegex/RegexFlags apply to the regex operators only. Flags default
	// to case-insensitive ("i") when absent.
	IsRegex    bool   `json:"isRegex,omitempty"`
	RegexFlags string `json:"regexFlags,omitempty"`

	// CustomField, when set, bypasses the standard field map and resolves
	// the value through a registered extractor.
	CustomField string `json:"customField,omitempty"`

	TimeRange *TimeRange `json:"timeRange,omitempty"`

	// GroupID/GroupLogic: rules sharing a GroupID are combined with that
	// group's logic (default AND); groups combine with each other via OR.
	GroupID    string     `json:"groupId,omitempty"`
	GroupLogic GroupLogic `json:"groupLogic,omitempty"`

	// Weight is advisory priority for ranking callers; the evaluator does
	// not consume it.
	Weight float64 `json:"weight,omitempty"`

	// ValidFrom/ValidUntil bound rule activation, inclusive on both ends.
	// Outside the window a rule evaluates to false regardless of its
	// predicate.
	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`

	// Parameters drive {{name}} substitution inside string Values, applied
	// once per evaluation before operator dispatch. Unresolved tokens are
	// left verbatim.
	Parameters map[string]any `json:"parameters,omitempty"`
}

// SmartFolder is a saved, dynamically evaluated filter: membership is
// decided by re-running Rules against the current record set rather than
// storing a fixed list.
type SmartFolder struct {
	ID          FolderID `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Rules       []Rule   `json:"rules"`
}

// CustomFieldDefinition registers a value extractor that supersedes the
// built-in field-alias map. Extractor is the sole required behavior; Type
// and Validator are descriptive and not enforced by the engine.
type CustomFieldDefinition struct {
	ID          string
	Name        string
	Type        string
	Description string
	Validator   func(value any) bool
	Extractor   func(record any) any
}

// SafeCustomFunction is a named, reusable boolean predicate dispatched by
// the custom_function operator. The error return is diagnostic: the engine
// logs it and degrades the predicate to false, and additionally recovers
// panics, so a validator can never abort evaluation.
type SafeCustomFunction struct {
	Name          string
	Description   string
	Validator     func(value any, rule *Rule) (bool, error)
	SecurityLevel SecurityLevel
}

// SortByWeight stable-sorts rules by descending weight for ranking callers.
// Evaluation order is unaffected; weight is advisory.
func SortByWeight(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Weight > rules[j].Weight
	})
}
