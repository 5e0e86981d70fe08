// internal/rules/operators.go
package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/focusdeck/smartfolder/internal/types"
)

/*
 * Operator predicate logic.
 *
 * Implements the extended operator families plus the legacy basic set.
 * Each helper takes an already-resolved field value and the rule operand;
 * type mismatches return false, configuration problems (bad pattern,
 * malformed tuple) return false plus a diagnostic error for the caller to
 * log. No helper panics and no helper mutates its inputs.
 *
 * Why function-based: operator dispatch is a switch in evaluate.go over
 * small predicate helpers, mirroring how the rest of the codebase prefers
 * functional composition over interface polymorphism.
 */

// matchPattern reports whether value matches pattern under the given
// flags. Non-string values never match; callers negate the result for the
// not-match operator, so a non-string field yields true there. Flags
// default to case-insensitive when empty; "i", "m", "s" map onto Go regexp
// inline flags, other flag letters are ignored.
func matchPattern(value any, pattern, flags string) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	re, err := compilePattern(pattern, flags)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// compilePattern builds a Go regexp from a pattern and JS-style flag
// letters. An empty flag string means the default "i".
func compilePattern(pattern, flags string) (*regexp.Regexp, error) {
	if flags == "" {
		flags = "i"
	}
	var inline strings.Builder
	for _, f := range "ims" {
		if strings.ContainsRune(flags, f) {
			inline.WriteRune(f)
		}
	}
	if inline.Len() > 0 {
		pattern = "(?" + inline.String() + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidPattern, err)
	}
	return re, nil
}

// rangeBounds extracts the [min, max] tuple from a range operand.
func rangeBounds(operand any) (float64, float64, error) {
	arr, ok := asSlice(operand)
	if !ok || len(arr) != 2 {
		return 0, 0, types.ErrInvalidRange
	}
	min, okMin := asFloat(arr[0])
	max, okMax := asFloat(arr[1])
	if !okMin || !okMax {
		return 0, 0, types.ErrInvalidRange
	}
	return min, max, nil
}

// numericBetween reports whether value falls inside [min, max], inclusive
// on both ends. A value that fails numeric coercion fails the predicate
// for between and not_between alike: the caller must not treat not_between
// as a plain negation.
func numericBetween(value, operand any, negate bool) (bool, error) {
	min, max, err := rangeBounds(operand)
	if err != nil {
		return false, err
	}
	f, ok := asFloat(value)
	if !ok {
		// Non-numeric fields fail both between and not_between.
		return false, nil
	}
	inside := f >= min && f <= max
	if negate {
		return !inside, nil
	}
	return inside, nil
}

// stubHolidays is a small, hard-coded holiday list keyed by "YYYY-MM-DD".
// It is a placeholder, not a production holiday calendar.
var stubHolidays = map[string]struct{}{
	"2024-01-01": {},
	"2024-07-04": {},
	"2024-12-25": {},
	"2025-01-01": {},
	"2025-07-04": {},
	"2025-12-25": {},
}

// timeOfDayInWindow reports whether value (coerced to an instant) falls
// inside the rule's time-of-day window. A rule without a TimeRange passes
// trivially once the instant is valid. The HH:MM comparison is a plain
// lexicographic bound check (start <= t <= end): windows that wrap
// midnight (start > end) are not supported and match nothing.
func timeOfDayInWindow(value any, tr *types.TimeRange) bool {
	t, ok := asTime(value)
	if !ok {
		return false
	}
	if tr == nil {
		return true
	}
	if tr.StartTime != "" && tr.EndTime != "" {
		hm := t.Format("15:04")
		if hm < tr.StartTime || hm > tr.EndTime {
			return false
		}
	}
	if tr.ExcludeWeekends {
		wd := t.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return false
		}
	}
	if tr.ExcludeHolidays {
		if _, holiday := stubHolidays[t.Format("2006-01-02")]; holiday {
			return false
		}
	}
	return true
}

// arrayLength reports whether the field is an array of exactly the operand
// length. A non-array field or non-numeric operand fails.
func arrayLength(value, operand any) bool {
	arr, ok := asSlice(value)
	if !ok {
		return false
	}
	want, ok := asFloat(operand)
	if !ok {
		return false
	}
	return float64(len(arr)) == want
}

// arrayContains implements the three containment operators over simple
// membership. The operand is normalized to a set (scalars wrap into a
// single-element set); a non-array field fails all three.
func arrayContains(value, operand any, op types.Operator) bool {
	arr, ok := asSlice(value)
	if !ok {
		return false
	}
	targets := normalizeSet(operand)
	hits := 0
	for _, target := range targets {
		if containsValue(arr, target) {
			hits++
		}
	}
	switch op {
	case types.OpArrayContainsAll:
		return hits == len(targets)
	case types.OpArrayContainsAny:
		return hits > 0
	case types.OpArrayContainsNone:
		return hits == 0
	default:
		return false
	}
}

// containsValue reports whether arr has a member equal to target under
// strictEqual semantics.
func containsValue(arr []any, target any) bool {
	for _, elem := range arr {
		if strictEqual(elem, target) {
			return true
		}
	}
	return false
}

// strictEqual performs equality with numeric type mixing (float64/int
// produced by JSON decoding compare by value). Composite values never
// compare equal; they are rejected up front so the interface comparison
// cannot panic on uncomparable types.
func strictEqual(a, b any) bool {
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	if na, okA := asNumber(a); okA {
		if nb, okB := asNumber(b); okB {
			return na == nb
		}
		return false
	}
	return a == b
}

// asNumber is strictEqual's numeric probe: genuine numeric types only, no
// string or boolean coercion.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// isComparable reports whether v is safe on the == operator. Checked per
// value, not per type, so arrays or structs carrying uncomparable interface
// members are caught too.
func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}

// legacyContains implements the basic contains operator: string
// containment after stringifying both sides. Case-sensitive.
func legacyContains(value, operand any) bool {
	return strings.Contains(asString(value), asString(operand))
}
