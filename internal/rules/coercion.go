// internal/rules/coercion.go
package rules

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

/*
 * Value coercion for rule evaluation.
 *
 * Field values arrive as arbitrary JSON-decoded data (float64, string,
 * bool, []any, map[string]any, nil) or as native Go values from custom
 * extractors. Each operator family coerces through exactly one helper:
 *
 *   - asFloat:  numeric coercion for the range and array_length operators
 *   - asString: stringification for legacy contains and parameter values
 *   - asTime:   instant coercion for the time-of-day operators
 *   - asSlice:  array coercion for the array operators
 *
 * Coercion never panics; failure is reported via the ok flag and the
 * calling operator degrades to false.
 */

// asFloat converts value to float64 for numeric comparison. Accepts the
// numeric types JSON decoding produces, trimmed numeric strings, and
// booleans (1/0). nil and everything else fail.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// asString converts value to its string representation for legacy string
// containment and parameter substitution. Numbers format without a
// trailing ".0" so substituted values read naturally.
func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// timeLayouts are tried in order when coercing a string to an instant.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// asTime converts value to a time.Time. Strings parse through timeLayouts;
// numbers are interpreted as millisecond epoch instants, matching how the
// folder UI serializes dates.
func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		return time.UnixMilli(int64(v)), true
	case int:
		return time.UnixMilli(int64(v)), true
	case int64:
		return time.UnixMilli(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)), true
	default:
		return time.Time{}, false
	}
}

// asSlice converts value to []any for the array operators. Typed slices
// from native Go records are widened; everything else fails.
func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

// normalizeSet wraps a scalar operand into a single-element set so the
// array containment operators accept both shapes.
func normalizeSet(value any) []any {
	if arr, ok := asSlice(value); ok {
		return arr
	}
	return []any{value}
}
