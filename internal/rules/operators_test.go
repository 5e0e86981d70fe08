package rules

import (
	"errors"
	"testing"

	"github.com/focusdeck/smartfolder/internal/types"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		pattern string
		flags   string
		want    bool
		wantErr error
	}{
		{
			name:    "case-insensitive by default",
			value:   "URGENT task",
			pattern: "urgent",
			want:    true,
		},
		{
			name:    "explicit flags without i are case-sensitive",
			value:   "URGENT task",
			pattern: "urgent",
			flags:   "m",
			want:    false,
		},
		{
			name:    "multiline flag",
			value:   "first\nsecond",
			pattern: "^second",
			flags:   "im",
			want:    true,
		},
		{
			name:    "non-string value never matches",
			value:   42,
			pattern: ".*",
			want:    false,
		},
		{
			name:    "nil value never matches",
			value:   nil,
			pattern: ".*",
			want:    false,
		},
		{
			name:    "invalid pattern degrades with diagnostic",
			value:   "anything",
			pattern: "(unbalanced",
			want:    false,
			wantErr: types.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchPattern(tt.value, tt.pattern, tt.flags)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("matchPattern() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("matchPattern(%v, %q, %q) = %v, want %v", tt.value, tt.pattern, tt.flags, got, tt.want)
			}
		})
	}
}

func TestNumericBetween(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		negate  bool
		want    bool
		wantErr error
	}{
		{name: "inside range", value: 3.0, operand: []any{3.0, 4.0}, want: true},
		{name: "below range", value: 2.0, operand: []any{3.0, 4.0}, want: false},
		{name: "upper bound inclusive", value: 4.0, operand: []any{3.0, 4.0}, want: true},
		{name: "numeric string coerces", value: "3", operand: []any{1.0, 5.0}, want: true},
		{name: "negated outside range", value: 10.0, operand: []any{1.0, 5.0}, negate: true, want: true},
		{name: "negated inside range", value: 3.0, operand: []any{1.0, 5.0}, negate: true, want: false},
		{
			// Non-numeric fields fail the predicate even when negated.
			name:    "non-numeric fails negated predicate",
			value:   "high",
			operand: []any{1.0, 5.0},
			negate:  true,
			want:    false,
		},
		{
			name:    "malformed tuple",
			value:   3.0,
			operand: "not a tuple",
			want:    false,
			wantErr: types.ErrInvalidRange,
		},
		{
			name:    "tuple with non-numeric bound",
			value:   3.0,
			operand: []any{"a", 5.0},
			want:    false,
			wantErr: types.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numericBetween(tt.value, tt.operand, tt.negate)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("numericBetween() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("numericBetween(%v, %v, negate=%v) = %v, want %v", tt.value, tt.operand, tt.negate, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayInWindow(t *testing.T) {
	window := &types.TimeRange{StartTime: "09:00", EndTime: "17:00"}

	tests := []struct {
		name  string
		value any
		tr    *types.TimeRange
		want  bool
	}{
		{name: "inside window", value: "2024-06-12T10:30:00Z", tr: window, want: true},
		{name: "before window", value: "2024-06-12T08:59:00Z", tr: window, want: false},
		{name: "after window", value: "2024-06-12T17:01:00Z", tr: window, want: false},
		{name: "start bound inclusive", value: "2024-06-12T09:00:00Z", tr: window, want: true},
		{name: "end bound inclusive", value: "2024-06-12T17:00:00Z", tr: window, want: true},
		{name: "nil config passes once date valid", value: "2024-06-12T03:00:00Z", tr: nil, want: true},
		{name: "invalid date fails", value: "not a date", tr: nil, want: false},
		{
			// Overnight windows (start > end) are not supported: the
			// lexicographic bound check matches nothing.
			name:  "overnight window matches nothing",
			value: "2024-06-12T23:00:00Z",
			tr:    &types.TimeRange{StartTime: "22:00", EndTime: "06:00"},
			want:  false,
		},
		{
			name:  "weekend excluded",
			value: "2024-06-15T10:00:00Z", // a Saturday
			tr:    &types.TimeRange{StartTime: "09:00", EndTime: "17:00", ExcludeWeekends: true},
			want:  false,
		},
		{
			name:  "weekday passes weekend exclusion",
			value: "2024-06-12T10:00:00Z", // a Wednesday
			tr:    &types.TimeRange{StartTime: "09:00", EndTime: "17:00", ExcludeWeekends: true},
			want:  true,
		},
		{
			name:  "stub holiday excluded",
			value: "2024-12-25T10:00:00Z",
			tr:    &types.TimeRange{ExcludeHolidays: true},
			want:  false,
		},
		{
			name:  "non-holiday passes holiday exclusion",
			value: "2024-12-26T10:00:00Z",
			tr:    &types.TimeRange{ExcludeHolidays: true},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeOfDayInWindow(tt.value, tt.tr); got != tt.want {
				t.Errorf("timeOfDayInWindow(%v, %+v) = %v, want %v", tt.value, tt.tr, got, tt.want)
			}
		})
	}
}

func TestArrayLength(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{name: "exact match", value: []any{"a", "b", "c"}, operand: 3, want: true},
		{name: "mismatch", value: []any{"a"}, operand: 3, want: false},
		{name: "empty array zero length", value: []any{}, operand: 0, want: true},
		{name: "non-array fails", value: "abc", operand: 3, want: false},
		{name: "non-numeric operand fails", value: []any{"a"}, operand: "many", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arrayLength(tt.value, tt.operand); got != tt.want {
				t.Errorf("arrayLength(%v, %v) = %v, want %v", tt.value, tt.operand, got, tt.want)
			}
		})
	}
}

func TestArrayContains(t *testing.T) {
	field := []any{"a", "b", "c"}

	tests := []struct {
		name    string
		value   any
		operand any
		op      types.Operator
		want    bool
	}{
		{name: "all present", value: field, operand: []any{"a", "b"}, op: types.OpArrayContainsAll, want: true},
		{name: "all with one missing", value: field, operand: []any{"a", "z"}, op: types.OpArrayContainsAll, want: false},
		{name: "any with one present", value: field, operand: []any{"z", "c"}, op: types.OpArrayContainsAny, want: true},
		{name: "any with none present", value: field, operand: []any{"x", "z"}, op: types.OpArrayContainsAny, want: false},
		{name: "none with none present", value: field, operand: []any{"x", "z"}, op: types.OpArrayContainsNone, want: true},
		{name: "none with one present", value: field, operand: []any{"x", "a"}, op: types.OpArrayContainsNone, want: false},
		{name: "scalar operand wraps to set", value: field, operand: "b", op: types.OpArrayContainsAny, want: true},
		{name: "non-array field fails all", value: "abc", operand: []any{"a"}, op: types.OpArrayContainsAll, want: false},
		{name: "non-array field fails none", value: "abc", operand: []any{"a"}, op: types.OpArrayContainsNone, want: false},
		{name: "numeric members mix int and float", value: []any{1.0, 2.0}, operand: []any{2}, op: types.OpArrayContainsAny, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arrayContains(tt.value, tt.operand, tt.op); got != tt.want {
				t.Errorf("arrayContains(%v, %v, %s) = %v, want %v", tt.value, tt.operand, tt.op, got, tt.want)
			}
		})
	}
}

func TestStrictEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "equal strings", a: "x", b: "x", want: true},
		{name: "different strings", a: "x", b: "y", want: false},
		{name: "int and float mix", a: 3, b: 3.0, want: true},
		{name: "number and numeric string do not mix", a: 3, b: "3", want: false},
		{name: "nil equals nil", a: nil, b: nil, want: true},
		{name: "composite values never equal", a: []any{1}, b: []any{1}, want: false},
		{name: "maps never equal and never panic", a: map[string]any{"a": 1}, b: map[string]any{"a": 1}, want: false},
		{name: "byte slices never equal and never panic", a: []byte("x"), b: []byte("x"), want: false},
		{name: "funcs never equal and never panic", a: func() {}, b: func() {}, want: false},
		{name: "arrays holding slices never equal and never panic", a: [1]any{[]int{1}}, b: [1]any{[]int{1}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strictEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("strictEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLegacyContains(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		operand any
		want    bool
	}{
		{name: "substring", value: "hello world", operand: "lo wo", want: true},
		{name: "case-sensitive", value: "Hello", operand: "hello", want: false},
		{name: "number stringifies", value: 12345, operand: "234", want: true},
		{name: "missing substring", value: "hello", operand: "xyz", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := legacyContains(tt.value, tt.operand); got != tt.want {
				t.Errorf("legacyContains(%v, %v) = %v, want %v", tt.value, tt.operand, got, tt.want)
			}
		})
	}
}
