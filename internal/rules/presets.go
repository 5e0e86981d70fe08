// internal/rules/presets.go
package rules

import (
	"sort"

	"github.com/focusdeck/smartfolder/internal/types"
)

/*
 * Built-in preset rule sets.
 *
 * Named example compositions exposed purely as data; no preset carries
 * logic of its own. Presets returns copies, so callers can tweak a preset
 * without affecting the table.
 */

// Preset names.
const (
	PresetWorkHours       = "work-hours"
	PresetUrgentImportant = "urgent-important"
	PresetComplexTasks    = "complex-tasks"
)

var presetTable = map[string]types.SmartFolder{
	PresetWorkHours: {
		Name:        PresetWorkHours,
		Description: "Tasks created during business hours on weekdays",
		Rules: NewBuilder().
			TimeRange(types.FieldCreatedDate, "09:00", "17:00", types.TimeRange{ExcludeWeekends: true}).
			Build(),
	},
	PresetUrgentImportant: {
		Name:        PresetUrgentImportant,
		Description: "High-priority tasks tagged urgent, or anything flagged critical",
		Rules: NewBuilder().
			StartGroup("urgent").
			Between(types.FieldPriority, 4, 5).
			Regex(types.FieldTitle, `urgent|asap`).
			EndGroup().
			StartGroup("critical").
			ContainsAny(types.FieldTag, "critical").
			EndGroup().
			Build(),
	},
	PresetComplexTasks: {
		Name:        PresetComplexTasks,
		Description: "Tasks with long descriptions and several tags",
		Rules: []types.Rule{
			{
				Field:    types.FieldDescription,
				Operator: types.OpRegexMatch,
				Value:    `(?:\S+\s+){20,}`,
				IsRegex:  true,
			},
			{
				Field:    types.FieldTag,
				Operator: types.OpArrayLength,
				Value:    3,
			},
		},
	},
}

// Preset returns a copy of the named preset's rules.
func Preset(name string) ([]types.Rule, bool) {
	folder, ok := presetTable[name]
	if !ok {
		return nil, false
	}
	out := make([]types.Rule, len(folder.Rules))
	copy(out, folder.Rules)
	return out, true
}

// Presets returns copies of all built-in presets, sorted by name.
func Presets() []types.SmartFolder {
	out := make([]types.SmartFolder, 0, len(presetTable))
	for _, folder := range presetTable {
		rules := make([]types.Rule, len(folder.Rules))
		copy(rules, folder.Rules)
		folder.Rules = rules
		out = append(out, folder)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
