// internal/rules/resolve.go
package rules

import "github.com/focusdeck/smartfolder/internal/types"

/*
 * Field resolution for arbitrary records.
 *
 * Maps a rule's logical field name onto a value extracted from the record.
 * A registered custom field takes absolute precedence: its extractor's
 * result is used even when nil, with no fallback to the standard map.
 * Otherwise the field name runs through a fixed alias table and the first
 * key *present* on the record wins -- presence, not non-nil-ness, so a
 * record carrying an explicit null stops the alias search.
 *
 * Resolution never panics: non-object records and extractor panics both
 * resolve to not-found.
 */

// fieldAliases maps each logical field to its historical record keys, in
// priority order. Fields absent from this table resolve by direct key
// lookup, which is how ad-hoc custom field IDs behave without an
// extractor.
var fieldAliases = map[types.Field][]string{
	types.FieldTag:         {"tags", "tag", "labels"},
	types.FieldCreatedDate: {"createdAt", "created_at", "createdDate"},
	types.FieldUpdatedDate: {"updatedAt", "updated_at", "updatedDate"},
	types.FieldStatus:      {"status", "state"},
	types.FieldPriority:    {"priority"},
	types.FieldIsFavorite:  {"isFavorite", "is_favorite", "favorite"},
	types.FieldDueDate:     {"dueDate", "due_date"},
	types.FieldTitle:       {"title", "name"},
	types.FieldDescription: {"description", "desc"},
}

// Resolve extracts the rule's field value from record. The second return
// distinguishes a resolved nil from not-found.
func (e *Engine) Resolve(record any, rule *types.Rule) (any, bool) {
	if rule.CustomField != "" {
		if def, ok := e.customField(rule.CustomField); ok {
			return e.extract(def, record), true
		}
		e.logger.Warn("custom field not registered, falling back to standard fields",
			"custom_field", rule.CustomField,
			"field", string(rule.Field))
	}

	obj, ok := record.(map[string]any)
	if !ok {
		return nil, false
	}

	aliases, ok := fieldAliases[rule.Field]
	if !ok {
		aliases = []string{string(rule.Field)}
	}
	for _, key := range aliases {
		if value, present := obj[key]; present {
			return value, true
		}
	}
	return nil, false
}

// extract runs a custom extractor with panic containment. A panicking
// extractor resolves to nil rather than aborting evaluation.
func (e *Engine) extract(def types.CustomFieldDefinition, record any) (value any) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("custom field extractor panicked",
				"custom_field", def.ID,
				"panic", r)
			value = nil
		}
	}()
	return def.Extractor(record)
}
