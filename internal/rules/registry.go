// internal/rules/registry.go
package rules

import (
	"sort"

	"github.com/focusdeck/smartfolder/internal/types"
)

/*
 * Custom field and safe custom function registries.
 *
 * Both registries are keyed by name/ID; later registrations replace
 * earlier ones. Registration never returns an error: failure is a false
 * return plus a logged warning, matching the engine's silent-degrade
 * policy. Entries persist for the engine's lifetime and can be overwritten
 * or removed individually.
 *
 * Security gating: restricted and dangerous functions register only on a
 * development-mode engine. The mode was captured at construction and is
 * not re-checked per call.
 */

// RegisterCustomField installs (or replaces) a custom field extractor.
// Returns false for definitions missing an ID or an Extractor.
func (e *Engine) RegisterCustomField(def types.CustomFieldDefinition) bool {
	if def.ID == "" || def.Extractor == nil {
		e.logger.Warn("rejecting custom field registration",
			"id", def.ID,
			"reason", "missing id or extractor")
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.customFields[def.ID] = def
	return true
}

// UnregisterCustomField removes a custom field by ID, reporting whether an
// entry existed.
func (e *Engine) UnregisterCustomField(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.customFields[id]
	delete(e.customFields, id)
	return ok
}

// RegisterSafeCustomFunction installs (or replaces) a named predicate.
// Restricted and dangerous functions are rejected outside development
// mode: the call returns false, logs a warning, and never panics.
func (e *Engine) RegisterSafeCustomFunction(def types.SafeCustomFunction) bool {
	if def.Name == "" || def.Validator == nil {
		e.logger.Warn("rejecting custom function registration",
			"function", def.Name,
			"reason", "missing name or validator")
		return false
	}
	if def.SecurityLevel != types.SecuritySafe && !e.development {
		e.logger.Warn("rejecting custom function registration",
			"function", def.Name,
			"security_level", string(def.SecurityLevel),
			"error", types.ErrSecurityClearance)
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.customFuncs[def.Name] = def
	return true
}

// UnregisterCustomFunction removes a predicate by name, reporting whether
// an entry existed.
func (e *Engine) UnregisterCustomFunction(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.customFuncs[name]
	delete(e.customFuncs, name)
	return ok
}

// RegisteredFunctions returns a snapshot of all registered predicates,
// sorted by name. The slice is not a live view; mutating it does not
// affect the registry.
func (e *Engine) RegisteredFunctions() []types.SafeCustomFunction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]types.SafeCustomFunction, 0, len(e.customFuncs))
	for _, def := range e.customFuncs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// customFunction looks up a predicate by name for dispatch.
func (e *Engine) customFunction(name string) (types.SafeCustomFunction, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	def, ok := e.customFuncs[name]
	return def, ok
}

// customField looks up an extractor by ID for resolution.
func (e *Engine) customField(id string) (types.CustomFieldDefinition, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	def, ok := e.customFields[id]
	return def, ok
}
