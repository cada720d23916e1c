package jscn

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the compiler diagnostics a caller is expected to
// branch on with errors.Is. Each is wrapped by a detail type carrying
// the offending name or bound.
var (
	ErrUnresolvedReference = errors.New("jscn: unresolved reference")
	ErrDefinitionConflict  = errors.New("jscn: definition conflict")
	ErrInvalidCardinal     = errors.New("jscn: invalid cardinal")
	ErrDuplicateProperty   = errors.New("jscn: duplicate object property")
	ErrDuplicateDefinition = errors.New("jscn: duplicate definition name")
)

// UnresolvedReferenceError reports a <name> atom, or an `only <name>:`
// property-name reference, with no matching where-clause definition.
type UnresolvedReferenceError struct {
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnresolvedReference, e.Name)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// Code identifies the i18n catalog entry for this error.
func (e *UnresolvedReferenceError) Code() string { return "unresolved_reference" }

func (e *UnresolvedReferenceError) Params() map[string]any {
	return map[string]any{"name": e.Name}
}

// DefinitionConflictError reports two merged Definitions tables binding
// the same name to structurally different Types.
type DefinitionConflictError struct {
	Name string
}

func (e *DefinitionConflictError) Error() string {
	return fmt.Sprintf("%s for %q", ErrDefinitionConflict, e.Name)
}

func (e *DefinitionConflictError) Unwrap() error { return ErrDefinitionConflict }

func (e *DefinitionConflictError) Code() string { return "definition_conflict" }

func (e *DefinitionConflictError) Params() map[string]any {
	return map[string]any{"name": e.Name}
}

// InvalidCardinalError reports a cardinal whose bounds are internally
// contradictory (min > max, a negative bound, or a tuple's declared max
// below its fixed item-type prefix length).
type InvalidCardinalError struct {
	Context string
	Min     *int
	Max     *int
}

func (e *InvalidCardinalError) Error() string {
	return fmt.Sprintf("%s on %s", ErrInvalidCardinal, e.Context)
}

func (e *InvalidCardinalError) Unwrap() error { return ErrInvalidCardinal }

func (e *InvalidCardinalError) Code() string { return "invalid_cardinal" }

func (e *InvalidCardinalError) Params() map[string]any {
	p := map[string]any{"context": e.Context, "min": "-", "max": "-"}
	if e.Min != nil {
		p["min"] = *e.Min
	}
	if e.Max != nil {
		p["max"] = *e.Max
	}
	return p
}

// DuplicatePropertyError reports two object properties declared with
// the same key within a single `{...}` literal.
type DuplicatePropertyError struct {
	Key string
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("%s %q", ErrDuplicateProperty, e.Key)
}

func (e *DuplicatePropertyError) Unwrap() error { return ErrDuplicateProperty }

func (e *DuplicatePropertyError) Code() string { return "duplicate_property" }

func (e *DuplicatePropertyError) Params() map[string]any {
	return map[string]any{"key": e.Key}
}

// DuplicateDefinitionError reports two where-clause bindings declared
// with the same name within a single schema.
type DuplicateDefinitionError struct {
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%s %q", ErrDuplicateDefinition, e.Name)
}

func (e *DuplicateDefinitionError) Unwrap() error { return ErrDuplicateDefinition }

func (e *DuplicateDefinitionError) Code() string { return "duplicate_definition" }

func (e *DuplicateDefinitionError) Params() map[string]any {
	return map[string]any{"name": e.Name}
}

// replace substitutes {key} placeholders in template with the string
// form of the matching value, for the non-localized Error() fallback
// path shared by every diagnostic Localize method.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		template = strings.ReplaceAll(template, "{"+key+"}", fmt.Sprint(value))
	}
	return template
}
