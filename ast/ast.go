// Package ast defines the abstract syntax tree produced by the JSCN parser.
//
// Every production in the grammar has exactly one corresponding Type
// variant. Nodes are plain data: once built by the parser (or by the
// algebraic combinators in the root package) they are never mutated.
package ast

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// JSONObject is the ordered representation of a JSON object literal,
// used both for decoded back-quoted literals and for lowered fragments.
type JSONObject = orderedmap.OrderedMap[string, any]

// Type is the sealed sum of all JSCN type expressions. Implementations
// live in this file; external packages can type-switch over the
// concrete structs but cannot add new variants.
type Type interface {
	typeNode()
	// Equal reports whether two Type values are structurally identical.
	Equal(other Type) bool
}

// KeywordName is one of the JSCN atomic type keywords.
type KeywordName string

const (
	KeywordBoolean   KeywordName = "boolean"
	KeywordString    KeywordName = "string"
	KeywordInteger   KeywordName = "integer"
	KeywordNumber    KeywordName = "number"
	KeywordNull      KeywordName = "null"
	KeywordObject    KeywordName = "object"
	KeywordArray     KeywordName = "array"
	KeywordForbidden KeywordName = "forbidden"
)

// Literal is a back-quoted (or bare-string-sugared) JSON scalar or
// composite value, lowered to {"const": value}.
type Literal struct {
	Value any
}

func (*Literal) typeNode() {}
func (t *Literal) Equal(other Type) bool {
	o, ok := other.(*Literal)
	if !ok {
		return false
	}
	return jsonValueEqual(t.Value, o.Value)
}

// Enum is an ordered sequence of JSON values, lowered to
// {"enum": [...]}. The parser does not produce it: an anyOf chain of
// Literal nodes stays an AnyOf, and the lowering engine emits the enum
// shortcut for it directly.
type Enum struct {
	Values []any
}

func (*Enum) typeNode() {}
func (t *Enum) Equal(other Type) bool {
	o, ok := other.(*Enum)
	if !ok || len(t.Values) != len(o.Values) {
		return false
	}
	for i := range t.Values {
		if !jsonValueEqual(t.Values[i], o.Values[i]) {
			return false
		}
	}
	return true
}

// Keyword is a bare atomic type name.
type Keyword struct {
	Name KeywordName
}

func (*Keyword) typeNode() {}
func (t *Keyword) Equal(other Type) bool {
	o, ok := other.(*Keyword)
	return ok && t.Name == o.Name
}

// Regex lowers to {"type":"string","pattern":...}.
type Regex struct {
	Pattern string
}

func (*Regex) typeNode() {}
func (t *Regex) Equal(other Type) bool {
	o, ok := other.(*Regex)
	return ok && t.Pattern == o.Pattern
}

// Format lowers to {"type":"string","format":...}.
type Format struct {
	Name string
}

func (*Format) typeNode() {}
func (t *Format) Equal(other Type) bool {
	o, ok := other.(*Format)
	return ok && t.Name == o.Name
}

// Cardinal is an optional [min, max] bound; nil means unbounded on that
// side. Used by StringCard, IntegerCard, Object and Array.
type Cardinal struct {
	Min *int
	Max *int
}

func cardEqual(a, b Cardinal) bool {
	return intPtrEqual(a.Min, b.Min) && intPtrEqual(a.Max, b.Max)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// StringCard is `string` with a character-count cardinal.
type StringCard struct {
	Card Cardinal
}

func (*StringCard) typeNode() {}
func (t *StringCard) Equal(other Type) bool {
	o, ok := other.(*StringCard)
	return ok && cardEqual(t.Card, o.Card)
}

// IntegerCard is `integer` with an optional range and/or divisor.
type IntegerCard struct {
	Card       Cardinal
	MultipleOf *int
}

func (*IntegerCard) typeNode() {}
func (t *IntegerCard) Equal(other Type) bool {
	o, ok := other.(*IntegerCard)
	if !ok || !cardEqual(t.Card, o.Card) {
		return false
	}
	return intPtrEqual(t.MultipleOf, o.MultipleOf)
}

// Ref is a `<name>` reference to a definition.
type Ref struct {
	Name string
}

func (*Ref) typeNode() {}
func (t *Ref) Equal(other Type) bool {
	o, ok := other.(*Ref)
	return ok && t.Name == o.Name
}

// Not is `not T`.
type Not struct {
	Inner Type
}

func (*Not) typeNode() {}
func (t *Not) Equal(other Type) bool {
	o, ok := other.(*Not)
	return ok && t.Inner.Equal(o.Inner)
}

// AllOf is a flattened `&` chain.
type AllOf struct {
	Types []Type
}

func (*AllOf) typeNode() {}
func (t *AllOf) Equal(other Type) bool {
	o, ok := other.(*AllOf)
	return ok && typeSliceEqual(t.Types, o.Types)
}

// AnyOf is a flattened `|` chain.
type AnyOf struct {
	Types []Type
}

func (*AnyOf) typeNode() {}
func (t *AnyOf) Equal(other Type) bool {
	o, ok := other.(*AnyOf)
	return ok && typeSliceEqual(t.Types, o.Types)
}

func typeSliceEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// CondBranch is one `elif Cond then Then` (or the initial `if ... then ...`) arm.
type CondBranch struct {
	Cond Type
	Then Type
}

// Conditional is `if C0 then T0 (elif Ci then Ti)* (else E)?`.
type Conditional struct {
	Branches []CondBranch
	Else     Type // nil if omitted
}

func (*Conditional) typeNode() {}
func (t *Conditional) Equal(other Type) bool {
	o, ok := other.(*Conditional)
	if !ok || len(t.Branches) != len(o.Branches) {
		return false
	}
	for i := range t.Branches {
		if !t.Branches[i].Cond.Equal(o.Branches[i].Cond) || !t.Branches[i].Then.Equal(o.Branches[i].Then) {
			return false
		}
	}
	if (t.Else == nil) != (o.Else == nil) {
		return false
	}
	if t.Else != nil && !t.Else.Equal(o.Else) {
		return false
	}
	return true
}

// ObjectProperty is one declared `key?: value` member of an object body.
type ObjectProperty struct {
	Key      string
	Optional bool
	Value    Type
}

// NameConstraint restricts the names of extra object properties: either
// a regex pattern or a reference to a definition bound to one.
type NameConstraint struct {
	IsRef   bool
	Pattern string // valid when !IsRef
	RefName string // valid when IsRef
}

func (n NameConstraint) Equal(o NameConstraint) bool {
	return n.IsRef == o.IsRef && n.Pattern == o.Pattern && n.RefName == o.RefName
}

// ObjectRestriction is the sealed sum for the optional `only ...` prefix.
type ObjectRestriction interface {
	restrictionNode()
	Equal(other ObjectRestriction) bool
}

// RestrictionNone allows unconstrained extra properties (default).
type RestrictionNone struct{}

func (RestrictionNone) restrictionNode() {}
func (RestrictionNone) Equal(o ObjectRestriction) bool {
	_, ok := o.(RestrictionNone)
	return ok
}

// RestrictionOnlyListed forbids any property not explicitly declared.
type RestrictionOnlyListed struct{}

func (RestrictionOnlyListed) restrictionNode() {}
func (RestrictionOnlyListed) Equal(o ObjectRestriction) bool {
	_, ok := o.(RestrictionOnlyListed)
	return ok
}

// RestrictionOnlyNames constrains extra property names but leaves their
// values unconstrained.
type RestrictionOnlyNames struct {
	Names NameConstraint
}

func (RestrictionOnlyNames) restrictionNode() {}
func (r RestrictionOnlyNames) Equal(o ObjectRestriction) bool {
	other, ok := o.(RestrictionOnlyNames)
	return ok && r.Names.Equal(other.Names)
}

// RestrictionOnlyKV constrains extra property names (or, if Wildcard,
// allows any name) and types their values as Value.
type RestrictionOnlyKV struct {
	Wildcard bool
	Names    NameConstraint // valid when !Wildcard
	Value    Type
}

func (RestrictionOnlyKV) restrictionNode() {}
func (r RestrictionOnlyKV) Equal(o ObjectRestriction) bool {
	other, ok := o.(RestrictionOnlyKV)
	if !ok || r.Wildcard != other.Wildcard {
		return false
	}
	if !r.Wildcard && !r.Names.Equal(other.Names) {
		return false
	}
	return r.Value.Equal(other.Value)
}

// Object is `{ only? props }` with an optional trailing cardinal.
type Object struct {
	Properties  []ObjectProperty
	Restriction ObjectRestriction // never nil; RestrictionNone{} is the default
	Card        Cardinal
}

func (*Object) typeNode() {}
func (t *Object) Equal(other Type) bool {
	o, ok := other.(*Object)
	if !ok || len(t.Properties) != len(o.Properties) || !cardEqual(t.Card, o.Card) {
		return false
	}
	for i := range t.Properties {
		a, b := t.Properties[i], o.Properties[i]
		if a.Key != b.Key || a.Optional != b.Optional || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return t.Restriction.Equal(o.Restriction)
}

// ArrayMode is the sealed sum for how an array's tail behaves.
type ArrayMode interface {
	arrayModeNode()
	Equal(other ArrayMode) bool
}

// ModeClosed permits no items beyond the declared prefix (subject to Only).
type ModeClosed struct{}

func (ModeClosed) arrayModeNode() {}
func (ModeClosed) Equal(o ArrayMode) bool {
	_, ok := o.(ModeClosed)
	return ok
}

// ModeZeroOrMore is the trailing `*` repeat mode.
type ModeZeroOrMore struct {
	Tail Type
}

func (ModeZeroOrMore) arrayModeNode() {}
func (m ModeZeroOrMore) Equal(o ArrayMode) bool {
	other, ok := o.(ModeZeroOrMore)
	return ok && m.Tail.Equal(other.Tail)
}

// ModeOneOrMore is the trailing `+` repeat mode.
type ModeOneOrMore struct {
	Tail Type
}

func (ModeOneOrMore) arrayModeNode() {}
func (m ModeOneOrMore) Equal(o ArrayMode) bool {
	other, ok := o.(ModeOneOrMore)
	return ok && m.Tail.Equal(other.Tail)
}

// Array is `[ only? unique? items... (*|+)? ]` with an optional cardinal.
type Array struct {
	Items  []Type
	Mode   ArrayMode // never nil; ModeClosed{} is the default
	Only   bool
	Unique bool
	Card   Cardinal
}

func (*Array) typeNode() {}
func (t *Array) Equal(other Type) bool {
	o, ok := other.(*Array)
	if !ok || t.Only != o.Only || t.Unique != o.Unique || !cardEqual(t.Card, o.Card) {
		return false
	}
	if !typeSliceEqual(t.Items, o.Items) {
		return false
	}
	return t.Mode.Equal(o.Mode)
}
