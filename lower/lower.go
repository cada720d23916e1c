package lower

import (
	"github.com/kaptinlin/jsonpointer"

	"github.com/jscompile/jscn/ast"
)

const draft07Schema = "http://json-schema.org/draft-07/schema#"

// context threads the enclosing Schema's definition table and the set
// of definition names actually reached through a lowering pass.
// Reachability is recorded while lowering (Lower sweeps the reached
// definitions to a fixpoint), so there is no separate dead-definition
// pruning pass.
type context struct {
	defs    *ast.Definitions
	reached map[string]bool
}

// Lower runs the pure lower: Type -> JSON value transformation over a
// parsed Schema, producing the top-level JSON Schema draft-07
// document: a `$schema` header, the lowered root, and a `definitions`
// object containing only transitively-reached definitions.
func Lower(schema *ast.Schema) (*Fragment, error) {
	ctx := &context{defs: schema.Defs, reached: map[string]bool{}}
	root, err := ctx.lowerType(schema.Root)
	if err != nil {
		return nil, err
	}

	rootFrag, ok := root.(*Fragment)
	if !ok {
		// Only Keyword(forbidden) lowers to a bare JSON boolean; a
		// boolean JSON Schema document has no slot for $schema or
		// definitions, so Lower returns a nonObjectRootError carrying
		// that bare value instead of a document.
		return nil, &nonObjectRootError{value: root}
	}

	out := newFragment()
	out.Set("$schema", draft07Schema)
	for pair := rootFrag.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}

	lowered := map[string]any{}
	names := schema.Defs.Names()
	// Reachability and lowering are discovered together: lowering a
	// reached definition's body can mark further names reached, and
	// those names may sort earlier in declaration order than the
	// definition that references them. Sweep to a fixpoint instead of
	// a single pass so transitive reaches are never missed regardless
	// of declaration order.
	for {
		progressed := false
		for _, name := range names {
			if !ctx.reached[name] {
				continue
			}
			if _, done := lowered[name]; done {
				continue
			}
			typ, _ := schema.Defs.Get(name)
			frag, err := ctx.lowerType(typ)
			if err != nil {
				return nil, err
			}
			lowered[name] = frag
			progressed = true
		}
		if !progressed {
			break
		}
	}

	if len(lowered) > 0 {
		defs := newFragment()
		for _, name := range names {
			if frag, ok := lowered[name]; ok {
				defs.Set(name, frag)
			}
		}
		out.Set("definitions", defs)
	}

	return out, nil
}

// nonObjectRootError is not one of the compiler's diagnostic error kinds:
// it only fires for the degenerate `forbidden` root, which is legal
// JSCN but cannot carry a $schema header. Lower callers that need a
// full document should treat it as "no $schema available"; the
// underlying value is still a valid, literal JSON Schema boolean.
type nonObjectRootError struct {
	value any
}

func (e *nonObjectRootError) Error() string {
	return "jscn: root type lowers to a bare JSON value, not an object; no $schema document can be produced"
}

// Value returns the bare lowered value (always `false`, the lowering
// of Keyword(forbidden)) so callers can still recover it.
func (e *nonObjectRootError) Value() any { return e.value }

func (c *context) lowerType(t ast.Type) (any, error) {
	switch v := t.(type) {
	case *ast.Literal:
		f := newFragment()
		f.Set("const", v.Value)
		return f, nil
	case *ast.Enum:
		f := newFragment()
		f.Set("enum", append([]any(nil), v.Values...))
		return f, nil
	case *ast.Keyword:
		return c.lowerKeyword(v)
	case *ast.Regex:
		f := newFragment()
		f.Set("type", "string")
		f.Set("pattern", v.Pattern)
		return f, nil
	case *ast.Format:
		f := newFragment()
		f.Set("type", "string")
		f.Set("format", v.Name)
		return f, nil
	case *ast.StringCard:
		return c.lowerStringCard(v)
	case *ast.IntegerCard:
		return c.lowerIntegerCard(v)
	case *ast.Ref:
		if _, ok := c.defs.Get(v.Name); !ok {
			return nil, &UnresolvedReferenceError{Name: v.Name}
		}
		c.reached[v.Name] = true
		f := newFragment()
		f.Set("$ref", "#"+jsonpointer.Format("definitions", v.Name))
		return f, nil
	case *ast.Not:
		inner, err := c.lowerType(v.Inner)
		if err != nil {
			return nil, err
		}
		f := newFragment()
		f.Set("not", inner)
		return f, nil
	case *ast.AllOf:
		return c.lowerAllOf(v)
	case *ast.AnyOf:
		return c.lowerAnyOf(v)
	case *ast.Conditional:
		return c.lowerConditional(v)
	case *ast.Object:
		return c.lowerObject(v)
	case *ast.Array:
		return c.lowerArray(v)
	}
	panic("lower: unhandled ast.Type")
}

func (c *context) lowerKeyword(k *ast.Keyword) (any, error) {
	if k.Name == ast.KeywordForbidden {
		return false, nil
	}
	f := newFragment()
	f.Set("type", string(k.Name))
	return f, nil
}

func (c *context) lowerStringCard(s *ast.StringCard) (any, error) {
	if err := validateCardinal("string", s.Card); err != nil {
		return nil, err
	}
	f := newFragment()
	f.Set("type", "string")
	if s.Card.Min != nil {
		f.Set("minLength", *s.Card.Min)
	}
	if s.Card.Max != nil {
		f.Set("maxLength", *s.Card.Max)
	}
	return f, nil
}

func (c *context) lowerIntegerCard(i *ast.IntegerCard) (any, error) {
	if err := validateCardinal("integer", i.Card); err != nil {
		return nil, err
	}
	f := newFragment()
	f.Set("type", "integer")
	if i.Card.Min != nil {
		f.Set("minimum", *i.Card.Min)
	}
	if i.Card.Max != nil {
		f.Set("maximum", *i.Card.Max)
	}
	if i.MultipleOf != nil {
		f.Set("multipleOf", *i.MultipleOf)
	}
	return f, nil
}

// lowerAllOf flattens nested AllOf chains (a combinator-built tree may
// not already be flat the way the parser's output always is) and
// emits {"allOf": [...]} with children in source order.
func (c *context) lowerAllOf(a *ast.AllOf) (any, error) {
	flat := flattenAllOf(a.Types)
	children := make([]any, 0, len(flat))
	for _, t := range flat {
		lowered, err := c.lowerType(t)
		if err != nil {
			return nil, err
		}
		children = append(children, lowered)
	}
	f := newFragment()
	f.Set("allOf", children)
	return f, nil
}

func flattenAllOf(items []ast.Type) []ast.Type {
	flat := make([]ast.Type, 0, len(items))
	for _, it := range items {
		if inner, ok := it.(*ast.AllOf); ok {
			flat = append(flat, flattenAllOf(inner.Types)...)
		} else {
			flat = append(flat, it)
		}
	}
	return flat
}

// lowerAnyOf detects the all-Literal enum shortcut structurally, after
// flattening nested AnyOf trees. A mix of Literal and non-Literal
// children falls back to a plain anyOf.
func (c *context) lowerAnyOf(a *ast.AnyOf) (any, error) {
	flat := flattenAnyOf(a.Types)

	allLiterals := len(flat) > 0
	for _, t := range flat {
		if _, ok := t.(*ast.Literal); !ok {
			allLiterals = false
			break
		}
	}
	if allLiterals {
		values := make([]any, 0, len(flat))
		for _, t := range flat {
			values = append(values, t.(*ast.Literal).Value)
		}
		f := newFragment()
		f.Set("enum", values)
		return f, nil
	}

	children := make([]any, 0, len(flat))
	for _, t := range flat {
		lowered, err := c.lowerType(t)
		if err != nil {
			return nil, err
		}
		children = append(children, lowered)
	}
	f := newFragment()
	f.Set("anyOf", children)
	return f, nil
}

func flattenAnyOf(items []ast.Type) []ast.Type {
	flat := make([]ast.Type, 0, len(items))
	for _, it := range items {
		if inner, ok := it.(*ast.AnyOf); ok {
			flat = append(flat, flattenAnyOf(inner.Types)...)
		} else {
			flat = append(flat, it)
		}
	}
	return flat
}

// validateCardinal enforces the InvalidCardinal invariant shared by
// string length, integer range, object property count and array
// length bounds: both bounds present requires min <= max, and neither
// bound may be negative.
func validateCardinal(context string, card ast.Cardinal) error {
	if card.Min != nil && *card.Min < 0 {
		return &InvalidCardinalError{Context: context, Min: card.Min}
	}
	if card.Max != nil && *card.Max < 0 {
		return &InvalidCardinalError{Context: context, Max: card.Max}
	}
	if card.Min != nil && card.Max != nil && *card.Min > *card.Max {
		return &InvalidCardinalError{Context: context, Min: card.Min, Max: card.Max}
	}
	return nil
}
