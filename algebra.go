package jscn

import "github.com/jscompile/jscn/ast"

// And combines two Schemas with intersection semantics: the new root is
// AllOf([s.root, o.root]) and the two definition tables are merged.
// Resolution of references within either root is deferred to lowering
// time, per the combinator-time/lowering-time error split.
func (s *Schema) And(o *Schema) (*Schema, error) {
	defs, err := mergeDefs(s.defs, o.defs)
	if err != nil {
		return nil, err
	}
	root := &ast.AllOf{Types: []ast.Type{s.root, o.root}}
	return newSchema(root, defs), nil
}

// Or combines two Schemas with union semantics: the new root is
// AnyOf([s.root, o.root]) and the two definition tables are merged.
func (s *Schema) Or(o *Schema) (*Schema, error) {
	defs, err := mergeDefs(s.defs, o.defs)
	if err != nil {
		return nil, err
	}
	root := &ast.AnyOf{Types: []ast.Type{s.root, o.root}}
	return newSchema(root, defs), nil
}

// MergeDefinitions combines a Schema with a standalone Definitions
// table, keeping s's root unchanged and merging the two definition
// tables. `S & D` and `S | D` behave identically for this combination
// — only the definitions matter, the root never changes — so one
// method serves both operators rather than two Go methods that would
// behave identically.
func (s *Schema) MergeDefinitions(d *Definitions) (*Schema, error) {
	defs, err := mergeDefs(s.defs, d.defs)
	if err != nil {
		return nil, err
	}
	return newSchema(s.root, defs), nil
}

// And merges two Definitions tables. As with Schema.MergeDefinitions,
// `&` and `|` behave identically when both sides are bare Definitions
// (there is no root to combine), so And and Or are the same operation
// under two names for API symmetry with Schema.
func (d *Definitions) And(o *Definitions) (*Definitions, error) {
	defs, err := mergeDefs(d.defs, o.defs)
	if err != nil {
		return nil, err
	}
	return newDefinitions(defs), nil
}

// Or merges two Definitions tables; see And.
func (d *Definitions) Or(o *Definitions) (*Definitions, error) {
	return d.And(o)
}

// mergeDefs merges two definition tables: names present on both sides
// must be bound to structurally equal Types, or the merge fails with a
// DefinitionConflictError; names unique to either side are kept
// verbatim. Order is a's declaration order, then b's names not already
// present, in b's declaration order.
func mergeDefs(a, b *ast.Definitions) (*ast.Definitions, error) {
	merged := a
	if merged == nil {
		merged = ast.NewDefinitions()
	}
	for _, name := range b.Names() {
		bt, _ := b.Get(name)
		if at, ok := merged.Get(name); ok {
			if !at.Equal(bt) {
				return nil, &DefinitionConflictError{Name: name}
			}
			continue
		}
		merged = merged.With(name, bt)
	}
	return merged, nil
}
