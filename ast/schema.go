package ast

// Definitions is an insertion-ordered, name-unique mapping from
// definition identifier to bound Type. It is immutable once built:
// all mutation happens through Builder-style helpers that return a
// fresh Definitions value.
type Definitions struct {
	order []string
	byName map[string]Type
}

// NewDefinitions returns an empty definition table.
func NewDefinitions() *Definitions {
	return &Definitions{byName: make(map[string]Type)}
}

// Len reports the number of bound definitions.
func (d *Definitions) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Names returns the bound identifiers in declaration order.
func (d *Definitions) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Get looks up a definition by name.
func (d *Definitions) Get(name string) (Type, bool) {
	if d == nil {
		return nil, false
	}
	t, ok := d.byName[name]
	return t, ok
}

// With returns a new Definitions with name bound to typ. If name is
// already bound its value is replaced in place (declaration order is
// unchanged); callers that must reject duplicate names outright — the
// parser's `where` clause, for instance — check Get first and treat an
// existing binding as an error before calling With.
func (d *Definitions) With(name string, typ Type) *Definitions {
	next := &Definitions{byName: make(map[string]Type, d.Len()+1)}
	next.order = append(next.order, d.Names()...)
	for k, v := range d.byName {
		next.byName[k] = v
	}
	if _, exists := next.byName[name]; !exists {
		next.order = append(next.order, name)
	}
	next.byName[name] = typ
	return next
}

// Equal reports whether two Definitions tables bind the same names, in
// the same order, to structurally equal types.
func (d *Definitions) Equal(o *Definitions) bool {
	if d.Len() != o.Len() {
		return false
	}
	an, bn := d.Names(), o.Names()
	for i := range an {
		if an[i] != bn[i] {
			return false
		}
		at, _ := d.Get(an[i])
		bt, _ := o.Get(bn[i])
		if !at.Equal(bt) {
			return false
		}
	}
	return true
}

// Schema is the top-level parsed entity: a root Type plus the
// definitions it (transitively) may reference.
type Schema struct {
	Root Type
	Defs *Definitions
}

// Equal reports structural equality over the full AST (root and defs).
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Root.Equal(o.Root) && s.Defs.Equal(o.Defs)
}
