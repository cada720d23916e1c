package jscn

import (
	"sync/atomic"

	"github.com/jscompile/jscn/ast"
	"github.com/jscompile/jscn/lower"
)

// idCounter assigns each constructed Schema/Definitions value a
// process-lifetime-unique id, used only as the memoization key for the
// lowering engine (see engine.go) — never serialized or compared across
// processes.
var idCounter atomic.Uint64

func nextID() uint64 { return idCounter.Add(1) }

// Schema is an immutable compiled value: a root Type plus the
// Definitions it may transitively reference. Schemas are produced by
// CompileSchema or by the algebraic combinators (And, Or,
// MergeDefinitions) and never mutated after construction, so a Schema
// may be shared freely across goroutines.
type Schema struct {
	id   uint64
	root ast.Type
	defs *ast.Definitions
}

func newSchema(root ast.Type, defs *ast.Definitions) *Schema {
	return &Schema{id: nextID(), root: root, defs: defs}
}

func (s *Schema) toAST() *ast.Schema {
	return &ast.Schema{Root: s.root, Defs: s.defs}
}

// Equal reports structural equality over the full AST (root and defs),
// per the embedded API's equality contract.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.toAST().Equal(o.toAST())
}

// Definitions returns the names bound by this Schema's where clause, in
// declaration order, for introspection (e.g. a CLI --list-defs flag).
func (s *Schema) Definitions() []string {
	return s.defs.Names()
}

// JSONSchema lowers the Schema to a JSON Schema draft-07 document,
// represented as an ordered fragment ($schema, the lowered root, and a
// definitions object pruned to transitively-reached names). The result
// is memoized per Schema value: repeated calls are cheap and return an
// equal value every time, matching the embedded API's purity contract.
func (s *Schema) JSONSchema() (*lower.Fragment, error) {
	frag, err := defaultEngine.lower(s)
	if err != nil {
		return nil, toDiagnostic(err)
	}
	return frag, nil
}

// Definitions is an immutable compiled value carrying only a where-style
// definition table, with no root Type of its own. It is produced by
// CompileDefinitions or by And/Or over two Definitions values, and is
// combined with a Schema via Schema.MergeDefinitions.
type Definitions struct {
	id   uint64
	defs *ast.Definitions
}

func newDefinitions(defs *ast.Definitions) *Definitions {
	return &Definitions{id: nextID(), defs: defs}
}

// Equal reports structural equality over the bound names and types.
func (d *Definitions) Equal(o *Definitions) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.defs.Equal(o.defs)
}

// Names returns the bound definition identifiers in declaration order.
func (d *Definitions) Names() []string {
	return d.defs.Names()
}
