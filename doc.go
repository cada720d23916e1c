// Package jscn compiles JSON Schema Compact Notation (JSCN) source into
// JSON Schema draft-07 documents. It exposes a small embeddable API —
// CompileSchema, CompileDefinitions, and the algebraic combinators over
// the resulting values — built on the lexer, parser, ast, and lower
// packages that implement the grammar, abstract syntax, and lowering
// rules respectively.
package jscn
