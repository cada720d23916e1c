package jscn

import "github.com/jscompile/jscn/parser"

// CompileSchema parses JSCN source into a compiled Schema. The source
// must be a full `schema` production: a type, optionally followed by a
// `where` clause binding definitions. Lex and parse failures are
// returned as localizable Diagnostics wrapping the underlying
// *lexer.LexError / *parser.ParseError.
func CompileSchema(src string) (*Schema, error) {
	astSchema, err := parser.Parse(src)
	if err != nil {
		return nil, toDiagnostic(err)
	}
	return newSchema(astSchema.Root, astSchema.Defs), nil
}

// CompileDefinitions parses a standalone `definitions` production (no
// leading type, no `where` keyword) into a compiled Definitions value,
// for building a reusable definition table independent of any one root
// Schema.
func CompileDefinitions(src string) (*Definitions, error) {
	defs, err := parser.ParseDefinitions(src)
	if err != nil {
		return nil, toDiagnostic(err)
	}
	return newDefinitions(defs), nil
}
