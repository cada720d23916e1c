package main

import (
	"errors"

	"github.com/jscompile/jscn"
)

// ioError marks a failure that occurred reading or writing a named
// file, as opposed to a compiler diagnostic, so exitCodeFor can tell
// the two apart.
type ioError struct{ err error }

func (e *ioError) Error() string { return e.err.Error() }
func (e *ioError) Unwrap() error { return e.err }

// exitCodeFor implements the CLI's three-tier exit-code contract: 0 is
// handled by main's non-error path, so this only ever sees a non-nil err.
// 1 is a lex/parse/grammar failure, 2 is a reference, definition or
// cardinal error surfaced at lowering or merge time, 3 is a failure
// reading or writing a named file. Any other error also maps to 1.
func exitCodeFor(err error) int {
	var ioErr *ioError
	if errors.As(err, &ioErr) {
		return 3
	}

	var diag *jscn.Diagnostic
	if errors.As(err, &diag) {
		switch diag.Code {
		case "lex_error", "parse_error", "duplicate_property", "duplicate_definition":
			return 1
		case "unresolved_reference", "definition_conflict", "invalid_cardinal":
			return 2
		}
	}
	if errors.Is(err, jscn.ErrUnresolvedReference) || errors.Is(err, jscn.ErrDefinitionConflict) {
		return 2
	}
	return 1
}
