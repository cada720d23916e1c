package jscn

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kaptinlin/go-i18n"

	"github.com/jscompile/jscn/lexer"
	"github.com/jscompile/jscn/lower"
	"github.com/jscompile/jscn/parser"
)

// Diagnostic is a localizable compiler error. CompileSchema,
// CompileDefinitions and Schema.JSONSchema return their lex, parse,
// duplicate-name, unresolved-reference and invalid-cardinal errors as a
// *Diagnostic, so a caller can render a message in any catalog locale
// supported by I18n without re-parsing the error text. Other errors
// (such as the one for a bare `forbidden` root) are returned unchanged.
type Diagnostic struct {
	// Code names the i18n catalog entry, e.g. "unresolved_reference".
	Code string
	// Params fills the {placeholder} tokens in that entry's template.
	Params map[string]any
	cause  error
}

// enTemplates mirrors locales/en.json, used as the Error() fallback so
// that formatting a Diagnostic never requires loading the embedded
// catalog through I18n.
var enTemplates = map[string]string{
	"lex_error":            "unrecognized input at offset {offset}: {message}",
	"parse_error":          "parse error at offset {offset}: {message}",
	"unresolved_reference": `unresolved reference "{name}"`,
	"definition_conflict":  `definitions disagree for "{name}"`,
	"invalid_cardinal":     "invalid {context} cardinal (min {min}, max {max})",
	"duplicate_property":   `duplicate object property "{key}"`,
	"duplicate_definition": `duplicate definition name "{name}"`,
}

func (d *Diagnostic) Error() string {
	return replace(enTemplates[d.Code], d.Params)
}

func (d *Diagnostic) Unwrap() error { return d.cause }

// Localize renders the diagnostic through localizer's catalog, falling
// back to Error() when localizer is nil.
func (d *Diagnostic) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return d.Error()
	}
	return localizer.Get(d.Code, i18n.Vars(d.Params))
}

// toDiagnostic wraps the concrete error kinds produced by the lexer,
// parser and lower packages into a single localizable Diagnostic,
// preserving errors.Is/As access to the underlying sentinel via Unwrap
// chains on the wrapped root-package detail types.
func toDiagnostic(err error) error {
	if err == nil {
		return nil
	}

	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		return &Diagnostic{
			Code:   "lex_error",
			Params: map[string]any{"offset": lexErr.Offset, "message": lexErr.Message},
			cause:  err,
		}
	}

	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return &Diagnostic{
			Code:   "parse_error",
			Params: map[string]any{"offset": parseErr.Offset, "message": parseErr.Message},
			cause:  err,
		}
	}

	if errors.Is(err, parser.ErrDuplicateDefinition) {
		detail := &DuplicateDefinitionError{Name: quotedSuffix(err.Error())}
		return &Diagnostic{Code: detail.Code(), Params: detail.Params(), cause: detail}
	}
	if errors.Is(err, parser.ErrDuplicateProperty) {
		detail := &DuplicatePropertyError{Key: quotedSuffix(err.Error())}
		return &Diagnostic{Code: detail.Code(), Params: detail.Params(), cause: detail}
	}

	var unresolved *lower.UnresolvedReferenceError
	if errors.As(err, &unresolved) {
		detail := &UnresolvedReferenceError{Name: unresolved.Name}
		return &Diagnostic{
			Code:   detail.Code(),
			Params: detail.Params(),
			cause:  detail,
		}
	}

	var invalidCard *lower.InvalidCardinalError
	if errors.As(err, &invalidCard) {
		detail := &InvalidCardinalError{Context: invalidCard.Context, Min: invalidCard.Min, Max: invalidCard.Max}
		return &Diagnostic{
			Code:   detail.Code(),
			Params: detail.Params(),
			cause:  detail,
		}
	}

	return err
}

// quotedSuffix extracts the last double-quoted token from a message
// like `jscn: duplicate definition name: "id"`, recovering the
// offending name from the parser's wrapped sentinel error without the
// parser needing to expose a typed error for it.
func quotedSuffix(msg string) string {
	i := strings.LastIndex(msg, `"`)
	if i < 0 {
		return msg
	}
	j := strings.LastIndex(msg[:i], `"`)
	if j < 0 {
		return msg
	}
	unquoted, err := strconv.Unquote(msg[j : i+1])
	if err != nil {
		return msg
	}
	return unquoted
}
