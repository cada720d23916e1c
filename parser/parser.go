// Package parser implements a recursive-descent parser over the token
// stream produced by package lexer, building the ast.Type / ast.Schema
// tree described by the JSCN grammar.
package parser

import (
	"errors"
	"fmt"

	"github.com/jscompile/jscn/ast"
	"github.com/jscompile/jscn/lexer"
)

// ParseError reports a grammar mismatch: the byte offset and the set of
// token kinds that would have been accepted there. Parse errors are
// terminal; the parser never attempts recovery.
type ParseError struct {
	Offset   int
	Expected []string
	Message  string
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("jscn: parse error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("jscn: parse error at offset %d: %s (expected one of %v)", e.Offset, e.Message, e.Expected)
}

// ErrDuplicateDefinition is returned when a `where`/definitions clause
// binds the same identifier twice.
var ErrDuplicateDefinition = errors.New("jscn: duplicate definition name")

// ErrDuplicateProperty is returned when an object body declares the
// same literal key twice; duplicates are rejected rather than
// silently keeping the last one.
var ErrDuplicateProperty = errors.New("jscn: duplicate object property")

type parser struct {
	lx     *lexer.Lexer
	tok    lexer.Token
	lexErr error
}

func newParser(src string) *parser {
	p := &parser{lx: lexer.New(src)}
	p.advance()
	return p
}

func (p *parser) advance() {
	if p.lexErr != nil {
		return
	}
	tok, err := p.lx.Next()
	if err != nil {
		p.lexErr = err
		p.tok = lexer.Token{Kind: lexer.EOF, Pos: p.tok.Pos}
		return
	}
	p.tok = tok
}

func (p *parser) fail(msg string, expected ...string) error {
	return &ParseError{Offset: p.tok.Pos, Expected: expected, Message: msg}
}

func (p *parser) expect(kind lexer.Kind) error {
	if p.tok.Kind != kind {
		return p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), kind.String())
	}
	p.advance()
	return nil
}

// Parse compiles a full `schema` production: a type expression with an
// optional trailing `where` definitions clause.
func Parse(src string) (*ast.Schema, error) {
	p := newParser(src)
	root, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.lexErr != nil {
		return nil, p.lexErr
	}

	defs := ast.NewDefinitions()
	if p.tok.Kind == lexer.KwWhere {
		p.advance()
		defs, err = p.parseDefinitions()
		if err != nil {
			return nil, err
		}
	}
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.fail(fmt.Sprintf("unexpected trailing %s", p.tok.Kind))
	}
	return &ast.Schema{Root: root, Defs: defs}, nil
}

// ParseDefinitions compiles a standalone `definitions` production (no
// leading type, no `where` keyword), for the embeddable API's
// Definitions(source) constructor.
func ParseDefinitions(src string) (*ast.Definitions, error) {
	p := newParser(src)
	defs, err := p.parseDefinitions()
	if err != nil {
		return nil, err
	}
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.fail(fmt.Sprintf("unexpected trailing %s", p.tok.Kind))
	}
	return defs, nil
}

func (p *parser) parseDefinitions() (*ast.Definitions, error) {
	defs := ast.NewDefinitions()
	for {
		if p.tok.Kind != lexer.Ident {
			return nil, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Ident.String())
		}
		name := p.tok.Text
		p.advance()
		if err := p.expect(lexer.Equals); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, exists := defs.Get(name); exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDefinition, name)
		}
		defs = defs.With(name, typ)

		if p.tok.Kind != lexer.KwAnd {
			break
		}
		p.advance()
	}
	return defs, nil
}

// type ::= or_expr
func (p *parser) parseType() (ast.Type, error) {
	return p.parseOr()
}

// or_expr ::= and_expr ("|" and_expr)*
func (p *parser) parseOr() (ast.Type, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	items := []ast.Type{first}
	for p.tok.Kind == lexer.Pipe {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return flattenAnyOf(items), nil
}

func flattenAnyOf(items []ast.Type) ast.Type {
	flat := make([]ast.Type, 0, len(items))
	for _, it := range items {
		if inner, ok := it.(*ast.AnyOf); ok {
			flat = append(flat, inner.Types...)
		} else {
			flat = append(flat, it)
		}
	}
	return &ast.AnyOf{Types: flat}
}

// and_expr ::= not_expr ("&" not_expr)*
func (p *parser) parseAnd() (ast.Type, error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	items := []ast.Type{first}
	for p.tok.Kind == lexer.Amp {
		p.advance()
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return flattenAllOf(items), nil
}

func flattenAllOf(items []ast.Type) ast.Type {
	flat := make([]ast.Type, 0, len(items))
	for _, it := range items {
		if inner, ok := it.(*ast.AllOf); ok {
			flat = append(flat, inner.Types...)
		} else {
			flat = append(flat, it)
		}
	}
	return &ast.AllOf{Types: flat}
}

// not_expr ::= "not" not_expr | atom
func (p *parser) parseNot() (ast.Type, error) {
	if p.tok.Kind == lexer.KwNot {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Inner: inner}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (ast.Type, error) {
	switch p.tok.Kind {
	case lexer.LParen:
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.KwIf:
		return p.parseConditional()
	case lexer.KwBoolean:
		p.advance()
		return &ast.Keyword{Name: ast.KeywordBoolean}, nil
	case lexer.KwNumber:
		p.advance()
		return &ast.Keyword{Name: ast.KeywordNumber}, nil
	case lexer.KwNull:
		p.advance()
		return &ast.Keyword{Name: ast.KeywordNull}, nil
	case lexer.KwObject:
		p.advance()
		return &ast.Keyword{Name: ast.KeywordObject}, nil
	case lexer.KwArray:
		p.advance()
		return &ast.Keyword{Name: ast.KeywordArray}, nil
	case lexer.KwForbidden:
		p.advance()
		return &ast.Keyword{Name: ast.KeywordForbidden}, nil
	case lexer.JSONLit, lexer.StringLit:
		v := p.tok.JSON
		p.advance()
		return &ast.Literal{Value: v}, nil
	case lexer.LAngle:
		p.advance()
		if p.tok.Kind != lexer.Ident {
			return nil, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Ident.String())
		}
		name := p.tok.Text
		p.advance()
		if err := p.expect(lexer.RAngle); err != nil {
			return nil, err
		}
		return &ast.Ref{Name: name}, nil
	case lexer.RegexLit:
		pattern := p.tok.Text
		p.advance()
		return &ast.Regex{Pattern: pattern}, nil
	case lexer.FormatLit:
		name := p.tok.Text
		p.advance()
		return &ast.Format{Name: name}, nil
	case lexer.KwString:
		p.advance()
		card := ast.Cardinal{}
		if p.tok.Kind == lexer.LBrace {
			c, err := p.parseCardinal()
			if err != nil {
				return nil, err
			}
			card = c
		}
		return &ast.StringCard{Card: card}, nil
	case lexer.KwInteger:
		return p.parseIntegerAtom()
	case lexer.LBrace:
		return p.parseObject()
	case lexer.LBracket:
		return p.parseArray()
	}
	return nil, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind),
		"'('", "if", "boolean", "number", "null", "object", "array", "forbidden",
		"json literal", "string literal", "'<'", "regex", "format", "string", "integer", "'{'", "'['")
}

func (p *parser) parseIntegerAtom() (ast.Type, error) {
	p.advance() // consume "integer"
	switch p.tok.Kind {
	case lexer.LBrace:
		card, err := p.parseCardinal()
		if err != nil {
			return nil, err
		}
		return &ast.IntegerCard{Card: card}, nil
	case lexer.Slash:
		p.advance()
		if p.tok.Kind != lexer.Int {
			return nil, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Int.String())
		}
		k := p.tok.Int
		p.advance()
		ik := int(k)
		return &ast.IntegerCard{MultipleOf: &ik}, nil
	default:
		return &ast.IntegerCard{}, nil
	}
}

// cardinal ::= "{" int "}" | "{" "_" "," int "}" | "{" int "," "_" "}" | "{" int "," int "}"
func (p *parser) parseCardinal() (ast.Cardinal, error) {
	if err := p.expect(lexer.LBrace); err != nil {
		return ast.Cardinal{}, err
	}
	switch p.tok.Kind {
	case lexer.Int:
		a := int(p.tok.Int)
		p.advance()
		if p.tok.Kind == lexer.Comma {
			p.advance()
			if p.tok.Kind == lexer.Underscore {
				p.advance()
				if err := p.expect(lexer.RBrace); err != nil {
					return ast.Cardinal{}, err
				}
				return ast.Cardinal{Min: &a}, nil
			}
			if p.tok.Kind != lexer.Int {
				return ast.Cardinal{}, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Int.String(), "'_'")
			}
			b := int(p.tok.Int)
			p.advance()
			if err := p.expect(lexer.RBrace); err != nil {
				return ast.Cardinal{}, err
			}
			return ast.Cardinal{Min: &a, Max: &b}, nil
		}
		if err := p.expect(lexer.RBrace); err != nil {
			return ast.Cardinal{}, err
		}
		return ast.Cardinal{Min: &a, Max: &a}, nil
	case lexer.Underscore:
		p.advance()
		if err := p.expect(lexer.Comma); err != nil {
			return ast.Cardinal{}, err
		}
		if p.tok.Kind != lexer.Int {
			return ast.Cardinal{}, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Int.String())
		}
		b := int(p.tok.Int)
		p.advance()
		if err := p.expect(lexer.RBrace); err != nil {
			return ast.Cardinal{}, err
		}
		return ast.Cardinal{Max: &b}, nil
	}
	return ast.Cardinal{}, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Int.String(), "'_'")
}

// conditional ::= "if" type "then" type ("elif" type "then" type)* ("else" type)?
func (p *parser) parseConditional() (ast.Type, error) {
	p.advance() // consume "if"
	cond, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.KwThen {
		return nil, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), "then")
	}
	p.advance()
	then, err := p.parseType()
	if err != nil {
		return nil, err
	}
	branches := []ast.CondBranch{{Cond: cond, Then: then}}
	for p.tok.Kind == lexer.KwElif {
		p.advance()
		c, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.KwThen {
			return nil, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), "then")
		}
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.CondBranch{Cond: c, Then: t})
	}
	var elseType ast.Type
	if p.tok.Kind == lexer.KwElse {
		p.advance()
		elseType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Conditional{Branches: branches, Else: elseType}, nil
}

// object ::= "{" obj_restriction? (obj_prop ("," obj_prop)* ","?)? "}" cardinal?
func (p *parser) parseObject() (ast.Type, error) {
	p.advance() // consume "{"
	var restriction ast.ObjectRestriction = ast.RestrictionNone{}
	if p.tok.Kind == lexer.KwOnly {
		r, err := p.parseObjRestriction()
		if err != nil {
			return nil, err
		}
		restriction = r
	}

	var props []ast.ObjectProperty
	seen := map[string]bool{}
	if p.tok.Kind != lexer.RBrace {
		for {
			prop, err := p.parseObjProp()
			if err != nil {
				return nil, err
			}
			if seen[prop.Key] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateProperty, prop.Key)
			}
			seen[prop.Key] = true
			props = append(props, prop)
			if p.tok.Kind != lexer.Comma {
				break
			}
			p.advance()
			if p.tok.Kind == lexer.RBrace {
				break // trailing comma
			}
		}
	}
	if err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	card := ast.Cardinal{}
	if p.tok.Kind == lexer.LBrace {
		c, err := p.parseCardinal()
		if err != nil {
			return nil, err
		}
		card = c
	}
	return &ast.Object{Properties: props, Restriction: restriction, Card: card}, nil
}

func (p *parser) parseObjRestriction() (ast.ObjectRestriction, error) {
	p.advance() // consume "only"
	switch p.tok.Kind {
	case lexer.RegexLit, lexer.LAngle:
		nc, err := p.parseNameConstraint()
		if err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.Colon {
			p.advance()
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return ast.RestrictionOnlyKV{Names: nc, Value: typ}, nil
		}
		return ast.RestrictionOnlyNames{Names: nc}, nil
	case lexer.Underscore:
		p.advance()
		if err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ast.RestrictionOnlyKV{Wildcard: true, Value: typ}, nil
	default:
		return ast.RestrictionOnlyListed{}, nil
	}
}

func (p *parser) parseNameConstraint() (ast.NameConstraint, error) {
	if p.tok.Kind == lexer.RegexLit {
		pattern := p.tok.Text
		p.advance()
		return ast.NameConstraint{Pattern: pattern}, nil
	}
	if err := p.expect(lexer.LAngle); err != nil {
		return ast.NameConstraint{}, err
	}
	if p.tok.Kind != lexer.Ident {
		return ast.NameConstraint{}, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Ident.String())
	}
	name := p.tok.Text
	p.advance()
	if err := p.expect(lexer.RAngle); err != nil {
		return ast.NameConstraint{}, err
	}
	return ast.NameConstraint{IsRef: true, RefName: name}, nil
}

// obj_prop ::= (ident | quoted_string) "?"? ":" type
func (p *parser) parseObjProp() (ast.ObjectProperty, error) {
	var key string
	switch p.tok.Kind {
	case lexer.Ident:
		key = p.tok.Text
		p.advance()
	case lexer.StringLit:
		key, _ = p.tok.JSON.(string)
		p.advance()
	default:
		return ast.ObjectProperty{}, p.fail(fmt.Sprintf("unexpected %s", p.tok.Kind), lexer.Ident.String(), lexer.StringLit.String())
	}
	optional := false
	if p.tok.Kind == lexer.Question {
		optional = true
		p.advance()
	}
	if err := p.expect(lexer.Colon); err != nil {
		return ast.ObjectProperty{}, err
	}
	value, err := p.parseType()
	if err != nil {
		return ast.ObjectProperty{}, err
	}
	return ast.ObjectProperty{Key: key, Optional: optional, Value: value}, nil
}

// array ::= "[" "only"? "unique"? (type ("," type)*)? ("*"|"+")? "]" cardinal?
func (p *parser) parseArray() (ast.Type, error) {
	p.advance() // consume "["
	only := false
	if p.tok.Kind == lexer.KwOnly {
		only = true
		p.advance()
	}
	unique := false
	if p.tok.Kind == lexer.KwUnique {
		unique = true
		p.advance()
	}

	var items []ast.Type
	if p.tok.Kind != lexer.RBracket && p.tok.Kind != lexer.Star && p.tok.Kind != lexer.Plus {
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			items = append(items, t)
			if p.tok.Kind != lexer.Comma {
				break
			}
			p.advance()
		}
	}

	var mode ast.ArrayMode = ast.ModeClosed{}
	switch p.tok.Kind {
	case lexer.Star, lexer.Plus:
		if len(items) == 0 {
			return nil, p.fail("repeat suffix requires a preceding item type")
		}
		tail := items[len(items)-1]
		items = items[:len(items)-1]
		if p.tok.Kind == lexer.Star {
			mode = ast.ModeZeroOrMore{Tail: tail}
		} else {
			mode = ast.ModeOneOrMore{Tail: tail}
		}
		p.advance()
	}

	if err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	card := ast.Cardinal{}
	if p.tok.Kind == lexer.LBrace {
		c, err := p.parseCardinal()
		if err != nil {
			return nil, err
		}
		card = c
	}
	return &ast.Array{Items: items, Mode: mode, Only: only, Unique: unique, Card: card}, nil
}
