// Package lexer turns JSCN source text into a token stream.
package lexer

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Int
	JSONLit    // `...` back-quoted JSON literal
	StringLit  // "..." bare quoted string, sugar for a JSON string literal
	RegexLit   // r"..."
	FormatLit  // f"..."

	// Keywords. Recognized ahead of Ident.
	KwBoolean
	KwString
	KwInteger
	KwNumber
	KwNull
	KwObject
	KwArray
	KwForbidden
	KwOnly
	KwUnique
	KwNot
	KwWhere
	KwAnd
	KwIf
	KwThen
	KwElif
	KwElse

	// Punctuation.
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	LParen    // (
	RParen    // )
	LAngle    // <
	RAngle    // >
	Comma     // ,
	Colon     // :
	Question  // ?
	Star      // *
	Plus      // +
	Slash     // /
	Pipe      // |
	Amp       // &
	Underscore // _
	Equals    // =
)

// keywords maps the reserved identifier spellings to their Kind. An
// identifier matching one of these is never reported as Ident.
var keywords = map[string]Kind{
	"boolean":   KwBoolean,
	"string":    KwString,
	"integer":   KwInteger,
	"number":    KwNumber,
	"null":      KwNull,
	"object":    KwObject,
	"array":     KwArray,
	"forbidden": KwForbidden,
	"only":      KwOnly,
	"unique":    KwUnique,
	"not":       KwNot,
	"where":     KwWhere,
	"and":       KwAnd,
	"if":        KwIf,
	"then":      KwThen,
	"elif":      KwElif,
	"else":      KwElse,
}

// IsKeyword reports whether ident is reserved and returns its Kind.
func IsKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Token is one lexeme together with its byte offset in the source.
type Token struct {
	Kind Kind
	Text string // verbatim source text: for JSONLit the text between the back-quotes, for StringLit the quoted string with its quotes, for RegexLit/FormatLit the text between the quotes
	JSON any    // decoded value, valid only when Kind == JSONLit or StringLit
	Int  int64  // parsed integer value, valid only when Kind == Int
	Pos  int    // byte offset of the first rune of the token
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var kindNames = map[Kind]string{
	EOF:        "end of input",
	Ident:      "identifier",
	Int:        "integer",
	JSONLit:    "json literal",
	StringLit:  "string literal",
	RegexLit:   "regex literal",
	FormatLit:  "format literal",
	KwBoolean:  "boolean",
	KwString:   "string",
	KwInteger:  "integer",
	KwNumber:   "number",
	KwNull:     "null",
	KwObject:   "object",
	KwArray:    "array",
	KwForbidden: "forbidden",
	KwOnly:     "only",
	KwUnique:   "unique",
	KwNot:      "not",
	KwWhere:    "where",
	KwAnd:      "and",
	KwIf:       "if",
	KwThen:     "then",
	KwElif:     "elif",
	KwElse:     "else",
	LBrace:     "'{'",
	RBrace:     "'}'",
	LBracket:   "'['",
	RBracket:   "']'",
	LParen:     "'('",
	RParen:     "')'",
	LAngle:     "'<'",
	RAngle:     "'>'",
	Comma:      "','",
	Colon:      "':'",
	Question:   "'?'",
	Star:       "'*'",
	Plus:       "'+'",
	Slash:      "'/'",
	Pipe:       "'|'",
	Amp:        "'&'",
	Underscore: "'_'",
	Equals:     "'='",
}
