package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jscompile/jscn/ast"
)

func TestParseBareKeyword(t *testing.T) {
	schema, err := Parse("boolean")
	require.NoError(t, err)
	assert.True(t, schema.Root.Equal(&ast.Keyword{Name: ast.KeywordBoolean}))
	assert.Equal(t, 0, schema.Defs.Len())
}

func TestParseArrayZeroOrMore(t *testing.T) {
	schema, err := Parse("[integer*]")
	require.NoError(t, err)
	want := &ast.Array{
		Mode: ast.ModeZeroOrMore{Tail: &ast.IntegerCard{}},
	}
	assert.True(t, schema.Root.Equal(want))
}

func TestParseArrayTuplePlusCardinal(t *testing.T) {
	schema, err := Parse("[integer, boolean+]{4}")
	require.NoError(t, err)
	four := 4
	want := &ast.Array{
		Items: []ast.Type{&ast.IntegerCard{}},
		Mode:  ast.ModeOneOrMore{Tail: &ast.Keyword{Name: ast.KeywordBoolean}},
		Card:  ast.Cardinal{Min: &four, Max: &four},
	}
	assert.True(t, schema.Root.Equal(want))
}

func TestParseEnumShortcutSource(t *testing.T) {
	schema, err := Parse("`1` | `2`")
	require.NoError(t, err)
	want := &ast.AnyOf{Types: []ast.Type{
		&ast.Literal{Value: float64(1)},
		&ast.Literal{Value: float64(2)},
	}}
	assert.True(t, schema.Root.Equal(want))
}

func TestParseOnlyRefPropertyNamesWithDefinitions(t *testing.T) {
	schema, err := Parse(`{only <id>: <byte>} where id = r"[a-z]+" and byte = integer{0, 0xff}`)
	require.NoError(t, err)

	obj, ok := schema.Root.(*ast.Object)
	require.True(t, ok)
	restriction, ok := obj.Restriction.(ast.RestrictionOnlyKV)
	require.True(t, ok)
	assert.False(t, restriction.Wildcard)
	assert.True(t, restriction.Names.IsRef)
	assert.Equal(t, "id", restriction.Names.RefName)
	assert.True(t, restriction.Value.Equal(&ast.Ref{Name: "byte"}))

	require.Equal(t, 2, schema.Defs.Len())
	assert.Equal(t, []string{"id", "byte"}, schema.Defs.Names())

	idType, ok := schema.Defs.Get("id")
	require.True(t, ok)
	assert.True(t, idType.Equal(&ast.Regex{Pattern: "[a-z]+"}))

	zero, max := 0, 255
	byteType, ok := schema.Defs.Get("byte")
	require.True(t, ok)
	assert.True(t, byteType.Equal(&ast.IntegerCard{Card: ast.Cardinal{Min: &zero, Max: &max}}))
}

func TestParseConditional(t *testing.T) {
	src := `if {country: "USA"} then {postcode: r"\d{5}(-\d{4})?"} else {postcode: string}`
	schema, err := Parse(src)
	require.NoError(t, err)

	cond, ok := schema.Root.(*ast.Conditional)
	require.True(t, ok)
	require.Len(t, cond.Branches, 1)
	require.NotNil(t, cond.Else)

	countryObj, ok := cond.Branches[0].Cond.(*ast.Object)
	require.True(t, ok)
	require.Len(t, countryObj.Properties, 1)
	assert.Equal(t, "country", countryObj.Properties[0].Key)
	assert.True(t, countryObj.Properties[0].Value.Equal(&ast.Literal{Value: "USA"}))
}

func TestParseElifChain(t *testing.T) {
	schema, err := Parse("if boolean then null elif number then string else integer")
	require.NoError(t, err)
	cond, ok := schema.Root.(*ast.Conditional)
	require.True(t, ok)
	require.Len(t, cond.Branches, 2)
	assert.True(t, cond.Branches[0].Cond.Equal(&ast.Keyword{Name: ast.KeywordBoolean}))
	assert.True(t, cond.Branches[1].Cond.Equal(&ast.Keyword{Name: ast.KeywordNumber}))
	require.NotNil(t, cond.Else)
	assert.True(t, cond.Else.Equal(&ast.IntegerCard{}))
}

func TestParseMissingThenIsParseError(t *testing.T) {
	_, err := Parse("if boolean else integer")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseOperatorPrecedence(t *testing.T) {
	// `|` binds loosest: `a & b | c & d` is `(a&b) | (c&d)`.
	schema, err := Parse("boolean & number | string & null")
	require.NoError(t, err)
	anyOf, ok := schema.Root.(*ast.AnyOf)
	require.True(t, ok)
	require.Len(t, anyOf.Types, 2)
	_, ok = anyOf.Types[0].(*ast.AllOf)
	require.True(t, ok)
	_, ok = anyOf.Types[1].(*ast.AllOf)
	require.True(t, ok)
}

func TestParseNotBindsTighterThanAnd(t *testing.T) {
	schema, err := Parse("not boolean & number")
	require.NoError(t, err)
	allOf, ok := schema.Root.(*ast.AllOf)
	require.True(t, ok)
	require.Len(t, allOf.Types, 2)
	_, ok = allOf.Types[0].(*ast.Not)
	assert.True(t, ok)
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	schema, err := Parse("not (boolean & number)")
	require.NoError(t, err)
	not, ok := schema.Root.(*ast.Not)
	require.True(t, ok)
	_, ok = not.Inner.(*ast.AllOf)
	assert.True(t, ok)
}

func TestParseCardinalForms(t *testing.T) {
	cases := []struct {
		src      string
		min, max *int
	}{
		{"string{3}", intp(3), intp(3)},
		{"string{_, 5}", nil, intp(5)},
		{"string{2, _}", intp(2), nil},
		{"string{2, 5}", intp(2), intp(5)},
	}
	for _, c := range cases {
		schema, err := Parse(c.src)
		require.NoError(t, err, c.src)
		sc, ok := schema.Root.(*ast.StringCard)
		require.True(t, ok, c.src)
		assert.True(t, intPtrEqualForTest(sc.Card.Min, c.min), c.src)
		assert.True(t, intPtrEqualForTest(sc.Card.Max, c.max), c.src)
	}
}

func TestParseIntegerDivisor(t *testing.T) {
	schema, err := Parse("integer / 5")
	require.NoError(t, err)
	ic, ok := schema.Root.(*ast.IntegerCard)
	require.True(t, ok)
	require.NotNil(t, ic.MultipleOf)
	assert.Equal(t, 5, *ic.MultipleOf)
}

func TestParseIntegerDivisorAndCardinalViaAnd(t *testing.T) {
	schema, err := Parse("integer{0, 100} & integer / 5")
	require.NoError(t, err)
	allOf, ok := schema.Root.(*ast.AllOf)
	require.True(t, ok)
	require.Len(t, allOf.Types, 2)
}

func TestParseOnlyBareRestriction(t *testing.T) {
	schema, err := Parse("{name: string}{1}")
	require.NoError(t, err)
	obj, ok := schema.Root.(*ast.Object)
	require.True(t, ok)
	_, ok = obj.Restriction.(ast.RestrictionNone)
	assert.True(t, ok)

	schema, err = Parse("{only name: string}")
	require.NoError(t, err)
	obj, ok = schema.Root.(*ast.Object)
	require.True(t, ok)
	_, ok = obj.Restriction.(ast.RestrictionOnlyListed)
	assert.True(t, ok)
}

func TestParseOnlyWildcardKV(t *testing.T) {
	schema, err := Parse("{only _: integer}")
	require.NoError(t, err)
	obj, ok := schema.Root.(*ast.Object)
	require.True(t, ok)
	r, ok := obj.Restriction.(ast.RestrictionOnlyKV)
	require.True(t, ok)
	assert.True(t, r.Wildcard)
	assert.True(t, r.Value.Equal(&ast.IntegerCard{}))
}

func TestParseOptionalProperty(t *testing.T) {
	schema, err := Parse(`{name?: string, "quoted key": boolean}`)
	require.NoError(t, err)
	obj, ok := schema.Root.(*ast.Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 2)
	assert.Equal(t, "name", obj.Properties[0].Key)
	assert.True(t, obj.Properties[0].Optional)
	assert.Equal(t, "quoted key", obj.Properties[1].Key)
	assert.False(t, obj.Properties[1].Optional)
}

func TestParseDuplicatePropertyIsError(t *testing.T) {
	_, err := Parse("{name: string, name: integer}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateProperty))
}

func TestParseDuplicateDefinitionIsError(t *testing.T) {
	_, err := Parse("boolean where x = integer and x = number")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateDefinition))
}

func TestParseTrailingCommaInObjectAndArray(t *testing.T) {
	// The object grammar allows a trailing comma; the array grammar does not.
	_, err := Parse("{a: string,}")
	require.NoError(t, err)
	_, err = Parse("[integer, boolean,]")
	require.Error(t, err)
}

func TestParseUnresolvedTrailingInput(t *testing.T) {
	_, err := Parse("boolean boolean")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseUnexpectedAtomReportsExpectedSet(t *testing.T) {
	_, err := Parse("@")
	require.Error(t, err)
}

func TestParseDeterminism(t *testing.T) {
	src := `{only <id>: <byte>} where id = r"[a-z]+" and byte = integer{0, 0xff}`
	s1, err := Parse(src)
	require.NoError(t, err)
	s2, err := Parse(src)
	require.NoError(t, err)
	assert.True(t, s1.Equal(s2))
}

func TestParseDefinitionsConstructor(t *testing.T) {
	defs, err := ParseDefinitions("id = r\"[a-z]+\" and byte = integer{0, 255}")
	require.NoError(t, err)
	assert.Equal(t, 2, defs.Len())
}

func TestParseRefAndFormatAndRegexAtoms(t *testing.T) {
	schema, err := Parse(`<widget>`)
	require.NoError(t, err)
	assert.True(t, schema.Root.Equal(&ast.Ref{Name: "widget"}))

	schema, err = Parse(`f"email"`)
	require.NoError(t, err)
	assert.True(t, schema.Root.Equal(&ast.Format{Name: "email"}))

	schema, err = Parse(`r"[a-z]+"`)
	require.NoError(t, err)
	assert.True(t, schema.Root.Equal(&ast.Regex{Pattern: "[a-z]+"}))
}

func intp(v int) *int { return &v }

func intPtrEqualForTest(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
