package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestLiteralEqual(t *testing.T) {
	a := &Literal{Value: float64(1)}
	b := &Literal{Value: float64(1)}
	c := &Literal{Value: float64(2)}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(&Keyword{Name: KeywordNumber}))
}

func TestKeywordEqual(t *testing.T) {
	assert.True(t, (&Keyword{Name: KeywordBoolean}).Equal(&Keyword{Name: KeywordBoolean}))
	assert.False(t, (&Keyword{Name: KeywordBoolean}).Equal(&Keyword{Name: KeywordNumber}))
}

func TestCardinalEqual(t *testing.T) {
	three := 3
	threeAgain := 3
	four := 4
	a := &StringCard{Card: Cardinal{Min: &three, Max: &three}}
	b := &StringCard{Card: Cardinal{Min: &threeAgain, Max: &threeAgain}}
	c := &StringCard{Card: Cardinal{Min: &three, Max: &four}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	d := &StringCard{}
	e := &StringCard{}
	assert.True(t, d.Equal(e))
	assert.False(t, d.Equal(a))
}

func TestAllOfAndAnyOfEqual(t *testing.T) {
	a := &AllOf{Types: []Type{&Keyword{Name: KeywordBoolean}, &Keyword{Name: KeywordNull}}}
	b := &AllOf{Types: []Type{&Keyword{Name: KeywordBoolean}, &Keyword{Name: KeywordNull}}}
	c := &AllOf{Types: []Type{&Keyword{Name: KeywordNull}, &Keyword{Name: KeywordBoolean}}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "order matters for structural equality")
	assert.False(t, a.Equal(&AnyOf{Types: a.Types}))
}

func TestObjectEqualConsidersRestrictionAndOrder(t *testing.T) {
	propA := ObjectProperty{Key: "a", Value: &Keyword{Name: KeywordString}}
	propB := ObjectProperty{Key: "b", Value: &Keyword{Name: KeywordNumber}}

	o1 := &Object{Properties: []ObjectProperty{propA, propB}, Restriction: RestrictionNone{}}
	o2 := &Object{Properties: []ObjectProperty{propA, propB}, Restriction: RestrictionNone{}}
	o3 := &Object{Properties: []ObjectProperty{propB, propA}, Restriction: RestrictionNone{}}
	o4 := &Object{Properties: []ObjectProperty{propA, propB}, Restriction: RestrictionOnlyListed{}}

	assert.True(t, o1.Equal(o2))
	assert.False(t, o1.Equal(o3))
	assert.False(t, o1.Equal(o4))
}

func TestArrayEqualConsidersModeAndFlags(t *testing.T) {
	a1 := &Array{Items: []Type{&Keyword{Name: KeywordString}}, Mode: ModeZeroOrMore{Tail: &Keyword{Name: KeywordNumber}}}
	a2 := &Array{Items: []Type{&Keyword{Name: KeywordString}}, Mode: ModeZeroOrMore{Tail: &Keyword{Name: KeywordNumber}}}
	a3 := &Array{Items: []Type{&Keyword{Name: KeywordString}}, Mode: ModeOneOrMore{Tail: &Keyword{Name: KeywordNumber}}}
	a4 := &Array{Items: []Type{&Keyword{Name: KeywordString}}, Mode: ModeZeroOrMore{Tail: &Keyword{Name: KeywordNumber}}, Unique: true}

	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(a3))
	assert.False(t, a1.Equal(a4))
}

func TestConditionalEqual(t *testing.T) {
	c1 := &Conditional{
		Branches: []CondBranch{{Cond: &Keyword{Name: KeywordBoolean}, Then: &Keyword{Name: KeywordNull}}},
		Else:     &Keyword{Name: KeywordString},
	}
	c2 := &Conditional{
		Branches: []CondBranch{{Cond: &Keyword{Name: KeywordBoolean}, Then: &Keyword{Name: KeywordNull}}},
		Else:     &Keyword{Name: KeywordString},
	}
	c3 := &Conditional{
		Branches: []CondBranch{{Cond: &Keyword{Name: KeywordBoolean}, Then: &Keyword{Name: KeywordNull}}},
	}
	assert.True(t, c1.Equal(c2))
	assert.False(t, c1.Equal(c3), "missing else must not equal a present else")
}

func TestDefinitionsWithPreservesOrderAndOverwrites(t *testing.T) {
	defs := NewDefinitions()
	defs = defs.With("a", &Keyword{Name: KeywordString})
	defs = defs.With("b", &Keyword{Name: KeywordNumber})
	require.Equal(t, []string{"a", "b"}, defs.Names())

	defs2 := defs.With("a", &Keyword{Name: KeywordBoolean})
	require.Equal(t, []string{"a", "b"}, defs2.Names(), "overwrite must not duplicate the order slot")
	typ, ok := defs2.Get("a")
	require.True(t, ok)
	assert.True(t, typ.Equal(&Keyword{Name: KeywordBoolean}))

	// original value is untouched (immutability).
	orig, ok := defs.Get("a")
	require.True(t, ok)
	assert.True(t, orig.Equal(&Keyword{Name: KeywordString}))
}

func TestDefinitionsEqual(t *testing.T) {
	d1 := NewDefinitions().With("a", &Keyword{Name: KeywordString})
	d2 := NewDefinitions().With("a", &Keyword{Name: KeywordString})
	d3 := NewDefinitions().With("a", &Keyword{Name: KeywordNumber})
	assert.True(t, d1.Equal(d2))
	assert.False(t, d1.Equal(d3))
}

func TestSchemaEqual(t *testing.T) {
	s1 := &Schema{Root: &Keyword{Name: KeywordBoolean}, Defs: NewDefinitions()}
	s2 := &Schema{Root: &Keyword{Name: KeywordBoolean}, Defs: NewDefinitions()}
	assert.True(t, s1.Equal(s2))
}

func TestJSONValueEqualHandlesOrderedObjects(t *testing.T) {
	a := orderedmap.New[string, any]()
	a.Set("x", float64(1))
	b := orderedmap.New[string, any]()
	b.Set("x", float64(1))
	c := orderedmap.New[string, any]()
	c.Set("x", float64(2))

	assert.True(t, jsonValueEqual(a, b))
	assert.False(t, jsonValueEqual(a, c))
	assert.True(t, jsonValueEqual([]any{float64(1), float64(2)}, []any{float64(1), float64(2)}))
	assert.False(t, jsonValueEqual([]any{float64(1), float64(2)}, []any{float64(2), float64(1)}))
}
