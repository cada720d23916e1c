package jscn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaAndDisjointDefsUnion(t *testing.T) {
	a, err := CompileSchema("<a> where a = integer")
	require.NoError(t, err)
	b, err := CompileSchema("<b> where b = string")
	require.NoError(t, err)

	combined, err := a.And(b)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, combined.Definitions())

	frag, err := combined.JSONSchema()
	require.NoError(t, err)
	allOf, ok := frag.Get("allOf")
	require.True(t, ok)
	assert.Len(t, allOf.([]any), 2)
}

func TestSchemaOrDisjointDefsUnion(t *testing.T) {
	a, err := CompileSchema("<a> where a = integer")
	require.NoError(t, err)
	b, err := CompileSchema("<b> where b = string")
	require.NoError(t, err)

	combined, err := a.Or(b)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, combined.Definitions())

	frag, err := combined.JSONSchema()
	require.NoError(t, err)
	anyOf, ok := frag.Get("anyOf")
	require.True(t, ok)
	assert.Len(t, anyOf.([]any), 2)
}

func TestSchemaAndOverlappingEqualDefsMerges(t *testing.T) {
	a, err := CompileSchema("<shared> where shared = integer")
	require.NoError(t, err)
	b, err := CompileSchema("<shared> where shared = integer")
	require.NoError(t, err)

	combined, err := a.And(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, combined.Definitions())
}

func TestSchemaOrOverlappingConflictingDefsFails(t *testing.T) {
	a, err := CompileSchema("<x> where x = integer")
	require.NoError(t, err)
	b, err := CompileSchema("<x> where x = number")
	require.NoError(t, err)

	_, err = a.Or(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDefinitionConflict))
	var conflict *DefinitionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "x", conflict.Name)
}

func TestSchemaMergeDefinitions(t *testing.T) {
	schema, err := CompileSchema("<a> where a = integer")
	require.NoError(t, err)
	defs, err := CompileDefinitions("b = string")
	require.NoError(t, err)

	combined, err := schema.MergeDefinitions(defs)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, combined.Definitions())

	// The root carries over unchanged: only the definitions were merged.
	frag, err := combined.JSONSchema()
	require.NoError(t, err)
	ref, ok := frag.Get("$ref")
	require.True(t, ok)
	assert.Equal(t, "#/definitions/a", ref)
}

func TestDefinitionsAndDisjointUnion(t *testing.T) {
	a, err := CompileDefinitions("a = integer")
	require.NoError(t, err)
	b, err := CompileDefinitions("b = string")
	require.NoError(t, err)

	combined, err := a.And(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, combined.Names())
}

func TestDefinitionsOrOverlappingEqualMerges(t *testing.T) {
	a, err := CompileDefinitions("shared = boolean")
	require.NoError(t, err)
	b, err := CompileDefinitions("shared = boolean")
	require.NoError(t, err)

	combined, err := a.Or(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, combined.Names())
}

func TestDefinitionsAndOverlappingConflictingFails(t *testing.T) {
	a, err := CompileDefinitions("x = integer")
	require.NoError(t, err)
	b, err := CompileDefinitions("x = string")
	require.NoError(t, err)

	_, err = a.And(b)
	require.Error(t, err)
	var conflict *DefinitionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "x", conflict.Name)
}
