package jscn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSchemaAndJSONSchema(t *testing.T) {
	schema, err := CompileSchema("{name: string, age?: integer}")
	require.NoError(t, err)

	frag, err := schema.JSONSchema()
	require.NoError(t, err)

	typ, ok := frag.Get("type")
	require.True(t, ok)
	assert.Equal(t, "object", typ)
}

func TestCompileSchemaParseErrorIsDiagnostic(t *testing.T) {
	_, err := CompileSchema("{")
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, "parse_error", diag.Code)
}

func TestCompileDefinitions(t *testing.T) {
	defs, err := CompileDefinitions("id = integer and name = string")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, defs.Names())
}

func TestJSONSchemaIsMemoized(t *testing.T) {
	schema, err := CompileSchema("boolean")
	require.NoError(t, err)

	first, err := schema.JSONSchema()
	require.NoError(t, err)
	second, err := schema.JSONSchema()
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated JSONSchema calls on the same Schema must return the cached value")
}

func TestJSONSchemaUnresolvedReferenceIsDiagnostic(t *testing.T) {
	schema, err := CompileSchema("<missing>")
	require.NoError(t, err)

	_, err = schema.JSONSchema()
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, "unresolved_reference", diag.Code)
	assert.True(t, errors.Is(err, ErrUnresolvedReference))
}

func TestSchemaEqual(t *testing.T) {
	a, err := CompileSchema("integer{0, 10}")
	require.NoError(t, err)
	b, err := CompileSchema("integer{0, 10}")
	require.NoError(t, err)
	c, err := CompileSchema("integer{0, 11}")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
