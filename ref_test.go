package jsonschemer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorResolution(t *testing.T) {
	schema := mustCompile(t, `{
		"$id": "https://example.com/root",
		"$defs": {
			"positive": {"$anchor": "pos", "type": "integer", "minimum": 1}
		},
		"properties": {"count": {"$ref": "#pos"}}
	}`)

	assert.True(t, schema.IsValid(mustInstance(t, `{"count":2}`)))
	assert.False(t, schema.IsValid(mustInstance(t, `{"count":0}`)))
}

func TestRefAcrossDocuments(t *testing.T) {
	compiler := NewCompiler()

	_, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/item",
		"type": "object",
		"required": ["sku"]
	}`))
	require.NoError(t, err)

	order, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/order",
		"type": "array",
		"items": {"$ref": "item"}
	}`))
	require.NoError(t, err)

	assert.True(t, order.IsValid(mustInstance(t, `[{"sku":"a"}]`)))
	assert.False(t, order.IsValid(mustInstance(t, `[{}]`)))
}

func TestUnknownRefFailsAtCompile(t *testing.T) {
	_, err := NewCompiler().Compile([]byte(`{"$ref":"#/nowhere/at/all"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRefPointer)

	_, err = NewCompiler().Compile([]byte(`{"$ref":"#missing-anchor"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRef)
}

func TestRefPointerMustLandOnSchema(t *testing.T) {
	_, err := NewCompiler().Compile([]byte(`{
		"$defs": {"p": {"type": "integer"}},
		"$ref": "#/$defs/p/type"
	}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRefPointer)
}

func TestRefNonExclusiveSiblings(t *testing.T) {
	// In Draft 2020-12 sibling keywords evaluate alongside $ref.
	schema := mustCompile(t, `{
		"$defs": {"s": {"type": "string"}},
		"$ref": "#/$defs/s",
		"minLength": 3
	}`)

	assert.True(t, schema.IsValid("abcd"))
	assert.False(t, schema.IsValid("ab"))
	assert.False(t, schema.IsValid(int64(5)))
}

func TestRefThroughUnknownKeyword(t *testing.T) {
	// Unknown keywords retain their raw value, so a $ref can navigate into them.
	schema := mustCompile(t, `{
		"x-components": {"thing": {"type": "integer"}},
		"$ref": "#/x-components/thing"
	}`)

	assert.True(t, schema.IsValid(int64(1)))
	assert.False(t, schema.IsValid("s"))
}

func TestDynamicRefScopeWalk(t *testing.T) {
	compiler := NewCompiler()

	_, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/tree",
		"$dynamicAnchor": "node",
		"type": "object",
		"properties": {
			"data": true,
			"children": {
				"type": "array",
				"items": {"$dynamicRef": "#node"}
			}
		}
	}`))
	require.NoError(t, err)

	strictTree, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/strict-tree",
		"$dynamicAnchor": "node",
		"$ref": "tree",
		"unevaluatedProperties": false
	}`))
	require.NoError(t, err)

	// The misspelled property is caught in the nested node because the dynamic
	// anchor re-binds to the outermost resource.
	invalid := mustInstance(t, `{"children":[{"daat":1}]}`)
	assert.False(t, strictTree.IsValid(invalid))

	valid := mustInstance(t, `{"children":[{"data":1}]}`)
	assert.True(t, strictTree.IsValid(valid))
}

func TestResolveAbsoluteKeywordLocation(t *testing.T) {
	schema := mustCompile(t, `{
		"$id": "https://example.com/root",
		"$defs": {"p": {"type": "integer"}}
	}`)

	target, err := schema.resolveJSONPointer("/$defs/p")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/root#/$defs/p", target.AbsoluteKeywordLocation())

	// Resolving the location's URI lands back on the same schema node.
	again, err := schema.resolveRef(target.AbsoluteKeywordLocation())
	require.NoError(t, err)
	assert.Same(t, target, again)
}

func TestCompileTwiceYieldsEqualResourceTables(t *testing.T) {
	source := `{
		"$id": "https://example.com/twice",
		"$defs": {"a": {"$anchor": "a", "type": "string"}}
	}`

	first, err := NewCompiler().Compile([]byte(source))
	require.NoError(t, err)
	second, err := NewCompiler().Compile([]byte(source))
	require.NoError(t, err)

	require.Equal(t, len(first.lexicalResources), len(second.lexicalResources))
	for uri, schema := range first.lexicalResources {
		other, ok := second.lexicalResources[uri]
		require.True(t, ok, uri)
		assert.Equal(t, schema.SchemaPointer(), other.SchemaPointer())
	}
}

func TestBundleEmbedsExternalResources(t *testing.T) {
	compiler := NewCompiler()

	_, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/address",
		"type": "object",
		"required": ["city"]
	}`))
	require.NoError(t, err)

	person, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/person",
		"type": "object",
		"properties": {"address": {"$ref": "address"}}
	}`))
	require.NoError(t, err)

	bundled, err := person.Bundle()
	require.NoError(t, err)

	defs, ok := bundled["$defs"].(map[string]any)
	require.True(t, ok)
	embedded, ok := defs["https://example.com/address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/address", embedded["$id"])

	// The bundled document is self-contained: a fresh compiler needs no
	// external documents to validate the same instances.
	rebundled, err := NewCompiler().CompileValue(bundled)
	require.NoError(t, err)
	assert.False(t, rebundled.IsValid(mustInstance(t, `{"address":{}}`)))
	assert.True(t, rebundled.IsValid(mustInstance(t, `{"address":{"city":"x"}}`)))
}

func TestEmbeddedResourceScopes(t *testing.T) {
	// A nested $id starts a new resource; refs inside it resolve against it.
	schema := mustCompile(t, `{
		"$id": "https://example.com/outer",
		"properties": {
			"inner": {
				"$id": "https://example.com/inner",
				"$defs": {"leaf": {"type": "integer"}},
				"$ref": "#/$defs/leaf"
			}
		}
	}`)

	assert.True(t, schema.IsValid(mustInstance(t, `{"inner":3}`)))
	assert.False(t, schema.IsValid(mustInstance(t, `{"inner":"x"}`)))
}
