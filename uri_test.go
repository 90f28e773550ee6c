package jsonschemer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURI(t *testing.T) {
	assert.Equal(t, "https://example.com/item", resolveURI("https://example.com/order", "item"))
	assert.Equal(t, "https://example.com/a/c", resolveURI("https://example.com/a/b", "c"))
	assert.Equal(t, "https://other.com/x", resolveURI("https://example.com/a", "https://other.com/x"))
	assert.Equal(t, "https://example.com/a#frag", resolveURI("https://example.com/a", "#frag"))
}

func TestResolveURIOpaqueBase(t *testing.T) {
	// Fragment-only references work against opaque bases like URNs.
	assert.Equal(t, "urn:example:schema#part", resolveURI("urn:example:schema", "#part"))
	assert.Equal(t, "urn:example:schema", withFragment("urn:example:schema#old", ""))
}

func TestFragmentHelpers(t *testing.T) {
	base, fragment := splitRef("https://example.com/s#/a/b")
	assert.Equal(t, "https://example.com/s", base)
	assert.Equal(t, "/a/b", fragment)

	assert.Equal(t, "https://example.com/s", fragmentless("https://example.com/s#x"))
	assert.Equal(t, "https://example.com/s#y", withFragment("https://example.com/s#x", "y"))
}

func TestFileURIConversion(t *testing.T) {
	p, err := fileURIToPath("file:///tmp/schema.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/schema.json", p)

	p, err = fileURIToPath("file:///C:/schemas/s.json")
	require.NoError(t, err)
	assert.Equal(t, "C:/schemas/s.json", p)

	_, err = fileURIToPath("file://host/tmp/x.json")
	assert.ErrorIs(t, err, ErrInvalidFileURI)

	assert.Equal(t, "file:///tmp/x.json", pathToFileURI("/tmp/x.json"))
}

func TestURNSchemaIdentifiers(t *testing.T) {
	schema := mustCompile(t, `{
		"$id": "urn:example:vehicle",
		"$defs": {"wheel": {"$anchor": "wheel", "type": "integer"}},
		"properties": {"wheels": {"$ref": "#wheel"}}
	}`)

	assert.True(t, schema.IsValid(mustInstance(t, `{"wheels":4}`)))
	assert.False(t, schema.IsValid(mustInstance(t, `{"wheels":"four"}`)))
}
