package jsonschemer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertFormat(t *testing.T) {
	source := `{"format":"ipv4"}`

	annotating := mustCompile(t, source)
	assert.True(t, annotating.IsValid("not-an-ip"))

	asserting, err := NewCompiler().SetAssertFormat(true).Compile([]byte(source))
	require.NoError(t, err)
	assert.False(t, asserting.IsValid("not-an-ip"))
	assert.True(t, asserting.IsValid("10.0.0.1"))
	assert.True(t, asserting.IsValid(int64(4)), "non-strings pass format checks")
}

func TestRegisterCustomFormat(t *testing.T) {
	compiler := NewCompiler().SetAssertFormat(true)
	compiler.RegisterFormat("even", func(v any) bool {
		f, ok := toFloat(v)
		return ok && int64(f)%2 == 0
	}, "integer")

	schema, err := compiler.Compile([]byte(`{"format":"even"}`))
	require.NoError(t, err)
	assert.True(t, schema.IsValid(int64(4)))
	assert.False(t, schema.IsValid(int64(3)))
	assert.True(t, schema.IsValid("three"), "type-gated format skips other types")

	compiler.UnregisterFormat("even")
	assert.True(t, schema.IsValid(int64(3)), "unknown formats never fail")
}

func TestAccessModeRequired(t *testing.T) {
	schema := mustCompile(t, `{
		"type": "object",
		"required": ["id", "password"],
		"properties": {
			"id": {"type": "integer", "readOnly": true},
			"password": {"type": "string", "writeOnly": true}
		}
	}`)

	readInstance := mustInstance(t, `{"id":1}`)
	writeInstance := mustInstance(t, `{"password":"s3cret"}`)

	assert.False(t, schema.IsValid(readInstance))
	assert.True(t, schema.ValidateWithAccessMode(readInstance, AccessModeRead).IsValid())
	assert.False(t, schema.ValidateWithAccessMode(readInstance, AccessModeWrite).IsValid())

	assert.True(t, schema.ValidateWithAccessMode(writeInstance, AccessModeWrite).IsValid())
	assert.False(t, schema.ValidateWithAccessMode(writeInstance, AccessModeRead).IsValid())

	compiler := NewCompiler().SetAccessMode(AccessModeRead)
	readDefault, err := compiler.Compile([]byte(`{
		"required": ["secret"],
		"properties": {"secret": {"writeOnly": true}}
	}`))
	require.NoError(t, err)
	assert.True(t, readDefault.IsValid(mustInstance(t, `{}`)))
}

func TestContentKeywordsAnnotationByDefault(t *testing.T) {
	schema := mustCompile(t, `{
		"contentEncoding": "base64",
		"contentMediaType": "application/json",
		"contentSchema": {"required": ["foo"]}
	}`)

	// Undecodable content is fine while content validation is off.
	assert.True(t, schema.IsValid("!!! not base64 !!!"))

	result := schema.Validate("eyJmb28iOiJiYXIifQ==")
	assert.True(t, result.IsValid())
	assert.Equal(t, "base64", result.Annotations["contentEncoding"])
	assert.Equal(t, "application/json", result.Annotations["contentMediaType"])
	parsed, ok := result.Annotations["contentSchema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bar", parsed["foo"])
}

func TestContentValidationAsserts(t *testing.T) {
	compiler := NewCompiler().SetContentValidation(true)
	schema, err := compiler.Compile([]byte(`{
		"contentEncoding": "base64",
		"contentMediaType": "application/json",
		"contentSchema": {"required": ["foo"]}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.IsValid("eyJmb28iOiJiYXIifQ=="))
	assert.False(t, schema.IsValid("!!! not base64 !!!"))
	assert.False(t, schema.IsValid("eyJiYXIiOiJmb28ifQ=="), "decoded object lacks foo")
}

func TestCompileFileUsesFileBaseURI(t *testing.T) {
	dir := t.TempDir()

	itemPath := filepath.Join(dir, "item.json")
	require.NoError(t, os.WriteFile(itemPath, []byte(`{"type":"integer"}`), 0o644))

	rootPath := filepath.Join(dir, "root.json")
	require.NoError(t, os.WriteFile(rootPath, []byte(`{
		"type": "array",
		"items": {"$ref": "item.json"}
	}`), 0o644))

	schema, err := NewCompiler().CompileFile(rootPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(schema.BaseURI(), "file://"))

	assert.True(t, schema.IsValid(mustInstance(t, `[1,2]`)))
	assert.False(t, schema.IsValid(mustInstance(t, `[1,"x"]`)))
}

func TestCompileBatchResolvesInterdependencies(t *testing.T) {
	compiler := NewCompiler()
	schemas, err := compiler.CompileBatch(map[string][]byte{
		"https://example.com/a": []byte(`{"$id":"https://example.com/a","properties":{"b":{"$ref":"b"}}}`),
		"https://example.com/b": []byte(`{"$id":"https://example.com/b","type":"integer"}`),
	})
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	a := schemas["https://example.com/a"]
	assert.True(t, a.IsValid(mustInstance(t, `{"b":1}`)))
	assert.False(t, a.IsValid(mustInstance(t, `{"b":"x"}`)))
}

func TestUnknownRequiredVocabulary(t *testing.T) {
	compiler := NewCompiler()

	meta, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/my-meta",
		"$vocabulary": {
			"https://json-schema.org/draft/2020-12/vocab/core": true,
			"https://example.com/vocab/made-up": true
		}
	}`))
	require.NoError(t, err)
	compiler.SetSchema("https://example.com/my-meta", meta)

	_, err = compiler.Compile([]byte(`{"$schema":"https://example.com/my-meta","type":"integer"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVocabulary)
}

func TestOptionalUnknownVocabularyIgnored(t *testing.T) {
	compiler := NewCompiler()

	meta, err := compiler.Compile([]byte(`{
		"$id": "https://example.com/lenient-meta",
		"$vocabulary": {
			"https://json-schema.org/draft/2020-12/vocab/core": true,
			"https://json-schema.org/draft/2020-12/vocab/validation": true,
			"https://example.com/vocab/made-up": false
		}
	}`))
	require.NoError(t, err)
	compiler.SetSchema("https://example.com/lenient-meta", meta)

	schema, err := compiler.Compile([]byte(`{"$schema":"https://example.com/lenient-meta","type":"integer"}`))
	require.NoError(t, err)
	assert.False(t, schema.IsValid("s"))
}

func TestPropertyHooksAreInvoked(t *testing.T) {
	var before, after []string
	compiler := NewCompiler().
		SetBeforePropertyValidation(func(_ *Schema, key string, _ any) {
			before = append(before, key)
		}).
		SetAfterPropertyValidation(func(_ *Schema, key string, _ any) {
			after = append(after, key)
		})

	schema, err := compiler.Compile([]byte(`{"properties":{"a":{"type":"integer"},"b":true}}`))
	require.NoError(t, err)

	require.True(t, schema.IsValid(mustInstance(t, `{"a":1,"b":2}`)))
	assert.Equal(t, []string{"a", "b"}, before)
	assert.Equal(t, []string{"a", "b"}, after)
}

func TestInsertPropertyDefaultsDoesNotMutate(t *testing.T) {
	compiler := NewCompiler().SetInsertPropertyDefaults(true)
	schema, err := compiler.Compile([]byte(`{
		"properties": {"count": {"type": "integer", "default": 5}}
	}`))
	require.NoError(t, err)

	instance := mustInstance(t, `{}`).(map[string]any)
	result := schema.Validate(instance)
	assert.True(t, result.IsValid())
	assert.Empty(t, instance, "the instance is never mutated")
}

func TestSchemaMarshalRoundTrip(t *testing.T) {
	source := `{"type":"object","properties":{"a":{"type":"integer"}}}`
	schema := mustCompile(t, source)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)

	recompiled, err := NewCompiler().Compile(data)
	require.NoError(t, err)
	assert.True(t, recompiled.IsValid(mustInstance(t, `{"a":1}`)))
	assert.False(t, recompiled.IsValid(mustInstance(t, `{"a":"x"}`)))
}
