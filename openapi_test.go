package jsonschemer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreDocument = `{
	"openapi": "3.1.0",
	"info": {"title": "Petstore", "version": "1.0.0"},
	"components": {
		"schemas": {
			"Pet": {
				"type": "object",
				"required": ["petType"],
				"properties": {"petType": {"type": "string"}},
				"discriminator": {"propertyName": "petType"},
				"oneOf": [
					{"$ref": "#/components/schemas/Cat"},
					{"$ref": "#/components/schemas/Dog"}
				]
			},
			"Cat": {
				"type": "object",
				"required": ["petType", "meows"],
				"properties": {
					"petType": {"const": "Cat"},
					"meows": {"type": "boolean"}
				}
			},
			"Dog": {
				"type": "object",
				"required": ["petType", "barks"],
				"properties": {
					"petType": {"const": "Dog"},
					"barks": {"type": "boolean"}
				}
			}
		}
	}
}`

func TestOpenAPIVersionCheck(t *testing.T) {
	_, err := CompileOpenAPI([]byte(`{"openapi":"3.0.3","info":{"title":"t","version":"1"}}`))
	assert.ErrorIs(t, err, ErrUnsupportedOpenAPIVersion)

	_, err = CompileOpenAPI([]byte(`{"info":{"title":"t","version":"1"}}`))
	assert.ErrorIs(t, err, ErrUnsupportedOpenAPIVersion)
}

func TestOpenAPIDocumentWrapper(t *testing.T) {
	doc, err := NewCompiler().CompileOpenAPI([]byte(petstoreDocument))
	require.NoError(t, err)

	assert.Equal(t, "3.1.0", doc.Version())
	assert.Equal(t, OpenAPI31DialectURI, doc.Dialect())
	assert.Equal(t, []string{"Cat", "Dog", "Pet"}, doc.SchemaNames())
	assert.True(t, doc.IsValid())

	_, err = doc.Schema("Missing")
	assert.ErrorIs(t, err, ErrUnknownComponentSchema)
}

func TestOpenAPIComponentSchemaValidation(t *testing.T) {
	doc, err := NewCompiler().CompileOpenAPI([]byte(petstoreDocument))
	require.NoError(t, err)

	cat, err := doc.Schema("Cat")
	require.NoError(t, err)
	assert.True(t, cat.IsValid(mustInstance(t, `{"petType":"Cat","meows":true}`)))
	assert.False(t, cat.IsValid(mustInstance(t, `{"petType":"Cat"}`)))
}

func TestOpenAPIDiscriminator(t *testing.T) {
	doc, err := NewCompiler().CompileOpenAPI([]byte(petstoreDocument))
	require.NoError(t, err)

	pet, err := doc.Schema("Pet")
	require.NoError(t, err)

	assert.True(t, pet.IsValid(mustInstance(t, `{"petType":"Cat","meows":true}`)))
	assert.True(t, pet.IsValid(mustInstance(t, `{"petType":"Dog","barks":false}`)))
	assert.False(t, pet.IsValid(mustInstance(t, `{"petType":"Cat","barks":true}`)))

	classic := pet.Validate(mustInstance(t, `{"petType":"Frog"}`)).ToClassic()
	require.False(t, classic.Valid)
	found := false
	for _, e := range classic.Errors {
		if e.Type == "discriminator" {
			found = true
		}
	}
	assert.True(t, found, "expected a discriminator error")
}

func TestOpenAPIDiscriminatorMapping(t *testing.T) {
	doc, err := NewCompiler().CompileOpenAPI([]byte(`{
		"openapi": "3.1.2",
		"info": {"title": "t", "version": "1"},
		"components": {
			"schemas": {
				"Shape": {
					"type": "object",
					"required": ["kind"],
					"properties": {"kind": {"type": "string"}},
					"discriminator": {
						"propertyName": "kind",
						"mapping": {"round": "#/components/schemas/Circle"}
					},
					"oneOf": [{"$ref": "#/components/schemas/Circle"}]
				},
				"Circle": {
					"type": "object",
					"required": ["kind", "radius"],
					"properties": {
						"kind": {"type": "string"},
						"radius": {"type": "number"}
					}
				}
			}
		}
	}`))
	require.NoError(t, err)

	shape, err := doc.Schema("Shape")
	require.NoError(t, err)
	assert.True(t, shape.IsValid(mustInstance(t, `{"kind":"round","radius":1.5}`)))
	assert.False(t, shape.IsValid(mustInstance(t, `{"kind":"round"}`)))
}

func TestOpenAPIAllOfDiscriminatorRecursionGuard(t *testing.T) {
	doc, err := NewCompiler().CompileOpenAPI([]byte(`{
		"openapi": "3.1.0",
		"info": {"title": "t", "version": "1"},
		"components": {
			"schemas": {
				"Base": {
					"type": "object",
					"required": ["kind"],
					"properties": {"kind": {"type": "string"}},
					"discriminator": {"propertyName": "kind"}
				},
				"Leaf": {
					"allOf": [
						{"$ref": "#/components/schemas/Base"},
						{
							"type": "object",
							"required": ["extra"],
							"properties": {"extra": {"type": "integer"}}
						}
					]
				}
			}
		}
	}`))
	require.NoError(t, err)

	base, err := doc.Schema("Base")
	require.NoError(t, err)

	// Dispatch lands on Leaf, whose allOf re-enters Base; the single-skip flag
	// keeps that from dispatching again.
	assert.True(t, base.IsValid(mustInstance(t, `{"kind":"Leaf","extra":1}`)))
	assert.False(t, base.IsValid(mustInstance(t, `{"kind":"Leaf"}`)))
}
