package jsonschemer

import "embed"

//go:embed metaschemas
var metaSchemaFS embed.FS

// metaSchemaFiles maps the URIs of the self-hosted meta-schemas to their
// embedded documents, so $schema and meta $refs never hit the network.
var metaSchemaFiles = map[string]string{
	Draft202012SchemaURI:                                           "metaschemas/draft2020-12/schema.json",
	"https://json-schema.org/draft/2020-12/meta/core":              "metaschemas/draft2020-12/meta/core.json",
	"https://json-schema.org/draft/2020-12/meta/applicator":        "metaschemas/draft2020-12/meta/applicator.json",
	"https://json-schema.org/draft/2020-12/meta/unevaluated":       "metaschemas/draft2020-12/meta/unevaluated.json",
	"https://json-schema.org/draft/2020-12/meta/validation":        "metaschemas/draft2020-12/meta/validation.json",
	"https://json-schema.org/draft/2020-12/meta/meta-data":         "metaschemas/draft2020-12/meta/meta-data.json",
	"https://json-schema.org/draft/2020-12/meta/format-annotation": "metaschemas/draft2020-12/meta/format-annotation.json",
	"https://json-schema.org/draft/2020-12/meta/format-assertion":  "metaschemas/draft2020-12/meta/format-assertion.json",
	"https://json-schema.org/draft/2020-12/meta/content":           "metaschemas/draft2020-12/meta/content.json",
	OpenAPI31DialectURI:                                        "metaschemas/oas31/dialect-base.json",
	"https://spec.openapis.org/oas/3.1/meta/base":              "metaschemas/oas31/meta-base.json",
	OpenAPI31SchemaURI:                                         "metaschemas/oas31/schema.json",
	"https://spec.openapis.org/oas/3.1/schema-base/2022-10-07": "metaschemas/oas31/schema.json",
}

func embeddedMetaSchema(uri string) ([]byte, bool) {
	path, ok := metaSchemaFiles[fragmentless(uri)]
	if !ok {
		return nil, false
	}
	data, err := metaSchemaFS.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// ValidateSchema validates a schema document against the Draft 2020-12
// meta-schema, using the engine on itself. The result reports schema authoring
// problems as ordinary validation errors. An anchor declared twice within one
// resource is not reported: no meta-schema keyword checks it, and compilation
// registers one of the duplicates without error.
func (c *Compiler) ValidateSchema(schema any) (*EvaluationResult, error) {
	meta, err := c.GetSchema(Draft202012SchemaURI)
	if err != nil {
		return nil, err
	}
	switch v := schema.(type) {
	case []byte:
		decoded, err := c.jsonDecoder(v)
		if err != nil {
			return nil, err
		}
		return meta.Validate(decoded), nil
	case *Schema:
		return meta.Validate(v.value), nil
	default:
		return meta.Validate(schema), nil
	}
}

// ValidateSchema validates a schema document with the default compiler.
func ValidateSchema(schema any) (*EvaluationResult, error) {
	return defaultCompiler.ValidateSchema(schema)
}
