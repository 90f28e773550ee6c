package jsonschemer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// OpenAPIDocument wraps a parsed OpenAPI 3.1 document. Its component schemas
// compile under the dialect named by jsonSchemaDialect, and the document itself
// validates against the OpenAPI meta-schema.
type OpenAPIDocument struct {
	compiler *Compiler
	value    map[string]any
	version  string
	dialect  string
	root     *Schema
}

// CompileOpenAPI wraps a raw OpenAPI 3.1 document.
func (c *Compiler) CompileOpenAPI(data []byte, uris ...string) (*OpenAPIDocument, error) {
	version := gjson.GetBytes(data, "openapi").String()
	if !strings.HasPrefix(version, "3.1.") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOpenAPIVersion, version)
	}

	dialect := gjson.GetBytes(data, "jsonSchemaDialect").String()
	if dialect == "" {
		dialect = OpenAPI31DialectURI
	}

	decoded, err := c.jsonDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaCompilation, err)
	}
	object, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document must be an object", ErrInvalidSchemaType)
	}

	// The document compiles as a schema container: the OpenAPI fields are
	// unknown keywords, and component schemas are reached through them by
	// pointer, picking up the document dialect.
	container := make(map[string]any, len(object)+1)
	for k, v := range object {
		container[k] = v
	}
	container["$schema"] = dialect

	root, err := c.CompileValue(container, uris...)
	if err != nil {
		return nil, err
	}

	return &OpenAPIDocument{
		compiler: c,
		value:    object,
		version:  version,
		dialect:  dialect,
		root:     root,
	}, nil
}

// CompileOpenAPI wraps a raw OpenAPI 3.1 document with the default compiler.
func CompileOpenAPI(data []byte, uris ...string) (*OpenAPIDocument, error) {
	return defaultCompiler.CompileOpenAPI(data, uris...)
}

// Version returns the document's openapi field.
func (d *OpenAPIDocument) Version() string { return d.version }

// Dialect returns the schema dialect URI in effect for component schemas.
func (d *OpenAPIDocument) Dialect() string { return d.dialect }

// Value returns the parsed document.
func (d *OpenAPIDocument) Value() map[string]any { return d.value }

// Validate checks the document against the OpenAPI 3.1 meta-schema.
func (d *OpenAPIDocument) Validate() (*EvaluationResult, error) {
	meta, err := d.compiler.GetSchema(OpenAPI31SchemaURI)
	if err != nil {
		return nil, err
	}
	return meta.Validate(d.value), nil
}

// IsValid reports whether the document conforms to the OpenAPI 3.1 meta-schema.
func (d *OpenAPIDocument) IsValid() bool {
	result, err := d.Validate()
	return err == nil && result.IsValid()
}

// Schema returns the compiled component schema at #/components/schemas/{name}.
func (d *OpenAPIDocument) Schema(name string) (*Schema, error) {
	schema, err := d.root.resolveJSONPointer("/components/schemas/" + escapeToken(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponentSchema, name)
	}
	return schema, nil
}

// SchemaNames lists the component schema names, sorted.
func (d *OpenAPIDocument) SchemaNames() []string {
	components, ok := d.value["components"].(map[string]any)
	if !ok {
		return nil
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
