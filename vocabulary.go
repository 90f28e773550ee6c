package jsonschemer

import "fmt"

// Vocabulary URIs of the 2020-12 dialect and the OpenAPI 3.1 base vocabulary.
const (
	VocabCore             = "https://json-schema.org/draft/2020-12/vocab/core"
	VocabApplicator       = "https://json-schema.org/draft/2020-12/vocab/applicator"
	VocabUnevaluated      = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
	VocabValidation       = "https://json-schema.org/draft/2020-12/vocab/validation"
	VocabMetaData         = "https://json-schema.org/draft/2020-12/vocab/meta-data"
	VocabFormatAnnotation = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	VocabFormatAssertion  = "https://json-schema.org/draft/2020-12/vocab/format-assertion"
	VocabContent          = "https://json-schema.org/draft/2020-12/vocab/content"
	VocabOpenAPIBase      = "https://spec.openapis.org/oas/3.1/vocab/base"
)

// Meta-schema URIs this implementation knows without fetching.
const (
	Draft202012SchemaURI = "https://json-schema.org/draft/2020-12/schema"
	OpenAPI31DialectURI  = "https://spec.openapis.org/oas/3.1/dialect/base"
	OpenAPI31SchemaURI   = "https://spec.openapis.org/oas/3.1/schema/2022-10-07"
)

// knownVocabularies maps vocabulary URIs to the keywords they own; it decides
// which keywords are known. Evaluation order does not follow it or a
// $vocabulary declaration: Schema.evaluate runs keywords in one fixed order, in
// which items runs after prefixItems and unevaluated* run last.
var knownVocabularies = map[string][]string{
	VocabCore: {
		"$schema", "$vocabulary", "$id", "$anchor", "$dynamicAnchor",
		"$ref", "$dynamicRef", "$defs", "$comment",
	},
	VocabApplicator: {
		"allOf", "anyOf", "oneOf", "not", "if", "then", "else",
		"dependentSchemas", "prefixItems", "items", "contains",
		"properties", "patternProperties", "additionalProperties", "propertyNames",
	},
	VocabUnevaluated: {
		"unevaluatedItems", "unevaluatedProperties",
	},
	VocabValidation: {
		"type", "enum", "const",
		"multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
		"maxLength", "minLength", "pattern",
		"maxItems", "minItems", "uniqueItems", "maxContains", "minContains",
		"maxProperties", "minProperties", "required", "dependentRequired",
	},
	VocabMetaData: {
		"title", "description", "default", "deprecated", "readOnly", "writeOnly", "examples",
	},
	VocabFormatAnnotation: {"format"},
	VocabFormatAssertion:  {"format"},
	VocabContent:          {"contentEncoding", "contentMediaType", "contentSchema"},
	VocabOpenAPIBase:      {"discriminator", "example", "externalDocs", "xml"},
}

// draft202012Vocabularies is the declaration order of the standard dialect.
var draft202012Vocabularies = []string{
	VocabCore, VocabApplicator, VocabUnevaluated, VocabValidation,
	VocabMetaData, VocabFormatAnnotation, VocabContent,
}

// openapi31Vocabularies is the OpenAPI 3.1 base dialect: 2020-12 plus the OAS
// base vocabulary with its discriminator-aware applicator overrides.
var openapi31Vocabularies = []string{
	VocabCore, VocabApplicator, VocabUnevaluated, VocabValidation,
	VocabMetaData, VocabFormatAnnotation, VocabContent, VocabOpenAPIBase,
}

// Dialect captures the keyword surface selected by a meta-schema's $vocabulary.
type Dialect struct {
	URI          string
	Vocabularies []string

	active map[string]bool
}

func newDialect(uri string, vocabularies []string) *Dialect {
	d := &Dialect{URI: uri, Vocabularies: vocabularies, active: make(map[string]bool, len(vocabularies))}
	for _, v := range vocabularies {
		d.active[v] = true
	}
	return d
}

var (
	draft202012Dialect = newDialect(Draft202012SchemaURI, draft202012Vocabularies)
	openapi31Dialect   = newDialect(OpenAPI31DialectURI, openapi31Vocabularies)
)

// HasVocabulary reports whether a vocabulary is active under this dialect.
func (d *Dialect) HasVocabulary(uri string) bool {
	return d != nil && d.active[uri]
}

// AssertsFormat reports whether format failures are assertions under this dialect.
func (d *Dialect) AssertsFormat() bool {
	return d.HasVocabulary(VocabFormatAssertion)
}

// IsOpenAPI reports whether the OAS base vocabulary (discriminator) is active.
func (d *Dialect) IsOpenAPI() bool {
	return d.HasVocabulary(VocabOpenAPIBase)
}

// dialectForMetaSchema returns the built-in dialect for a known meta-schema URI.
func dialectForMetaSchema(uri string) (*Dialect, bool) {
	switch fragmentless(uri) {
	case Draft202012SchemaURI, "":
		return draft202012Dialect, true
	case OpenAPI31DialectURI, OpenAPI31SchemaURI, "https://spec.openapis.org/oas/3.1/schema-base/2022-10-07":
		return openapi31Dialect, true
	default:
		return nil, false
	}
}

// dialectFromVocabulary builds a dialect from a meta-schema's $vocabulary map.
// An unknown vocabulary that is required fails; optional ones are dropped.
func dialectFromVocabulary(metaURI string, vocabulary map[string]bool) (*Dialect, error) {
	if len(vocabulary) == 0 {
		return draft202012Dialect, nil
	}
	ordered := make([]string, 0, len(vocabulary))
	// Preserve the standard ordering for known vocabularies, then append the rest.
	for _, uri := range openapi31Vocabularies {
		if _, declared := vocabulary[uri]; declared {
			ordered = append(ordered, uri)
		}
	}
	for uri, required := range vocabulary {
		if _, known := knownVocabularies[uri]; !known {
			if required {
				return nil, fmt.Errorf("%w: %s", ErrUnknownVocabulary, uri)
			}
			continue
		}
		if uri == VocabFormatAssertion {
			ordered = append(ordered, uri)
		}
	}
	return newDialect(metaURI, ordered), nil
}

// knownKeyword reports whether a keyword belongs to any registered vocabulary.
func knownKeyword(name string) bool {
	for _, keywords := range knownVocabularies {
		for _, k := range keywords {
			if k == name {
				return true
			}
		}
	}
	return false
}
