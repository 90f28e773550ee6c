package jsonschemer

import "errors"

// === Network and IO Related Errors ===
var (
	// ErrNoLoaderRegistered is returned when no loader is registered for the URI scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrDataRead is returned when the loader body cannot be read.
	ErrDataRead = errors.New("data read failed")

	// ErrNetworkFetch is returned when fetching a remote schema fails.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrInvalidStatusCode is returned when a remote fetch answers with a non-200 status.
	ErrInvalidStatusCode = errors.New("invalid http status code")

	// ErrInvalidFileURI is returned when a file URI has a host component or an unusable path.
	ErrInvalidFileURI = errors.New("invalid file uri")
)

// === Serialization Related Errors ===
var (
	// ErrJSONUnmarshal is returned when JSON decoding fails.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrYAMLUnmarshal is returned when YAML decoding fails.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")

	// ErrXMLUnmarshal is returned when XML decoding fails.
	ErrXMLUnmarshal = errors.New("xml unmarshal failed")
)

// === Schema Compilation Related Errors ===
var (
	// ErrSchemaCompilation is returned when a schema document cannot be compiled.
	ErrSchemaCompilation = errors.New("schema compilation failed")

	// ErrInvalidSchemaType is returned when a schema value is neither a boolean nor an object.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrUnknownVocabulary is returned when $vocabulary requires a vocabulary this
	// implementation does not know.
	ErrUnknownVocabulary = errors.New("unknown vocabulary")

	// ErrUnsupportedTypeForRat is returned when a value cannot back an exact decimal.
	ErrUnsupportedTypeForRat = errors.New("unsupported type for rat")

	// ErrFailedToConvertToRat is returned when a numeric string cannot be parsed exactly.
	ErrFailedToConvertToRat = errors.New("failed to convert to rat")
)

// === Reference Resolution Related Errors ===
var (
	// ErrUnknownRef is returned when a $ref URI does not resolve to any known schema.
	ErrUnknownRef = errors.New("unknown $ref")

	// ErrInvalidRefResolution is returned when the resolver produced no document and no
	// built-in meta-schema matches.
	ErrInvalidRefResolution = errors.New("invalid $ref resolution")

	// ErrInvalidRefPointer is returned when a JSON Pointer fragment does not land on a
	// schema position.
	ErrInvalidRefPointer = errors.New("invalid $ref pointer")
)

// === Regex Related Errors ===
var (
	// ErrInvalidRegexpResolution is returned when a pattern cannot be compiled under the
	// selected dialect.
	ErrInvalidRegexpResolution = errors.New("invalid regexp resolution")

	// ErrInvalidEcmaRegexp is returned when a pattern is not a valid ECMA-262 regexp.
	ErrInvalidEcmaRegexp = errors.New("invalid ecma regexp")
)

// === Output and OpenAPI Related Errors ===
var (
	// ErrUnknownOutputFormat is returned for output formats other than flag, basic,
	// detailed, verbose and classic.
	ErrUnknownOutputFormat = errors.New("unknown output format")

	// ErrUnsupportedOpenAPIVersion is returned when a document's openapi field is not 3.1.x.
	ErrUnsupportedOpenAPIVersion = errors.New("unsupported openapi version")

	// ErrUnknownComponentSchema is returned when an OpenAPI document has no component
	// schema under the requested name.
	ErrUnknownComponentSchema = errors.New("unknown component schema")

	// ErrInvalidJSONPointer is returned when a pointer cannot be applied to an instance.
	ErrInvalidJSONPointer = errors.New("invalid json pointer")
)
