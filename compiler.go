package jsonschemer

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

// AccessMode selects which of readOnly/writeOnly properties the required
// keyword may demand.
type AccessMode string

const (
	AccessModeNone  AccessMode = ""
	AccessModeRead  AccessMode = "read"
	AccessModeWrite AccessMode = "write"
)

// FormatDef defines a custom format validation rule.
type FormatDef struct {
	// Type restricts the format to one JSON Schema type name; empty applies to all.
	Type string

	Validate func(any) bool
}

// ContentEncodingFunc decodes a string-encoded value: (decoded, error).
type ContentEncodingFunc func(string) ([]byte, error)

// ContentMediaTypeFunc parses decoded bytes: (parsed, error).
type ContentMediaTypeFunc func([]byte) (any, error)

// PropertyHook runs before or after each property validation. Hooks are invoked
// but carry no validation semantics.
type PropertyHook func(schema *Schema, key string, value any)

// Compiler compiles schema documents and caches the results. The zero value is
// not usable; construct with NewCompiler.
type Compiler struct {
	mu             sync.RWMutex
	schemas        map[string]*Schema
	unresolvedRefs map[string][]*Schema

	Decoders   map[string]ContentEncodingFunc
	MediaTypes map[string]ContentMediaTypeFunc
	Loaders    map[string]func(url string) (io.ReadCloser, error)

	DefaultBaseURI string
	AssertFormat   bool

	accessMode             AccessMode
	regexpResolver         RegexpResolver
	regexps                *regexpCache
	insertPropertyDefaults bool
	beforePropertyHook     PropertyHook
	afterPropertyHook      PropertyHook

	jsonEncoder func(v any) ([]byte, error)
	jsonDecoder func(data []byte) (any, error)

	customFormats   map[string]*FormatDef
	customFormatsRW sync.RWMutex

	contentValidation bool
}

// NewCompiler creates a Compiler with the default loaders, decoders and media
// types registered.
func NewCompiler() *Compiler {
	c := &Compiler{
		schemas:        make(map[string]*Schema),
		unresolvedRefs: make(map[string][]*Schema),
		Decoders:       make(map[string]ContentEncodingFunc),
		MediaTypes:     make(map[string]ContentMediaTypeFunc),
		Loaders:        make(map[string]func(url string) (io.ReadCloser, error)),
		regexpResolver: nativeRegexpResolver,
		regexps:        newRegexpCache(),
		customFormats:  make(map[string]*FormatDef),

		jsonEncoder: func(v any) ([]byte, error) { return json.Marshal(v) },
		jsonDecoder: DecodeInstance,
	}
	c.initDefaults()
	return c
}

var defaultCompiler = NewCompiler()

// WithEncoderJSON configures a custom JSON encoder implementation.
func (c *Compiler) WithEncoderJSON(encoder func(v any) ([]byte, error)) *Compiler {
	c.jsonEncoder = encoder
	return c
}

// WithDecoderJSON configures a custom JSON decoder implementation. The decoder
// must produce the instance value model (map[string]any, []any, ...).
func (c *Compiler) WithDecoderJSON(decoder func(data []byte) (any, error)) *Compiler {
	c.jsonDecoder = decoder
	return c
}

// SetDefaultBaseURI sets the base URI for resolving relative references of
// documents compiled without an explicit URI.
func (c *Compiler) SetDefaultBaseURI(baseURI string) *Compiler {
	c.DefaultBaseURI = baseURI
	return c
}

// SetAssertFormat switches the format keyword from annotation to assertion.
func (c *Compiler) SetAssertFormat(assert bool) *Compiler {
	c.AssertFormat = assert
	return c
}

// SetAccessMode sets the default access mode for Validate calls.
func (c *Compiler) SetAccessMode(mode AccessMode) *Compiler {
	c.accessMode = mode
	return c
}

// SetRegexpResolver selects the regex dialect: "native", "ecma", or a custom
// resolver via SetRegexpResolverFunc.
func (c *Compiler) SetRegexpResolver(dialect string) *Compiler {
	if resolver, ok := resolverForDialect(dialect); ok {
		c.regexpResolver = resolver
		c.regexps = newRegexpCache()
	}
	return c
}

// SetRegexpResolverFunc installs a caller-provided pattern compiler.
func (c *Compiler) SetRegexpResolverFunc(resolver RegexpResolver) *Compiler {
	c.regexpResolver = resolver
	c.regexps = newRegexpCache()
	return c
}

// SetInsertPropertyDefaults is accepted for API compatibility. Defaults surface
// as annotations; the instance is never mutated.
func (c *Compiler) SetInsertPropertyDefaults(insert bool) *Compiler {
	c.insertPropertyDefaults = insert
	return c
}

// SetBeforePropertyValidation installs a hook invoked before each property
// evaluation.
func (c *Compiler) SetBeforePropertyValidation(hook PropertyHook) *Compiler {
	c.beforePropertyHook = hook
	return c
}

// SetAfterPropertyValidation installs a hook invoked after each property
// evaluation.
func (c *Compiler) SetAfterPropertyValidation(hook PropertyHook) *Compiler {
	c.afterPropertyHook = hook
	return c
}

// SetContentValidation turns the content* keywords from annotations into
// assertions backed by the registered decoders and media types.
func (c *Compiler) SetContentValidation(validate bool) *Compiler {
	c.contentValidation = validate
	return c
}

// RegisterDecoder adds a decoder for a contentEncoding name.
func (c *Compiler) RegisterDecoder(encodingName string, decoderFunc ContentEncodingFunc) *Compiler {
	c.Decoders[encodingName] = decoderFunc
	return c
}

// RegisterMediaType adds a parser for a contentMediaType name.
func (c *Compiler) RegisterMediaType(mediaTypeName string, unmarshalFunc ContentMediaTypeFunc) *Compiler {
	c.MediaTypes[mediaTypeName] = unmarshalFunc
	return c
}

// RegisterLoader adds a loader for a URI scheme.
func (c *Compiler) RegisterLoader(scheme string, loaderFunc func(url string) (io.ReadCloser, error)) *Compiler {
	c.Loaders[scheme] = loaderFunc
	return c
}

// RegisterFormat registers a custom format. The optional typeName restricts the
// format to instances of that JSON Schema type.
func (c *Compiler) RegisterFormat(name string, validator func(any) bool, typeName ...string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	var t string
	if len(typeName) > 0 {
		t = typeName[0]
	}
	c.customFormats[name] = &FormatDef{Type: t, Validate: validator}
	return c
}

// UnregisterFormat removes a custom format.
func (c *Compiler) UnregisterFormat(name string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()
	delete(c.customFormats, name)
	return c
}

func (c *Compiler) lookupCustomFormat(name string) *FormatDef {
	c.customFormatsRW.RLock()
	defer c.customFormatsRW.RUnlock()
	return c.customFormats[name]
}

func (c *Compiler) resolveRegexp(pattern string) (*regexp.Regexp, error) {
	return c.regexps.resolve(pattern, c.regexpResolver)
}

// Compile compiles a JSON schema document. The document's own $id, else an
// optional URI, becomes the document base; without either, the compiler's
// DefaultBaseURI is used, and without that a deterministic urn:uuid: identity
// is synthesized from the content.
func (c *Compiler) Compile(data []byte, uris ...string) (*Schema, error) {
	value, err := c.jsonDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaCompilation, err)
	}
	return c.CompileValue(value, uris...)
}

// CompileValue compiles an already-decoded schema value.
func (c *Compiler) CompileValue(value any, uris ...string) (*Schema, error) {
	baseURI := c.baseURIFor(value, uris...)

	c.mu.RLock()
	existing, exists := c.schemas[baseURI]
	c.mu.RUnlock()
	if exists {
		return existing, nil
	}

	schema, err := parseSchema(c, value, nil, baseURI, "", "")
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if schema.uri != "" {
		c.schemas[schema.uri] = schema
	}
	c.mu.Unlock()

	if err := schema.resolveReferences(); err != nil {
		c.mu.Lock()
		delete(c.schemas, schema.uri)
		c.mu.Unlock()
		return nil, err
	}
	return schema, nil
}

// CompileFile compiles a schema read from disk. The file's absolute path
// becomes a file:// base URI so sibling documents resolve, and the file loader
// is available for relative $refs.
func (c *Compiler) CompileFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataRead, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFileURI, err)
	}
	return c.Compile(data, pathToFileURI(abs))
}

// CompileBatch compiles interdependent schemas, deferring reference resolution
// until every document is parsed.
func (c *Compiler) CompileBatch(schemas map[string][]byte) (map[string]*Schema, error) {
	compiled := make(map[string]*Schema, len(schemas))

	for id, data := range schemas {
		value, err := c.jsonDecoder(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, id, err)
		}
		schema, err := parseSchema(c, value, nil, c.baseURIFor(value, id), "", "")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, id, err)
		}
		compiled[id] = schema

		c.mu.Lock()
		if schema.uri != "" {
			c.schemas[schema.uri] = schema
		}
		c.mu.Unlock()
	}

	for id, schema := range compiled {
		if err := schema.resolveReferences(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, id, err)
		}
	}
	return compiled, nil
}

func (c *Compiler) baseURIFor(value any, uris ...string) string {
	if obj, ok := value.(map[string]any); ok {
		if id, ok := obj["$id"].(string); ok && isValidURI(id) {
			return fragmentless(id)
		}
	}
	if len(uris) > 0 && uris[0] != "" {
		if c.DefaultBaseURI != "" && !isAbsoluteURI(uris[0]) {
			return resolveURI(c.DefaultBaseURI, uris[0])
		}
		return fragmentless(uris[0])
	}
	if c.DefaultBaseURI != "" {
		return c.DefaultBaseURI
	}
	data, err := json.Marshal(value)
	if err != nil {
		data = []byte(fmt.Sprint(value))
	}
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, data).String()
}

// SetSchema associates a URI with an already-compiled schema.
func (c *Compiler) SetSchema(uri string, schema *Schema) *Compiler {
	c.mu.Lock()
	c.schemas[uri] = schema
	c.mu.Unlock()
	return c
}

// GetSchema retrieves a schema by reference, consulting the cache, the embedded
// meta-schema registry, and finally the scheme loaders.
func (c *Compiler) GetSchema(ref string) (*Schema, error) {
	baseURI, fragment := splitRef(ref)

	c.mu.RLock()
	schema, exists := c.schemas[baseURI]
	c.mu.RUnlock()

	if !exists {
		var err error
		if schema, err = c.fetchSchema(baseURI); err != nil {
			return nil, err
		}
	}
	if fragment == "" {
		return schema, nil
	}
	return schema.resolveFragment(fragment)
}

// fetchSchema loads and compiles an external document: embedded meta-schemas
// first, then the loader registered for the URI scheme.
func (c *Compiler) fetchSchema(uri string) (*Schema, error) {
	if data, ok := embeddedMetaSchema(uri); ok {
		return c.Compile(data, uri)
	}

	loader, ok := c.Loaders[getURLScheme(uri)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoLoaderRegistered, uri)
	}
	body, err := loader(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRefResolution, uri, err)
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDataRead, uri)
	}
	return c.Compile(data, uri)
}

// dialectFor resolves a $schema URI to a dialect, fetching the meta-schema and
// reading its $vocabulary when the URI is not built in.
func (c *Compiler) dialectFor(metaURI string) (*Dialect, error) {
	if dialect, ok := dialectForMetaSchema(metaURI); ok {
		return dialect, nil
	}
	meta, err := c.GetSchema(metaURI)
	if err != nil {
		// An unreachable custom meta-schema falls back to the standard dialect.
		return draft202012Dialect, nil
	}
	return dialectFromVocabulary(metaURI, meta.Vocabulary)
}

func (c *Compiler) initDefaults() {
	c.Decoders["base64"] = base64.StdEncoding.DecodeString

	c.MediaTypes["application/json"] = func(data []byte) (any, error) {
		parsed, err := c.jsonDecoder(data)
		if err != nil {
			return nil, ErrJSONUnmarshal
		}
		return parsed, nil
	}
	c.MediaTypes["application/yaml"] = func(data []byte) (any, error) {
		var tmp any
		if err := yaml.Unmarshal(data, &tmp); err != nil {
			return nil, ErrYAMLUnmarshal
		}
		return tmp, nil
	}
	c.MediaTypes["application/xml"] = func(data []byte) (any, error) {
		var tmp any
		if err := xml.Unmarshal(data, &tmp); err != nil {
			return nil, ErrXMLUnmarshal
		}
		return tmp, nil
	}

	client := &http.Client{Timeout: 10 * time.Second}
	httpLoader := func(url string) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, ErrNetworkFetch
		}
		if resp.StatusCode != http.StatusOK {
			if err := resp.Body.Close(); err != nil {
				return nil, err
			}
			return nil, ErrInvalidStatusCode
		}
		return resp.Body, nil
	}
	c.RegisterLoader("http", httpLoader)
	c.RegisterLoader("https", httpLoader)

	c.RegisterLoader("file", func(uri string) (io.ReadCloser, error) {
		p, err := fileURIToPath(uri)
		if err != nil {
			return nil, err
		}
		return os.Open(p)
	})
}
