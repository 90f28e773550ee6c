package jsonschemer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/go-json-experiment/json"
)

// Schema is a compiled schema node. It is immutable after compilation; a
// compiled Schema is safe to share across goroutines for concurrent Validate
// calls.
type Schema struct {
	compiler *Compiler
	parent   *Schema
	root     *Schema

	value           any    // raw value this node was compiled from
	baseURI         string // active base URI at this node
	uri             string // canonical URI when this node starts a resource
	schemaPointer   string // pointer from the document root
	resourcePointer string // pointer from the enclosing resource root
	isResourceRoot  bool
	dialect         *Dialect

	// Resource tables. Only root schemas own non-empty tables; nested schemas
	// share their root's.
	lexicalResources map[string]*Schema
	dynamicResources map[string]*Schema

	compiledPatterns      map[string]*regexp.Regexp
	compiledStringPattern *regexp.Regexp

	// extrasCompiled caches schemas compiled on demand out of unknown-keyword
	// containers. Discriminator dispatch can land here during validation, so
	// access is guarded.
	extrasMu       sync.Mutex
	extrasCompiled map[string]*Schema

	Boolean *bool

	ID            string
	SchemaField   string
	Vocabulary    map[string]bool
	Comment       string
	Anchor        string
	DynamicAnchor string

	Ref                string
	DynamicRef         string
	ResolvedRef        *Schema
	ResolvedDynamicRef *Schema

	Defs map[string]*Schema

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema
	If    *Schema
	Then  *Schema
	Else  *Schema

	DependentSchemas map[string]*Schema

	PrefixItems []*Schema
	Items       *Schema
	Contains    *Schema

	Properties           map[string]*Schema
	PatternProperties    map[string]*Schema
	AdditionalProperties *Schema
	PropertyNames        *Schema

	UnevaluatedItems      *Schema
	UnevaluatedProperties *Schema

	Type  []string
	Enum  []any
	Const *ConstValue

	MultipleOf       *Rat
	Maximum          *Rat
	ExclusiveMaximum *Rat
	Minimum          *Rat
	ExclusiveMinimum *Rat

	MaxLength *float64
	MinLength *float64
	Pattern   *string

	MaxItems    *float64
	MinItems    *float64
	UniqueItems *bool
	MaxContains *float64
	MinContains *float64

	MaxProperties     *float64
	MinProperties     *float64
	Required          []string
	DependentRequired map[string][]string

	Format *string

	ContentEncoding  *string
	ContentMediaType *string
	ContentSchema    *Schema

	Title       *string
	Description *string
	Default     any
	HasDefault  bool
	Deprecated  *bool
	ReadOnly    *bool
	WriteOnly   *bool
	Examples    []any

	Discriminator *Discriminator
	XError        any

	// Extras holds unknown keywords. Their values are retained raw: a $ref may
	// still navigate into them.
	Extras map[string]any
}

// ConstValue wraps a const keyword value so null is distinguishable from absent.
type ConstValue struct {
	Value any
}

// Discriminator is the OpenAPI 3.1 discriminator object.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string
}

// GetRoot returns the document root of this schema node.
func (s *Schema) GetRoot() *Schema {
	if s.root != nil {
		return s.root
	}
	return s
}

// GetCompiler returns the compiler the schema was built with.
func (s *Schema) GetCompiler() *Compiler {
	if s.compiler != nil {
		return s.compiler
	}
	return defaultCompiler
}

// BaseURI returns the active base URI at this node.
func (s *Schema) BaseURI() string { return s.baseURI }

// SchemaPointer returns this node's position in its document root.
func (s *Schema) SchemaPointer() string { return s.schemaPointer }

// AbsoluteKeywordLocation returns baseURI + pointer within the enclosing resource.
func (s *Schema) AbsoluteKeywordLocation() string {
	return s.baseURI + "#" + s.resourcePointer
}

// Value returns the raw value the schema was compiled from.
func (s *Schema) Value() any { return s.value }

// MarshalJSON writes the original schema value back out.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *Schema) String() string {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<schema %s>", s.AbsoluteKeywordLocation())
	}
	return string(data)
}

// parseSchema compiles a raw value into a Schema node, registering identities
// into the root's resource tables as it descends.
func parseSchema(c *Compiler, value any, parent *Schema, baseURI, schemaPointer, resourcePointer string) (*Schema, error) {
	s := &Schema{
		compiler:        c,
		parent:          parent,
		value:           value,
		baseURI:         baseURI,
		schemaPointer:   schemaPointer,
		resourcePointer: resourcePointer,
	}
	if parent != nil {
		s.root = parent.GetRoot()
		s.dialect = parent.dialect
	} else {
		s.lexicalResources = make(map[string]*Schema)
		s.dynamicResources = make(map[string]*Schema)
	}

	switch v := value.(type) {
	case bool:
		s.Boolean = &v
		return s, nil
	case map[string]any:
		if err := s.parseObject(c, v); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %T at %q", ErrInvalidSchemaType, value, schemaPointer)
	}
}

func (s *Schema) parseObject(c *Compiler, obj map[string]any) error {
	// $schema first: it selects the dialect and hence the keyword table.
	if raw, ok := obj["$schema"].(string); ok {
		s.SchemaField = raw
		dialect, err := c.dialectFor(raw)
		if err != nil {
			return err
		}
		s.dialect = dialect
	}
	if s.dialect == nil {
		s.dialect = draft202012Dialect
	}

	// $vocabulary next; only meaningful on meta-schemas but parsed everywhere.
	if raw, ok := obj["$vocabulary"].(map[string]any); ok {
		s.Vocabulary = make(map[string]bool, len(raw))
		for uri, required := range raw {
			req, _ := required.(bool)
			s.Vocabulary[uri] = req
		}
	}

	root := s.GetRoot()

	// A root with no $id gets a synthetic identity from the caller's base URI.
	if s.parent == nil {
		if _, hasID := obj["$id"]; !hasID && s.baseURI != "" {
			s.uri = s.baseURI
			s.isResourceRoot = true
			root.lexicalResources[s.uri] = s
		}
	}

	if raw, ok := obj["$id"].(string); ok {
		s.ID = raw
		s.baseURI = resolveURI(s.baseURI, raw)
		s.uri = fragmentless(s.baseURI)
		s.baseURI = s.uri
		s.isResourceRoot = true
		s.resourcePointer = ""
		root.lexicalResources[s.uri] = s
	}

	if raw, ok := obj["$anchor"].(string); ok {
		s.Anchor = raw
		root.lexicalResources[withFragment(s.baseURI, raw)] = s
	}

	if raw, ok := obj["$dynamicAnchor"].(string); ok {
		s.DynamicAnchor = raw
		uri := withFragment(s.baseURI, raw)
		root.dynamicResources[uri] = s
		if _, taken := root.lexicalResources[uri]; !taken {
			root.lexicalResources[uri] = s
		}
	}

	if raw, ok := obj["$ref"].(string); ok {
		s.Ref = raw
	}
	if raw, ok := obj["$dynamicRef"].(string); ok {
		s.DynamicRef = raw
	}
	if raw, ok := obj["$comment"].(string); ok {
		s.Comment = raw
	}

	var err error
	if s.Defs, err = s.parseSchemaMap(c, obj, "$defs"); err != nil {
		return err
	}
	if s.Defs == nil {
		// Draft-7 documents still in the wild use definitions; honor it for
		// pointer navigation.
		if s.Defs, err = s.parseSchemaMap(c, obj, "definitions"); err != nil {
			return err
		}
	}

	if s.AllOf, err = s.parseSchemaList(c, obj, "allOf"); err != nil {
		return err
	}
	if s.AnyOf, err = s.parseSchemaList(c, obj, "anyOf"); err != nil {
		return err
	}
	if s.OneOf, err = s.parseSchemaList(c, obj, "oneOf"); err != nil {
		return err
	}
	if s.Not, err = s.parseSubschema(c, obj, "not"); err != nil {
		return err
	}
	if s.If, err = s.parseSubschema(c, obj, "if"); err != nil {
		return err
	}
	if s.Then, err = s.parseSubschema(c, obj, "then"); err != nil {
		return err
	}
	if s.Else, err = s.parseSubschema(c, obj, "else"); err != nil {
		return err
	}
	if s.DependentSchemas, err = s.parseSchemaMap(c, obj, "dependentSchemas"); err != nil {
		return err
	}
	if s.PrefixItems, err = s.parseSchemaList(c, obj, "prefixItems"); err != nil {
		return err
	}
	if s.Items, err = s.parseSubschema(c, obj, "items"); err != nil {
		return err
	}
	if s.Contains, err = s.parseSubschema(c, obj, "contains"); err != nil {
		return err
	}
	if s.Properties, err = s.parseSchemaMap(c, obj, "properties"); err != nil {
		return err
	}
	if s.PatternProperties, err = s.parseSchemaMap(c, obj, "patternProperties"); err != nil {
		return err
	}
	if s.AdditionalProperties, err = s.parseSubschema(c, obj, "additionalProperties"); err != nil {
		return err
	}
	if s.PropertyNames, err = s.parseSubschema(c, obj, "propertyNames"); err != nil {
		return err
	}
	if s.UnevaluatedItems, err = s.parseSubschema(c, obj, "unevaluatedItems"); err != nil {
		return err
	}
	if s.UnevaluatedProperties, err = s.parseSubschema(c, obj, "unevaluatedProperties"); err != nil {
		return err
	}
	if s.ContentSchema, err = s.parseSubschema(c, obj, "contentSchema"); err != nil {
		return err
	}

	switch t := obj["type"].(type) {
	case string:
		s.Type = []string{t}
	case []any:
		for _, item := range t {
			if name, ok := item.(string); ok {
				s.Type = append(s.Type, name)
			}
		}
	}

	if raw, ok := obj["enum"].([]any); ok {
		s.Enum = raw
	}
	if raw, present := obj["const"]; present {
		s.Const = &ConstValue{Value: raw}
	}

	s.MultipleOf = ratKeyword(obj, "multipleOf")
	s.Maximum = ratKeyword(obj, "maximum")
	s.ExclusiveMaximum = ratKeyword(obj, "exclusiveMaximum")
	s.Minimum = ratKeyword(obj, "minimum")
	s.ExclusiveMinimum = ratKeyword(obj, "exclusiveMinimum")

	s.MaxLength = numberKeyword(obj, "maxLength")
	s.MinLength = numberKeyword(obj, "minLength")
	s.MaxItems = numberKeyword(obj, "maxItems")
	s.MinItems = numberKeyword(obj, "minItems")
	s.MaxContains = numberKeyword(obj, "maxContains")
	s.MinContains = numberKeyword(obj, "minContains")
	s.MaxProperties = numberKeyword(obj, "maxProperties")
	s.MinProperties = numberKeyword(obj, "minProperties")

	if raw, ok := obj["pattern"].(string); ok {
		s.Pattern = &raw
		if s.compiledStringPattern, err = c.resolveRegexp(raw); err != nil {
			return err
		}
	}
	if raw, ok := obj["uniqueItems"].(bool); ok {
		s.UniqueItems = &raw
	}
	if raw, ok := obj["required"].([]any); ok {
		for _, item := range raw {
			if name, ok := item.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	if raw, ok := obj["dependentRequired"].(map[string]any); ok {
		s.DependentRequired = make(map[string][]string, len(raw))
		for key, list := range raw {
			names := []string{}
			if items, ok := list.([]any); ok {
				for _, item := range items {
					if name, ok := item.(string); ok {
						names = append(names, name)
					}
				}
			}
			s.DependentRequired[key] = names
		}
	}

	if raw, ok := obj["format"].(string); ok {
		s.Format = &raw
	}
	if raw, ok := obj["contentEncoding"].(string); ok {
		s.ContentEncoding = &raw
	}
	if raw, ok := obj["contentMediaType"].(string); ok {
		s.ContentMediaType = &raw
	}

	if raw, ok := obj["title"].(string); ok {
		s.Title = &raw
	}
	if raw, ok := obj["description"].(string); ok {
		s.Description = &raw
	}
	if raw, present := obj["default"]; present {
		s.Default = raw
		s.HasDefault = true
	}
	if raw, ok := obj["deprecated"].(bool); ok {
		s.Deprecated = &raw
	}
	if raw, ok := obj["readOnly"].(bool); ok {
		s.ReadOnly = &raw
	}
	if raw, ok := obj["writeOnly"].(bool); ok {
		s.WriteOnly = &raw
	}
	if raw, ok := obj["examples"].([]any); ok {
		s.Examples = raw
	}

	if s.dialect.IsOpenAPI() {
		if raw, ok := obj["discriminator"].(map[string]any); ok {
			d := &Discriminator{}
			if name, ok := raw["propertyName"].(string); ok {
				d.PropertyName = name
			}
			if mapping, ok := raw["mapping"].(map[string]any); ok {
				d.Mapping = make(map[string]string, len(mapping))
				for key, target := range mapping {
					if uri, ok := target.(string); ok {
						d.Mapping[key] = uri
					}
				}
			}
			s.Discriminator = d
		}
	}

	if raw, present := obj["x-error"]; present {
		s.XError = raw
	}

	// Compile patternProperties regexes now so validation stays read-only.
	if len(s.PatternProperties) > 0 {
		s.compiledPatterns = make(map[string]*regexp.Regexp, len(s.PatternProperties))
		for pattern := range s.PatternProperties {
			re, err := c.resolveRegexp(pattern)
			if err != nil {
				return err
			}
			s.compiledPatterns[pattern] = re
		}
	}

	for name, raw := range obj {
		if knownKeyword(name) || name == "x-error" || name == "definitions" {
			continue
		}
		if s.Extras == nil {
			s.Extras = make(map[string]any)
		}
		s.Extras[name] = raw
	}

	return nil
}

func (s *Schema) parseSubschema(c *Compiler, obj map[string]any, keyword string) (*Schema, error) {
	raw, present := obj[keyword]
	if !present {
		return nil, nil
	}
	return parseSchema(c, raw, s, s.baseURI,
		s.schemaPointer+"/"+escapeToken(keyword),
		s.resourcePointer+"/"+escapeToken(keyword))
}

func (s *Schema) parseSchemaList(c *Compiler, obj map[string]any, keyword string) ([]*Schema, error) {
	raw, present := obj[keyword]
	if !present {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array", ErrInvalidSchemaType, keyword)
	}
	schemas := make([]*Schema, 0, len(items))
	for i, item := range items {
		sub, err := parseSchema(c, item, s, s.baseURI,
			s.schemaPointer+"/"+escapeToken(keyword)+"/"+strconv.Itoa(i),
			s.resourcePointer+"/"+escapeToken(keyword)+"/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, sub)
	}
	return schemas, nil
}

func (s *Schema) parseSchemaMap(c *Compiler, obj map[string]any, keyword string) (map[string]*Schema, error) {
	raw, present := obj[keyword]
	if !present {
		return nil, nil
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidSchemaType, keyword)
	}
	schemas := make(map[string]*Schema, len(entries))
	for key, item := range entries {
		sub, err := parseSchema(c, item, s, s.baseURI,
			s.schemaPointer+"/"+escapeToken(keyword)+"/"+escapeToken(key),
			s.resourcePointer+"/"+escapeToken(keyword)+"/"+escapeToken(key))
		if err != nil {
			return nil, err
		}
		schemas[key] = sub
	}
	return schemas, nil
}

func numberKeyword(obj map[string]any, keyword string) *float64 {
	raw, present := obj[keyword]
	if !present {
		return nil
	}
	if f, ok := toFloat(raw); ok {
		return &f
	}
	return nil
}

func ratKeyword(obj map[string]any, keyword string) *Rat {
	raw, present := obj[keyword]
	if !present {
		return nil
	}
	return NewRat(raw)
}

// sortedKeys yields object keys in stable order; error texts rely on it.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// eachSubschema visits every compiled child node exactly once.
func (s *Schema) eachSubschema(visit func(*Schema)) {
	single := []*Schema{
		s.Not, s.If, s.Then, s.Else, s.Items, s.Contains,
		s.AdditionalProperties, s.PropertyNames,
		s.UnevaluatedItems, s.UnevaluatedProperties, s.ContentSchema,
	}
	for _, sub := range single {
		if sub != nil {
			visit(sub)
		}
	}
	for _, list := range [][]*Schema{s.AllOf, s.AnyOf, s.OneOf, s.PrefixItems} {
		for _, sub := range list {
			if sub != nil {
				visit(sub)
			}
		}
	}
	for _, m := range []map[string]*Schema{s.Defs, s.DependentSchemas, s.Properties, s.PatternProperties} {
		for _, sub := range m {
			if sub != nil {
				visit(sub)
			}
		}
	}
	for _, sub := range s.extrasCompiled {
		if sub != nil {
			visit(sub)
		}
	}
}
